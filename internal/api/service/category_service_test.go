package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpsertByName(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryUpsert_Idempotent(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("UpsertByName", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	svc := NewCategoryService(repo)

	first, err := svc.Upsert(context.Background(), "Tiên Hiệp", nil)
	assert.NoError(t, err)

	second, err := svc.Upsert(context.Background(), "Tiên Hiệp", nil)
	assert.NoError(t, err)

	// same name, same slug, both runs go through the upsert path
	assert.Equal(t, "tien-hiep", first.Slug)
	assert.Equal(t, first.Slug, second.Slug)
	repo.AssertNumberOfCalls(t, "UpsertByName", 2)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryCreate_SlugFromName(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("SlugExists", mock.Anything, "do-thi").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	svc := NewCategoryService(repo)

	got, err := svc.Create(context.Background(), dto.CreateCategoryDTO{Name: "Đô Thị"})

	assert.NoError(t, err)
	assert.Equal(t, "do-thi", got.Slug)
}

func TestCategoryGetBySlug_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("GetBySlug", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewCategoryService(repo)

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
