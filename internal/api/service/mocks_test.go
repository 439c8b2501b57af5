package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
)

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter, page, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserRepository) SetRole(ctx context.Context, id, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) SetEmailVerified(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRefreshTokenRepository mocks repository.RefreshTokenRepository
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	args := m.Called()
	return args.Error(0)
}

// MockVerificationTokenRepository mocks repository.VerificationTokenRepository
type MockVerificationTokenRepository struct {
	mock.Mock
}

func (m *MockVerificationTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *MockVerificationTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockStoryRepository mocks repository.StoryRepository
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) List(ctx context.Context, f repository.StoryFilter, page, limit int) ([]models.Story, int64, error) {
	args := m.Called(ctx, f, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Story), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoryRepository) GetByID(ctx context.Context, id int64) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Story, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockStoryRepository) Create(ctx context.Context, s *models.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoryRepository) Update(ctx context.Context, s *models.Story) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockStoryRepository) SetRecommended(ctx context.Context, id int64, recommended bool) error {
	args := m.Called(ctx, id, recommended)
	return args.Error(0)
}

func (m *MockStoryRepository) IncrementViews(ctx context.Context, id, by int64) error {
	args := m.Called(ctx, id, by)
	return args.Error(0)
}

func (m *MockStoryRepository) AdjustCounter(ctx context.Context, id int64, column string, delta int64) error {
	args := m.Called(ctx, id, column, delta)
	return args.Error(0)
}

func (m *MockStoryRepository) RecomputeRating(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) ReplaceCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	args := m.Called(ctx, id, categoryIDs)
	return args.Error(0)
}

// MockChapterRepository mocks repository.ChapterRepository
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) ListByStory(ctx context.Context, storyID int64, publishedOnly bool, page, limit int) ([]models.Chapter, int64, error) {
	args := m.Called(ctx, storyID, publishedOnly, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Chapter), args.Get(1).(int64), args.Error(2)
}

func (m *MockChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) GetBySlug(ctx context.Context, storyID int64, slug string) (*models.Chapter, error) {
	args := m.Called(ctx, storyID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) SlugExists(ctx context.Context, storyID int64, slug string) (bool, error) {
	args := m.Called(ctx, storyID, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockChapterRepository) NextOrder(ctx context.Context, storyID int64) (int, error) {
	args := m.Called(ctx, storyID)
	return args.Int(0), args.Error(1)
}

func (m *MockChapterRepository) Neighbors(ctx context.Context, storyID int64, order int) (*models.Chapter, *models.Chapter, error) {
	args := m.Called(ctx, storyID, order)
	var prev, next *models.Chapter
	if args.Get(0) != nil {
		prev = args.Get(0).(*models.Chapter)
	}
	if args.Get(1) != nil {
		next = args.Get(1).(*models.Chapter)
	}
	return prev, next, args.Error(2)
}

func (m *MockChapterRepository) Create(ctx context.Context, c *models.Chapter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChapterRepository) Update(ctx context.Context, c *models.Chapter) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChapterRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockChapterRepository) IncrementViews(ctx context.Context, id, by int64) error {
	args := m.Called(ctx, id, by)
	return args.Error(0)
}

// MockCommentRepository mocks repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, target repository.CommentTarget, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, target, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID int64, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, parentID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListRecent(ctx context.Context, page, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) Restore(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) AdjustReplyCount(ctx context.Context, id int64, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockReactionRepository mocks repository.ReactionRepository
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Exists(ctx context.Context, userID string, storyID int64, kind string) (bool, error) {
	args := m.Called(ctx, userID, storyID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepository) Create(ctx context.Context, r *models.StoryReaction) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, userID string, storyID int64, kind string) (bool, error) {
	args := m.Called(ctx, userID, storyID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionRepository) FollowerEmails(ctx context.Context, storyID int64) ([]string, error) {
	args := m.Called(ctx, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRatingRepository mocks repository.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) GetByUserAndStory(ctx context.Context, userID string, storyID int64) (*models.StoryRating, error) {
	args := m.Called(ctx, userID, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoryRating), args.Error(1)
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.StoryRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

// recordedEmail captures one mailer call for assertions.
type recordedEmail struct {
	Kind string
	To   string
}

// fakeMailer records sends; safe for the goroutine fan-out in chapter publish.
type fakeMailer struct {
	mu   sync.Mutex
	sent []recordedEmail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{}
}

func (f *fakeMailer) record(kind, to string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recordedEmail{Kind: kind, To: to})
}

func (f *fakeMailer) calls() []recordedEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedEmail, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeMailer) SendVerificationEmail(to, displayName, token string) {
	f.record("verification", to)
}

func (f *fakeMailer) SendWelcomeEmail(to, displayName string) {
	f.record("welcome", to)
}

func (f *fakeMailer) SendStoryApprovedEmail(to, displayName, storyTitle string) {
	f.record("story-approved", to)
}

func (f *fakeMailer) SendStoryRejectedEmail(to, displayName, storyTitle, reason string) {
	f.record("story-rejected", to)
}

func (f *fakeMailer) SendNewChapterEmail(to, storyTitle, chapterTitle string) {
	f.record("new-chapter", to)
}

func (f *fakeMailer) SendSystemNotice(to, subject, body string) {
	f.record("system-notice", to)
}
