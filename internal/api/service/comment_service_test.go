package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
)

func newTestCommentService(commentRepo *MockCommentRepository, storyRepo *MockStoryRepository, chapterRepo *MockChapterRepository) CommentService {
	return NewCommentService(commentRepo, storyRepo, chapterRepo)
}

func TestCommentCreateOnStory_Success(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	storyRepo := new(MockStoryRepository)

	storyID := int64(1)
	storyRepo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID}, nil)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 10
		}).Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(10)).Return(&models.Comment{
		ID: 10, UserID: "user-1", StoryID: &storyID, Content: "hay quá",
		User: models.User{Username: "user1", DisplayName: "Độc Giả"},
	}, nil)

	svc := newTestCommentService(commentRepo, storyRepo, new(MockChapterRepository))

	got, err := svc.CreateOnStory(context.Background(), "user-1", storyID, dto.CreateCommentDTO{Content: "hay quá"})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, "user1", got.Username)
	assert.Equal(t, "hay quá", got.Content)
}

func TestCommentReply_BumpsParentCount(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	storyRepo := new(MockStoryRepository)

	storyID := int64(1)
	parentID := int64(5)

	storyRepo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID}, nil)
	commentRepo.On("GetByID", mock.Anything, parentID).Return(&models.Comment{
		ID: parentID, StoryID: &storyID,
	}, nil)
	commentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Comment).ID = 11
		}).Return(nil)
	commentRepo.On("AdjustReplyCount", mock.Anything, parentID, 1).Return(nil)
	commentRepo.On("GetByID", mock.Anything, int64(11)).Return(&models.Comment{
		ID: 11, StoryID: &storyID, ParentID: &parentID,
	}, nil)

	svc := newTestCommentService(commentRepo, storyRepo, new(MockChapterRepository))

	got, err := svc.CreateOnStory(context.Background(), "user-1", storyID, dto.CreateCommentDTO{
		Content:  "đồng ý",
		ParentID: &parentID,
	})

	assert.NoError(t, err)
	assert.Equal(t, &parentID, got.ParentID)
	commentRepo.AssertCalled(t, "AdjustReplyCount", mock.Anything, parentID, 1)
}

func TestCommentReply_ParentFromOtherThreadRejected(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	storyRepo := new(MockStoryRepository)

	storyID := int64(1)
	otherStoryID := int64(2)
	parentID := int64(5)

	storyRepo.On("GetByID", mock.Anything, storyID).Return(&models.Story{ID: storyID}, nil)
	commentRepo.On("GetByID", mock.Anything, parentID).Return(&models.Comment{
		ID: parentID, StoryID: &otherStoryID,
	}, nil)

	svc := newTestCommentService(commentRepo, storyRepo, new(MockChapterRepository))

	_, err := svc.CreateOnStory(context.Background(), "user-1", storyID, dto.CreateCommentDTO{
		Content:  "lạc đề",
		ParentID: &parentID,
	})

	assert.ErrorIs(t, err, ErrBadCommentParent)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentDelete_OwnerOrAdminOnly(t *testing.T) {
	commentRepo := new(MockCommentRepository)

	commentRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Comment{
		ID: 7, UserID: "owner",
	}, nil)
	commentRepo.On("SoftDelete", mock.Anything, int64(7)).Return(nil)

	svc := newTestCommentService(commentRepo, new(MockStoryRepository), new(MockChapterRepository))

	// stranger: forbidden
	err := svc.Delete(context.Background(), 7, "stranger", false)
	assert.ErrorIs(t, err, ErrNotCommentOwner)

	// owner: soft delete
	err = svc.Delete(context.Background(), 7, "owner", false)
	assert.NoError(t, err)

	// admin: soft delete
	err = svc.Delete(context.Background(), 7, "stranger", true)
	assert.NoError(t, err)
}

func TestCommentResponse_DeletedContentMasked(t *testing.T) {
	resp := dto.FromModelToCommentResponse(&models.Comment{
		ID: 1, Content: "nội dung gốc", IsDeleted: true,
	})

	assert.True(t, resp.IsDeleted)
	assert.Empty(t, resp.Content)
}
