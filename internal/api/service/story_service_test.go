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

func newTestStoryService(storyRepo *MockStoryRepository, userRepo *MockUserRepository, reactionRepo *MockReactionRepository, ratingRepo *MockRatingRepository, mailer *fakeMailer) StoryService {
	return NewStoryService(storyRepo, userRepo, reactionRepo, ratingRepo, mailer)
}

func TestStoryCreate_SlugFromTitle(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	userRepo := new(MockUserRepository)

	userRepo.On("FindByID", "author-1").Return(&models.User{
		ID: "author-1", DisplayName: "Tác Giả",
	}, nil)
	storyRepo.On("SlugExists", mock.Anything, "truyen-kieu").Return(false, nil)
	storyRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Story")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Story).ID = 7
		}).Return(nil)
	storyRepo.On("GetByID", mock.Anything, int64(7)).Return(&models.Story{
		ID: 7, Slug: "truyen-kieu", Title: "Truyện Kiều",
		AuthorID: "author-1", AuthorName: "Tác Giả", Status: models.StoryDraft,
	}, nil)

	svc := newTestStoryService(storyRepo, userRepo, new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	got, err := svc.Create(context.Background(), "author-1", dto.CreateStoryDTO{Title: "Truyện Kiều"})

	assert.NoError(t, err)
	assert.Equal(t, "truyen-kieu", got.Slug)
	assert.Equal(t, models.StoryDraft, got.Status)
	assert.Equal(t, "Tác Giả", got.AuthorName)

	created := storyRepo.Calls[1].Arguments.Get(1).(*models.Story)
	assert.Equal(t, models.StoryDraft, created.Status)
}

func TestStoryUpdate_NotOwner(t *testing.T) {
	storyRepo := new(MockStoryRepository)

	storyRepo.On("GetByID", mock.Anything, int64(1)).Return(&models.Story{
		ID: 1, AuthorID: "author-1",
	}, nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	_, err := svc.Update(context.Background(), 1, "someone-else", false, dto.UpdateStoryDTO{})

	assert.ErrorIs(t, err, ErrNotStoryOwner)
}

func TestStoryUpdate_SlugStableAcrossTitleEdit(t *testing.T) {
	storyRepo := new(MockStoryRepository)

	story := &models.Story{ID: 1, AuthorID: "author-1", Slug: "original-slug", Title: "Original"}
	storyRepo.On("GetByID", mock.Anything, int64(1)).Return(story, nil)
	storyRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Story")).Return(nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	newTitle := "Completely Different Title"
	got, err := svc.Update(context.Background(), 1, "author-1", false, dto.UpdateStoryDTO{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, "original-slug", got.Slug)
	assert.Equal(t, newTitle, got.Title)
}

func TestStoryGetBySlug_UnpublishedHidden(t *testing.T) {
	storyRepo := new(MockStoryRepository)

	storyRepo.On("GetBySlug", mock.Anything, "draft-story").Return(&models.Story{
		ID: 1, Slug: "draft-story", IsPublished: false,
	}, nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	_, err := svc.GetBySlug(context.Background(), "draft-story", false)
	assert.ErrorIs(t, err, ErrStoryNotFound)

	// admins and owners still see it
	got, err := svc.GetBySlug(context.Background(), "draft-story", true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestStoryApprove_NotifiesAuthor(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	userRepo := new(MockUserRepository)
	mailer := newFakeMailer()

	storyRepo.On("GetByID", mock.Anything, int64(3)).Return(&models.Story{
		ID: 3, AuthorID: "author-1", Title: "Truyện Hay",
	}, nil)
	storyRepo.On("SetPublished", mock.Anything, int64(3), true).Return(nil)
	userRepo.On("FindByID", "author-1").Return(&models.User{
		ID: "author-1", Email: "a@example.com", DisplayName: "A",
	}, nil)

	svc := newTestStoryService(storyRepo, userRepo, new(MockReactionRepository), new(MockRatingRepository), mailer)

	err := svc.Approve(context.Background(), 3)

	assert.NoError(t, err)
	calls := mailer.calls()
	assert.Len(t, calls, 1)
	assert.Equal(t, "story-approved", calls[0].Kind)
	assert.Equal(t, "a@example.com", calls[0].To)
}

func TestStoryReact_RepeatIsNoop(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	reactionRepo := new(MockReactionRepository)

	storyRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Story{ID: 5}, nil)
	reactionRepo.On("Exists", mock.Anything, "user-1", int64(5), models.ReactionLike).Return(true, nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), reactionRepo, new(MockRatingRepository), newFakeMailer())

	err := svc.React(context.Background(), "user-1", 5, models.ReactionLike)

	assert.NoError(t, err)
	// no create, no counter bump
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	storyRepo.AssertNotCalled(t, "AdjustCounter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStoryReact_FollowBumpsFollowCount(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	reactionRepo := new(MockReactionRepository)

	storyRepo.On("GetByID", mock.Anything, int64(5)).Return(&models.Story{ID: 5}, nil)
	reactionRepo.On("Exists", mock.Anything, "user-1", int64(5), models.ReactionFollow).Return(false, nil)
	reactionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.StoryReaction")).Return(nil)
	storyRepo.On("AdjustCounter", mock.Anything, int64(5), "follow_count", int64(1)).Return(nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), reactionRepo, new(MockRatingRepository), newFakeMailer())

	err := svc.React(context.Background(), "user-1", 5, models.ReactionFollow)

	assert.NoError(t, err)
	storyRepo.AssertExpectations(t)
}

func TestStoryRate_OutOfRange(t *testing.T) {
	svc := newTestStoryService(new(MockStoryRepository), new(MockUserRepository), new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	assert.ErrorIs(t, svc.Rate(context.Background(), "user-1", 1, 0), ErrInvalidScore)
	assert.ErrorIs(t, svc.Rate(context.Background(), "user-1", 1, 6), ErrInvalidScore)
}

func TestStoryRate_UpsertsAndRecomputes(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	ratingRepo := new(MockRatingRepository)

	storyRepo.On("GetByID", mock.Anything, int64(9)).Return(&models.Story{ID: 9}, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.StoryRating")).Return(nil)
	storyRepo.On("RecomputeRating", mock.Anything, int64(9)).Return(nil)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), new(MockReactionRepository), ratingRepo, newFakeMailer())

	err := svc.Rate(context.Background(), "user-1", 9, 4)

	assert.NoError(t, err)
	ratingRepo.AssertExpectations(t)
	storyRepo.AssertCalled(t, "RecomputeRating", mock.Anything, int64(9))
}

func TestStoryDelete_NotFound(t *testing.T) {
	storyRepo := new(MockStoryRepository)
	storyRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestStoryService(storyRepo, new(MockUserRepository), new(MockReactionRepository), new(MockRatingRepository), newFakeMailer())

	err := svc.Delete(context.Background(), 404, "admin", true)

	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestViewerState_LikedAndRated(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	ratingRepo := new(MockRatingRepository)

	reactionRepo.On("Exists", mock.Anything, "user-1", int64(9), models.ReactionLike).Return(true, nil)
	reactionRepo.On("Exists", mock.Anything, "user-1", int64(9), models.ReactionFollow).Return(false, nil)
	ratingRepo.On("GetByUserAndStory", mock.Anything, "user-1", int64(9)).
		Return(&models.StoryRating{UserID: "user-1", StoryID: 9, Score: 4}, nil)

	svc := newTestStoryService(new(MockStoryRepository), new(MockUserRepository), reactionRepo, ratingRepo, newFakeMailer())

	state, err := svc.ViewerState(context.Background(), 9, "user-1")

	assert.NoError(t, err)
	assert.True(t, state.Liked)
	assert.False(t, state.Followed)
	assert.NotNil(t, state.Rating)
	assert.Equal(t, 4, *state.Rating)
}

func TestViewerState_NoRatingYet(t *testing.T) {
	reactionRepo := new(MockReactionRepository)
	ratingRepo := new(MockRatingRepository)

	reactionRepo.On("Exists", mock.Anything, "user-1", int64(9), models.ReactionLike).Return(false, nil)
	reactionRepo.On("Exists", mock.Anything, "user-1", int64(9), models.ReactionFollow).Return(true, nil)
	ratingRepo.On("GetByUserAndStory", mock.Anything, "user-1", int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := newTestStoryService(new(MockStoryRepository), new(MockUserRepository), reactionRepo, ratingRepo, newFakeMailer())

	state, err := svc.ViewerState(context.Background(), 9, "user-1")

	assert.NoError(t, err)
	assert.False(t, state.Liked)
	assert.True(t, state.Followed)
	assert.Nil(t, state.Rating)
}
