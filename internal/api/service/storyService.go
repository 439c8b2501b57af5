package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/slug"
)

var (
	ErrStoryNotFound = errors.New("story not found")
	ErrNotStoryOwner = errors.New("you don't have permission to modify this story")
	ErrInvalidScore  = errors.New("score must be between 1 and 5")
)

type StoryService interface {
	Create(ctx context.Context, authorID string, req dto.CreateStoryDTO) (*dto.StoryResponse, error)
	Update(ctx context.Context, storyID int64, userID string, isAdmin bool, req dto.UpdateStoryDTO) (*dto.StoryResponse, error)
	Delete(ctx context.Context, storyID int64, userID string, isAdmin bool) error
	GetByID(ctx context.Context, id int64) (*dto.StoryResponse, error)
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*dto.StoryResponse, error)
	// ViewerState reports the requesting user's own relationship to a story
	// (liked, followed, their rating) for logged-in readers on public pages.
	ViewerState(ctx context.Context, storyID int64, userID string) (*dto.ViewerState, error)
	List(ctx context.Context, f repository.StoryFilter, page, limit int) ([]dto.StoryResponse, int64, error)
	Approve(ctx context.Context, storyID int64) error
	Reject(ctx context.Context, storyID int64, reason string) error
	SetRecommended(ctx context.Context, storyID int64, recommended bool) error
	React(ctx context.Context, userID string, storyID int64, kind string) error
	Unreact(ctx context.Context, userID string, storyID int64, kind string) error
	Rate(ctx context.Context, userID string, storyID int64, score int) error
}

type storyService struct {
	storyRepo    repository.StoryRepository
	userRepo     repository.UserRepository
	reactionRepo repository.ReactionRepository
	ratingRepo   repository.RatingRepository
	mailer       EmailService
}

func NewStoryService(
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	reactionRepo repository.ReactionRepository,
	ratingRepo repository.RatingRepository,
	mailer EmailService,
) StoryService {
	return &storyService{
		storyRepo:    storyRepo,
		userRepo:     userRepo,
		reactionRepo: reactionRepo,
		ratingRepo:   ratingRepo,
		mailer:       mailer,
	}
}

// Create makes a DRAFT story owned by authorID; the slug is derived from the
// title and globally unique.
func (s *storyService) Create(ctx context.Context, authorID string, req dto.CreateStoryDTO) (*dto.StoryResponse, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	storySlug, err := slug.MakeUnique(req.Title, func(candidate string) (bool, error) {
		return s.storyRepo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	story := req.ToModel()
	story.Slug = storySlug
	story.AuthorID = author.ID
	story.AuthorName = author.DisplayName
	story.Status = models.StoryDraft

	if err := s.storyRepo.Create(ctx, &story); err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) > 0 {
		if err := s.storyRepo.ReplaceCategories(ctx, story.ID, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	created, err := s.storyRepo.GetByID(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToStoryResponse(created), nil
}

func (s *storyService) Update(ctx context.Context, storyID int64, userID string, isAdmin bool, req dto.UpdateStoryDTO) (*dto.StoryResponse, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}

	if story.AuthorID != userID && !isAdmin {
		return nil, ErrNotStoryOwner
	}

	// the slug stays stable across title edits so reader links keep working
	req.ApplyTo(story)
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil {
		if err := s.storyRepo.ReplaceCategories(ctx, storyID, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToStoryResponse(updated), nil
}

func (s *storyService) Delete(ctx context.Context, storyID int64, userID string, isAdmin bool) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}
	if story.AuthorID != userID && !isAdmin {
		return ErrNotStoryOwner
	}
	return s.storyRepo.Delete(ctx, storyID)
}

func (s *storyService) GetByID(ctx context.Context, id int64) (*dto.StoryResponse, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return dto.FromModelToStoryResponse(story), nil
}

func (s *storyService) GetBySlug(ctx context.Context, storySlug string, includeUnpublished bool) (*dto.StoryResponse, error) {
	story, err := s.storyRepo.GetBySlug(ctx, storySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	if !story.IsPublished && !includeUnpublished {
		return nil, ErrStoryNotFound
	}
	return dto.FromModelToStoryResponse(story), nil
}

func (s *storyService) ViewerState(ctx context.Context, storyID int64, userID string) (*dto.ViewerState, error) {
	liked, err := s.reactionRepo.Exists(ctx, userID, storyID, models.ReactionLike)
	if err != nil {
		return nil, err
	}
	followed, err := s.reactionRepo.Exists(ctx, userID, storyID, models.ReactionFollow)
	if err != nil {
		return nil, err
	}

	state := &dto.ViewerState{Liked: liked, Followed: followed}
	rating, err := s.ratingRepo.GetByUserAndStory(ctx, userID, storyID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if rating != nil {
		state.Rating = &rating.Score
	}
	return state, nil
}

func (s *storyService) List(ctx context.Context, f repository.StoryFilter, page, limit int) ([]dto.StoryResponse, int64, error) {
	stories, total, err := s.storyRepo.List(ctx, f, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.StoryResponse, 0, len(stories))
	for i := range stories {
		responses = append(responses, *dto.FromModelToStoryResponse(&stories[i]))
	}
	return responses, total, nil
}

// Approve publishes a story and notifies its author. The mail is best-effort.
func (s *storyService) Approve(ctx context.Context, storyID int64) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	if err := s.storyRepo.SetPublished(ctx, storyID, true); err != nil {
		return err
	}

	if author, err := s.userRepo.FindByID(story.AuthorID); err == nil {
		s.mailer.SendStoryApprovedEmail(author.Email, author.DisplayName, story.Title)
	}
	return nil
}

// Reject unpublishes a story back to DRAFT and notifies the author with the
// moderation reason.
func (s *storyService) Reject(ctx context.Context, storyID int64, reason string) error {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	story.IsPublished = false
	story.Status = models.StoryDraft
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return err
	}

	if author, err := s.userRepo.FindByID(story.AuthorID); err == nil {
		s.mailer.SendStoryRejectedEmail(author.Email, author.DisplayName, story.Title, reason)
	}
	return nil
}

func (s *storyService) SetRecommended(ctx context.Context, storyID int64, recommended bool) error {
	err := s.storyRepo.SetRecommended(ctx, storyID, recommended)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrStoryNotFound
	}
	return err
}

// React records a like or follow; repeated reactions are no-ops.
func (s *storyService) React(ctx context.Context, userID string, storyID int64, kind string) error {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	exists, err := s.reactionRepo.Exists(ctx, userID, storyID, kind)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := s.reactionRepo.Create(ctx, &models.StoryReaction{
		UserID:  userID,
		StoryID: storyID,
		Kind:    kind,
	}); err != nil {
		return err
	}

	return s.storyRepo.AdjustCounter(ctx, storyID, counterColumn(kind), 1)
}

func (s *storyService) Unreact(ctx context.Context, userID string, storyID int64, kind string) error {
	removed, err := s.reactionRepo.Delete(ctx, userID, storyID, kind)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	return s.storyRepo.AdjustCounter(ctx, storyID, counterColumn(kind), -1)
}

// Rate upserts the user's score and refreshes the denormalized aggregate.
func (s *storyService) Rate(ctx context.Context, userID string, storyID int64, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}

	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}

	if err := s.ratingRepo.Upsert(ctx, &models.StoryRating{
		UserID:  userID,
		StoryID: storyID,
		Score:   score,
	}); err != nil {
		return err
	}

	return s.storyRepo.RecomputeRating(ctx, storyID)
}

func counterColumn(kind string) string {
	if kind == models.ReactionFollow {
		return "follow_count"
	}
	return "like_count"
}
