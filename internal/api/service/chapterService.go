package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/slug"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
)

// wordsPerMinute drives the derived reading-time estimate.
const wordsPerMinute = 200

type ChapterService interface {
	Create(ctx context.Context, storyID int64, userID string, isAdmin bool, req dto.CreateChapterDTO) (*dto.ChapterResponse, error)
	Update(ctx context.Context, chapterID int64, userID string, isAdmin bool, req dto.UpdateChapterDTO) (*dto.ChapterResponse, error)
	Delete(ctx context.Context, chapterID int64, userID string, isAdmin bool) error
	Publish(ctx context.Context, chapterID int64, userID string, isAdmin bool) error
	Unpublish(ctx context.Context, chapterID int64, userID string, isAdmin bool) error
	ListByStory(ctx context.Context, storyID int64, publishedOnly bool, page, limit int) ([]dto.ChapterResponse, int64, error)
	// Read resolves a chapter by story slug + chapter slug for the public
	// reading page, including previous/next navigation.
	Read(ctx context.Context, storySlug, chapterSlug string) (*dto.ChapterReadResponse, error)
}

type chapterService struct {
	chapterRepo  repository.ChapterRepository
	storyRepo    repository.StoryRepository
	reactionRepo repository.ReactionRepository
	mailer       EmailService
}

func NewChapterService(
	chapterRepo repository.ChapterRepository,
	storyRepo repository.StoryRepository,
	reactionRepo repository.ReactionRepository,
	mailer EmailService,
) ChapterService {
	return &chapterService{
		chapterRepo:  chapterRepo,
		storyRepo:    storyRepo,
		reactionRepo: reactionRepo,
		mailer:       mailer,
	}
}

// readingTime derives minutes from word count, rounding up, minimum 1.
func readingTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func (s *chapterService) Create(ctx context.Context, storyID int64, userID string, isAdmin bool, req dto.CreateChapterDTO) (*dto.ChapterResponse, error) {
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

	// chapter slugs only need to be unique within their story
	chapterSlug, err := slug.MakeUnique(req.Title, func(candidate string) (bool, error) {
		return s.chapterRepo.SlugExists(ctx, storyID, candidate)
	})
	if err != nil {
		return nil, err
	}

	order := req.Order
	if order == 0 {
		order, err = s.chapterRepo.NextOrder(ctx, storyID)
		if err != nil {
			return nil, err
		}
	}

	wordCount := len(strings.Fields(req.Content))
	chapter := &models.Chapter{
		StoryID:     storyID,
		Slug:        chapterSlug,
		Title:       req.Title,
		Content:     req.Content,
		Order:       order,
		UploaderID:  userID,
		WordCount:   wordCount,
		ReadingTime: readingTime(wordCount),
	}

	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, err
	}
	return dto.FromModelToChapterResponse(chapter), nil
}

func (s *chapterService) getOwned(ctx context.Context, chapterID int64, userID string, isAdmin bool) (*models.Chapter, *models.Story, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrChapterNotFound
		}
		return nil, nil, err
	}
	story, err := s.storyRepo.GetByID(ctx, chapter.StoryID)
	if err != nil {
		return nil, nil, err
	}
	if story.AuthorID != userID && !isAdmin {
		return nil, nil, ErrNotStoryOwner
	}
	return chapter, story, nil
}

func (s *chapterService) Update(ctx context.Context, chapterID int64, userID string, isAdmin bool, req dto.UpdateChapterDTO) (*dto.ChapterResponse, error) {
	chapter, _, err := s.getOwned(ctx, chapterID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Content != nil {
		chapter.Content = *req.Content
		chapter.WordCount = len(strings.Fields(*req.Content))
		chapter.ReadingTime = readingTime(chapter.WordCount)
	}
	if req.Order != nil {
		chapter.Order = *req.Order
	}

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}
	return dto.FromModelToChapterResponse(chapter), nil
}

func (s *chapterService) Delete(ctx context.Context, chapterID int64, userID string, isAdmin bool) error {
	if _, _, err := s.getOwned(ctx, chapterID, userID, isAdmin); err != nil {
		return err
	}
	return s.chapterRepo.Delete(ctx, chapterID)
}

// Publish makes a chapter readable and notifies the story's followers.
// Notification fan-out is best-effort and runs off the request path.
func (s *chapterService) Publish(ctx context.Context, chapterID int64, userID string, isAdmin bool) error {
	chapter, story, err := s.getOwned(ctx, chapterID, userID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.chapterRepo.SetPublished(ctx, chapterID, true); err != nil {
		return err
	}

	emails, err := s.reactionRepo.FollowerEmails(ctx, story.ID)
	if err != nil {
		// notification failure never rolls back the publish
		return nil
	}
	go func(storyTitle, chapterTitle string, emails []string) {
		for _, to := range emails {
			s.mailer.SendNewChapterEmail(to, storyTitle, chapterTitle)
		}
	}(story.Title, chapter.Title, emails)

	return nil
}

func (s *chapterService) Unpublish(ctx context.Context, chapterID int64, userID string, isAdmin bool) error {
	if _, _, err := s.getOwned(ctx, chapterID, userID, isAdmin); err != nil {
		return err
	}
	return s.chapterRepo.SetPublished(ctx, chapterID, false)
}

func (s *chapterService) ListByStory(ctx context.Context, storyID int64, publishedOnly bool, page, limit int) ([]dto.ChapterResponse, int64, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrStoryNotFound
		}
		return nil, 0, err
	}

	chapters, total, err := s.chapterRepo.ListByStory(ctx, storyID, publishedOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.ChapterResponse, 0, len(chapters))
	for i := range chapters {
		responses = append(responses, *dto.FromModelToChapterResponse(&chapters[i]))
	}
	return responses, total, nil
}

func (s *chapterService) Read(ctx context.Context, storySlug, chapterSlug string) (*dto.ChapterReadResponse, error) {
	story, err := s.storyRepo.GetBySlug(ctx, storySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	if !story.IsPublished {
		return nil, ErrStoryNotFound
	}

	chapter, err := s.chapterRepo.GetBySlug(ctx, story.ID, chapterSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	if !chapter.IsPublished {
		return nil, ErrChapterNotFound
	}

	prev, next, err := s.chapterRepo.Neighbors(ctx, story.ID, chapter.Order)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToChapterReadResponse(chapter, prev, next), nil
}
