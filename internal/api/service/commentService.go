package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentOwner  = errors.New("you don't have permission to delete this comment")
	ErrBadCommentParent = errors.New("parent comment belongs to a different thread")
)

type CommentService interface {
	CreateOnStory(ctx context.Context, userID string, storyID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	CreateOnChapter(ctx context.Context, userID string, chapterID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	// Delete soft-deletes; the thread keeps its shape. Owner or admin only.
	Delete(ctx context.Context, commentID int64, userID string, isAdmin bool) error
	Restore(ctx context.Context, commentID int64) error
	ListByStory(ctx context.Context, storyID int64, page, limit int) ([]dto.CommentResponse, int64, error)
	ListByChapter(ctx context.Context, chapterID int64, page, limit int) ([]dto.CommentResponse, int64, error)
	ListReplies(ctx context.Context, parentID int64, page, limit int) ([]dto.CommentResponse, int64, error)
	// ListRecent feeds the admin moderation queue: every comment, newest first.
	ListRecent(ctx context.Context, page, limit int) ([]dto.CommentResponse, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	storyRepo   repository.StoryRepository
	chapterRepo repository.ChapterRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	storyRepo repository.StoryRepository,
	chapterRepo repository.ChapterRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		storyRepo:   storyRepo,
		chapterRepo: chapterRepo,
	}
}

func (s *commentService) create(ctx context.Context, comment *models.Comment, parentID *int64) (*dto.CommentResponse, error) {
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		// replies inherit the parent's target and must stay in its thread
		if !sameTarget(parent, comment) {
			return nil, ErrBadCommentParent
		}
		comment.ParentID = parentID
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := s.commentRepo.AdjustReplyCount(ctx, *parentID, 1); err != nil {
			return nil, err
		}
	}

	// reload with user data
	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(created), nil
}

func sameTarget(parent, child *models.Comment) bool {
	if parent.StoryID != nil && child.StoryID != nil {
		return *parent.StoryID == *child.StoryID
	}
	if parent.ChapterID != nil && child.ChapterID != nil {
		return *parent.ChapterID == *child.ChapterID
	}
	return false
}

func (s *commentService) CreateOnStory(ctx context.Context, userID string, storyID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.storyRepo.GetByID(ctx, storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}

	return s.create(ctx, &models.Comment{
		UserID:  userID,
		StoryID: &storyID,
		Content: req.Content,
	}, req.ParentID)
}

func (s *commentService) CreateOnChapter(ctx context.Context, userID string, chapterID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.chapterRepo.GetByID(ctx, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	return s.create(ctx, &models.Comment{
		UserID:    userID,
		ChapterID: &chapterID,
		Content:   req.Content,
	}, req.ParentID)
}

func (s *commentService) Delete(ctx context.Context, commentID int64, userID string, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return ErrNotCommentOwner
	}

	return s.commentRepo.SoftDelete(ctx, commentID)
}

func (s *commentService) Restore(ctx context.Context, commentID int64) error {
	err := s.commentRepo.Restore(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	return err
}

func (s *commentService) list(comments []models.Comment, total int64, err error) ([]dto.CommentResponse, int64, error) {
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) ListByStory(ctx context.Context, storyID int64, page, limit int) ([]dto.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.ListTopLevel(ctx, repository.CommentTarget{StoryID: &storyID}, page, limit)
	return s.list(comments, total, err)
}

func (s *commentService) ListByChapter(ctx context.Context, chapterID int64, page, limit int) ([]dto.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.ListTopLevel(ctx, repository.CommentTarget{ChapterID: &chapterID}, page, limit)
	return s.list(comments, total, err)
}

func (s *commentService) ListRecent(ctx context.Context, page, limit int) ([]dto.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.ListRecent(ctx, page, limit)
	return s.list(comments, total, err)
}

func (s *commentService) ListReplies(ctx context.Context, parentID int64, page, limit int) ([]dto.CommentResponse, int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCommentNotFound
		}
		return nil, 0, err
	}
	comments, total, err := s.commentRepo.ListReplies(ctx, parentID, page, limit)
	return s.list(comments, total, err)
}
