package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"hungyeu/internal/api/dto"
)

// ErrUnknownBatchAction is returned when the requested action does not exist
// for the target resource.
var ErrUnknownBatchAction = errors.New("unknown batch action")

// BatchService runs one moderation action over many items server-side and
// reports per-item outcomes. There is no cross-item atomicity: items that
// succeeded stay applied when a later item fails, and the response says
// exactly which ones.
type BatchService interface {
	RunStories(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error)
	RunChapters(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error)
	RunComments(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error)
	RunUsers(ctx context.Context, action string, ids []string) ([]dto.BatchItemResult, error)
}

type batchService struct {
	storySvc   StoryService
	chapterSvc ChapterService
	commentSvc CommentService
	userSvc    UserService
}

func NewBatchService(storySvc StoryService, chapterSvc ChapterService, commentSvc CommentService, userSvc UserService) BatchService {
	return &batchService{
		storySvc:   storySvc,
		chapterSvc: chapterSvc,
		commentSvc: commentSvc,
		userSvc:    userSvc,
	}
}

// runInt64 applies fn to every id, collecting per-item results. Malformed ids
// fail their own item instead of the whole batch.
func runInt64(ids []string, fn func(id int64) error) []dto.BatchItemResult {
	results := make([]dto.BatchItemResult, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			results = append(results, dto.BatchItemResult{ID: raw, Error: "invalid id"})
			continue
		}
		if err := fn(id); err != nil {
			results = append(results, dto.BatchItemResult{ID: raw, Error: err.Error()})
			continue
		}
		results = append(results, dto.BatchItemResult{ID: raw, OK: true})
	}
	return results
}

func (s *batchService) RunStories(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error) {
	var fn func(id int64) error
	switch action {
	case "delete":
		fn = func(id int64) error { return s.storySvc.Delete(ctx, id, adminID, true) }
	case "approve":
		fn = func(id int64) error { return s.storySvc.Approve(ctx, id) }
	case "reject":
		fn = func(id int64) error { return s.storySvc.Reject(ctx, id, "Bị từ chối trong đợt kiểm duyệt hàng loạt") }
	case "recommend":
		fn = func(id int64) error { return s.storySvc.SetRecommended(ctx, id, true) }
	case "unrecommend":
		fn = func(id int64) error { return s.storySvc.SetRecommended(ctx, id, false) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBatchAction, action)
	}
	return runInt64(ids, fn), nil
}

func (s *batchService) RunChapters(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error) {
	var fn func(id int64) error
	switch action {
	case "delete":
		fn = func(id int64) error { return s.chapterSvc.Delete(ctx, id, adminID, true) }
	case "publish":
		fn = func(id int64) error { return s.chapterSvc.Publish(ctx, id, adminID, true) }
	case "unpublish":
		fn = func(id int64) error { return s.chapterSvc.Unpublish(ctx, id, adminID, true) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBatchAction, action)
	}
	return runInt64(ids, fn), nil
}

func (s *batchService) RunComments(ctx context.Context, adminID, action string, ids []string) ([]dto.BatchItemResult, error) {
	var fn func(id int64) error
	switch action {
	case "delete":
		fn = func(id int64) error { return s.commentSvc.Delete(ctx, id, adminID, true) }
	case "restore":
		fn = func(id int64) error { return s.commentSvc.Restore(ctx, id) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBatchAction, action)
	}
	return runInt64(ids, fn), nil
}

func (s *batchService) RunUsers(ctx context.Context, action string, ids []string) ([]dto.BatchItemResult, error) {
	var fn func(id string) error
	switch action {
	case "activate":
		fn = func(id string) error { return s.userSvc.SetActive(ctx, id, true) }
	case "deactivate":
		fn = func(id string) error { return s.userSvc.SetActive(ctx, id, false) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBatchAction, action)
	}

	results := make([]dto.BatchItemResult, 0, len(ids))
	for _, id := range ids {
		if err := fn(id); err != nil {
			results = append(results, dto.BatchItemResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, dto.BatchItemResult{ID: id, OK: true})
	}
	return results, nil
}
