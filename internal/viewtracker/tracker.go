package viewtracker

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hungyeu/internal/api/repository"
)

const (
	storyKeyPrefix   = "views:story:"
	chapterKeyPrefix = "views:chapter:"
	scanBatch        = 100
)

// Tracker counts story and chapter views in Redis and flushes the counters
// to PostgreSQL on an interval. When Redis is unavailable it degrades to
// writing each view straight to the database.
type Tracker struct {
	rdb         *redis.Client
	storyRepo   repository.StoryRepository
	chapterRepo repository.ChapterRepository
	logger      *slog.Logger
	interval    time.Duration
	stopChan    chan struct{}
	doneChan    chan struct{}
}

func New(
	rdb *redis.Client,
	storyRepo repository.StoryRepository,
	chapterRepo repository.ChapterRepository,
	logger *slog.Logger,
	interval time.Duration,
) *Tracker {
	return &Tracker{
		rdb:         rdb,
		storyRepo:   storyRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
		interval:    interval,
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// BumpStory records one view. Failures are logged, never surfaced: a lost
// view must not break a read.
func (t *Tracker) BumpStory(ctx context.Context, storyID int64) {
	t.bump(ctx, storyKeyPrefix, storyID, t.storyRepo.IncrementViews)
}

func (t *Tracker) BumpChapter(ctx context.Context, chapterID int64) {
	t.bump(ctx, chapterKeyPrefix, chapterID, t.chapterRepo.IncrementViews)
}

func (t *Tracker) bump(ctx context.Context, prefix string, id int64, direct func(ctx context.Context, id, by int64) error) {
	if t.rdb == nil {
		if err := direct(ctx, id, 1); err != nil {
			t.logger.Error("view_direct_write_failed", "key", prefix+strconv.FormatInt(id, 10), "error", err)
		}
		return
	}

	key := prefix + strconv.FormatInt(id, 10)
	if err := t.rdb.Incr(ctx, key).Err(); err != nil {
		t.logger.Error("view_incr_failed", "key", key, "error", err)
		// Redis down, don't lose the view
		if err := direct(ctx, id, 1); err != nil {
			t.logger.Error("view_direct_write_failed", "key", key, "error", err)
		}
	}
}

// Start runs the flush loop until Stop is called. No-op without Redis since
// views are then written directly.
func (t *Tracker) Start() {
	if t.rdb == nil {
		close(t.doneChan)
		return
	}

	go func() {
		defer close(t.doneChan)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.logger.Info("view_tracker_started", "interval", t.interval.String())

		for {
			select {
			case <-t.stopChan:
				// final flush so counted views survive shutdown
				t.Flush(context.Background())
				return
			case <-ticker.C:
				t.Flush(context.Background())
			}
		}
	}()
}

// Stop signals the flush loop and waits for its final flush to finish.
func (t *Tracker) Stop() {
	close(t.stopChan)
	<-t.doneChan
}

// Flush drains all pending counters into PostgreSQL. Each key is consumed
// with GETDEL so concurrent bumps during the flush land in the next cycle.
func (t *Tracker) Flush(ctx context.Context) {
	if t.rdb == nil {
		return
	}

	flushed := t.flushPrefix(ctx, storyKeyPrefix, t.storyRepo.IncrementViews)
	flushed += t.flushPrefix(ctx, chapterKeyPrefix, t.chapterRepo.IncrementViews)
	if flushed > 0 {
		t.logger.Info("view_counters_flushed", "keys", flushed)
	}
}

func (t *Tracker) flushPrefix(ctx context.Context, prefix string, apply func(ctx context.Context, id, by int64) error) int {
	var cursor uint64
	flushed := 0

	for {
		keys, next, err := t.rdb.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			t.logger.Error("view_scan_failed", "prefix", prefix, "error", err)
			return flushed
		}

		for _, key := range keys {
			raw, err := t.rdb.GetDel(ctx, key).Result()
			if err != nil {
				if err != redis.Nil {
					t.logger.Error("view_getdel_failed", "key", key, "error", err)
				}
				continue
			}

			id, err := strconv.ParseInt(strings.TrimPrefix(key, prefix), 10, 64)
			if err != nil {
				t.logger.Warn("view_key_malformed", "key", key)
				continue
			}
			count, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || count <= 0 {
				continue
			}

			if err := apply(ctx, id, count); err != nil {
				t.logger.Error("view_flush_write_failed", "key", key, "count", count, "error", err)
				// put the count back so the next cycle retries
				if err := t.rdb.IncrBy(ctx, key, count).Err(); err != nil {
					t.logger.Error("view_requeue_failed", "key", key, "count", count, "error", err)
				}
				continue
			}
			flushed++
		}

		cursor = next
		if cursor == 0 {
			return flushed
		}
	}
}
