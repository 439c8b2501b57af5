package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
)

// exportLimit caps a single export so an unbounded admin filter cannot pull
// the whole table into memory.
const exportLimit = 10000

// ExportService builds xlsx workbooks for the admin list views. The caller
// owns the returned file and must Close it after writing.
type ExportService interface {
	ExportStories(ctx context.Context, f repository.StoryFilter) (*excelize.File, error)
	ExportUsers(ctx context.Context, f repository.UserFilter) (*excelize.File, error)
	ExportComments(ctx context.Context) (*excelize.File, error)
}

type exportService struct {
	storyRepo   repository.StoryRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
}

func NewExportService(
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
) ExportService {
	return &exportService{
		storyRepo:   storyRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
	}
}

// newSheet creates a workbook with a single named sheet and writes the header
// row in bold.
func newSheet(name string, header []string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, err
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &cells); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", last, style); err != nil {
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func (s *exportService) ExportStories(ctx context.Context, filter repository.StoryFilter) (*excelize.File, error) {
	stories, _, err := s.storyRepo.List(ctx, filter, 1, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("export stories: %w", err)
	}

	const sheet = "Stories"
	f, err := newSheet(sheet, []string{
		"ID", "Title", "Slug", "Author", "Status", "Published", "Recommended",
		"Views", "Likes", "Follows", "Rating", "Ratings", "Created",
	})
	if err != nil {
		return nil, err
	}

	for i := range stories {
		st := &stories[i]
		err := writeRow(f, sheet, i+2, []interface{}{
			st.ID, st.Title, st.Slug, st.AuthorName, st.Status,
			st.IsPublished, st.IsRecommended,
			st.ViewCount, st.LikeCount, st.FollowCount,
			st.Rating, st.RatingCount, formatTime(st.CreatedAt),
		})
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (s *exportService) ExportUsers(ctx context.Context, filter repository.UserFilter) (*excelize.File, error) {
	users, _, err := s.userRepo.List(ctx, filter, 1, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	const sheet = "Users"
	f, err := newSheet(sheet, []string{
		"ID", "Username", "Email", "Display Name", "Role", "Active",
		"Verified", "Created", "Last Login",
	})
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		lastLogin := ""
		if u.LastLogin != nil {
			lastLogin = formatTime(*u.LastLogin)
		}
		err := writeRow(f, sheet, i+2, []interface{}{
			u.ID, u.Username, u.Email, u.DisplayName, u.Role,
			u.IsActive, u.EmailVerified, formatTime(u.CreatedAt), lastLogin,
		})
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (s *exportService) ExportComments(ctx context.Context) (*excelize.File, error) {
	comments, _, err := s.commentRepo.ListRecent(ctx, 1, exportLimit)
	if err != nil {
		return nil, fmt.Errorf("export comments: %w", err)
	}

	const sheet = "Comments"
	f, err := newSheet(sheet, []string{
		"ID", "User", "Target", "Content", "Replies", "Deleted", "Created",
	})
	if err != nil {
		return nil, err
	}

	for i := range comments {
		c := &comments[i]
		err := writeRow(f, sheet, i+2, []interface{}{
			c.ID, c.User.Username, commentTargetLabel(c), c.Content,
			c.ReplyCount, c.IsDeleted, formatTime(c.CreatedAt),
		})
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func commentTargetLabel(c *models.Comment) string {
	switch {
	case c.StoryID != nil:
		return "story:" + strconv.FormatInt(*c.StoryID, 10)
	case c.ChapterID != nil:
		return "chapter:" + strconv.FormatInt(*c.ChapterID, 10)
	}
	return ""
}
