// Command seed fills an empty database with demo content: accounts, catalog
// categories, a few stories with chapters and the static pages. Safe to run
// repeatedly, every statement is an upsert.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"hungyeu/internal/auth"
	"hungyeu/internal/config"
	"hungyeu/internal/slug"
)

type account struct {
	username    string
	email       string
	password    string
	displayName string
	role        string
}

var accounts = []account{
	{"admin", "admin@hungyeu.vn", "admin123!", "Quản trị viên", "ADMIN"},
	{"author", "author@hungyeu.vn", "author123!", "Tác giả Demo", "AUTHOR"},
	{"user1", "user1@hungyeu.vn", "user123!", "Độc giả Một", "USER"},
	{"user2", "user2@hungyeu.vn", "user123!", "Độc giả Hai", "USER"},
	{"user3", "user3@hungyeu.vn", "user123!", "Độc giả Ba", "USER"},
}

var categories = []struct {
	name        string
	description string
}{
	{"Ngôn tình", "Truyện tình cảm lãng mạn"},
	{"Tiên hiệp", "Tu tiên, luyện đan, phi thăng"},
	{"Kiếm hiệp", "Giang hồ, võ công, ân oán"},
	{"Đô thị", "Cuộc sống hiện đại"},
	{"Huyền huyễn", "Thế giới kỳ ảo"},
	{"Trinh thám", "Phá án, suy luận"},
	{"Lịch sử", "Dã sử và chính sử"},
	{"Khoa huyễn", "Khoa học viễn tưởng"},
}

var stories = []struct {
	title       string
	description string
	categories  []string
}{
	{"Vạn Cổ Chí Tôn", "Thiếu niên mang huyết mạch thượng cổ bước lên con đường nghịch thiên.", []string{"Tiên hiệp", "Huyền huyễn"}},
	{"Em Là Ánh Sáng Của Anh", "Chuyện tình của cô nhân viên văn phòng và vị tổng tài lạnh lùng.", []string{"Ngôn tình", "Đô thị"}},
	{"Kiếm Khách Vô Danh", "Một kiếm khách không tên trả thù cho sư môn.", []string{"Kiếm hiệp", "Lịch sử"}},
}

var pages = []struct {
	title   string
	content string
}{
	{"Giới thiệu", "HÙNG YÊU là nền tảng đọc truyện trực tuyến."},
	{"Điều khoản sử dụng", "Người dùng đồng ý tuân thủ các điều khoản khi sử dụng dịch vụ."},
	{"Chính sách bảo mật", "Chúng tôi tôn trọng quyền riêng tư của bạn."},
	{"Quy định đăng truyện", "Nội dung đăng tải phải tuân thủ pháp luật hiện hành."},
	{"Hướng dẫn tác giả", "Cách đăng truyện và quản lý chương."},
	{"Câu hỏi thường gặp", "Giải đáp các thắc mắc phổ biến."},
	{"Liên hệ", "Email hỗ trợ: support@hungyeu.vn."},
	{"Tuyển dụng", "Gia nhập đội ngũ HÙNG YÊU."},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("could not open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("could not reach database", "error", err)
		os.Exit(1)
	}

	tx, err := db.Begin()
	if err != nil {
		logger.Error("could not begin transaction", "error", err)
		os.Exit(1)
	}
	defer tx.Rollback()

	if err := seed(tx, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("commit failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete")
}

func seed(tx *sql.Tx, logger *slog.Logger) error {
	if err := seedAccounts(tx, logger); err != nil {
		return err
	}
	if err := seedCategories(tx, logger); err != nil {
		return err
	}
	if err := seedStories(tx, logger); err != nil {
		return err
	}
	return seedPages(tx, logger)
}

func seedAccounts(tx *sql.Tx, logger *slog.Logger) error {
	for _, a := range accounts {
		hashed, err := auth.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.username, err)
		}

		_, err = tx.Exec(`
			INSERT INTO users (id, username, email, password_hash, display_name, role, is_active, email_verified, provider, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, true, 'local', now(), now())
			ON CONFLICT (username) DO UPDATE
			SET email = EXCLUDED.email, display_name = EXCLUDED.display_name, role = EXCLUDED.role, updated_at = now()`,
			uuid.New().String(), a.username, a.email, hashed, a.displayName, a.role)
		if err != nil {
			return fmt.Errorf("upsert user %s: %w", a.username, err)
		}
		// passwords are demo-only, logging them is the point
		logger.Info("account ready", "username", a.username, "password", a.password, "role", a.role)
	}
	return nil
}

func seedCategories(tx *sql.Tx, logger *slog.Logger) error {
	for _, c := range categories {
		_, err := tx.Exec(`
			INSERT INTO categories (name, slug, description, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
			ON CONFLICT (name) DO UPDATE
			SET description = EXCLUDED.description, updated_at = now()`,
			c.name, slug.Make(c.name), c.description)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.name, err)
		}
	}
	logger.Info("categories ready", "count", len(categories))
	return nil
}

func seedStories(tx *sql.Tx, logger *slog.Logger) error {
	var authorID, authorName string
	err := tx.QueryRow(`SELECT id, display_name FROM users WHERE username = 'author'`).
		Scan(&authorID, &authorName)
	if err != nil {
		return fmt.Errorf("find demo author: %w", err)
	}

	for _, s := range stories {
		storySlug := slug.Make(s.title)

		var storyID int64
		err := tx.QueryRow(`
			INSERT INTO stories (slug, title, description, author_id, author_name, status, is_published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'PUBLISHED', true, now(), now())
			ON CONFLICT (slug) DO UPDATE
			SET title = EXCLUDED.title, description = EXCLUDED.description, updated_at = now()
			RETURNING id`,
			storySlug, s.title, s.description, authorID, authorName).Scan(&storyID)
		if err != nil {
			return fmt.Errorf("upsert story %s: %w", s.title, err)
		}

		for _, name := range s.categories {
			_, err := tx.Exec(`
				INSERT INTO story_categories (story_id, category_id)
				SELECT $1, id FROM categories WHERE name = $2
				ON CONFLICT DO NOTHING`, storyID, name)
			if err != nil {
				return fmt.Errorf("link story %s to category %s: %w", s.title, name, err)
			}
		}

		if err := seedChapters(tx, storyID, storySlug, authorID); err != nil {
			return err
		}
		logger.Info("story ready", "title", s.title, "slug", storySlug)
	}
	return nil
}

func seedChapters(tx *sql.Tx, storyID int64, storySlug, uploaderID string) error {
	for i := 1; i <= 5; i++ {
		title := fmt.Sprintf("Chương %d", i)
		content := strings.Repeat(fmt.Sprintf("Nội dung chương %d của truyện %s. ", i, storySlug), 40)
		wordCount := len(strings.Fields(content))
		readingTime := (wordCount + 199) / 200

		_, err := tx.Exec(`
			INSERT INTO chapters (story_id, slug, title, content, "order", uploader_id, word_count, reading_time, is_published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, now(), now())
			ON CONFLICT (story_id, slug) DO UPDATE
			SET content = EXCLUDED.content, word_count = EXCLUDED.word_count, reading_time = EXCLUDED.reading_time, updated_at = now()`,
			storyID, slug.Make(title), title, content, i, uploaderID, wordCount, readingTime)
		if err != nil {
			return fmt.Errorf("upsert chapter %d of story %d: %w", i, storyID, err)
		}
	}
	return nil
}

func seedPages(tx *sql.Tx, logger *slog.Logger) error {
	for _, p := range pages {
		_, err := tx.Exec(`
			INSERT INTO pages (slug, title, content, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, true, now(), now())
			ON CONFLICT (slug) DO UPDATE
			SET title = EXCLUDED.title, content = EXCLUDED.content, updated_at = now()`,
			slug.Make(p.title), p.title, p.content)
		if err != nil {
			return fmt.Errorf("upsert page %s: %w", p.title, err)
		}
	}
	logger.Info("pages ready", "count", len(pages))
	return nil
}
