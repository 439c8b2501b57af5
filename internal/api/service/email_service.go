package service

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"

	"hungyeu/internal/config"
)

// EmailService formats and delivers user-facing notifications. Delivery is
// best-effort by design: a bounced notification must never roll back or fail
// the business action that triggered it, so none of these methods return an
// error. Failures are logged with kind and recipient.
type EmailService interface {
	SendVerificationEmail(to, displayName, token string)
	SendWelcomeEmail(to, displayName string)
	SendStoryApprovedEmail(to, displayName, storyTitle string)
	SendStoryRejectedEmail(to, displayName, storyTitle, reason string)
	SendNewChapterEmail(to, storyTitle, chapterTitle string)
	SendSystemNotice(to, subject, body string)
}

var urlPattern = regexp.MustCompile(`https?://[^\s"<>]+`)

type emailService struct {
	cfg    *config.Config
	logger *slog.Logger
	send   func(m *gomail.Message) error
}

func NewEmailService(cfg *config.Config, logger *slog.Logger) EmailService {
	s := &emailService{cfg: cfg, logger: logger}

	dialer := gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	// shared hosting SMTP endpoints frequently present self-signed certs
	dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	s.send = func(m *gomail.Message) error { return dialer.DialAndSend(m) }

	return s
}

// fromAddress returns the From header to use. Gmail rejects mail whose From
// differs from the authenticated account, so for Gmail hosts the configured
// From is overridden with the SMTP user.
func (s *emailService) fromAddress() string {
	if strings.Contains(s.cfg.EmailHost, "gmail.com") && s.cfg.EmailUser != "" {
		return s.cfg.EmailUser
	}
	return s.cfg.EmailFrom
}

// deliver sends one message, or logs it to the console when SMTP is not
// configured. Transport errors are logged and swallowed.
func (s *emailService) deliver(kind, to, subject, html, text string) {
	if !s.cfg.EmailConfigured() {
		// console fallback keeps registration and moderation flows working
		// in environments without mail credentials
		attrs := []any{"kind", kind, "to", to, "subject", subject, "body", text}
		if url := urlPattern.FindString(html); url != "" {
			attrs = append(attrs, "url", url)
		}
		s.logger.Info("email transport not configured, logging message", attrs...)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromAddress())
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.send(m); err != nil {
		s.logger.Error("email delivery failed", "kind", kind, "to", to, "error", err)
	}
}

func (s *emailService) verificationURL(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(s.cfg.FrontendURL, "/"), token)
}

func (s *emailService) SendVerificationEmail(to, displayName, token string) {
	url := s.verificationURL(token)
	subject := "Xác thực tài khoản HÙNG YÊU"
	html := fmt.Sprintf(`
		<h2>Chào %s,</h2>
		<p>Cảm ơn bạn đã đăng ký tài khoản tại HÙNG YÊU.</p>
		<p>Vui lòng nhấn vào liên kết dưới đây để xác thực email của bạn:</p>
		<p><a href="%s">Xác thực email</a></p>
		<p>Liên kết có hiệu lực trong 24 giờ.</p>`, displayName, url)
	text := fmt.Sprintf("Chào %s,\n\nVui lòng xác thực email của bạn: %s\n\nLiên kết có hiệu lực trong 24 giờ.", displayName, url)

	s.deliver("verification", to, subject, html, text)
}

func (s *emailService) SendWelcomeEmail(to, displayName string) {
	subject := "Chào mừng bạn đến với HÙNG YÊU"
	html := fmt.Sprintf(`
		<h2>Chào %s,</h2>
		<p>Tài khoản của bạn đã được xác thực thành công.</p>
		<p>Chúc bạn đọc truyện vui vẻ tại <a href="%s">HÙNG YÊU</a>!</p>`, displayName, s.cfg.FrontendURL)
	text := fmt.Sprintf("Chào %s,\n\nTài khoản của bạn đã được xác thực thành công. Chúc bạn đọc truyện vui vẻ!", displayName)

	s.deliver("welcome", to, subject, html, text)
}

func (s *emailService) SendStoryApprovedEmail(to, displayName, storyTitle string) {
	subject := fmt.Sprintf("Truyện \"%s\" đã được duyệt", storyTitle)
	html := fmt.Sprintf(`
		<h2>Chào %s,</h2>
		<p>Truyện <strong>%s</strong> của bạn đã được duyệt và xuất bản.</p>
		<p>Độc giả đã có thể đọc truyện của bạn.</p>`, displayName, storyTitle)
	text := fmt.Sprintf("Chào %s,\n\nTruyện \"%s\" của bạn đã được duyệt và xuất bản.", displayName, storyTitle)

	s.deliver("story-approved", to, subject, html, text)
}

func (s *emailService) SendStoryRejectedEmail(to, displayName, storyTitle, reason string) {
	subject := fmt.Sprintf("Truyện \"%s\" chưa được duyệt", storyTitle)
	html := fmt.Sprintf(`
		<h2>Chào %s,</h2>
		<p>Truyện <strong>%s</strong> của bạn chưa được duyệt.</p>
		<p>Lý do: %s</p>
		<p>Bạn có thể chỉnh sửa và gửi lại truyện.</p>`, displayName, storyTitle, reason)
	text := fmt.Sprintf("Chào %s,\n\nTruyện \"%s\" của bạn chưa được duyệt.\nLý do: %s", displayName, storyTitle, reason)

	s.deliver("story-rejected", to, subject, html, text)
}

func (s *emailService) SendNewChapterEmail(to, storyTitle, chapterTitle string) {
	subject := fmt.Sprintf("Chương mới của \"%s\"", storyTitle)
	html := fmt.Sprintf(`
		<p>Truyện <strong>%s</strong> bạn đang theo dõi vừa có chương mới: <strong>%s</strong>.</p>
		<p><a href="%s">Đọc ngay</a></p>`, storyTitle, chapterTitle, s.cfg.FrontendURL)
	text := fmt.Sprintf("Truyện \"%s\" bạn đang theo dõi vừa có chương mới: %s", storyTitle, chapterTitle)

	s.deliver("new-chapter", to, subject, html, text)
}

func (s *emailService) SendSystemNotice(to, subject, body string) {
	html := fmt.Sprintf("<p>%s</p>", body)
	s.deliver("system-notice", to, subject, html, body)
}
