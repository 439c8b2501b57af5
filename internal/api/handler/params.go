package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// requestContext bounds a handler's DB work so a slow query can't pin the
// connection forever.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

// pageParams parses ?page= and ?limit= with clamping: page >= 1,
// 1 <= limit <= 100, defaults 1/20.
func pageParams(c *gin.Context) (page, limit int) {
	page = 1
	limit = defaultLimit

	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}
	return page, limit
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}

func currentRole(c *gin.Context) string {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return s
}

func isAdmin(c *gin.Context) bool {
	return currentRole(c) == models.RoleAdmin
}
