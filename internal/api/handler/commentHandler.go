package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/middleware"
	"hungyeu/internal/api/service"
)

type CommentHandler struct {
	commentSvc service.CommentService
	authSvc    service.AuthService
}

func NewCommentHandler(commentSvc service.CommentService, authSvc service.AuthService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc, authSvc: authSvc}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:comment_id/replies", h.ListReplies)
	rg.DELETE("/:comment_id", middleware.AuthMiddleware(h.authSvc), h.Delete)
}

func (h *CommentHandler) ListReplies(c *gin.Context) {
	id, ok := parseIDParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	replies, total, err := h.commentSvc.ListReplies(ctx, id, page, limit)
	if err != nil {
		writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(replies, total, page, limit))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.commentSvc.Delete(ctx, id, currentUserID(c), isAdmin(c)); err != nil {
		writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

func writeCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrStoryNotFound),
		errors.Is(err, service.ErrChapterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotCommentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadCommentParent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
