package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/middleware"
	"hungyeu/internal/api/service"
	"hungyeu/internal/viewtracker"
)

type ChapterHandler struct {
	chapterSvc service.ChapterService
	commentSvc service.CommentService
	authSvc    service.AuthService
	tracker    *viewtracker.Tracker
}

func NewChapterHandler(
	chapterSvc service.ChapterService,
	commentSvc service.CommentService,
	authSvc service.AuthService,
	tracker *viewtracker.Tracker,
) *ChapterHandler {
	return &ChapterHandler{
		chapterSvc: chapterSvc,
		commentSvc: commentSvc,
		authSvc:    authSvc,
		tracker:    tracker,
	}
}

func (h *ChapterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:chapter_id/comments", h.ListComments)

	authed := rg.Group("", middleware.AuthMiddleware(h.authSvc))
	authed.PUT("/:chapter_id", middleware.RequireAuthor(), h.Update)
	authed.DELETE("/:chapter_id", middleware.RequireAuthor(), h.Delete)
	authed.POST("/:chapter_id/publish", middleware.RequireAuthor(), h.Publish)
	authed.POST("/:chapter_id/unpublish", middleware.RequireAuthor(), h.Unpublish)
	authed.POST("/:chapter_id/comments", h.CreateComment)
}

// RegisterReadRoutes mounts the public reading page resolver:
// GET /read/:story_slug/:chapter_slug
func (h *ChapterHandler) RegisterReadRoutes(rg *gin.RouterGroup) {
	rg.GET("/:story_slug/:chapter_slug", h.Read)
}

// Read serves the chapter body with previous/next navigation; each hit
// counts a view.
func (h *ChapterHandler) Read(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	chapter, err := h.chapterSvc.Read(ctx, c.Param("story_slug"), c.Param("chapter_slug"))
	if err != nil {
		writeStoryError(c, err)
		return
	}

	h.tracker.BumpChapter(ctx, chapter.ID)
	c.JSON(http.StatusOK, chapter)
}

func (h *ChapterHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "chapter_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.UpdateChapterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	chapter, err := h.chapterSvc.Update(ctx, id, currentUserID(c), isAdmin(c), req)
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

func (h *ChapterHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "chapter_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.chapterSvc.Delete(ctx, id, currentUserID(c), isAdmin(c)); err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "chapter deleted"})
}

func (h *ChapterHandler) Publish(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *ChapterHandler) Unpublish(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *ChapterHandler) setPublished(c *gin.Context, published bool) {
	id, ok := parseIDParam(c, "chapter_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var err error
	if published {
		err = h.chapterSvc.Publish(ctx, id, currentUserID(c), isAdmin(c))
	} else {
		err = h.chapterSvc.Unpublish(ctx, id, currentUserID(c), isAdmin(c))
	}
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *ChapterHandler) ListComments(c *gin.Context) {
	id, ok := parseIDParam(c, "chapter_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, total, err := h.commentSvc.ListByChapter(ctx, id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(comments, total, page, limit))
}

func (h *ChapterHandler) CreateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "chapter_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.commentSvc.CreateOnChapter(ctx, currentUserID(c), id, req)
	if err != nil {
		writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
