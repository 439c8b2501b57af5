package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/api/service"
)

// AdminHandler groups moderation, user management, batch actions and xlsx
// exports. All routes require the admin role; the caller mounts the group
// with the middleware already applied.
type AdminHandler struct {
	storySvc   service.StoryService
	commentSvc service.CommentService
	userSvc    service.UserService
	batchSvc   service.BatchService
	exportSvc  service.ExportService
}

func NewAdminHandler(
	storySvc service.StoryService,
	commentSvc service.CommentService,
	userSvc service.UserService,
	batchSvc service.BatchService,
	exportSvc service.ExportService,
) *AdminHandler {
	return &AdminHandler{
		storySvc:   storySvc,
		commentSvc: commentSvc,
		userSvc:    userSvc,
		batchSvc:   batchSvc,
		exportSvc:  exportSvc,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// story moderation
	rg.GET("/stories", h.ListStories)
	rg.POST("/stories/:story_id/approve", h.ApproveStory)
	rg.POST("/stories/:story_id/reject", h.RejectStory)
	rg.PUT("/stories/:story_id/recommend", h.RecommendStory)

	// comment moderation
	rg.GET("/comments", h.ListComments)
	rg.POST("/comments/:comment_id/restore", h.RestoreComment)

	// user management
	rg.GET("/users", h.ListUsers)
	rg.PUT("/users/:user_id/role", h.ChangeRole)
	rg.PUT("/users/:user_id/active", h.SetActive)

	// batch actions, one action over many ids, per-item results
	rg.POST("/batch/stories", h.BatchStories)
	rg.POST("/batch/chapters", h.BatchChapters)
	rg.POST("/batch/comments", h.BatchComments)
	rg.POST("/batch/users", h.BatchUsers)

	// xlsx exports of the filtered admin views
	rg.GET("/export/stories", h.ExportStories)
	rg.GET("/export/users", h.ExportUsers)
	rg.GET("/export/comments", h.ExportComments)
}

// ListStories is the moderation queue: unfiltered by publication state so
// drafts awaiting approval show up.
func (h *AdminHandler) ListStories(c *gin.Context) {
	page, limit := pageParams(c)
	f := adminStoryFilter(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	stories, total, err := h.storySvc.List(ctx, f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(stories, total, page, limit))
}

func adminStoryFilter(c *gin.Context) repository.StoryFilter {
	return repository.StoryFilter{
		Search:          c.Query("search"),
		Status:          c.Query("status"),
		AuthorID:        c.Query("author_id"),
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
		RecommendedOnly: c.Query("recommended") == "true",
	}
}

func (h *AdminHandler) ApproveStory(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.storySvc.Approve(ctx, id); err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "story approved"})
}

func (h *AdminHandler) RejectStory(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.RejectStoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.storySvc.Reject(ctx, id, req.Reason); err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "story rejected"})
}

func (h *AdminHandler) RecommendStory(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	recommended := c.Query("value") != "false"

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.storySvc.SetRecommended(ctx, id, recommended); err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *AdminHandler) ListComments(c *gin.Context) {
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, total, err := h.commentSvc.ListRecent(ctx, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(comments, total, page, limit))
}

func (h *AdminHandler) RestoreComment(c *gin.Context) {
	id, ok := parseIDParam(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.commentSvc.Restore(ctx, id); err != nil {
		writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment restored"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	f := adminUserFilter(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.userSvc.List(ctx, f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(users, total, page, limit))
}

func adminUserFilter(c *gin.Context) repository.UserFilter {
	f := repository.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		f.IsActive = &active
	}
	return f
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.userSvc.SetRole(ctx, c.Param("user_id"), req.Role)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func (h *AdminHandler) SetActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.userSvc.SetActive(ctx, c.Param("user_id"), *req.IsActive)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *AdminHandler) BatchStories(c *gin.Context) {
	h.batch(c, func(ctx *gin.Context, req dto.BatchRequest) ([]dto.BatchItemResult, error) {
		reqCtx, cancel := requestContext(ctx)
		defer cancel()
		return h.batchSvc.RunStories(reqCtx, currentUserID(ctx), req.Action, req.IDs)
	})
}

func (h *AdminHandler) BatchChapters(c *gin.Context) {
	h.batch(c, func(ctx *gin.Context, req dto.BatchRequest) ([]dto.BatchItemResult, error) {
		reqCtx, cancel := requestContext(ctx)
		defer cancel()
		return h.batchSvc.RunChapters(reqCtx, currentUserID(ctx), req.Action, req.IDs)
	})
}

func (h *AdminHandler) BatchComments(c *gin.Context) {
	h.batch(c, func(ctx *gin.Context, req dto.BatchRequest) ([]dto.BatchItemResult, error) {
		reqCtx, cancel := requestContext(ctx)
		defer cancel()
		return h.batchSvc.RunComments(reqCtx, currentUserID(ctx), req.Action, req.IDs)
	})
}

func (h *AdminHandler) BatchUsers(c *gin.Context) {
	h.batch(c, func(ctx *gin.Context, req dto.BatchRequest) ([]dto.BatchItemResult, error) {
		reqCtx, cancel := requestContext(ctx)
		defer cancel()
		return h.batchSvc.RunUsers(reqCtx, req.Action, req.IDs)
	})
}

func (h *AdminHandler) batch(c *gin.Context, run func(*gin.Context, dto.BatchRequest) ([]dto.BatchItemResult, error)) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := run(c, req)
	if errors.Is(err, service.ErrUnknownBatchAction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewBatchResponse(req.Action, results))
}

func (h *AdminHandler) ExportStories(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	f, err := h.exportSvc.ExportStories(ctx, adminStoryFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeXLSX(c, f, "stories")
}

func (h *AdminHandler) ExportUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	f, err := h.exportSvc.ExportUsers(ctx, adminUserFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeXLSX(c, f, "users")
}

func (h *AdminHandler) ExportComments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	f, err := h.exportSvc.ExportComments(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	writeXLSX(c, f, "comments")
}

// writeXLSX streams a workbook as an attachment and closes it.
func writeXLSX(c *gin.Context, f *excelize.File, name string) {
	defer f.Close()

	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		// headers are already out; attach for gin's error log
		_ = c.Error(err)
	}
}
