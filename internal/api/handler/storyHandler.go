package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/middleware"
	"hungyeu/internal/api/models"
	"hungyeu/internal/api/repository"
	"hungyeu/internal/api/service"
	"hungyeu/internal/viewtracker"
)

type StoryHandler struct {
	storySvc   service.StoryService
	chapterSvc service.ChapterService
	commentSvc service.CommentService
	authSvc    service.AuthService
	tracker    *viewtracker.Tracker
}

func NewStoryHandler(
	storySvc service.StoryService,
	chapterSvc service.ChapterService,
	commentSvc service.CommentService,
	authSvc service.AuthService,
	tracker *viewtracker.Tracker,
) *StoryHandler {
	return &StoryHandler{
		storySvc:   storySvc,
		chapterSvc: chapterSvc,
		commentSvc: commentSvc,
		authSvc:    authSvc,
		tracker:    tracker,
	}
}

func (h *StoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// public catalog; detail pages take an optional token so logged-in
	// readers see their own reaction state
	viewer := middleware.OptionalAuth(h.authSvc)
	rg.GET("/", h.List)
	rg.GET("/slug/:slug", viewer, h.GetBySlug)
	rg.GET("/:story_id", viewer, h.Get)
	rg.GET("/:story_id/chapters", h.ListChapters)
	rg.GET("/:story_id/comments", h.ListComments)

	// author routes
	authed := rg.Group("", middleware.AuthMiddleware(h.authSvc))
	authed.GET("/mine", middleware.RequireAuthor(), h.ListMine)
	authed.POST("/", middleware.RequireAuthor(), h.Create)
	authed.PUT("/:story_id", middleware.RequireAuthor(), h.Update)
	authed.DELETE("/:story_id", middleware.RequireAuthor(), h.Delete)
	authed.POST("/:story_id/chapters", middleware.RequireAuthor(), h.CreateChapter)

	// reader interactions
	authed.POST("/:story_id/reactions/:kind", h.React)
	authed.DELETE("/:story_id/reactions/:kind", h.Unreact)
	authed.POST("/:story_id/rating", h.Rate)
	authed.POST("/:story_id/comments", h.CreateComment)
}

// List serves the public catalog: published stories only, filterable and
// sortable.
func (h *StoryHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	f := repository.StoryFilter{
		Search:          c.Query("search"),
		Status:          c.Query("status"),
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
		PublishedOnly:   true,
		RecommendedOnly: c.Query("recommended") == "true",
	}
	for _, raw := range c.QueryArray("category_id") {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.CategoryIDs = append(f.CategoryIDs, id)
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	stories, total, err := h.storySvc.List(ctx, f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(stories, total, page, limit))
}

// ListMine shows the author their own stories, drafts included.
func (h *StoryHandler) ListMine(c *gin.Context) {
	page, limit := pageParams(c)

	f := repository.StoryFilter{
		AuthorID:  currentUserID(c),
		Status:    c.Query("status"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	stories, total, err := h.storySvc.List(ctx, f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(stories, total, page, limit))
}

func (h *StoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	story, err := h.storySvc.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	h.attachViewerState(c, story)
	c.JSON(http.StatusOK, story)
}

// GetBySlug is the public story page; each hit counts a view.
func (h *StoryHandler) GetBySlug(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	story, err := h.storySvc.GetBySlug(ctx, c.Param("slug"), false)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	h.tracker.BumpStory(ctx, story.ID)
	h.attachViewerState(c, story)
	c.JSON(http.StatusOK, story)
}

// attachViewerState adds the logged-in reader's reaction state to a detail
// response. Best effort: an anonymous request or a lookup error leaves the
// field empty.
func (h *StoryHandler) attachViewerState(c *gin.Context, story *dto.StoryResponse) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if state, err := h.storySvc.ViewerState(ctx, story.ID, userID); err == nil {
		story.Viewer = state
	}
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req dto.CreateStoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	story, err := h.storySvc.Create(ctx, currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.UpdateStoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	story, err := h.storySvc.Update(ctx, id, currentUserID(c), isAdmin(c), req)
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.storySvc.Delete(ctx, id, currentUserID(c), isAdmin(c)); err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "story deleted"})
}

func (h *StoryHandler) ListChapters(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	chapters, total, err := h.chapterSvc.ListByStory(ctx, id, true, page, limit)
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(chapters, total, page, limit))
}

func (h *StoryHandler) CreateChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.CreateChapterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	chapter, err := h.chapterSvc.Create(ctx, id, currentUserID(c), isAdmin(c), req)
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

func (h *StoryHandler) React(c *gin.Context) {
	h.react(c, true)
}

func (h *StoryHandler) Unreact(c *gin.Context) {
	h.react(c, false)
}

func (h *StoryHandler) react(c *gin.Context, add bool) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	kind := c.Param("kind")
	if kind != models.ReactionLike && kind != models.ReactionFollow {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reaction kind"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var err error
	if add {
		err = h.storySvc.React(ctx, currentUserID(c), id, kind)
	} else {
		err = h.storySvc.Unreact(ctx, currentUserID(c), id, kind)
	}
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (h *StoryHandler) Rate(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.RateStoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	err := h.storySvc.Rate(ctx, currentUserID(c), id, req.Score)
	if errors.Is(err, service.ErrInvalidScore) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		writeStoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rating saved"})
}

func (h *StoryHandler) ListComments(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	page, limit := pageParams(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, total, err := h.commentSvc.ListByStory(ctx, id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewEnvelope(comments, total, page, limit))
}

func (h *StoryHandler) CreateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "story_id")
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

	comment, err := h.commentSvc.CreateOnStory(ctx, currentUserID(c), id, req)
	if err != nil {
		writeCommentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func writeStoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoryNotFound), errors.Is(err, service.ErrChapterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotStoryOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
