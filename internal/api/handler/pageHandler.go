package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/service"
)

type PageHandler struct {
	pageSvc service.PageService
}

func NewPageHandler(pageSvc service.PageService) *PageHandler {
	return &PageHandler{pageSvc: pageSvc}
}

func (h *PageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ListActive)
	rg.GET("/:slug", h.GetBySlug)
}

// RegisterAdminRoutes mounts page management; the group must already require
// the admin role.
func (h *PageHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.ListAll)
	rg.POST("/", h.Create)
	rg.PUT("/:page_id", h.Update)
	rg.DELETE("/:page_id", h.Delete)
}

func (h *PageHandler) ListActive(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	pages, err := h.pageSvc.ListActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pages})
}

func (h *PageHandler) ListAll(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	pages, err := h.pageSvc.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pages})
}

func (h *PageHandler) GetBySlug(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.pageSvc.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Create(c *gin.Context) {
	var req dto.CreatePageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.pageSvc.Create(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, page)
}

func (h *PageHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "page_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.UpdatePageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	page, err := h.pageSvc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "page_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.pageSvc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}
