package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hungyeu/internal/api/dto"
	"hungyeu/internal/api/service"
)

type AdHandler struct {
	adSvc service.AdService
}

func NewAdHandler(adSvc service.AdService) *AdHandler {
	return &AdHandler{adSvc: adSvc}
}

func (h *AdHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Deliver)
}

// RegisterAdminRoutes mounts ad management; the group must already require
// the admin role.
func (h *AdHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.POST("/", h.Create)
	rg.PUT("/:ad_id", h.Update)
	rg.DELETE("/:ad_id", h.Delete)
}

// Deliver returns the active ads for a placement, e.g.
// GET /ads?type=BANNER&position=reading-top
func (h *AdHandler) Deliver(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ads, err := h.adSvc.Deliver(ctx, c.Query("type"), c.Query("position"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ads})
}

func (h *AdHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ads, err := h.adSvc.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ads})
}

func (h *AdHandler) Create(c *gin.Context) {
	var req dto.CreateAdDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ad, err := h.adSvc.Create(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ad)
}

func (h *AdHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "ad_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req dto.UpdateAdDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ad, err := h.adSvc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ad)
}

func (h *AdHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "ad_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.adSvc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ad deleted"})
}
