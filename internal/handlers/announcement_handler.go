package handlers

import (
	"net/http"

	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcements services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcements services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{BaseHandler: base, announcements: announcements}
}

func (h *AnnouncementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/active", h.GetActive)
}

func (h *AnnouncementHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// GetActive returns the active announcement, or 204 when none is live.
func (h *AnnouncementHandler) GetActive(c *gin.Context) {
	resp, err := h.announcements.GetActive(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if resp == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	page := h.QueryInt(c, "page", 1)
	pageSize := h.QueryInt(c, "page_size", 20)

	items, pagination, err := h.announcements.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "pagination": pagination})
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.announcements.Create(c.Request.Context(), adminID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.UpdateAnnouncementRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.announcements.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
