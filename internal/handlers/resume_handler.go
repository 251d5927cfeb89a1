package handlers

import (
	"fmt"
	"net/http"
	"time"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	*BaseHandler
	resumes services.ResumeService
	export  services.ExportService
}

func NewResumeHandler(base *BaseHandler, resumes services.ResumeService, export services.ExportService) *ResumeHandler {
	return &ResumeHandler{BaseHandler: base, resumes: resumes, export: export}
}

func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/me", h.GetOwn)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func (h *ResumeHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PUT("/:id/verify", h.SetVerified)
	rg.GET("/export", h.Export)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.resumes.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ResumeHandler) GetOwn(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	resp, err := h.resumes.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) GetByID(c *gin.Context) {
	resp, err := h.resumes.GetByID(c.Request.Context(), h.CurrentRole(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateResumeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.resumes.Update(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	isAdmin := h.CurrentRole(c) == models.UserRoleAdmin
	if err := h.resumes.Delete(c.Request.Context(), userID, isAdmin, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResumeHandler) SetVerified(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified" validate:"required"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.resumes.SetVerified(c.Request.Context(), c.Param("id"), *req.Verified); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export streams the full resume table as an XLSX attachment.
func (h *ResumeHandler) Export(c *gin.Context) {
	buf, err := h.export.ResumesXLSX(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("resumes-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
