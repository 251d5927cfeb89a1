package handlers

import (
	"fmt"
	"net/http"

	"chefhire_backend/internal/services"
	"chefhire_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	uploads services.UploadService
}

func NewFileHandler(base *BaseHandler, uploads services.UploadService) *FileHandler {
	return &FileHandler{BaseHandler: base, uploads: uploads}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.UploadResume)
	rg.GET("/resume/:resumeId", h.Download)
}

// UploadResume accepts a multipart PDF and attaches it to the caller's
// resume.
func (h *FileHandler) UploadResume(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Multipart field 'file' required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.uploads.AttachResumePDF(c.Request.Context(),
		userID, c.PostForm("resume_id"), fileHeader.Filename, contentType, fileHeader.Size, f)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Download streams the stored file to the caller.
func (h *FileHandler) Download(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	rc, upload, err := h.uploads.Download(c.Request.Context(), h.CurrentRole(c), userID, c.Param("resumeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", upload.OriginalName))
	c.DataFromReader(http.StatusOK, upload.Size, upload.MimeType, rc, nil)
}
