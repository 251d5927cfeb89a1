package handlers

import (
	"errors"
	"strconv"

	"chefhire_backend/internal/middleware"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/validator"
	"chefhire_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the helpers shared by every handler.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into req and runs validation.
// On failure the error response is already written; callers just return.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	return h.validate(c, req)
}

// BindAndValidateQuery binds query parameters into req and runs validation.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	return h.validate(c, req)
}

func (h *BaseHandler) validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			apperrors.HandleError(c, apperrors.ValidationError(ve.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError writes a service-layer error response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// CurrentUserID returns the authenticated user id, writing a 401 when the
// request somehow reached a protected handler without one.
func (h *BaseHandler) CurrentUserID(c *gin.Context) (string, bool) {
	id := middleware.GetUserID(c)
	if id == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return id, true
}

// CurrentRole returns the authenticated caller's role.
func (h *BaseHandler) CurrentRole(c *gin.Context) models.UserRole {
	return middleware.GetUserRole(c)
}

// QueryInt parses an integer query parameter with a fallback.
func (h *BaseHandler) QueryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
