package handlers

import (
	"net/http"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	users services.UserService
}

func NewUserHandler(base *BaseHandler, users services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.GetMe)
	rg.PUT("/me", h.UpdateProfile)
}

// RegisterAdminRoutes mounts the user management surface. The group is
// expected to already carry the admin role guard.
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListUsers)
	rg.PUT("/:id/role", h.ChangeRole)
	rg.PUT("/:id/chef", h.SetChef)
	rg.PUT("/:id/status", h.SetStatus)
	rg.DELETE("/:id", h.DeleteUser)
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	resp, err := h.users.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.users.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.users.ListUsers(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.users.ChangeRole(c.Request.Context(), adminID, c.Param("id"), models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) SetChef(c *gin.Context) {
	var req dto.SetChefRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.users.SetChef(c.Request.Context(), c.Param("id"), *req.Chef); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending active suspended"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.users.SetStatus(c.Request.Context(), adminID, c.Param("id"), models.UserStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	adminID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), adminID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
