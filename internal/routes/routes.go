package routes

import (
	"net/http"

	"chefhire_backend/internal/handlers"
	"chefhire_backend/internal/middleware"
	"chefhire_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full API surface under /api/v1.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public surface
	h.Auth.RegisterRoutes(v1.Group("/auth"))
	h.Subscription.RegisterPublicRoutes(v1)
	h.Announcement.RegisterRoutes(v1.Group("/announcements"))

	// Authenticated surface
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		h.User.RegisterRoutes(authed.Group("/users"))
		h.Resume.RegisterRoutes(authed.Group("/resumes"))
		h.Search.RegisterRoutes(authed.Group("/resumes/search"))
		h.Subscription.RegisterRoutes(authed.Group("/payments"))
		h.Subscription.RegisterUserRoutes(authed.Group("/users/me"))
		h.File.RegisterRoutes(authed.Group("/files"))
	}

	// Admin surface
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		h.User.RegisterAdminRoutes(admin.Group("/users"))
		h.Resume.RegisterAdminRoutes(admin.Group("/resumes"))
		h.Announcement.RegisterAdminRoutes(admin.Group("/announcements"))
	}
}
