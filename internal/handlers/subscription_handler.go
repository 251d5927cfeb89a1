package handlers

import (
	"net/http"

	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	*BaseHandler
	subs services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subs services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base, subs: subs}
}

// RegisterPublicRoutes mounts the unauthenticated payment surface: the plan
// catalog and the gateway's server-to-server callback.
func (h *SubscriptionHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/plans", h.ListPlans)
	rg.POST("/payments/callback", h.Callback)
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.CreateOrder)
	rg.GET("/orders/:id/status", h.OrderStatus)
}

// RegisterUserRoutes mounts the subscription view under the current user.
func (h *SubscriptionHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscription", h.MySubscription)
}

func (h *SubscriptionHandler) ListPlans(c *gin.Context) {
	plans, err := h.subs.ListPlans(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (h *SubscriptionHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.subs.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Callback accepts the gateway's form-encoded result notification. The body
// is signed, so no auth middleware runs here.
func (h *SubscriptionHandler) Callback(c *gin.Context) {
	var req dto.PaymentCallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid callback payload"))
		return
	}

	if err := h.subs.HandleCallback(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Gateways expect a plain-text acknowledgement.
	c.String(http.StatusOK, "OK%s", req.InvID)
}

// MySubscription returns the caller's running subscription, 204 when none.
func (h *SubscriptionHandler) MySubscription(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	resp, err := h.subs.GetMySubscription(c.Request.Context(), userID)
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

func (h *SubscriptionHandler) OrderStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	resp, err := h.subs.GetOrderStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
