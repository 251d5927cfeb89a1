package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chefhire_backend/internal/cache"
	"chefhire_backend/internal/email"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/internal/services/payment"
	"chefhire_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// pendingReconcileAge is how stale a PENDING order must be before the
// background reconciler re-checks it against the gateway.
const pendingReconcileAge = 2 * time.Minute

type SubscriptionService interface {
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	HandleCallback(ctx context.Context, req *dto.PaymentCallbackRequest) error
	GetOrderStatus(ctx context.Context, userID, orderID string) (*dto.OrderStatusResponse, error)
	GetMySubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
	ReconcilePending(ctx context.Context) (int, error)
	ExpireDue(ctx context.Context) (int, error)
}

type subscriptionService struct {
	subs      repositories.SubscriptionRepository
	users     repositories.UserRepository
	gateway   payment.Gateway
	poller    *payment.Poller
	mail      email.Provider
	userCache *cache.UserCache
}

func NewSubscriptionService(
	subs repositories.SubscriptionRepository,
	users repositories.UserRepository,
	gateway payment.Gateway,
	poller *payment.Poller,
	mail email.Provider,
	userCache *cache.UserCache,
) SubscriptionService {
	return &subscriptionService{
		subs:      subs,
		users:     users,
		gateway:   gateway,
		poller:    poller,
		mail:      mail,
		userCache: userCache,
	}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	plans, err := s.subs.FindActivePlans()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, dto.NewPlanResponse(&plans[i]))
	}
	return out, nil
}

// GetMySubscription returns the caller's active subscription, or nil when
// none is running.
func (s *subscriptionService) GetMySubscription(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subs.FindActiveByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSubscriptionResponse(sub), nil
}

// CreateOrder opens a PENDING order and hands back the hosted checkout URL.
func (s *subscriptionService) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	plan, err := s.subs.FindPlanByID(req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !plan.IsActive {
		return nil, apperrors.ErrPlanNotActive
	}

	order := &models.PaymentOrder{
		UserID:   userID,
		PlanID:   plan.ID,
		Amount:   plan.Price,
		Currency: plan.Currency,
		Status:   models.PaymentStatusPending,
		InvID:    uuid.NewString(),
	}
	if err := s.subs.CreateOrder(order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	checkout := s.gateway.CheckoutURL(order.InvID, order.Amount, fmt.Sprintf("%s plan", plan.Name))

	// Follow the order server-side so it settles even when the result
	// callback never arrives. Detached from the request lifetime.
	if s.poller != nil {
		go s.trackOrder(context.WithoutCancel(ctx), order)
	}

	logger.CtxInfo(ctx, "payment order created",
		"order_id", order.ID, "inv_id", order.InvID, "plan", plan.Name, "amount", order.Amount)

	return &dto.CreateOrderResponse{
		OrderID:     order.ID,
		InvID:       order.InvID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		CheckoutURL: checkout,
	}, nil
}

// trackOrder drives the backoff poll loop for a freshly created order and
// settles it on a terminal gateway answer. A timed-out run leaves the order
// PENDING for the reconcile worker.
func (s *subscriptionService) trackOrder(ctx context.Context, order *models.PaymentOrder) {
	outcome, err := s.poller.Poll(ctx, order.InvID)
	if err != nil {
		logger.CtxWithError(ctx, "order polling aborted", err, "inv_id", order.InvID)
		return
	}

	var final models.PaymentStatus
	var reason string
	switch outcome {
	case payment.OutcomeSuccess:
		final = models.PaymentStatusSuccess
	case payment.OutcomeFailed:
		final, reason = models.PaymentStatusFailed, "declined by gateway"
	case payment.OutcomeCancelled:
		final, reason = models.PaymentStatusCancelled, "cancelled by user"
	default:
		logger.CtxInfo(ctx, "order poll timed out", "inv_id", order.InvID)
		return
	}

	// The callback may have settled the order first; that is not an error.
	if err := s.finishOrder(ctx, order, final, reason); err != nil && !errors.Is(err, apperrors.ErrOrderAlreadyFinal) {
		logger.CtxWithError(ctx, "order settlement failed", err, "order_id", order.ID)
	}
}

// HandleCallback processes the gateway's server-to-server result call.
// Signature and amount are verified before any state change; a terminal
// order is never overwritten.
func (s *subscriptionService) HandleCallback(ctx context.Context, req *dto.PaymentCallbackRequest) error {
	order, err := s.subs.FindOrderByInvID(req.InvID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !s.gateway.VerifyResultSignature(req.InvID, req.OutSum, req.Signature) {
		logger.CtxWarn(ctx, "payment callback signature mismatch", "inv_id", req.InvID)
		return apperrors.ErrInvalidPaymentSignature
	}
	if req.OutSum != order.Amount {
		logger.CtxWarn(ctx, "payment callback amount mismatch",
			"inv_id", req.InvID, "expected", order.Amount, "got", req.OutSum)
		return apperrors.ErrInvalidPaymentAmount
	}
	if order.Status.IsFinal() {
		return apperrors.ErrOrderAlreadyFinal
	}

	switch req.Result {
	case "cancelled":
		return s.finishOrder(ctx, order, models.PaymentStatusCancelled, "cancelled by user")
	case "failed":
		return s.finishOrder(ctx, order, models.PaymentStatusFailed, "declined by gateway")
	default:
		return s.finishOrder(ctx, order, models.PaymentStatusSuccess, "")
	}
}

func (s *subscriptionService) GetOrderStatus(ctx context.Context, userID, orderID string) (*dto.OrderStatusResponse, error) {
	order, err := s.subs.FindOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if order.UserID != userID {
		return nil, apperrors.NewForbiddenError("Not your order")
	}

	return &dto.OrderStatusResponse{
		OrderID: order.ID,
		Status:  order.Status,
		PaidAt:  order.PaidAt,
	}, nil
}

// ReconcilePending re-checks stale PENDING orders against the gateway.
// Covers callbacks that never arrived. Returns how many orders moved to a
// terminal state.
func (s *subscriptionService) ReconcilePending(ctx context.Context) (int, error) {
	orders, err := s.subs.FindPendingOrdersOlderThan(pendingReconcileAge)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := range orders {
		order := &orders[i]

		status, err := s.gateway.QueryStatus(ctx, order.InvID)
		if err != nil {
			logger.CtxWithError(ctx, "gateway status query failed", err, "inv_id", order.InvID)
			continue
		}

		var final models.PaymentStatus
		var reason string
		switch status {
		case payment.GatewaySuccess:
			final = models.PaymentStatusSuccess
		case payment.GatewayFailed:
			final, reason = models.PaymentStatusFailed, "declined by gateway"
		case payment.GatewayCancelled:
			final, reason = models.PaymentStatusCancelled, "cancelled by user"
		default:
			continue // still pending
		}

		if err := s.finishOrder(ctx, order, final, reason); err != nil {
			logger.CtxWithError(ctx, "order reconciliation failed", err, "order_id", order.ID)
			continue
		}
		moved++
	}

	return moved, nil
}

// finishOrder moves an order to its terminal state and, on success,
// activates the subscription and upgrades the buyer to pro.
func (s *subscriptionService) finishOrder(ctx context.Context, order *models.PaymentOrder, status models.PaymentStatus, reason string) error {
	if err := s.subs.UpdateOrderStatus(order.ID, status, reason); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			// Lost the race against another callback.
			return apperrors.ErrOrderAlreadyFinal
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "payment order finished",
		"order_id", order.ID, "inv_id", order.InvID, "status", string(status))

	if status != models.PaymentStatusSuccess {
		return nil
	}

	plan, err := s.subs.FindPlanByID(order.PlanID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if _, err := s.subs.ActivateSubscription(order.UserID, plan.ID, planWindow(plan.Duration)); err != nil {
		return apperrors.InternalError(err)
	}

	user, err := s.users.FindByID(order.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Admins already see everything; only basic users move up.
	if user.Role == models.UserRoleBasic {
		if err := s.users.UpdateRole(user.ID, models.UserRolePro); err != nil {
			return apperrors.InternalError(err)
		}
	}

	if s.userCache != nil {
		if err := s.userCache.Delete(ctx, user.ID); err != nil {
			logger.CtxWithError(ctx, "user cache invalidation failed", err, "user_id", user.ID)
		}
	}

	if s.mail != nil {
		if err := s.mail.SendSubscriptionActivated(user.Email, plan.Name); err != nil {
			logger.CtxWithError(ctx, "failed to send subscription email", err, "user_id", user.ID)
		}
	}

	return nil
}

// ExpireDue closes subscriptions whose window has passed and downgrades
// owners back to basic, but only when no other active window remains: a
// user who renewed early keeps pro until the later window closes too.
func (s *subscriptionService) ExpireDue(ctx context.Context) (int, error) {
	userIDs, err := s.subs.ExpireDue()
	if err != nil {
		return 0, err
	}

	for _, userID := range userIDs {
		if _, err := s.subs.FindActiveByUserID(userID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.CtxWithError(ctx, "active subscription lookup failed", err, "user_id", userID)
			continue
		}

		user, err := s.users.FindByID(userID)
		if err != nil {
			logger.CtxWithError(ctx, "expired subscription owner lookup failed", err, "user_id", userID)
			continue
		}

		// Admins keep their role; only pro users fall back.
		if user.Role == models.UserRolePro {
			if err := s.users.UpdateRole(userID, models.UserRoleBasic); err != nil {
				logger.CtxWithError(ctx, "role downgrade failed", err, "user_id", userID)
				continue
			}
		}

		if s.userCache != nil {
			if err := s.userCache.Delete(ctx, userID); err != nil {
				logger.CtxWithError(ctx, "user cache invalidation failed", err, "user_id", userID)
			}
		}
	}

	return len(userIDs), nil
}

func planWindow(duration string) time.Duration {
	switch duration {
	case "yearly":
		return 365 * 24 * time.Hour
	default: // monthly
		return 30 * 24 * time.Hour
	}
}
