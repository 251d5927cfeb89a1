package services

import (
	"context"
	"testing"
	"time"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/services/dto"
	"chefhire_backend/internal/services/payment"
	"chefhire_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubRepo struct {
	plans  map[string]*models.SubscriptionPlan
	orders map[string]*models.PaymentOrder
	active map[string]*models.UserSubscription

	activated     []string // user ids
	expiredUsers  []string // returned by ExpireDue
	statusUpdates []models.PaymentStatus
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{
		plans:  map[string]*models.SubscriptionPlan{},
		orders: map[string]*models.PaymentOrder{},
		active: map[string]*models.UserSubscription{},
	}
}

func (f *fakeSubRepo) FindActivePlans() ([]models.SubscriptionPlan, error) {
	var out []models.SubscriptionPlan
	for _, p := range f.plans {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) FindPlanByID(id string) (*models.SubscriptionPlan, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrPlanNotFound
}

func (f *fakeSubRepo) CreatePlan(plan *models.SubscriptionPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakeSubRepo) CreateOrder(order *models.PaymentOrder) error {
	if order.ID == "" {
		order.ID = "order-" + order.InvID
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeSubRepo) FindOrderByID(id string) (*models.PaymentOrder, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, repositories.ErrOrderNotFound
}

func (f *fakeSubRepo) FindOrderByInvID(invID string) (*models.PaymentOrder, error) {
	for _, o := range f.orders {
		if o.InvID == invID {
			return o, nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (f *fakeSubRepo) UpdateOrderStatus(id string, status models.PaymentStatus, reason string) error {
	o, ok := f.orders[id]
	if !ok || o.Status != models.PaymentStatusPending {
		return repositories.ErrOrderNotFound
	}
	o.Status = status
	o.FailureReason = reason
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeSubRepo) FindPendingOrdersOlderThan(age time.Duration) ([]models.PaymentOrder, error) {
	var out []models.PaymentOrder
	for _, o := range f.orders {
		if o.Status == models.PaymentStatusPending {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) FindActiveByUserID(userID string) (*models.UserSubscription, error) {
	if sub, ok := f.active[userID]; ok {
		return sub, nil
	}
	return nil, repositories.ErrSubscriptionNotFound
}

func (f *fakeSubRepo) ActivateSubscription(userID, planID string, window time.Duration) (*models.UserSubscription, error) {
	f.activated = append(f.activated, userID)
	return &models.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		Status:    models.SubscriptionStatusActive,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(window),
	}, nil
}

func (f *fakeSubRepo) ExpireDue() ([]string, error) { return f.expiredUsers, nil }

type fakeUserRepo struct {
	users map[string]*models.User
	roles map[string]models.UserRole
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}, roles: map[string]models.UserRole{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error { f.users[user.ID] = user; return nil }
func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) UpdateRole(userID string, role models.UserRole) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	f.roles[userID] = role
	return nil
}

func (f *fakeUserRepo) SetChefStatus(userID string, chef bool) error { return nil }

func (f *fakeUserRepo) UpdateStatus(userID string, st models.UserStatus) error { return nil }

func (f *fakeUserRepo) VerifyUser(userID string) error { return nil }

func (f *fakeUserRepo) Delete(userID string) error { return nil }

func (f *fakeUserRepo) FindByVerificationToken(t string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByResetToken(t string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) CreateRefreshToken(t *models.RefreshToken) error { return nil }

func (f *fakeUserRepo) FindRefreshToken(t string) (*models.RefreshToken, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) DeleteRefreshToken(t string) error { return nil }

func (f *fakeUserRepo) DeleteUserRefreshTokens(userID string) error { return nil }

func (f *fakeUserRepo) CleanExpiredRefreshTokens() (int64, error) { return 0, nil }

func (f *fakeUserRepo) FindWithFilter(c repositories.UserFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

type stubGateway struct {
	validSignature bool
	status         payment.GatewayStatus
}

func (g *stubGateway) CheckoutURL(invID string, amount float64, description string) string {
	return "https://pay.test/checkout?InvId=" + invID
}

func (g *stubGateway) VerifyResultSignature(invID string, amount float64, signature string) bool {
	return g.validSignature
}

func (g *stubGateway) QueryStatus(ctx context.Context, invID string) (payment.GatewayStatus, error) {
	return g.status, nil
}

func setupSubscriptionService(gw payment.Gateway) (*fakeSubRepo, *fakeUserRepo, SubscriptionService) {
	subRepo := newFakeSubRepo()

	plan := &models.SubscriptionPlan{
		Name:     "Pro Monthly",
		Price:    499,
		Currency: "INR",
		Duration: "monthly",
		IsActive: true,
	}
	plan.ID = "plan-1"
	subRepo.plans[plan.ID] = plan

	user := &models.User{
		Name:   "Asha",
		Email:  "asha@test.com",
		Role:   models.UserRoleBasic,
		Status: models.UserStatusActive,
	}
	user.ID = "user-1"
	userRepo := newFakeUserRepo(user)

	svc := NewSubscriptionService(subRepo, userRepo, gw, nil, nil, nil)
	return subRepo, userRepo, svc
}

func TestCreateOrder(t *testing.T) {
	subRepo, _, svc := setupSubscriptionService(&stubGateway{})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.InvID)
	assert.Equal(t, 499.0, resp.Amount)
	assert.Contains(t, resp.CheckoutURL, resp.InvID)

	order, err := subRepo.FindOrderByID(resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, order.Status)
}

func TestCreateOrderInactivePlan(t *testing.T) {
	subRepo, _, svc := setupSubscriptionService(&stubGateway{})
	subRepo.plans["plan-1"].IsActive = false

	_, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	assert.ErrorIs(t, err, apperrors.ErrPlanNotActive)
}

func TestCallbackSuccessActivatesAndUpgrades(t *testing.T) {
	subRepo, userRepo, svc := setupSubscriptionService(&stubGateway{validSignature: true})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(context.Background(), &dto.PaymentCallbackRequest{
		InvID:  resp.InvID,
		OutSum: 499,
	})
	require.NoError(t, err)

	order, _ := subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusSuccess, order.Status)
	assert.Equal(t, []string{"user-1"}, subRepo.activated)
	assert.Equal(t, models.UserRolePro, userRepo.roles["user-1"])
}

func TestCallbackRejectsBadSignature(t *testing.T) {
	subRepo, _, svc := setupSubscriptionService(&stubGateway{validSignature: false})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(context.Background(), &dto.PaymentCallbackRequest{
		InvID:  resp.InvID,
		OutSum: 499,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentSignature)

	order, _ := subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusPending, order.Status, "a bad signature must not move the order")
	assert.Empty(t, subRepo.activated)
}

func TestCallbackRejectsAmountMismatch(t *testing.T) {
	_, _, svc := setupSubscriptionService(&stubGateway{validSignature: true})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	err = svc.HandleCallback(context.Background(), &dto.PaymentCallbackRequest{
		InvID:  resp.InvID,
		OutSum: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
}

func TestCallbackCannotOverwriteTerminalOrder(t *testing.T) {
	subRepo, _, svc := setupSubscriptionService(&stubGateway{validSignature: true})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	// First callback cancels the order.
	err = svc.HandleCallback(context.Background(), &dto.PaymentCallbackRequest{
		InvID:  resp.InvID,
		OutSum: 499,
		Result: "cancelled",
	})
	require.NoError(t, err)

	// A late success callback must bounce.
	err = svc.HandleCallback(context.Background(), &dto.PaymentCallbackRequest{
		InvID:  resp.InvID,
		OutSum: 499,
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderAlreadyFinal)

	order, _ := subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusCancelled, order.Status)
	assert.Empty(t, subRepo.activated)
}

func TestGetOrderStatusOwnership(t *testing.T) {
	_, _, svc := setupSubscriptionService(&stubGateway{})

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	status, err := svc.GetOrderStatus(context.Background(), "user-1", resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, status.Status)

	_, err = svc.GetOrderStatus(context.Background(), "someone-else", resp.OrderID)
	assert.Error(t, err)
}

func TestReconcilePendingFinishesMovedOrders(t *testing.T) {
	gw := &stubGateway{status: payment.GatewaySuccess}
	subRepo, userRepo, svc := setupSubscriptionService(gw)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	moved, err := svc.ReconcilePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	order, _ := subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusSuccess, order.Status)
	assert.Equal(t, models.UserRolePro, userRepo.roles["user-1"])
}

func TestReconcilePendingLeavesPendingAlone(t *testing.T) {
	gw := &stubGateway{status: payment.GatewayPending}
	subRepo, _, svc := setupSubscriptionService(gw)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	moved, err := svc.ReconcilePending(context.Background())
	require.NoError(t, err)
	assert.Zero(t, moved)

	order, _ := subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusPending, order.Status)
}

func TestGetMySubscription(t *testing.T) {
	subRepo, _, svc := setupSubscriptionService(&stubGateway{})

	resp, err := svc.GetMySubscription(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	sub := &models.UserSubscription{
		UserID:    "user-1",
		PlanID:    "plan-1",
		Status:    models.SubscriptionStatusActive,
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(29 * 24 * time.Hour),
	}
	sub.ID = "sub-1"
	subRepo.active["user-1"] = sub

	resp, err = svc.GetMySubscription(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "sub-1", resp.ID)
	assert.Equal(t, "plan-1", resp.PlanID)
	assert.Equal(t, models.SubscriptionStatusActive, resp.Status)
}

func TestTrackOrderSettlesOnTerminalAnswer(t *testing.T) {
	gw := &stubGateway{status: payment.GatewaySuccess}
	subRepo, _, svc := setupSubscriptionService(gw)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	impl := svc.(*subscriptionService)
	impl.poller = payment.NewPoller(gw)

	order, err := subRepo.FindOrderByID(resp.OrderID)
	require.NoError(t, err)
	impl.trackOrder(context.Background(), order)

	order, _ = subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusSuccess, order.Status)
	assert.Equal(t, []string{"user-1"}, subRepo.activated)
}

func TestTrackOrderIgnoresAlreadySettledOrder(t *testing.T) {
	gw := &stubGateway{status: payment.GatewayCancelled}
	subRepo, _, svc := setupSubscriptionService(gw)

	resp, err := svc.CreateOrder(context.Background(), "user-1", &dto.CreateOrderRequest{PlanID: "plan-1"})
	require.NoError(t, err)

	order, err := subRepo.FindOrderByID(resp.OrderID)
	require.NoError(t, err)

	// Callback wins the race.
	require.NoError(t, subRepo.UpdateOrderStatus(order.ID, models.PaymentStatusSuccess, ""))

	impl := svc.(*subscriptionService)
	impl.poller = payment.NewPoller(gw)
	impl.trackOrder(context.Background(), order)

	order, _ = subRepo.FindOrderByID(resp.OrderID)
	assert.Equal(t, models.PaymentStatusSuccess, order.Status)
}

func TestExpireDueKeepsProWhileAnotherWindowRuns(t *testing.T) {
	subRepo, userRepo, svc := setupSubscriptionService(&stubGateway{})

	userRepo.users["user-1"].Role = models.UserRolePro
	subRepo.expiredUsers = []string{"user-1"}

	// Early renewal: a second window is still open.
	sub := &models.UserSubscription{
		UserID:    "user-1",
		PlanID:    "plan-1",
		Status:    models.SubscriptionStatusActive,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
	}
	subRepo.active["user-1"] = sub

	expired, err := svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, models.UserRolePro, userRepo.users["user-1"].Role)
}

func TestExpireDueDowngradesWhenLastWindowCloses(t *testing.T) {
	subRepo, userRepo, svc := setupSubscriptionService(&stubGateway{})

	userRepo.users["user-1"].Role = models.UserRolePro
	subRepo.expiredUsers = []string{"user-1"}

	expired, err := svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, models.UserRoleBasic, userRepo.users["user-1"].Role)
}

func TestExpireDueLeavesAdminRoleAlone(t *testing.T) {
	subRepo, userRepo, svc := setupSubscriptionService(&stubGateway{})

	userRepo.users["user-1"].Role = models.UserRoleAdmin
	subRepo.expiredUsers = []string{"user-1"}

	_, err := svc.ExpireDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, userRepo.users["user-1"].Role)
}
