package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGateway struct {
	statuses []GatewayStatus
	calls    int
}

func (g *scriptedGateway) CheckoutURL(invID string, amount float64, description string) string {
	return "http://test/checkout"
}

func (g *scriptedGateway) VerifyResultSignature(invID string, amount float64, signature string) bool {
	return true
}

func (g *scriptedGateway) QueryStatus(ctx context.Context, invID string) (GatewayStatus, error) {
	status := g.statuses[len(g.statuses)-1]
	if g.calls < len(g.statuses) {
		status = g.statuses[g.calls]
	}
	g.calls++
	return status, nil
}

// fakeClock advances virtual time instead of sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	return ctx.Err()
}

func newTestPoller(gw Gateway) (*Poller, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	p := NewPoller(gw)
	p.now = clock.Now
	p.sleep = clock.Sleep
	return p, clock
}

func TestPollerImmediateTerminalState(t *testing.T) {
	for _, tc := range []struct {
		status  GatewayStatus
		outcome PollOutcome
	}{
		{GatewaySuccess, OutcomeSuccess},
		{GatewayFailed, OutcomeFailed},
		{GatewayCancelled, OutcomeCancelled},
	} {
		gw := &scriptedGateway{statuses: []GatewayStatus{tc.status}}
		p, _ := newTestPoller(gw)

		outcome, err := p.Poll(context.Background(), "inv-1")

		require.NoError(t, err)
		assert.Equal(t, tc.outcome, outcome)
		assert.Equal(t, 1, gw.calls, "terminal state must short-circuit without sleeping")
	}
}

func TestPollerSuccessAfterRetries(t *testing.T) {
	gw := &scriptedGateway{statuses: []GatewayStatus{
		GatewayPending, GatewayPending, GatewaySuccess,
	}}
	p, clock := newTestPoller(gw)
	start := clock.now

	outcome, err := p.Poll(context.Background(), "inv-2")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, 3, gw.calls)
	// Two sleeps happened: 2s then 4s.
	assert.Equal(t, 6*time.Second, clock.now.Sub(start))
}

func TestPollerBackoffScheduleHoldsAtLastDelay(t *testing.T) {
	gw := &scriptedGateway{statuses: []GatewayStatus{GatewayPending}}
	p, clock := newTestPoller(gw)
	start := clock.now

	outcome, err := p.Poll(context.Background(), "inv-3")

	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeout, outcome)

	// Queries happen at 0, 2, 6, 14, 26, 42, 58, 74 and 90 seconds; the
	// next 16s step would cross the 90s deadline.
	elapsed := clock.now.Sub(start)
	assert.Equal(t, 90*time.Second, elapsed)
	assert.Equal(t, 9, gw.calls)
}

func TestPollerTimeoutStaysPending(t *testing.T) {
	gw := &scriptedGateway{statuses: []GatewayStatus{GatewayPending}}
	p, _ := newTestPoller(gw)

	outcome, err := p.Poll(context.Background(), "inv-4")

	require.NoError(t, err)
	assert.Equal(t, OutcomeTimeout, outcome)
}

func TestPollerContextCancellation(t *testing.T) {
	gw := &scriptedGateway{statuses: []GatewayStatus{GatewayPending}}
	p, clock := newTestPoller(gw)

	ctx, cancel := context.WithCancel(context.Background())
	p.sleep = func(sctx context.Context, d time.Duration) error {
		cancel()
		clock.now = clock.now.Add(d)
		return sctx.Err()
	}

	_, err := p.Poll(ctx, "inv-5")
	assert.ErrorIs(t, err, context.Canceled)
}
