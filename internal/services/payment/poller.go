package payment

import (
	"context"
	"time"
)

// PollOutcome is the terminal result of a polling run.
type PollOutcome string

const (
	OutcomeSuccess   PollOutcome = "success"
	OutcomeFailed    PollOutcome = "failed"
	OutcomeCancelled PollOutcome = "cancelled"
	OutcomeTimeout   PollOutcome = "timeout"
)

// pollTimeout bounds a whole polling run. Orders still pending after this
// are treated as timed out and left for the reconcile worker.
const pollTimeout = 90 * time.Second

// backoffSchedule is the delay before each successive status query. After
// the schedule is exhausted the last delay repeats.
var backoffSchedule = []time.Duration{
	2 * time.Second,
	4 * time.Second,
	8 * time.Second,
	12 * time.Second,
	16 * time.Second,
}

// Poller repeatedly queries the gateway for an invoice until it reaches a
// terminal state or the run times out.
type Poller struct {
	gateway Gateway

	// Overridable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPoller(gw Gateway) *Poller {
	return &Poller{
		gateway: gw,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// Poll drives the status loop for one invoice. The first query happens
// immediately; a terminal gateway state short-circuits without sleeping.
// Returns OutcomeTimeout when the deadline passes with the invoice still
// pending, and the context error if ctx is cancelled mid-run.
func (p *Poller) Poll(ctx context.Context, invID string) (PollOutcome, error) {
	deadline := p.now().Add(pollTimeout)

	for attempt := 0; ; attempt++ {
		status, err := p.gateway.QueryStatus(ctx, invID)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			// Transient gateway errors count as still-pending.
		} else {
			switch status {
			case GatewaySuccess:
				return OutcomeSuccess, nil
			case GatewayFailed:
				return OutcomeFailed, nil
			case GatewayCancelled:
				return OutcomeCancelled, nil
			}
		}

		delay := backoffSchedule[min(attempt, len(backoffSchedule)-1)]
		if p.now().Add(delay).After(deadline) {
			return OutcomeTimeout, nil
		}
		if err := p.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
