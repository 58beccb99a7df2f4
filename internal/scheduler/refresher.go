package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthd/internal/health"
)

// Refresher keeps the decision cache warm by re-evaluating the configured
// kinds on an interval, so probe latency is paid off the request path.
type Refresher struct {
	Logger   *zap.Logger
	Service  *health.Service
	Kinds    []health.Kind
	Interval time.Duration
}

func NewRefresher(logger *zap.Logger, svc *health.Service, kinds []health.Kind, interval time.Duration) *Refresher {
	if len(kinds) == 0 {
		kinds = []health.Kind{health.Liveness, health.Readiness}
	}
	return &Refresher{
		Logger:   logger,
		Service:  svc,
		Kinds:    kinds,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled. Interval 0 disables the refresher.
func (r *Refresher) Run(ctx context.Context) {
	if r.Interval <= 0 {
		r.Logger.Info("refresher_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("refresher_stopped")
			return
		case <-t.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Refresher) runOnce(ctx context.Context) {
	for _, kind := range r.Kinds {
		d := r.Service.Evaluate(ctx, kind)
		r.Logger.Debug("refresher_evaluated",
			zap.String("kind", kind.String()),
			zap.String("overall", d.Overall.String()),
			zap.Int("checks", len(d.Results)),
		)
	}
}
