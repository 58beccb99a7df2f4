package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Aggregator fans out a set of probes concurrently and reduces their results
// into one Decision.
type Aggregator struct {
	log   *zap.Logger
	clock Clock
}

func NewAggregator(log *zap.Logger, clock Clock) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Aggregator{log: log, clock: clock}
}

// Run executes every probe concurrently, each bounded by its own Timeout and
// collectively by deadline. Probes still running when the deadline elapses are
// recorded as timed out with ErrAggregateDeadline. Results keep the order of
// the probes slice. An empty probe set is vacuously healthy.
func (a *Aggregator) Run(ctx context.Context, kind Kind, probes []Probe, deadline time.Duration) Decision {
	evaluatedAt := a.clock.Now()
	if len(probes) == 0 {
		return Decision{
			Overall:     StatusHealthy,
			Kind:        kind,
			Results:     []Result{},
			EvaluatedAt: evaluatedAt,
		}
	}

	rctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	results := make([]Result, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p Probe) {
			defer wg.Done()
			results[i] = p.Run(rctx)
		}(i, p)
	}
	wg.Wait()

	overall := reduce(probes, results)

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	a.log.Debug("aggregate_run",
		zap.String("kind", kind.String()),
		zap.String("overall", overall.String()),
		zap.Int("probes", len(probes)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(multierr.Combine(errs...)),
	)

	return Decision{
		Overall:     overall,
		Kind:        kind,
		Results:     results,
		EvaluatedAt: evaluatedAt,
	}
}

// reduce is deterministic and order-independent: any failing critical probe
// wins as Unhealthy; a failing non-critical probe yields Degraded. With every
// probe registered as critical (the constructor default), Degraded is never
// produced.
func reduce(probes []Probe, results []Result) Status {
	overall := StatusHealthy
	for i, res := range results {
		if res.Healthy {
			continue
		}
		if probes[i].Critical {
			return StatusUnhealthy
		}
		overall = StatusDegraded
	}
	return overall
}
