package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheTTL bounds probe execution frequency under request bursts.
	// Raising it trades staleness for fewer probe sweeps.
	DefaultCacheTTL = 2 * time.Second

	// deadlineSlack is added to the largest probe timeout when no aggregate
	// deadline is configured.
	deadlineSlack = 500 * time.Millisecond
)

// Options configures a Service. Zero values pick the documented defaults.
type Options struct {
	// CacheTTL is how long an aggregated Decision is served from cache.
	CacheTTL time.Duration

	// AggregateDeadline caps one full probe sweep. When zero it is derived
	// per run as the largest probe timeout plus half a second.
	AggregateDeadline time.Duration

	// Clock is injectable for tests; defaults to the system clock.
	Clock Clock
}

// Service is the facade the transport layer calls. It composes the registry,
// the aggregator, the decision cache, and a per-kind single-flight gate.
type Service struct {
	opts   Options
	reg    *Registry
	agg    *Aggregator
	cache  *decisionCache
	log    *zap.Logger
	flight singleflight.Group
}

func NewService(reg *Registry, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Service{
		opts:  opts,
		reg:   reg,
		agg:   NewAggregator(log, opts.Clock),
		cache: newDecisionCache(opts.Clock),
		log:   log,
	}
}

// Evaluate returns the current Decision for kind. A fresh cache entry is
// served without touching any probe. On a miss, concurrent callers share a
// single aggregation run per kind; the run is detached from the caller's
// cancellation so a disconnecting waiter never aborts a sweep others depend
// on. Evaluate never fails: probe errors and deadline overruns are carried
// inside the Decision.
func (s *Service) Evaluate(ctx context.Context, kind Kind) Decision {
	if d, ok := s.cache.Get(kind); ok {
		return d
	}

	v, _, shared := s.flight.Do(kind.String(), func() (any, error) {
		// A waiter that lost the race may find the cache already filled.
		if d, ok := s.cache.Get(kind); ok {
			return d, nil
		}

		probes := s.reg.List(kind)
		deadline := s.opts.AggregateDeadline
		if deadline <= 0 {
			deadline = maxProbeTimeout(probes) + deadlineSlack
		}

		d := s.agg.Run(context.WithoutCancel(ctx), kind, probes, deadline)
		s.cache.Put(kind, d, s.opts.CacheTTL)
		return d, nil
	})

	d := v.(Decision)
	if shared {
		s.log.Debug("evaluate_shared", zap.String("kind", kind.String()))
	}
	return d
}

func maxProbeTimeout(probes []Probe) time.Duration {
	var longest time.Duration
	for _, p := range probes {
		if p.Timeout > longest {
			longest = p.Timeout
		}
	}
	return longest
}
