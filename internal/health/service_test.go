package health

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func countingCheck(calls *atomic.Int64, delay time.Duration) CheckFunc {
	return func(ctx context.Context) (bool, string, error) {
		calls.Add(1)
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
		}
		return true, "ok", nil
	}
}

func TestServiceEvaluate_CachedDecisionSkipsProbes(t *testing.T) {
	clk := newManualClock()
	reg := NewRegistry()
	var calls atomic.Int64
	require.NoError(t, reg.Register(NewProbe("live", Liveness, time.Second, countingCheck(&calls, 0))))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: 2 * time.Second, Clock: clk})

	for i := 0; i < 3; i++ {
		d := svc.Evaluate(context.Background(), Liveness)
		assert.Equal(t, StatusHealthy, d.Overall)
		assert.Len(t, d.Results, 1)
	}
	assert.Equal(t, int64(1), calls.Load(), "check must execute exactly once within the TTL")
}

func TestServiceEvaluate_TTLExpiryTriggersFreshRun(t *testing.T) {
	clk := newManualClock()
	reg := NewRegistry()
	var calls atomic.Int64
	require.NoError(t, reg.Register(NewProbe("live", Liveness, time.Second, countingCheck(&calls, 0))))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: 2 * time.Second, Clock: clk})

	first := svc.Evaluate(context.Background(), Liveness)
	clk.Advance(2 * time.Second)
	second := svc.Evaluate(context.Background(), Liveness)

	assert.Equal(t, int64(2), calls.Load(), "expired cache must trigger a fresh run")
	assert.Equal(t, first.Overall, second.Overall)
}

func TestServiceEvaluate_SingleFlightSharesOneRun(t *testing.T) {
	reg := NewRegistry()
	var calls atomic.Int64
	// The delay keeps the first run in flight while the other callers arrive.
	require.NoError(t, reg.Register(NewProbe("db", Readiness, time.Second, countingCheck(&calls, 50*time.Millisecond))))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: time.Minute})

	const callers = 8
	var wg sync.WaitGroup
	decisions := make([]Decision, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decisions[i] = svc.Evaluate(context.Background(), Readiness)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent callers must share one probe sweep")
	for _, d := range decisions {
		assert.Equal(t, StatusHealthy, d.Overall)
		assert.Len(t, d.Results, 1)
	}
}

func TestServiceEvaluate_KindsDoNotShareCacheOrProbes(t *testing.T) {
	reg := NewRegistry()
	var liveCalls atomic.Int64
	require.NoError(t, reg.Register(NewProbe("process", Liveness, time.Second, countingCheck(&liveCalls, 0))))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: time.Minute})

	live := svc.Evaluate(context.Background(), Liveness)
	require.Len(t, live.Results, 1)

	// No readiness probes are registered: vacuously healthy, zero checks,
	// and the liveness cache entry must not leak across.
	ready := svc.Evaluate(context.Background(), Readiness)
	assert.Equal(t, StatusHealthy, ready.Overall)
	assert.Empty(t, ready.Results)
	assert.Equal(t, Readiness, ready.Kind)
	assert.Equal(t, int64(1), liveCalls.Load())
}

func TestServiceEvaluate_CallerCancellationDoesNotAbortRun(t *testing.T) {
	reg := NewRegistry()
	var calls atomic.Int64
	require.NoError(t, reg.Register(NewProbe("db", Readiness, time.Second, countingCheck(&calls, 20*time.Millisecond))))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := svc.Evaluate(ctx, Readiness)
	require.Len(t, d.Results, 1)
	assert.True(t, d.Results[0].Healthy, "run must complete despite the caller's cancellation: %+v", d.Results[0])
	assert.Equal(t, StatusHealthy, d.Overall)
}

func TestServiceEvaluate_DerivedDeadlineBoundsStuckProbe(t *testing.T) {
	reg := NewRegistry()
	stuck := NewProbe("stuck", Readiness, 50*time.Millisecond, func(ctx context.Context) (bool, string, error) {
		<-ctx.Done()
		return true, "", nil
	})
	require.NoError(t, reg.Register(stuck))

	svc := NewService(reg, zap.NewNop(), Options{CacheTTL: time.Minute})

	start := time.Now()
	d := svc.Evaluate(context.Background(), Readiness)
	elapsed := time.Since(start)

	assert.Equal(t, StatusUnhealthy, d.Overall)
	require.Len(t, d.Results, 1)
	assert.True(t, d.Results[0].TimedOut)
	// Derived deadline is max probe timeout + 500ms.
	assert.Less(t, elapsed, 2*time.Second, "evaluate must not hang on a stuck probe")
}
