package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthd/internal/health"
)

func TestRefresher_WarmsTheCache(t *testing.T) {
	reg := health.NewRegistry()
	var calls atomic.Int64
	p := health.NewProbe("db", health.Readiness, time.Second, func(ctx context.Context) (bool, string, error) {
		calls.Add(1)
		return true, "", nil
	})
	if err := reg.Register(p); err != nil {
		t.Fatalf("register: %v", err)
	}

	svc := health.NewService(reg, zap.NewNop(), health.Options{CacheTTL: time.Minute})
	r := NewRefresher(zap.NewNop(), svc, []health.Kind{health.Readiness}, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// Wait a tiny bit for the immediate pass to execute.
	time.Sleep(20 * time.Millisecond)

	if calls.Load() == 0 {
		t.Fatalf("expected at least one probe execution from the refresher")
	}

	// The cache is warm: an Evaluate now must not run the probe again.
	before := calls.Load()
	d := svc.Evaluate(context.Background(), health.Readiness)
	if d.Overall != health.StatusHealthy {
		t.Fatalf("want healthy from warmed cache, got %s", d.Overall)
	}
	if calls.Load() != before {
		t.Fatalf("evaluate after warmup should hit the cache, calls went %d -> %d", before, calls.Load())
	}
}

func TestRefresher_ZeroIntervalDisables(t *testing.T) {
	reg := health.NewRegistry()
	svc := health.NewService(reg, zap.NewNop(), health.Options{})
	r := NewRefresher(zap.NewNop(), svc, nil, 0)

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("disabled refresher should return immediately")
	}
}

func TestRefresher_StopsOnContextCancel(t *testing.T) {
	reg := health.NewRegistry()
	svc := health.NewService(reg, zap.NewNop(), health.Options{})
	r := NewRefresher(zap.NewNop(), svc, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("refresher did not stop on cancellation")
	}
}
