package health

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CheckFunc performs one dependency check. It may block and must respect
// cancellation. A non-nil error always means unhealthy.
type CheckFunc func(ctx context.Context) (healthy bool, detail string, err error)

// Probe is one named, timeout-bounded health check unit. Probes are created at
// startup, registered once, and treated as immutable afterwards.
type Probe struct {
	Name    string
	Kind    Kind
	Check   CheckFunc
	Timeout time.Duration

	// Critical controls the reduction policy: a failing critical probe makes
	// the aggregate Unhealthy, a failing non-critical probe only Degraded.
	Critical bool
}

// NewProbe builds a critical probe. Flip Critical before registration for
// checks that should only degrade the aggregate.
func NewProbe(name string, kind Kind, timeout time.Duration, check CheckFunc) Probe {
	return Probe{
		Name:     name,
		Kind:     kind,
		Check:    check,
		Timeout:  timeout,
		Critical: true,
	}
}

func (p Probe) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProbeName
	}
	if p.Check == nil {
		return fmt.Errorf("%w: %q", ErrNilCheck, p.Name)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeout, p.Name)
	}
	return nil
}

// Run executes the check bounded by the probe's own Timeout and by ctx.
// It always returns a Result: check errors and panics are captured, never
// propagated, so one misbehaving probe cannot take down its siblings.
//
// On timeout the check goroutine is cancelled but may still be running;
// cleanup of whatever the check function holds is the check implementer's
// responsibility.
func (p Probe) Run(ctx context.Context) Result {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Result{Name: p.Name, Err: fmt.Errorf("%w: %v", ErrCheckPanic, r)}
			}
		}()
		healthy, detail, err := p.Check(cctx)
		if err != nil {
			healthy = false
		}
		done <- Result{Name: p.Name, Healthy: healthy, Detail: detail, Err: err}
	}()

	select {
	case res := <-done:
		res.Duration = time.Since(start)
		return res
	case <-cctx.Done():
		res := Result{Name: p.Name, TimedOut: true, Duration: time.Since(start)}
		if ctx.Err() != nil {
			res.Err = ErrAggregateDeadline
		} else {
			res.Err = ErrProbeTimeout
		}
		return res
	}
}
