package checks

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hamed0406/healthd/internal/health"
)

// Process is a liveness self-check: always healthy, no dependency I/O. The
// detail reports uptime and goroutine count for diagnostics.
func Process(startedAt time.Time) health.CheckFunc {
	return func(ctx context.Context) (bool, string, error) {
		up := time.Since(startedAt).Truncate(time.Second)
		return true, fmt.Sprintf("up %s, %d goroutines", up, runtime.NumGoroutine()), nil
	}
}
