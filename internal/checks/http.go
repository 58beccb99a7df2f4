// Package checks provides dependency-specific check functions that feed
// health probes. The health core is agnostic to what a check actually does.
package checks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hamed0406/healthd/internal/health"
)

// HTTP reports healthy when a GET against target answers with a 2xx or 3xx
// status. Transport errors and server errors are unhealthy with the status
// line (or error) as detail.
func HTTP(client *http.Client, target string) health.CheckFunc {
	if client == nil {
		client = &http.Client{}
	}
	return func(ctx context.Context) (bool, string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return false, "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return false, "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 400 {
			return true, resp.Status, nil
		}
		return false, resp.Status, fmt.Errorf("http status %d", resp.StatusCode)
	}
}
