package checks

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/healthd/internal/health"
)

// Postgres reports healthy when the pool answers a ping within the probe's
// timeout.
func Postgres(pool *pgxpool.Pool) health.CheckFunc {
	return func(ctx context.Context) (bool, string, error) {
		if err := pool.Ping(ctx); err != nil {
			return false, "ping failed", err
		}
		return true, "ping ok", nil
	}
}
