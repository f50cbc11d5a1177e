package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChecker verifies that the database accepts connections. Each
// check opens a fresh pool, pings and closes it; the process is
// short-lived so there is nothing to keep warm, and concurrent probes
// against the same server do not interfere.
type PostgresChecker struct {
	DSN string
}

func NewPostgresChecker(dsn string) *PostgresChecker {
	return &PostgresChecker{DSN: dsn}
}

func (p *PostgresChecker) Check(ctx context.Context) Outcome {
	start := time.Now()
	pool, err := pgxpool.New(ctx, p.DSN)
	if err != nil {
		return Fail(fmt.Sprintf("postgres: %v", err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		out := Fail(fmt.Sprintf("postgres: ping: %v", err))
		out.LatencyMS = time.Since(start).Seconds() * 1000
		return out
	}

	out := OK("postgres: accepting connections")
	out.LatencyMS = time.Since(start).Seconds() * 1000
	return out
}
