package pg

import (
	"context"
	"fmt"
	"math"
	"time"

	infraconfig "stockquotes-ingestor/internal/infrastructure/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct{ Pool *pgxpool.Pool }

// Connect builds the pool. No connection is made until first use; call WaitReady.
func Connect(ctx context.Context, url string, maxConns int) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns, cfg.MinConns = poolMaxConns(maxConns), infraconfig.DefaultPGMinConns
	cfg.MaxConnIdleTime = 2 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DB{Pool: pool}, nil
}

// poolMaxConns falls back to the default for non-positive values and caps at MaxInt32.
func poolMaxConns(n int) int32 {
	switch {
	case n <= 0:
		return infraconfig.DefaultPGMaxConns
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(n)
}

func (d *DB) Close()                         { d.Pool.Close() }
func (d *DB) Ping(ctx context.Context) error { return d.Pool.Ping(ctx) }

// WaitReady pings until the store answers or timeout elapses.
func (d *DB) WaitReady(ctx context.Context, timeout time.Duration) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = timeout

	attempt := func() error {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return d.Ping(pctx)
	}
	if err := backoff.Retry(attempt, backoff.WithContext(exp, ctx)); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return nil
}
