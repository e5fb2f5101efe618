// Package db opens the Postgres connection pool used by the plan store.
package db

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// connectAttempts bounds the startup ping retries; Postgres is often still
// coming up when the server starts under compose.
const connectAttempts = 5

// Connect opens a pool for url and pings it with exponential backoff until
// the database answers or the attempts are exhausted.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	ping := func() error {
		return pool.Ping(ctx)
	}
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts)
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
