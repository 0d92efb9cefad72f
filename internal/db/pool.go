package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection budget for a fetch-heavy aggregator: most request time is
// spent waiting on the upstream API, and each DB touch is a short upsert
// or a single-row credential read, so connections turn over quickly.
const (
	defaultMaxConns = 16
	connectAttempts = 4
	connectBackoff  = 3 * time.Second
)

// NewPool connects with retries. maxConns <= 0 selects the default.
func NewPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	config, err := poolConfig(databaseURL, maxConns)
	if err != nil {
		return nil, err
	}

	var pool *pgxpool.Pool
	for attempt := 1; ; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				log.Printf("database connected (max_conns=%d)", config.MaxConns)
				return pool, nil
			}
			pool.Close()
			err = pingErr
		}

		if attempt == connectAttempts {
			return nil, fmt.Errorf("database connection failed after %d attempts: %w", attempt, err)
		}
		log.Printf("database connection attempt %d/%d failed, retrying in %s: %v",
			attempt, connectAttempts, connectBackoff, err)
		select {
		case <-time.After(connectBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// poolConfig derives pgxpool settings from the URL and the configured
// connection cap. A quarter of the cap is kept warm; idle connections
// beyond that are released quickly since bursts here follow user search
// traffic, not a steady background load.
func poolConfig(databaseURL string, maxConns int32) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	config.MaxConns = maxConns
	config.MinConns = maxConns / 4
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second
	return config, nil
}
