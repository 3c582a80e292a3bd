package db

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const connectAttempts = 5

// NewPool connects to Postgres with bounded retries. Connection limits
// follow the deployment sizing rather than pgx defaults.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	pool, err := retry.DoWithData(
		func() (*pgxpool.Pool, error) {
			p, err := pgxpool.NewWithConfig(ctx, config)
			if err != nil {
				return nil, err
			}
			if err := p.Ping(ctx); err != nil {
				p.Close()
				return nil, err
			}
			return p, nil
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Uint("attempt", n+1).Err(err).Msg("database connection failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, err)
	}

	log.Info().Msg("database connected")
	return pool, nil
}
