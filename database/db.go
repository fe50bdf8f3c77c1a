package database

import (
	"context"
	"database/sql"
	"fmt"

	"bestcdmx/config"
	"bestcdmx/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Connect opens the PostgreSQL pool with the configured driver and limits.
// A failed ping is only logged; the catalog refresher retries its loads.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database url not set")
	}

	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	// Neon suspends compute while idle connections are held.
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logging.Warn().Err(err).Str("driver", cfg.Driver).Msg("database ping failed, continuing")
	} else {
		logging.Info().Str("driver", cfg.Driver).Msg("connected to PostgreSQL")
	}
	return db, nil
}
