package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"missioncopilot/internal/config"
)

// connMaxLifetime recycles connections so pooled sessions do not outlive
// database-side failovers.
const connMaxLifetime = 30 * time.Minute

// NewDB opens the mission database pool and verifies it is reachable before
// the server starts taking uploads.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening mission database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging mission database %s at %s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	return db, nil
}
