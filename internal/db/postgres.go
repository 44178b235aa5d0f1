package db

import (
	"fmt"
	"time"

	"skycast/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const (
	connectAttempts = 10
	connectBackoff  = 500 * time.Millisecond
)

// InitPostgres opens the sqlx connection for the history store, retrying
// while the database finishes starting. compose brings the server and the
// database up together, so the first attempts routinely fail.
func InitPostgres(cfg *config.Config) (*sqlx.DB, error) {
	dsn := postgresDSN(cfg)

	var conn *sqlx.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn, nil
		}
		time.Sleep(connectBackoff)
	}
	return nil, fmt.Errorf("connect to postgres at %s:%s: %w", cfg.PGHost, cfg.PGPort, err)
}

func postgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDatabase, cfg.PGSSLMode)
}
