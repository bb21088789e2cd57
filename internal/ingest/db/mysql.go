package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mwgeurts/viewray-decisionlogs/internal/ingest/config"

	_ "github.com/go-sql-driver/mysql"
)

func Open(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDB,
		int(cfg.ConnectTimeout.Seconds()),
		int(cfg.QueryTimeout.Seconds()),
		int(cfg.QueryTimeout.Seconds()),
	)

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, err
	}

	// Decision timestamps are stored as UTC wall-clock values.
	if _, err := conn.ExecContext(ctx, "SET time_zone = '+00:00'"); err != nil {
		return nil, fmt.Errorf("set session time_zone UTC failed: %w", err)
	}

	return conn, nil
}

// AcquireLock takes a MySQL advisory lock so two ingest runs for the same
// course cannot interleave. Returns false when the lock is already held.
func AcquireLock(ctx context.Context, conn *sql.DB, course string, timeoutSeconds int) (bool, error) {
	var res sql.NullInt64
	key := "gating_ingest_" + course
	if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", key, timeoutSeconds).Scan(&res); err != nil {
		return false, err
	}
	return res.Valid && res.Int64 == 1, nil
}

func ReleaseLock(ctx context.Context, conn *sql.DB, course string) error {
	_, err := conn.ExecContext(ctx, "SELECT RELEASE_LOCK(?)", "gating_ingest_"+course)
	return err
}
