package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the standard sql.DB handle together with the error classifier
// used to decide whether failed operations are retryable.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a PostgreSQL connection through the pgx stdlib
// driver, configures the pool, and verifies connectivity with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// classifyError runs err through the connection's [ErrorClassificator] and
// tags transient failures with [ErrStorageUnavailable]; everything else is
// passed through unchanged.
func (db *DB) classifyError(err error) error {
	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}

// wrapDBError wraps a driver-level failure with the given sentinel. When the
// classifier marks the failure transient the sentinel is replaced with
// [ErrStorageUnavailable] so the two never stack on one error chain.
func (db *DB) wrapDBError(sentinel, err error) error {
	if db.errorClassificator.Classify(err) == Retryable {
		sentinel = ErrStorageUnavailable
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

// postgresError returns the PostgreSQL error code of err, or an empty string
// when err does not originate from the pgx driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
