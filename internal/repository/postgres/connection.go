package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/dtroode/filedrop/database"
	"github.com/dtroode/filedrop/internal/model"
)

// Connection owns the pgx pool and a database/sql handle backed by it. The
// repositories and the migrator share the database/sql handle.
type Connection struct {
	Pool *pgxpool.Pool
	DB   *sql.DB
}

// NewConnection opens the pool, checks the server answers and applies
// pending migrations. Any failure to reach the server wraps model.ErrUnavailable.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w: %w", model.ErrUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w: %w", model.ErrUnavailable, err)
	}

	conn := &Connection{
		Pool: pool,
		DB:   stdlib.OpenDBFromPool(pool),
	}

	if err := database.Migrate(ctx, conn.DB); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return conn, nil
}

// Close releases the database/sql handle and the pool.
func (s *Connection) Close() error {
	var err error
	if s.DB != nil {
		err = s.DB.Close()
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	return err
}

// Ping checks the database answers.
func (s *Connection) Ping(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("connection is not initialized: %w", model.ErrUnavailable)
	}
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w: %w", model.ErrUnavailable, err)
	}
	return nil
}
