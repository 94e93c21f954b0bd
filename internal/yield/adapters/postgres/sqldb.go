package postgres

import (
	"context"
	"database/sql"
	"time"
)

// QueryObserver is told about every query once it has been issued.
type QueryObserver func(name string, d time.Duration, err error)

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRows) Err() error {
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	return r.rows.Close()
}

type sqlDB struct {
	db      *sql.DB
	observe QueryObserver
}

// NewSQLDB wraps db. observe may be nil.
func NewSQLDB(db *sql.DB, observe QueryObserver) DB {
	return &sqlDB{db: db, observe: observe}
}

func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if s.observe != nil {
		s.observe(QueryName(ctx), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	return &sqlRows{rows: rows}, nil
}
