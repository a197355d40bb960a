package refcheck

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres checks references against a table in PostgreSQL through a pgx
// connection pool. The table and ID column are fixed at construction, so one
// Postgres checker covers one kind of reference.
type Postgres struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgres builds a checker for the given table and ID column. The pool is
// owned by the caller.
func NewPostgres(pool *pgxpool.Pool, table, idColumn string) *Postgres {
	return &Postgres{
		pool:  pool,
		query: fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, idColumn),
	}
}

func (p *Postgres) Exists(ctx context.Context, id int64) error {
	var exists bool
	if err := p.pool.QueryRow(ctx, p.query, id).Scan(&exists); err != nil {
		return fmt.Errorf("reference lookup: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
