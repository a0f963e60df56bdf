package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXConn runs journal statements on a pgx pool.
type PGXConn struct {
	pool *pgxpool.Pool
}

func NewPGXConn(pool *pgxpool.Pool) *PGXConn {
	return &PGXConn{pool: pool}
}

func (c *PGXConn) Name() string {
	return "pgx"
}

func (c *PGXConn) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *PGXConn) Query(ctx context.Context, statement string) (Rows, error) {
	rows, err := c.pool.Query(ctx, statement)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

func (c *PGXConn) Exec(ctx context.Context, statement string) (Result, error) {
	tag, err := c.pool.Exec(ctx, statement)
	if err != nil {
		return nil, err
	}

	return pgxResult(tag), nil
}

// pgxRows adapts pgx.Rows, whose Close reports nothing; failures surface through Err.
type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Next() bool             { return r.rows.Next() }
func (r pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgxRows) Err() error             { return r.rows.Err() }

func (r pgxRows) Close() error {
	r.rows.Close()
	return nil
}

type pgxResult pgconn.CommandTag

func (r pgxResult) RowsAffected() (int64, error) {
	return pgconn.CommandTag(r).RowsAffected(), nil
}
