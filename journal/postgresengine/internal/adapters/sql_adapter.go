package adapters

import (
	"context"
	"database/sql"
)

// SQLConn runs journal statements on a database/sql pool, usually with the lib/pq driver.
// *sql.Rows and sql.Result already satisfy Rows and Result.
type SQLConn struct {
	db *sql.DB
}

func NewSQLConn(db *sql.DB) *SQLConn {
	return &SQLConn{db: db}
}

func (c *SQLConn) Name() string {
	return "sql"
}

func (c *SQLConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConn) Query(ctx context.Context, statement string) (Rows, error) {
	return queryRows(c.db.QueryContext(ctx, statement))
}

func (c *SQLConn) Exec(ctx context.Context, statement string) (Result, error) {
	return c.db.ExecContext(ctx, statement)
}

// queryRows avoids returning a typed nil *sql.Rows inside a non-nil Rows.
func queryRows(rows *sql.Rows, err error) (Rows, error) {
	if err != nil {
		return nil, err
	}

	return rows, nil
}
