package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXConn runs journal statements on a sqlx pool. The journal scans positionally, so the
// embedded *sql.Rows of sqlx.Rows is all it reads.
type SQLXConn struct {
	db *sqlx.DB
}

func NewSQLXConn(db *sqlx.DB) *SQLXConn {
	return &SQLXConn{db: db}
}

func (c *SQLXConn) Name() string {
	return "sqlx"
}

func (c *SQLXConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLXConn) Query(ctx context.Context, statement string) (Rows, error) {
	rows, err := c.db.QueryxContext(ctx, statement)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (c *SQLXConn) Exec(ctx context.Context, statement string) (Result, error) {
	return c.db.ExecContext(ctx, statement)
}
