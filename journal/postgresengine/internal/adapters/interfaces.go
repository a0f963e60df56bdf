package adapters

import "context"

// Conn is the connection surface of the journal: reading entries, appending or creating
// the table, and a liveness check before bootstrapping.
type Conn interface {
	// Name identifies the driver stack: "pgx", "sql" or "sqlx".
	Name() string
	Ping(ctx context.Context) error
	Query(ctx context.Context, statement string) (Rows, error)
	Exec(ctx context.Context, statement string) (Result, error)
}

// Rows iterates over journal rows. Close must be called once iteration ends.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Result reports how many entries an append inserted. Zero means the append guard
// found a moved sequence number.
type Result interface {
	RowsAffected() (int64, error)
}
