// Package postgresengine provides a PostgreSQL journal engine.
//
// Entries are stored in one table with a jsonb payload. Filters are pushed down to SQL:
// event types become equality checks and predicates become jsonb containment checks (@>),
// which a GIN index on the payload serves.
//
// Append uses a single INSERT ... SELECT guarded by a CTE that recomputes the highest
// sequence number matching the filter. If it differs from the expected one no row is
// inserted and journal.ErrConcurrencyConflict is returned.
//
// The engine runs on a pgxpool.Pool, a sql.DB (e.g., with lib/pq) or a sqlx.DB:
//
//	j, err := postgresengine.NewFromPGXPool(pool, postgresengine.WithTableName("circulation"))
//	if err != nil {
//		// handle error
//	}
//
//	if err = j.CreateTableIfNotExists(ctx); err != nil {
//		// handle error
//	}
package postgresengine
