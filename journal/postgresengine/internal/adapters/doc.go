// Package adapters gives the PostgreSQL journal one connection surface over pgxpool.Pool,
// sql.DB and sqlx.DB. The journal only ever sends complete SQL strings built with goqu,
// so a Conn needs no parameter binding.
package adapters
