// Command librarysim seeds a library with generated books and patrons and then lets a pool of
// workers borrow, return, ask for suggestions and read borrowing histories through the
// observable handlers. The journal runs in memory or on PostgreSQL, metrics go to Prometheus
// or OpenTelemetry.
//
// Usage:
//
//	librarysim -steps=5000 -workers=8 -metrics-addr=:9090
//	LIBRARY_JOURNAL=postgres LIBRARY_POSTGRES_DSN=postgres://... DB_ADAPTER=sqlx librarysim
package main
