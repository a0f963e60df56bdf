package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/library-circulation-go/journal/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/config"
)

// openJournal builds the configured journal engine. The returned close function releases the
// database connections, it is a no-op for the memory engine.
func openJournal(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	metrics shell.MetricsCollector,
) (shell.Journal, func(), error) {

	if cfg.Journal == config.JournalMemory {
		j, err := memoryengine.New(
			memoryengine.WithLogger(logger),
			memoryengine.WithMetrics(metrics),
		)

		return j, func() {}, err
	}

	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.TableName),
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(metrics),
	}

	var (
		j       postgresengine.Journal
		closeDB func()
		err     error
	)

	switch cfg.DBAdapter {
	case config.AdapterSQL:
		db, openErr := config.OpenSQLDB(cfg.PostgresDSN)
		if openErr != nil {
			return nil, nil, openErr
		}

		closeDB = func() { _ = db.Close() }
		j, err = postgresengine.NewFromSQLDB(db, options...)

	case config.AdapterSQLX:
		db, openErr := config.OpenSQLX(cfg.PostgresDSN)
		if openErr != nil {
			return nil, nil, openErr
		}

		closeDB = func() { _ = db.Close() }
		j, err = postgresengine.NewFromSQLX(db, options...)

	default:
		poolConfig, parseErr := config.PGXPoolConfig(cfg.PostgresDSN)
		if parseErr != nil {
			return nil, nil, parseErr
		}

		pool, openErr := pgxpool.NewWithConfig(ctx, poolConfig)
		if openErr != nil {
			return nil, nil, fmt.Errorf("creating pgx pool: %w", openErr)
		}

		closeDB = pool.Close
		j, err = postgresengine.NewFromPGXPool(pool, options...)
	}

	if err != nil {
		closeDB()
		return nil, nil, err
	}

	if err := j.Ping(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}

	if err := j.CreateTableIfNotExists(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}

	logger.Info("journal ready", "adapter", j.Adapter(), "table", j.TableName())

	return j, closeDB, nil
}
