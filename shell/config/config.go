package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

const (
	// JournalMemory keeps the journal in process memory.
	JournalMemory = "memory"

	// JournalPostgres keeps the journal in a PostgreSQL table.
	JournalPostgres = "postgres"

	// AdapterPGX uses a pgx connection pool.
	AdapterPGX = "pgx"

	// AdapterSQL uses database/sql with the lib/pq driver.
	AdapterSQL = "sql"

	// AdapterSQLX uses sqlx with the lib/pq driver.
	AdapterSQLX = "sqlx"

	// MetricsPrometheus records metrics with the Prometheus client.
	MetricsPrometheus = "prometheus"

	// MetricsOTel records metrics and spans with OpenTelemetry.
	MetricsOTel = "otel"
)

// Environment variables overriding the defaults.
const (
	EnvJournal     = "LIBRARY_JOURNAL"
	EnvDBAdapter   = "DB_ADAPTER"
	EnvPostgresDSN = "LIBRARY_POSTGRES_DSN"
	EnvLogLevel    = "LIBRARY_LOG_LEVEL"
	EnvMetrics     = "LIBRARY_METRICS"
	EnvSeed        = "LIBRARY_SEED"
)

var (
	ErrInvalidJournal      = errors.New("journal must be memory or postgres")
	ErrInvalidDBAdapter    = errors.New("db adapter must be pgx, sql or sqlx")
	ErrMissingPostgresDSN  = errors.New("postgres journal needs a dsn")
	ErrInvalidMetrics      = errors.New("metrics must be prometheus or otel")
	ErrInvalidLogLevel     = errors.New("log level must be debug, info, warn or error")
	ErrNonPositiveSetting  = errors.New("setting must be positive")
	ErrInvalidEnvironment  = errors.New("invalid environment value")
	ErrParsingFlagsFailed  = errors.New("parsing flags failed")
	ErrNegativeMaxBorrowed = errors.New("max borrowed books must not be negative")
)

// Config is the complete simulator configuration.
type Config struct {
	Journal     string
	DBAdapter   string
	PostgresDSN string
	TableName   string
	LogLevel    string
	Metrics     string
	MetricsAddr string

	Seed        uint64
	Steps       int
	Workers     int
	Books       int
	Patrons     int
	MaxBorrowed int

	StepTimeout time.Duration
}

// Default returns the configuration used when neither environment nor flags say otherwise.
func Default() Config {
	return Config{
		Journal:     JournalMemory,
		DBAdapter:   AdapterPGX,
		TableName:   "library_journal",
		LogLevel:    "info",
		Metrics:     MetricsPrometheus,
		Seed:        1,
		Steps:       1000,
		Workers:     4,
		Books:       50,
		Patrons:     20,
		MaxBorrowed: 3,
		StepTimeout: 2 * time.Second,
	}
}

// Load resolves the configuration from getenv and the command-line args (without the program name).
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if err := cfg.applyEnvironment(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("librarysim", flag.ContinueOnError)
	fs.StringVar(&cfg.Journal, "journal", cfg.Journal, "journal engine: memory or postgres")
	fs.StringVar(&cfg.DBAdapter, "db-adapter", cfg.DBAdapter, "postgres adapter: pgx, sql or sqlx")
	fs.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "postgres connection string")
	fs.StringVar(&cfg.TableName, "table", cfg.TableName, "postgres journal table")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.Metrics, "metrics", cfg.Metrics, "metrics backend: prometheus or otel")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics and /healthz on this address, empty disables")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "number of simulated operations")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent simulation workers")
	fs.IntVar(&cfg.Books, "books", cfg.Books, "book capacity, also the number of generated books")
	fs.IntVar(&cfg.Patrons, "patrons", cfg.Patrons, "patron capacity, also the number of generated patrons")
	fs.IntVar(&cfg.MaxBorrowed, "max-borrowed", cfg.MaxBorrowed, "books a patron may hold at once")
	fs.DurationVar(&cfg.StepTimeout, "step-timeout", cfg.StepTimeout, "timeout of a single operation")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Join(ErrParsingFlagsFailed, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironment(getenv func(string) string) error {
	for env, target := range map[string]*string{
		EnvJournal:     &c.Journal,
		EnvDBAdapter:   &c.DBAdapter,
		EnvPostgresDSN: &c.PostgresDSN,
		EnvLogLevel:    &c.LogLevel,
		EnvMetrics:     &c.Metrics,
	} {
		if value := getenv(env); value != "" {
			*target = value
		}
	}

	if value := getenv(EnvSeed); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Join(ErrInvalidEnvironment, fmt.Errorf("%s: %w", EnvSeed, err))
		}

		c.Seed = seed
	}

	return nil
}

// Validate checks every setting and joins all violations into one error.
func (c Config) Validate() error {
	var errs []error

	switch c.Journal {
	case JournalMemory:
	case JournalPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, ErrMissingPostgresDSN)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidJournal, c.Journal))
	}

	switch c.DBAdapter {
	case AdapterPGX, AdapterSQL, AdapterSQLX:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDBAdapter, c.DBAdapter))
	}

	switch c.Metrics {
	case MetricsPrometheus, MetricsOTel:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMetrics, c.Metrics))
	}

	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	for name, value := range map[string]int{"steps": c.Steps, "workers": c.Workers, "books": c.Books, "patrons": c.Patrons} {
		if value <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s=%d", ErrNonPositiveSetting, name, value))
		}
	}

	if c.StepTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: step-timeout=%s", ErrNonPositiveSetting, c.StepTimeout))
	}

	if c.MaxBorrowed < 0 {
		errs = append(errs, ErrNegativeMaxBorrowed)
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return level, nil
}
