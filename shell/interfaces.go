package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// Command is implemented by all command types. CommandType must work on the zero value,
// since the observable wrapper reads it from there.
type Command interface {
	CommandType() string
}

// Query is implemented by all query types. QueryType must work on the zero value.
type Query interface {
	QueryType() string
}

// CommandHandler processes a command. The HandlerResult carries the business outcome
// (idempotency, assigned id) and the retry metadata of the journal append.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// QueryHandler processes a query and returns its result.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Journal is what handlers need from a journal engine.
type Journal interface {
	Query(ctx context.Context, filter journal.Filter) (journal.Entries, journal.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter journal.Filter,
		expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
		entry journal.Entry,
		additionalEntries ...journal.Entry,
	) error
}

// Logger interface for basic logging. *slog.Logger satisfies it.
type Logger = journal.Logger

// ContextualLogger interface for context-aware logging. *slog.Logger satisfies it.
type ContextualLogger = journal.ContextualLogger

// MetricsCollector interface for recording handler metrics.
type MetricsCollector = journal.MetricsCollector

// SpanContext represents an active tracing span.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector starts and finishes tracing spans. It keeps the shell free of any tracing SDK.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}
