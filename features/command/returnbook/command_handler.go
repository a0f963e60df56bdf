package returnbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// CommandHandler decides on the guarded library and journals the outcome.
type CommandHandler struct {
	library      *shell.GuardedLibrary
	journal      shell.Journal
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the journal append.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(lib *shell.GuardedLibrary, j shell.Journal, opts ...Option) CommandHandler {
	handler := CommandHandler{
		library: lib,
		journal: j,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle takes the book back and journals BookReturnedByPatron.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := ctx.Err(); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var result core.DecisionResult
	var retryMetrics shell.RetryMetrics

	journalErr := h.library.Do(func(lib *library.Library) error {
		result = Decide(lib, h.library.ID(), command)
		if result.IsIdempotent() {
			return nil
		}

		var err error
		retryMetrics, err = shell.AppendToJournal(
			ctx,
			h.journal,
			BuildJournalFilter(h.library.ID(), command.BookID),
			result.Event,
			shell.NewEventMetadata(),
			h.retryOptions...,
		)

		return err
	})

	if journalErr != nil {
		return shell.NewErrorResult(retryMetrics), journalErr
	}

	if result.IsIdempotent() {
		return shell.NewIdempotentResult(shell.RetryMetrics{}), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// BuildJournalFilter selects the circulation stream of one book, the same stream borrowbook appends to.
func BuildJournalFilter(libraryID uuid.UUID, bookID int) journal.Filter {
	return journal.BuildFilter().
		Matching().
		AnyEventTypeOf(
			core.BookBorrowedByPatronEventType,
			core.BorrowingBookFailedEventType,
			core.BookReturnedByPatronEventType,
		).
		AndAllPredicatesOf(
			journal.P(shell.LibraryIDPredicateKey, core.ToLibraryID(libraryID)),
			journal.P("BookID", core.ToBookID(bookID)),
		).
		Finalize()
}
