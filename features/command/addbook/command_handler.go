package addbook

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// ErrMissingBook is returned for a command without a book.
var ErrMissingBook = errors.New("add book command carries no book")

// CommandHandler decides on the guarded library and journals the outcome.
// External wrappers handle all observability concerns.
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

// Handle admits the book and journals BookAddedToLibrary or AddingBookToLibraryFailed.
// The result carries the assigned book id, library.NoID on failure.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.Book == nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), ErrMissingBook
	}

	if err := ctx.Err(); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var result core.DecisionResult
	var bookID int
	var retryMetrics shell.RetryMetrics

	journalErr := h.library.Do(func(lib *library.Library) error {
		result, bookID = Decide(lib, h.library.ID(), command)
		if result.IsIdempotent() {
			return nil
		}

		var err error
		retryMetrics, err = shell.AppendToJournal(
			ctx,
			h.journal,
			BuildJournalFilter(h.library.ID()),
			result.Event,
			shell.NewEventMetadata(),
			h.retryOptions...,
		)

		return err
	})

	if journalErr != nil {
		return shell.NewErrorResult(retryMetrics).WithAssignedID(bookID), journalErr
	}

	if result.IsIdempotent() {
		return shell.NewIdempotentResult(shell.RetryMetrics{}).WithAssignedID(bookID), nil
	}

	if decisionErr := result.HasError(); decisionErr != nil {
		return shell.NewErrorResult(retryMetrics), decisionErr
	}

	return shell.NewSuccessResult(retryMetrics).WithAssignedID(bookID), nil
}

// BuildJournalFilter selects the admission stream of one library. Slots are allocated
// library-wide, so all admissions share one stream.
func BuildJournalFilter(libraryID uuid.UUID) journal.Filter {
	return journal.BuildFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToLibraryEventType,
			core.AddingBookToLibraryFailedEventType,
		).
		AndAnyPredicateOf(
			journal.P(shell.LibraryIDPredicateKey, core.ToLibraryID(libraryID)),
		).
		Finalize()
}
