package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// LibraryIDPredicateKey is the payload field every domain event carries its library id in.
const LibraryIDPredicateKey = "LibraryID"

// LibraryFilter matches every entry of one library.
func LibraryFilter(libraryID uuid.UUID) journal.Filter {
	return journal.BuildFilter().
		Matching().
		AnyPredicateOf(journal.P(LibraryIDPredicateKey, core.ToLibraryID(libraryID))).
		Finalize()
}

// AppendToJournal journals event on the stream selected by filter. Each attempt reads the
// current max sequence number of the stream and appends against it; concurrency conflicts
// are retried with exponential backoff.
//
// The optimistic check guards against other writers of the same journal. Handlers call it
// inside GuardedLibrary.Do so that entries of one library are appended in decision order.
func AppendToJournal(
	ctx context.Context,
	j Journal,
	filter journal.Filter,
	event core.DomainEvent,
	metadata EventMetadata,
	options ...RetryOption,
) (RetryMetrics, error) {

	entry, err := EntryFrom(event, metadata)
	if err != nil {
		return RetryMetrics{LastErrorType: ErrorTypeFor(err)}, err
	}

	return RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			_, maxSequenceNumber, queryErr := j.Query(ctx, filter)
			if queryErr != nil {
				return queryErr
			}

			return j.Append(ctx, filter, maxSequenceNumber, entry)
		},
		options...,
	)
}
