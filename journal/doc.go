// Package journal provides the append-only circulation journal: an audit trail of
// the domain events produced while operating a library.
//
// This package defines the engine-agnostic types shared by all journal engines:
//   - Entry: a journaled event as scalars and JSON
//   - Filter: criteria for querying entries
//   - Logger, ContextualLogger, MetricsCollector: dependency-free observability hooks
//
// A Filter matches entries by event type and by top-level string fields of the JSON payload:
//
//	filter := journal.BuildFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookBorrowedByPatronEventType,
//			core.BookReturnedByPatronEventType).
//		AndAllPredicatesOf(
//			journal.P("LibraryID", libraryID.String()),
//			journal.P("PatronID", "3")).
//		Finalize()
//
//	entries, maxSeq, err := engine.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	entry, err := journal.BuildEntry(eventType, time.Now(), payload, metadata)
//	err = engine.Append(ctx, filter, maxSeq, entry)
//
// Append is guarded by optimistic concurrency: it fails with ErrConcurrencyConflict if
// another entry matching the same filter was appended after the Query.
//
// The journal is never used to rebuild a library; it only records what happened.
package journal
