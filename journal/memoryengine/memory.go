package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

const engineName = "memory"

type storedEntry struct {
	entry          journal.Entry
	sequenceNumber journal.MaxSequenceNumberUint
	payloadFields  map[string]string
}

// Journal is an in-memory journal engine. The zero value is not usable, use New.
type Journal struct {
	mu              sync.RWMutex
	entries         []storedEntry
	instrumentation journal.Instrumentation
}

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
func WithLogger(logger journal.Logger) Option {
	return func(j *Journal) error {
		j.instrumentation.Logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Journal.
func WithContextualLogger(logger journal.ContextualLogger) Option {
	return func(j *Journal) error {
		j.instrumentation.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
func WithMetrics(collector journal.MetricsCollector) Option {
	return func(j *Journal) error {
		j.instrumentation.Metrics = collector
		return nil
	}
}

// New creates an empty Journal.
func New(options ...Option) (*Journal, error) {
	j := &Journal{
		instrumentation: journal.Instrumentation{Engine: engineName},
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Query returns the entries matching filter in append order,
// plus the highest sequence number among them (0 if none match).
func (j *Journal) Query(ctx context.Context, filter journal.Filter) (
	journal.Entries,
	journal.MaxSequenceNumberUint,
	error,
) {

	start := time.Now()

	if err := ctx.Err(); err != nil {
		j.instrumentation.OperationFailed(ctx, journal.OperationQuery, err, 0, time.Since(start))
		return nil, 0, errors.Join(journal.ErrQueryingEntriesFailed, err)
	}

	j.mu.RLock()
	entries, maxSequenceNumber := j.matching(filter)
	j.mu.RUnlock()

	j.instrumentation.QuerySucceeded(ctx, len(entries), maxSequenceNumber, time.Since(start))

	return entries, maxSequenceNumber, nil
}

// Append appends entries atomically if the highest sequence number matching filter is still
// expectedMaxSequenceNumber, otherwise it returns journal.ErrConcurrencyConflict and appends nothing.
func (j *Journal) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	entry journal.Entry,
	additionalEntries ...journal.Entry,
) error {

	start := time.Now()
	allEntries := append(journal.Entries{entry}, additionalEntries...)

	if err := ctx.Err(); err != nil {
		j.instrumentation.OperationFailed(ctx, journal.OperationAppend, err, expectedMaxSequenceNumber, time.Since(start))
		return errors.Join(journal.ErrAppendingEntriesFailed, err)
	}

	toStore := make([]storedEntry, 0, len(allEntries))
	for _, e := range allEntries {
		fields, err := journal.PayloadFields(e.PayloadJSON)
		if err != nil {
			j.instrumentation.OperationFailed(ctx, journal.OperationAppend, err, expectedMaxSequenceNumber, time.Since(start))
			return errors.Join(journal.ErrAppendingEntriesFailed, err)
		}

		toStore = append(toStore, storedEntry{entry: cloneEntry(e), payloadFields: fields})
	}

	j.mu.Lock()

	if _, current := j.matching(filter); current != expectedMaxSequenceNumber {
		j.mu.Unlock()
		j.instrumentation.OperationFailed(
			ctx,
			journal.OperationAppend,
			journal.ErrConcurrencyConflict,
			expectedMaxSequenceNumber,
			time.Since(start),
		)

		return journal.ErrConcurrencyConflict
	}

	next := journal.MaxSequenceNumberUint(len(j.entries))
	for i := range toStore {
		next++
		toStore[i].sequenceNumber = next
	}

	j.entries = append(j.entries, toStore...)
	j.mu.Unlock()

	j.instrumentation.AppendSucceeded(ctx, len(toStore), time.Since(start))

	return nil
}

// Len returns the number of journaled entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}

// matching must be called with the lock held.
func (j *Journal) matching(filter journal.Filter) (journal.Entries, journal.MaxSequenceNumberUint) {
	entries := make(journal.Entries, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for _, stored := range j.entries {
		if !filter.Matches(stored.entry.EventType, stored.payloadFields) {
			continue
		}

		entries = append(entries, cloneEntry(stored.entry))
		maxSequenceNumber = stored.sequenceNumber
	}

	return entries, maxSequenceNumber
}

func cloneEntry(e journal.Entry) journal.Entry {
	e.PayloadJSON = slices.Clone(e.PayloadJSON)
	e.MetadataJSON = slices.Clone(e.MetadataJSON)

	return e
}
