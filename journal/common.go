package journal

import (
	"errors"
)

var (
	// ErrEmptyTableName is returned when an engine is configured with an empty table name.
	ErrEmptyTableName = errors.New("empty journal table name supplied")

	// ErrNilDatabaseConnection is returned when an engine is constructed with a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrConcurrencyConflict is returned by Append when the filtered stream moved since it was queried.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no entries were appended")

	// ErrQueryingEntriesFailed is returned when the journal could not be queried.
	ErrQueryingEntriesFailed = errors.New("querying journal entries failed")

	// ErrAppendingEntriesFailed is returned when entries could not be written.
	ErrAppendingEntriesFailed = errors.New("appending journal entries failed")

	// ErrBuildingQueryFailed is returned when a query could not be built.
	ErrBuildingQueryFailed = errors.New("building journal query failed")

	// ErrScanningRowFailed is returned when a stored row could not be read.
	ErrScanningRowFailed = errors.New("scanning journal row failed")

	// ErrGettingRowsAffectedFailed is returned when the rows affected by an append are unknown.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")

	// ErrPingingDatabaseFailed is returned when the database does not answer a ping.
	ErrPingingDatabaseFailed = errors.New("pinging journal database failed")

	// ErrCreatingTableFailed is returned when the journal table could not be created.
	ErrCreatingTableFailed = errors.New("creating journal table failed")

	// ErrBuildingEntryFailed is returned when a stored row does not form a valid Entry.
	ErrBuildingEntryFailed = errors.New("building entry from stored row failed")
)

// MaxSequenceNumberUint is the highest sequence number among the entries matching a Filter.
type MaxSequenceNumberUint = uint
