package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresengine/internal/adapters"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

type fakeRow struct {
	eventType      string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber int64
}

type fakeRows struct {
	rows []fakeRow
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	*(dest[0].(*string)) = row.eventType
	*(dest[1].(*time.Time)) = row.occurredAt
	*(dest[2].(*[]byte)) = row.payload
	*(dest[3].(*[]byte)) = row.metadata
	*(dest[4].(*int64)) = row.sequenceNumber

	return nil
}

func (r *fakeRows) Err() error   { return nil }
func (r *fakeRows) Close() error { return nil }

type fakeResult int64

func (f fakeResult) RowsAffected() (int64, error) { return int64(f), nil }

type fakeDB struct {
	rows         []fakeRow
	rowsAffected int64
	err          error
	pingErr      error
	statements   []string
}

func (f *fakeDB) Name() string { return "fake" }

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

func (f *fakeDB) Query(_ context.Context, query string) (adapters.Rows, error) {
	f.statements = append(f.statements, query)
	if f.err != nil {
		return nil, f.err
	}

	return &fakeRows{rows: f.rows}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.Result, error) {
	f.statements = append(f.statements, query)
	if f.err != nil {
		return nil, f.err
	}

	return fakeResult(f.rowsAffected), nil
}

func newTestJournal(t *testing.T, db *fakeDB, options ...Option) Journal {
	t.Helper()

	j, err := newJournal(db, options...)
	require.NoError(t, err)

	return j
}

func borrowedFilter() journal.Filter {
	return journal.BuildFilter().
		Matching().
		AnyEventTypeOf("BookBorrowedByPatron", "BookReturnedByPatron").
		AndAllPredicatesOf(journal.P("LibraryID", "lib-1"), journal.P("PatronID", "3")).
		OrMatching().
		AnyPredicateOf(journal.P("BookID", "7")).
		Finalize()
}

func Test_BuildSelectQuery_PushesFilterDown(t *testing.T) {
	j := newTestJournal(t, &fakeDB{}, WithTableName("circulation"))

	sqlQuery, err := j.buildSelectQuery(borrowedFilter())

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "circulation"`)
	assert.Contains(t, sqlQuery, `"event_type" IN ('BookBorrowedByPatron', 'BookReturnedByPatron')`)
	assert.Contains(t, sqlQuery, `payload @> '{"LibraryID":"lib-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"PatronID":"3"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"BookID":"7"}'::jsonb`)
	assert.Contains(t, sqlQuery, ` OR `)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_EmptyFilterHasNoWhereClause(t *testing.T) {
	j := newTestJournal(t, &fakeDB{})

	sqlQuery, err := j.buildSelectQuery(journal.BuildFilter().MatchingAnyEntry())

	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "WHERE")
	assert.Contains(t, sqlQuery, `FROM "library_journal"`)
}

func Test_BuildSelectQuery_EscapesPredicateValues(t *testing.T) {
	j := newTestJournal(t, &fakeDB{})
	filter := journal.BuildFilter().Matching().AnyPredicateOf(journal.P("Title", "O'Brien")).Finalize()

	sqlQuery, err := j.buildSelectQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `'{"Title":"O''Brien"}'::jsonb`)
}

func Test_BuildAppendQuery_GuardsWithExpectedSequence(t *testing.T) {
	j := newTestJournal(t, &fakeDB{})
	occurredAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first, err := journal.BuildEntryWithEmptyMetadata("BookBorrowedByPatron", occurredAt, []byte(`{"PatronID":"3"}`))
	require.NoError(t, err)
	second, err := journal.BuildEntryWithEmptyMetadata("BookReturnedByPatron", occurredAt, []byte(`{"PatronID":"3"}`))
	require.NoError(t, err)

	sqlQuery, err := j.buildAppendQuery(journal.Entries{first, second}, borrowedFilter(), 42)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `INSERT INTO "library_journal"`)
	assert.Contains(t, sqlQuery, `MAX("sequence_number") AS "max_seq"`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 42`)
	assert.Contains(t, sqlQuery, `UNION ALL`)
	assert.Contains(t, sqlQuery, `'BookReturnedByPatron'::text`)
	assert.Contains(t, sqlQuery, `'{"PatronID":"3"}'::jsonb`)
}

func Test_Query_ScansRowsAndReportsLastSequence(t *testing.T) {
	// arrange
	now := time.Now().UTC()
	db := &fakeDB{rows: []fakeRow{
		{"BookBorrowedByPatron", now, []byte(`{"PatronID":"3"}`), []byte(`{}`), 4},
		{"BookReturnedByPatron", now, []byte(`{"PatronID":"3"}`), []byte(`{}`), 9},
	}}
	j := newTestJournal(t, db)

	// act
	entries, maxSeq, err := j.Query(context.Background(), borrowedFilter())

	// assert
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, journal.MaxSequenceNumberUint(9), maxSeq)
	assert.Len(t, db.statements, 1)
}

func Test_Query_RejectsCorruptRows(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{"X", time.Now(), []byte(`{`), []byte(`{}`), 1}}}
	j := newTestJournal(t, db)

	_, _, err := j.Query(context.Background(), journal.BuildFilter().MatchingAnyEntry())

	assert.ErrorIs(t, err, journal.ErrBuildingEntryFailed)
}

func Test_Append_ReportsConcurrencyConflictWhenNothingWasInserted(t *testing.T) {
	// arrange
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
	db := &fakeDB{rowsAffected: 0}
	j := newTestJournal(t, db, WithMetrics(metricsSpy))
	entry, err := journal.BuildEntryWithEmptyMetadata("BookBorrowedByPatron", time.Now(), []byte(`{"PatronID":"3"}`))
	require.NoError(t, err)

	// act
	err = j.Append(context.Background(), borrowedFilter(), 1, entry)

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, journal.ConcurrencyConflictsMetric, map[string]string{
		journal.LabelEngine: engineName,
	}))
}

func Test_Append_WrapsDatabaseErrors(t *testing.T) {
	logSpy := testdoubles.NewLogSpy(true)
	dbErr := errors.New("connection reset")
	j := newTestJournal(t, &fakeDB{err: dbErr}, WithLogger(logSpy))
	entry, err := journal.BuildEntryWithEmptyMetadata("X", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	err = j.Append(context.Background(), journal.BuildFilter().MatchingAnyEntry(), 0, entry)

	assert.ErrorIs(t, err, journal.ErrAppendingEntriesFailed)
	assert.ErrorIs(t, err, dbErr)
	assert.Len(t, logSpy.Records(testdoubles.LevelError), 1)
}

func Test_Append_Succeeds(t *testing.T) {
	db := &fakeDB{rowsAffected: 1}
	j := newTestJournal(t, db)
	entry, err := journal.BuildEntryWithEmptyMetadata("X", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	assert.NoError(t, j.Append(context.Background(), journal.BuildFilter().MatchingAnyEntry(), 0, entry))
}

func Test_CreateTableIfNotExists_QuotesIdentifiers(t *testing.T) {
	db := &fakeDB{}
	j := newTestJournal(t, db, WithTableName("circulation"))

	require.NoError(t, j.CreateTableIfNotExists(context.Background()))

	require.Len(t, db.statements, 1)
	assert.Contains(t, db.statements[0], `CREATE TABLE IF NOT EXISTS "circulation"`)
	assert.Contains(t, db.statements[0], `"circulation_payload_idx"`)
}

func Test_Constructors_RejectInvalidInput(t *testing.T) {
	_, err := NewFromPGXPool(nil)
	assert.ErrorIs(t, err, journal.ErrNilDatabaseConnection)

	_, err = NewFromSQLDB(nil)
	assert.ErrorIs(t, err, journal.ErrNilDatabaseConnection)

	_, err = NewFromSQLX(nil)
	assert.ErrorIs(t, err, journal.ErrNilDatabaseConnection)

	_, err = newJournal(&fakeDB{}, WithTableName(""))
	assert.ErrorIs(t, err, journal.ErrEmptyTableName)
}

func Test_Ping_WrapsDriverError(t *testing.T) {
	// arrange
	driverErr := errors.New("connection refused")
	j := newTestJournal(t, &fakeDB{pingErr: driverErr})

	// act
	err := j.Ping(context.Background())

	// assert
	assert.ErrorIs(t, err, journal.ErrPingingDatabaseFailed)
	assert.ErrorIs(t, err, driverErr)
}

func Test_Ping_ReachableDatabase(t *testing.T) {
	// arrange
	db := &fakeDB{}
	j := newTestJournal(t, db)

	// act
	err := j.Ping(context.Background())

	// assert
	assert.NoError(t, err)
	assert.Empty(t, db.statements)
	assert.Equal(t, "fake", j.Adapter())
}
