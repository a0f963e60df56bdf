package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresengine/internal/adapters"
)

const (
	engineName          = "postgres"
	defaultTableName    = "library_journal"
	colSequenceNumber   = "sequence_number"
	colOccurredAt       = "occurred_at"
	colEventType        = "event_type"
	colPayload          = "payload"
	colMetadata         = "metadata"
	cteContext          = "context"
	cteVals             = "vals"
	dialectPostgres     = "postgres"
	aliasMaxSeq         = "max_seq"
	castText            = "?::text"
	castTimestamp       = "?::timestamp with time zone"
	castJsonb           = "?::jsonb"
	payloadContains     = colPayload + " @> ?::jsonb"
	operationCreateDDL  = "create table"
	createTableTemplate = `CREATE TABLE IF NOT EXISTS %[1]s (
	sequence_number bigserial PRIMARY KEY,
	occurred_at timestamp with time zone NOT NULL,
	event_type text NOT NULL,
	payload jsonb NOT NULL,
	metadata jsonb NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (event_type);
CREATE INDEX IF NOT EXISTS %[3]s ON %[1]s USING gin (payload jsonb_path_ops);`
)

type sqlQueryString = string

// Journal is a PostgreSQL journal engine.
type Journal struct {
	db              adapters.Conn
	tableName       string
	instrumentation journal.Instrumentation
}

// NewFromPGXPool creates a Journal on a pgx pool.
func NewFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXConn(db), options...)
}

// NewFromSQLDB creates a Journal on a sql.DB.
func NewFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLConn(db), options...)
}

// NewFromSQLX creates a Journal on a sqlx.DB.
func NewFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, journal.ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXConn(db), options...)
}

func newJournal(db adapters.Conn, options ...Option) (Journal, error) {
	j := Journal{
		db:              db,
		tableName:       defaultTableName,
		instrumentation: journal.Instrumentation{Engine: engineName},
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// TableName returns the configured table name.
func (j Journal) TableName() string {
	return j.tableName
}

// Adapter names the driver stack the journal runs on: "pgx", "sql" or "sqlx".
func (j Journal) Adapter() string {
	return j.db.Name()
}

// Ping checks that the database is reachable.
func (j Journal) Ping(ctx context.Context) error {
	if err := j.db.Ping(ctx); err != nil {
		return errors.Join(journal.ErrPingingDatabaseFailed, err)
	}

	return nil
}

// CreateTableIfNotExists creates the journal table and its indexes.
func (j Journal) CreateTableIfNotExists(ctx context.Context) error {
	table := pgx.Identifier{j.tableName}.Sanitize()
	eventTypeIndex := pgx.Identifier{j.tableName + "_event_type_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{j.tableName + "_payload_idx"}.Sanitize()
	ddl := fmt.Sprintf(createTableTemplate, table, eventTypeIndex, payloadIndex)

	start := time.Now()
	_, err := j.db.Exec(ctx, ddl)
	j.instrumentation.StatementExecuted(ctx, operationCreateDDL, ddl, time.Since(start))

	if err != nil {
		return errors.Join(journal.ErrCreatingTableFailed, err)
	}

	return nil
}

// Query returns the entries matching filter ordered by sequence number,
// plus the highest sequence number among them (0 if none match).
func (j Journal) Query(ctx context.Context, filter journal.Filter) (
	journal.Entries,
	journal.MaxSequenceNumberUint,
	error,
) {

	start := time.Now()

	fail := func(err error) (journal.Entries, journal.MaxSequenceNumberUint, error) {
		j.instrumentation.OperationFailed(ctx, journal.OperationQuery, err, 0, time.Since(start))
		return nil, 0, err
	}

	sqlQuery, buildErr := j.buildSelectQuery(filter)
	if buildErr != nil {
		return fail(buildErr)
	}

	rows, queryErr := j.db.Query(ctx, sqlQuery)
	j.instrumentation.StatementExecuted(ctx, journal.OperationQuery, sqlQuery, time.Since(start))

	if queryErr != nil {
		return fail(errors.Join(journal.ErrQueryingEntriesFailed, queryErr))
	}

	entries, maxSequenceNumber, scanErr := j.scanRows(rows)
	if scanErr != nil {
		return fail(scanErr)
	}

	j.instrumentation.QuerySucceeded(ctx, len(entries), maxSequenceNumber, time.Since(start))

	return entries, maxSequenceNumber, nil
}

func (j Journal) scanRows(rows adapters.Rows) (
	entries journal.Entries,
	maxSequenceNumber journal.MaxSequenceNumberUint,
	err error,
) {

	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = errors.Join(journal.ErrQueryingEntriesFailed, closeErr)
		}
	}()

	entries = make(journal.Entries, 0)

	var (
		eventType      string
		occurredAt     time.Time
		payload        []byte
		metadata       []byte
		sequenceNumber int64
	)

	for rows.Next() {
		if scanErr := rows.Scan(&eventType, &occurredAt, &payload, &metadata, &sequenceNumber); scanErr != nil {
			return nil, 0, errors.Join(journal.ErrScanningRowFailed, scanErr)
		}

		entry, buildErr := journal.BuildEntry(eventType, occurredAt, payload, metadata)
		if buildErr != nil {
			return nil, 0, errors.Join(journal.ErrBuildingEntryFailed, buildErr)
		}

		entries = append(entries, entry)
		maxSequenceNumber = journal.MaxSequenceNumberUint(sequenceNumber)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, errors.Join(journal.ErrQueryingEntriesFailed, rowsErr)
	}

	return entries, maxSequenceNumber, nil
}

// Append appends entries atomically if the highest sequence number matching filter is still
// expectedMaxSequenceNumber, otherwise it returns journal.ErrConcurrencyConflict and appends nothing.
//
// The filter should be the one used for the Query the decision was based on.
func (j Journal) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	entry journal.Entry,
	additionalEntries ...journal.Entry,
) error {

	start := time.Now()
	allEntries := append(journal.Entries{entry}, additionalEntries...)

	fail := func(err error) error {
		j.instrumentation.OperationFailed(ctx, journal.OperationAppend, err, expectedMaxSequenceNumber, time.Since(start))
		return err
	}

	sqlQuery, buildErr := j.buildAppendQuery(allEntries, filter, expectedMaxSequenceNumber)
	if buildErr != nil {
		return fail(buildErr)
	}

	result, execErr := j.db.Exec(ctx, sqlQuery)
	j.instrumentation.StatementExecuted(ctx, journal.OperationAppend, sqlQuery, time.Since(start))

	if execErr != nil {
		return fail(errors.Join(journal.ErrAppendingEntriesFailed, execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return fail(errors.Join(journal.ErrGettingRowsAffectedFailed, rowsAffectedErr))
	}

	if rowsAffected < int64(len(allEntries)) {
		return fail(journal.ErrConcurrencyConflict)
	}

	j.instrumentation.AppendSucceeded(ctx, len(allEntries), time.Since(start))

	return nil
}

func (j Journal) buildSelectQuery(filter journal.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt, whereErr := j.addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// buildAppendQuery builds an INSERT ... SELECT that only yields rows while the
// max sequence number of the filtered stream equals expectedMaxSequenceNumber.
func (j Journal) buildAppendQuery(
	entries journal.Entries,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt := builder.
		From(j.tableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq))

	cteStmt, whereErr := j.addWhereClause(filter, cteStmt)
	if whereErr != nil {
		return "", whereErr
	}

	var valuesStmt *goqu.SelectDataset
	for _, entry := range entries {
		row := builder.Select(
			goqu.L(castText, entry.EventType).As(colEventType),
			goqu.L(castTimestamp, entry.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(entry.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(entry.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = row
			continue
		}

		valuesStmt = valuesStmt.UnionAll(row)
	}

	insertStmt := builder.
		Insert(j.tableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.I(cteVals+"."+colEventType),
					goqu.I(cteVals+"."+colOccurredAt),
					goqu.I(cteVals+"."+colPayload),
					goqu.I(cteVals+"."+colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(journal.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) addWhereClause(filter journal.Filter, selectStmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	itemExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		parts := make([]exp.Expression, 0, 2)

		if len(item.EventTypes()) > 0 {
			parts = append(parts, goqu.C(colEventType).In(item.EventTypes()))
		}

		if len(item.Predicates()) > 0 {
			predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))

			for _, predicate := range item.Predicates() {
				containment, marshalErr := jsoniter.ConfigFastest.MarshalToString(
					map[string]string{predicate.Key(): predicate.Val()},
				)
				if marshalErr != nil {
					return nil, errors.Join(journal.ErrBuildingQueryFailed, marshalErr)
				}

				predicateExpressions = append(predicateExpressions, goqu.L(payloadContains, containment))
			}

			if item.AllPredicatesMustMatch() {
				parts = append(parts, goqu.And(predicateExpressions...))
			} else {
				parts = append(parts, goqu.Or(predicateExpressions...))
			}
		}

		if len(parts) > 0 {
			itemExpressions = append(itemExpressions, goqu.And(parts...))
		}
	}

	if len(itemExpressions) == 0 {
		return selectStmt, nil
	}

	return selectStmt.Where(goqu.Or(itemExpressions...)), nil
}
