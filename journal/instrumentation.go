package journal

import (
	"context"
	"errors"
	"math"
	"time"
)

const (
	logMsgQueryCompleted      = "journal operation: query completed"
	logMsgEntriesAppended     = "journal operation: entries appended"
	logMsgConcurrencyConflict = "journal operation: concurrency conflict detected"
	logMsgOperationFailed     = "journal operation failed"
	logMsgStatementExecuted   = "executed statement for: "
	logAttrEngine             = "engine"
	logAttrOperation          = "operation"
	logAttrError              = "error"
	logAttrErrorType          = "error_type"
	logAttrEntryCount         = "entry_count"
	logAttrMaxSequence        = "max_sequence"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrDurationMS         = "duration_ms"
	logAttrStatement          = "statement"
	labelStatus               = "status"
	labelErrorType            = "error_type"
	statusSuccess             = "success"
	statusError               = "error"
)

const (
	// ErrorTypeConcurrencyConflict classifies a rejected append.
	ErrorTypeConcurrencyConflict = "concurrency_conflict"

	// ErrorTypeCanceled classifies an operation aborted by context cancellation.
	ErrorTypeCanceled = "canceled"

	// ErrorTypeTimeout classifies an operation aborted by a context deadline.
	ErrorTypeTimeout = "timeout"

	// ErrorTypeStorage classifies every other failure.
	ErrorTypeStorage = "storage_error"
)

// Instrumentation bundles the optional observability hooks of an engine.
// Every hook may be nil; the zero value does nothing.
type Instrumentation struct {
	Engine           string
	Logger           Logger
	ContextualLogger ContextualLogger
	Metrics          MetricsCollector
}

// ClassifyError maps an engine error to one of the ErrorType constants.
func ClassifyError(err error) string {
	switch {
	case errors.Is(err, ErrConcurrencyConflict):
		return ErrorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	default:
		return ErrorTypeStorage
	}
}

// StatementExecuted logs a storage statement with its timing at debug level.
func (in Instrumentation) StatementExecuted(ctx context.Context, operation string, statement string, duration time.Duration) {
	args := []any{logAttrDurationMS, DurationToMilliseconds(duration), logAttrStatement, statement}

	if in.Logger != nil {
		in.Logger.Debug(logMsgStatementExecuted+operation, args...)
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.DebugContext(ctx, logMsgStatementExecuted+operation, args...)
	}
}

// QuerySucceeded records a successful query.
func (in Instrumentation) QuerySucceeded(
	ctx context.Context,
	entryCount int,
	maxSequenceNumber MaxSequenceNumberUint,
	duration time.Duration,
) {

	args := []any{
		logAttrEngine, in.Engine,
		logAttrEntryCount, entryCount,
		logAttrMaxSequence, maxSequenceNumber,
		logAttrDurationMS, DurationToMilliseconds(duration),
	}

	in.info(ctx, logMsgQueryCompleted, args...)

	if in.Metrics != nil {
		labels := in.labels(OperationQuery, statusSuccess)
		in.Metrics.RecordDuration(QueryDurationMetric, duration, labels)
		in.Metrics.RecordValue(EntriesQueriedMetric, float64(entryCount), labels)
	}
}

// AppendSucceeded records a successful append.
func (in Instrumentation) AppendSucceeded(ctx context.Context, entryCount int, duration time.Duration) {
	in.info(
		ctx,
		logMsgEntriesAppended,
		logAttrEngine, in.Engine,
		logAttrEntryCount, entryCount,
		logAttrDurationMS, DurationToMilliseconds(duration),
	)

	if in.Metrics != nil {
		labels := in.labels(OperationAppend, statusSuccess)
		in.Metrics.RecordDuration(AppendDurationMetric, duration, labels)
		for range entryCount {
			in.Metrics.IncrementCounter(EntriesAppendedMetric, labels)
		}
	}
}

// OperationFailed records a failed query or append. Concurrency conflicts are logged at info level
// since they are an expected outcome of optimistic concurrency.
func (in Instrumentation) OperationFailed(
	ctx context.Context,
	operation string,
	err error,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
	duration time.Duration,
) {

	errorType := ClassifyError(err)

	if errorType == ErrorTypeConcurrencyConflict {
		in.info(
			ctx,
			logMsgConcurrencyConflict,
			logAttrEngine, in.Engine,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrDurationMS, DurationToMilliseconds(duration),
		)
	} else {
		args := []any{
			logAttrEngine, in.Engine,
			logAttrOperation, operation,
			logAttrErrorType, errorType,
			logAttrError, err.Error(),
		}

		if in.Logger != nil {
			in.Logger.Error(logMsgOperationFailed, args...)
		}

		if in.ContextualLogger != nil {
			in.ContextualLogger.ErrorContext(ctx, logMsgOperationFailed, args...)
		}
	}

	if in.Metrics == nil {
		return
	}

	labels := in.labels(operation, statusError)

	switch operation {
	case OperationAppend:
		in.Metrics.RecordDuration(AppendDurationMetric, duration, labels)
	default:
		in.Metrics.RecordDuration(QueryDurationMetric, duration, labels)
	}

	if errorType == ErrorTypeConcurrencyConflict {
		in.Metrics.IncrementCounter(ConcurrencyConflictsMetric, in.labels(operation, statusError))
		return
	}

	errorLabels := in.labels(operation, statusError)
	errorLabels[labelErrorType] = errorType
	in.Metrics.IncrementCounter(ErrorsMetric, errorLabels)
}

func (in Instrumentation) info(ctx context.Context, msg string, args ...any) {
	if in.Logger != nil {
		in.Logger.Info(msg, args...)
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (in Instrumentation) labels(operation string, status string) map[string]string {
	return map[string]string{
		LabelOperation: operation,
		LabelEngine:    in.Engine,
		labelStatus:    status,
	}
}

// DurationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func DurationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
