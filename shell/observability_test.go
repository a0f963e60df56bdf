package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

func Test_StatusForError(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{context.Canceled, shell.StatusCanceled},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), shell.StatusTimeout},
		{journal.ErrConcurrencyConflict, shell.StatusConcurrencyConflict},
		{fmt.Errorf("borrow book 1: %w", library.ErrBorrowLimitReached), shell.StatusRejected},
		{errors.New("disk full"), shell.StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, shell.StatusForError(tt.err))
		})
	}
}

func Test_RecordCommandMetrics_CountsStatusSeparately(t *testing.T) {
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	shell.RecordCommandMetrics(metricsSpy, "BorrowBook", shell.StatusRejected, time.Millisecond)
	shell.RecordCommandMetrics(metricsSpy, "BorrowBook", shell.StatusSuccess, time.Millisecond)
	shell.RecordCommandMetrics(nil, "BorrowBook", shell.StatusSuccess, time.Millisecond)

	assert.Len(t, metricsSpy.Records(shell.CommandHandlerCallsMetric), 2)
	assert.Len(t, metricsSpy.Records(shell.CommandHandlerRejectedMetric), 1)
	assert.Empty(t, metricsSpy.Records(shell.CommandHandlerIdempotentMetric))
}

func Test_LogHelpers_PreferContextualLogger(t *testing.T) {
	plain := testdoubles.NewLogSpy(true)
	contextual := testdoubles.NewLogSpy(true)

	shell.LogCommandStart(context.Background(), plain, contextual, "AddBook")
	shell.LogQueryError(context.Background(), plain, nil, "SuggestBook", errors.New("boom"))

	assert.True(t, contextual.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandStarted))
	assert.False(t, plain.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandStarted))
	assert.True(t, plain.HasLog(testdoubles.LevelError, shell.LogMsgQueryFailed))
}

func Test_Spans(t *testing.T) {
	tracingSpy := testdoubles.NewTracingCollectorSpy(true)

	_, span := shell.StartCommandSpan(context.Background(), tracingSpy, "ReturnBook")
	shell.FinishSpan(tracingSpy, span, shell.StatusError, 2*time.Millisecond, errors.New("boom"))

	record, ok := tracingSpy.SpanNamed(shell.SpanNameCommandHandle)
	assert.True(t, ok)
	assert.True(t, record.Finished)
	assert.Equal(t, "ReturnBook", record.StartAttributes[shell.LogAttrCommandType])
	assert.Equal(t, "boom", record.EndAttributes[shell.LogAttrError])
	assert.Equal(t, "2.00", record.EndAttributes[shell.LogAttrDurationMS])

	ctx, nilSpan := shell.StartQuerySpan(context.Background(), nil, "SuggestBook")
	assert.NotNil(t, ctx)
	assert.Nil(t, nilSpan)
}
