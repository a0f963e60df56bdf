package observable_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

const testCommandType = "TestCommand"

type testCommand struct{ value int }

func (testCommand) CommandType() string { return testCommandType }

type testQuery struct{}

func (testQuery) QueryType() string { return "TestQuery" }

type commandHandlerStub struct {
	result shell.HandlerResult
	err    error
	calls  []testCommand
	mu     sync.Mutex
}

func (h *commandHandlerStub) Handle(_ context.Context, command testCommand) (shell.HandlerResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

type queryHandlerStub struct {
	result int
	err    error
}

func (h queryHandlerStub) Handle(_ context.Context, _ testQuery) (int, error) {
	return h.result, h.err
}

func commandLabels(status string) map[string]string {
	return map[string]string{shell.LogAttrCommandType: testCommandType, shell.LogAttrStatus: status}
}

func Test_NewCommandWrapper_RejectsNilCollaborators(t *testing.T) {
	_, err := observable.NewCommandWrapper[testCommand](nil)
	assert.ErrorIs(t, err, observable.ErrNilHandler)

	_, err = observable.NewCommandWrapper[testCommand](
		&commandHandlerStub{},
		observable.WithCommandMetrics[testCommand](nil),
	)
	assert.ErrorIs(t, err, observable.ErrNilMetricsCollector)

	_, err = observable.NewCommandWrapper[testCommand](
		&commandHandlerStub{},
		observable.WithCommandLogging[testCommand](nil),
	)
	assert.ErrorIs(t, err, observable.ErrNilLogger)
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	handler := &commandHandlerStub{result: shell.NewSuccessResult(shell.RetryMetrics{Attempts: 1}).WithAssignedID(3)}
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
	tracingSpy := testdoubles.NewTracingCollectorSpy(true)
	logSpy := testdoubles.NewLogSpy(true)

	wrapper, err := observable.NewCommandWrapper[testCommand](
		handler,
		observable.WithCommandMetrics[testCommand](metricsSpy),
		observable.WithCommandTracing[testCommand](tracingSpy),
		observable.WithCommandContextualLogging[testCommand](logSpy),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), testCommand{value: 7})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.AssignedID)
	assert.Equal(t, []testCommand{{value: 7}}, handler.calls)

	assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, shell.CommandHandlerCallsMetric, commandLabels(shell.StatusSuccess)))
	assert.True(t, metricsSpy.HasRecord(testdoubles.KindDuration, shell.CommandHandlerDurationMetric, commandLabels(shell.StatusSuccess)))
	assert.Empty(t, metricsSpy.Records(shell.CommandHandlerRetriesMetric))

	span, ok := tracingSpy.SpanNamed(shell.SpanNameCommandHandle)
	require.True(t, ok)
	assert.Equal(t, shell.StatusSuccess, span.Status)

	assert.True(t, logSpy.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandStarted))
	assert.True(t, logSpy.HasLog(testdoubles.LevelInfo, shell.LogMsgCommandCompleted))
}

func Test_CommandWrapper_Handle_Idempotent(t *testing.T) {
	// arrange
	handler := &commandHandlerStub{result: shell.NewIdempotentResult(shell.RetryMetrics{})}
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[testCommand](handler, observable.WithCommandMetrics[testCommand](metricsSpy))
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, shell.CommandHandlerIdempotentMetric, commandLabels(shell.StatusIdempotent)))
}

func Test_CommandWrapper_Handle_RecordsRetryMetadata(t *testing.T) {
	// arrange
	handler := &commandHandlerStub{result: shell.NewSuccessResult(shell.RetryMetrics{
		Attempts:      3,
		TotalDelay:    15 * time.Millisecond,
		LastErrorType: shell.ErrorTypeNone,
	})}
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[testCommand](handler, observable.WithCommandMetrics[testCommand](metricsSpy))
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, shell.CommandHandlerRetriesMetric,
		map[string]string{shell.LabelAttemptNumber: "2"}))

	delays := metricsSpy.Records(shell.CommandHandlerRetryDelayMetric)
	require.Len(t, delays, 1)
	assert.Equal(t, 15*time.Millisecond, delays[0].Duration)
}

func Test_CommandWrapper_Handle_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		status        string
		statusMetric  string
		expectedLevel string
		expectedMsg   string
	}{
		{
			name:          "rejected by library rule",
			err:           fmt.Errorf("borrow book 1: %w", library.ErrBookNotAvailable),
			status:        shell.StatusRejected,
			statusMetric:  shell.CommandHandlerRejectedMetric,
			expectedLevel: testdoubles.LevelInfo,
			expectedMsg:   shell.LogMsgCommandRejected,
		},
		{
			name:          "concurrency conflict",
			err:           journal.ErrConcurrencyConflict,
			status:        shell.StatusConcurrencyConflict,
			statusMetric:  shell.CommandHandlerConcurrencyConflictMetric,
			expectedLevel: testdoubles.LevelError,
			expectedMsg:   shell.LogMsgCommandFailed,
		},
		{
			name:          "canceled",
			err:           context.Canceled,
			status:        shell.StatusCanceled,
			statusMetric:  shell.CommandHandlerCanceledMetric,
			expectedLevel: testdoubles.LevelError,
			expectedMsg:   shell.LogMsgCommandFailed,
		},
		{
			name:          "timeout",
			err:           context.DeadlineExceeded,
			status:        shell.StatusTimeout,
			statusMetric:  shell.CommandHandlerTimeoutMetric,
			expectedLevel: testdoubles.LevelError,
			expectedMsg:   shell.LogMsgCommandFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			handler := &commandHandlerStub{err: tt.err}
			metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
			tracingSpy := testdoubles.NewTracingCollectorSpy(true)
			logSpy := testdoubles.NewLogSpy(true)

			wrapper, err := observable.NewCommandWrapper[testCommand](
				handler,
				observable.WithCommandMetrics[testCommand](metricsSpy),
				observable.WithCommandTracing[testCommand](tracingSpy),
				observable.WithCommandLogging[testCommand](logSpy),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(context.Background(), testCommand{})

			// assert
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, tt.statusMetric, commandLabels(tt.status)))
			assert.True(t, logSpy.HasLog(tt.expectedLevel, tt.expectedMsg))

			span, ok := tracingSpy.SpanNamed(shell.SpanNameCommandHandle)
			require.True(t, ok)
			assert.Equal(t, tt.status, span.Status)
			assert.Equal(t, tt.err.Error(), span.EndAttributes[shell.LogAttrError])
		})
	}
}

func Test_CommandWrapper_Handle_RetriesExhausted(t *testing.T) {
	// arrange
	handler := &commandHandlerStub{
		result: shell.NewErrorResult(shell.RetryMetrics{
			Attempts:         5,
			LastErrorType:    shell.ErrorTypeConcurrencyConflict,
			RetriesExhausted: true,
		}),
		err: journal.ErrConcurrencyConflict,
	}
	metricsSpy := testdoubles.NewMetricsCollectorSpy(true)

	wrapper, err := observable.NewCommandWrapper[testCommand](handler, observable.WithCommandMetrics[testCommand](metricsSpy))
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, shell.CommandHandlerMaxRetriesReachedMetric,
		map[string]string{shell.LabelFinalErrorType: shell.ErrorTypeConcurrencyConflict}))
}

func Test_QueryWrapper_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// arrange
		metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
		logSpy := testdoubles.NewLogSpy(true)

		wrapper, err := observable.NewQueryWrapper[testQuery, int](
			queryHandlerStub{result: 42},
			observable.WithQueryMetrics[testQuery, int](metricsSpy),
			observable.WithQueryLogging[testQuery, int](logSpy),
		)
		require.NoError(t, err)

		// act
		result, err := wrapper.Handle(context.Background(), testQuery{})

		// assert
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.True(t, metricsSpy.HasRecord(testdoubles.KindCounter, shell.QueryHandlerCallsMetric,
			map[string]string{shell.LogAttrQueryType: "TestQuery", shell.LogAttrStatus: shell.StatusSuccess}))
		assert.True(t, logSpy.HasLog(testdoubles.LevelInfo, shell.LogMsgQueryCompleted))
	})

	t.Run("timeout", func(t *testing.T) {
		// arrange
		metricsSpy := testdoubles.NewMetricsCollectorSpy(true)
		tracingSpy := testdoubles.NewTracingCollectorSpy(true)

		wrapper, err := observable.NewQueryWrapper[testQuery, int](
			queryHandlerStub{err: fmt.Errorf("query journal: %w", context.DeadlineExceeded)},
			observable.WithQueryMetrics[testQuery, int](metricsSpy),
			observable.WithQueryTracing[testQuery, int](tracingSpy),
		)
		require.NoError(t, err)

		// act
		_, err = wrapper.Handle(context.Background(), testQuery{})

		// assert
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Len(t, metricsSpy.Records(shell.QueryHandlerTimeoutMetric), 1)

		span, ok := tracingSpy.SpanNamed(shell.SpanNameQueryHandle)
		require.True(t, ok)
		assert.Equal(t, shell.StatusTimeout, span.Status)
	})
}
