package shell

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

const (
	// ErrorTypeNone marks a successful last attempt.
	ErrorTypeNone = "none"

	// ErrorTypeConcurrencyConflict marks an append rejected by optimistic concurrency.
	ErrorTypeConcurrencyConflict = "concurrency_conflict"

	// ErrorTypeContextCanceled marks a canceled context.
	ErrorTypeContextCanceled = "context_canceled"

	// ErrorTypeContextDeadlineExceeded marks an exceeded context deadline.
	ErrorTypeContextDeadlineExceeded = "context_deadline_exceeded"

	// ErrorTypeOther marks everything else.
	ErrorTypeOther = "other"
)

var (
	// ErrNilMetricsCollector is returned when a nil metrics collector is provided to WithRetryMetrics.
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")

	// ErrEmptyCommandType is returned when an empty command type is provided to WithRetryMetrics.
	ErrEmptyCommandType = errors.New("command type must not be empty")

	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc represents a function that can be retried.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics describes how a retried call went.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector MetricsCollector
	commandType      string
}

// RetryWithExponentialBackoff calls fn until it succeeds, fails with a non-retryable error,
// or maxAttempts is reached. Only journal.ErrConcurrencyConflict is retried.
//
// Default schedule: 0 ms, 10 ms, 20 ms, 40 ms, 80 ms, 160 ms, each plus up to 30% jitter.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {

	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetrics{}, err
		}
	}

	metrics := RetryMetrics{LastErrorType: ErrorTypeNone}
	var lastErr error

	for attempt := range config.maxAttempts {
		if attempt > 0 {
			delay := config.baseDelay * time.Duration(1<<(attempt-1))
			backoffDelay := delay + time.Duration(rand.Float64()*float64(delay)*config.jitterFactor) //nolint:gosec // jitter only

			config.recordRetryDelay(attempt, backoffDelay)

			timer := time.NewTimer(backoffDelay)
			select {
			case <-timer.C:
				metrics.TotalDelay += backoffDelay

			case <-ctx.Done():
				timer.Stop()
				metrics.LastErrorType = ErrorTypeFor(ctx.Err())

				return metrics, ctx.Err()
			}
		}

		metrics.Attempts++
		lastErr = fn(ctx)
		metrics.LastErrorType = ErrorTypeFor(lastErr)

		if lastErr == nil {
			return metrics, nil
		}

		if !isRetryableError(lastErr) {
			return metrics, lastErr
		}

		if attempt < config.maxAttempts-1 {
			config.recordRetryAttempt(attempt+1, lastErr)
		}
	}

	metrics.RetriesExhausted = true
	config.recordMaxRetriesReached(lastErr)

	return metrics, lastErr
}

func (c *retryConfig) recordRetryDelay(attempt int, backoffDelay time.Duration) {
	if c.metricsCollector == nil {
		return
	}

	c.metricsCollector.RecordDuration(CommandHandlerRetryDelayMetric, backoffDelay, map[string]string{
		LogAttrCommandType: c.commandType,
		LabelAttemptNumber: strconv.Itoa(attempt),
	})
}

func (c *retryConfig) recordRetryAttempt(attemptNumber int, err error) {
	if c.metricsCollector == nil {
		return
	}

	c.metricsCollector.IncrementCounter(CommandHandlerRetriesMetric, BuildRetryLabels(c.commandType, attemptNumber, ErrorTypeFor(err)))
}

func (c *retryConfig) recordMaxRetriesReached(err error) {
	if c.metricsCollector == nil {
		return
	}

	c.metricsCollector.IncrementCounter(CommandHandlerMaxRetriesReachedMetric, map[string]string{
		LogAttrCommandType:  c.commandType,
		LabelFinalErrorType: ErrorTypeFor(err),
	})
}

// isRetryableError reports whether another attempt may succeed.
// Timeouts are not retried: retrying under overload only deepens it.
func isRetryableError(err error) bool {
	return errors.Is(err, journal.ErrConcurrencyConflict)
}

// ErrorTypeFor classifies err for metric labels and HandlerResult.LastErrorType.
func ErrorTypeFor(err error) string {
	switch {
	case err == nil:
		return ErrorTypeNone
	case errors.Is(err, journal.ErrConcurrencyConflict):
		return ErrorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return ErrorTypeContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeContextDeadlineExceeded
	default:
		return ErrorTypeOther
	}
}

// RetryOption configures retry behavior.
type RetryOption func(*retryConfig) error

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, ...
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter added on top of each delay, as a fraction of it (0.0 to 1.0).
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryMetrics records retry attempts, delays and exhaustion labeled with commandType.
func WithRetryMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(config *retryConfig) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if commandType == "" {
			return ErrEmptyCommandType
		}

		config.metricsCollector = collector
		config.commandType = commandType

		return nil
	}
}
