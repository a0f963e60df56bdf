package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library"
)

// HandlerResult represents the outcome of a command handler execution.
type HandlerResult struct {
	// Idempotent is true when the command changed nothing. It is a business outcome, not an error.
	Idempotent bool

	// AssignedID is the book or patron id the command admitted, library.NoID otherwise.
	AssignedID int

	// RetryAttempts is the number of journal append attempts (1 without retries).
	RetryAttempts int

	// TotalRetryDelay is the time spent in backoff between attempts.
	TotalRetryDelay time.Duration

	// LastErrorType classifies the last append error, see ErrorTypeNone and friends.
	LastErrorType string

	// RetriesExhausted is true when every attempt hit a retryable error.
	RetriesExhausted bool
}

func resultFrom(retryMetrics RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		AssignedID:       library.NoID,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewSuccessResult creates a HandlerResult for a command that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for a command that changed nothing.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for a failed command that still reports retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

// WithAssignedID returns a copy of r carrying the admitted id.
func (r HandlerResult) WithAssignedID(id int) HandlerResult {
	r.AssignedID = id
	return r
}
