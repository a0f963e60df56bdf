package observable

import (
	"errors"
)

var (
	// ErrNilHandler is returned when a wrapper is created without a handler to wrap.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrNilMetricsCollector is returned by the metrics options for a nil collector.
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")

	// ErrNilTracingCollector is returned by the tracing options for a nil collector.
	ErrNilTracingCollector = errors.New("tracing collector must not be nil")

	// ErrNilLogger is returned by the logging options for a nil logger.
	ErrNilLogger = errors.New("logger must not be nil")
)
