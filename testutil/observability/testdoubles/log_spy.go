package testdoubles

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// SpyLogRecord represents a recorded log call. Context is nil for calls without context.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Attr returns the value logged for key, if any.
func (r SpyLogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// LogSpy captures calls of both the plain and the contextual logger interfaces.
type LogSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// NewLogSpy creates a new LogSpy.
func NewLogSpy(recordCalls bool) *LogSpy {
	return &LogSpy{recordCalls: recordCalls}
}

func (s *LogSpy) Debug(msg string, args ...any) { s.record(nil, LevelDebug, msg, args) }
func (s *LogSpy) Info(msg string, args ...any)  { s.record(nil, LevelInfo, msg, args) }
func (s *LogSpy) Warn(msg string, args ...any)  { s.record(nil, LevelWarn, msg, args) }
func (s *LogSpy) Error(msg string, args ...any) { s.record(nil, LevelError, msg, args) }

func (s *LogSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

func (s *LogSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

func (s *LogSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

func (s *LogSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

func (s *LogSpy) record(ctx context.Context, level string, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    slices.Clone(args),
		Context: ctx,
	})
}

// Records returns a copy of all records of the given level.
func (s *LogSpy) Records(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []SpyLogRecord
	for _, r := range s.records {
		if r.Level == level {
			records = append(records, r)
		}
	}

	return records
}

// ContextualRecords returns a copy of all records made through the contextual interface.
func (s *LogSpy) ContextualRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []SpyLogRecord
	for _, r := range s.records {
		if r.Context != nil {
			records = append(records, r)
		}
	}

	return records
}

// HasLog checks if a log with the given level and message was recorded.
func (s *LogSpy) HasLog(level string, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.ContainsFunc(s.records, func(r SpyLogRecord) bool {
		return r.Level == level && r.Message == message
	})
}

// TotalRecordCount returns the number of records across all levels.
func (s *LogSpy) TotalRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Reset clears all records.
func (s *LogSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

var (
	_ journal.Logger           = (*LogSpy)(nil)
	_ journal.ContextualLogger = (*LogSpy)(nil)
	_ shell.Logger             = (*LogSpy)(nil)
	_ shell.ContextualLogger   = (*LogSpy)(nil)
)
