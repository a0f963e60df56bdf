package journal

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidPayloadJSON is returned when an entry payload is not valid JSON.
	ErrInvalidPayloadJSON = errors.New("payload json is not valid")

	// ErrInvalidMetadataJSON is returned when entry metadata is not valid JSON.
	ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

	// ErrEmptyEventType is returned when an entry has no event type.
	ErrEmptyEventType = errors.New("event type must not be empty")
)

// Entries is an alias type for a slice of Entry.
type Entries = []Entry

// Entry is the DTO the journal appends and returns.
//
// It is built on scalars so the journal stays agnostic of the domain events.
// Construct it with BuildEntry or BuildEntryWithEmptyMetadata.
type Entry struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildEntry validates the JSON parts and returns an Entry.
func BuildEntry(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (Entry, error) {
	if eventType == "" {
		return Entry{}, ErrEmptyEventType
	}

	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return Entry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return Entry{}, ErrInvalidMetadataJSON
	}

	return Entry{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildEntryWithEmptyMetadata is BuildEntry with "{}" as metadata.
func BuildEntryWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (Entry, error) {
	return BuildEntry(eventType, occurredAt, payloadJSON, []byte("{}"))
}

// PayloadFields extracts the top-level string fields of a JSON object payload.
// Non-string fields are skipped since predicates only compare strings.
func PayloadFields(payloadJSON []byte) (map[string]string, error) {
	raw := make(map[string]any)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, errors.Join(ErrInvalidPayloadJSON, err)
	}

	fields := make(map[string]string, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			fields[key] = s
		}
	}

	return fields, nil
}
