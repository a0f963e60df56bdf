package shell

import "errors"

var (
	// ErrMappingToEntryFailedForDomainEvent is returned when a domain event cannot be serialized.
	ErrMappingToEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

	// ErrMappingToEntryFailedForMetadata is returned when event metadata cannot be serialized.
	ErrMappingToEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")

	// ErrMappingToDomainEventFailed is returned when an entry payload cannot be deserialized.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToEventMetadataFailed is returned when entry metadata cannot be deserialized.
	ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

	// ErrUnknownEventType is returned for entries whose event type has no domain event.
	ErrUnknownEventType = errors.New("unknown event type")
)
