package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// EntryFrom converts a DomainEvent and its EventMetadata to a journal.Entry.
func EntryFrom(event core.DomainEvent, metadata EventMetadata) (journal.Entry, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForMetadata, err)
	}

	entry, err := journal.BuildEntry(event.EventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}

// EntryWithEmptyMetadataFrom converts a DomainEvent to a journal.Entry without metadata.
func EntryWithEmptyMetadataFrom(event core.DomainEvent) (journal.Entry, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	entry, err := journal.BuildEntryWithEmptyMetadata(event.EventType(), event.HasOccurredAt(), payloadJSON)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}
