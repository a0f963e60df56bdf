package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// DomainEventsFrom converts journal entries to DomainEvents, failing on the first unknown or corrupt entry.
func DomainEventsFrom(entries journal.Entries) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(entries))

	for _, entry := range entries {
		domainEvent, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a journal entry to its DomainEvent.
func DomainEventFrom(entry journal.Entry) (core.DomainEvent, error) {
	switch entry.EventType {
	case core.BookAddedToLibraryEventType:
		return unmarshalEvent[core.BookAddedToLibrary](entry.PayloadJSON)

	case core.AddingBookToLibraryFailedEventType:
		return unmarshalEvent[core.AddingBookToLibraryFailed](entry.PayloadJSON)

	case core.PatronRegisteredEventType:
		return unmarshalEvent[core.PatronRegistered](entry.PayloadJSON)

	case core.RegisteringPatronFailedEventType:
		return unmarshalEvent[core.RegisteringPatronFailed](entry.PayloadJSON)

	case core.BookBorrowedByPatronEventType:
		return unmarshalEvent[core.BookBorrowedByPatron](entry.PayloadJSON)

	case core.BorrowingBookFailedEventType:
		return unmarshalEvent[core.BorrowingBookFailed](entry.PayloadJSON)

	case core.BookReturnedByPatronEventType:
		return unmarshalEvent[core.BookReturnedByPatron](entry.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrUnknownEventType)
	}
}

func unmarshalEvent[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
