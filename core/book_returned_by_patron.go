package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReturnedByPatronEventType is the event type identifier.
const BookReturnedByPatronEventType = "BookReturnedByPatron"

// BookReturnedByPatron represents when a borrowed book was returned to the library.
type BookReturnedByPatron struct {
	LibraryID  LibraryIDString
	BookID     BookIDString
	PatronID   PatronIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturnedByPatron creates a new BookReturnedByPatron event.
func BuildBookReturnedByPatron(libraryID uuid.UUID, bookID int, patronID int, occurredAt time.Time) BookReturnedByPatron {
	return BookReturnedByPatron{
		LibraryID:  ToLibraryID(libraryID),
		BookID:     ToBookID(bookID),
		PatronID:   ToPatronID(patronID),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByPatron) EventType() string {
	return BookReturnedByPatronEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByPatron) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturnedByPatron) IsErrorEvent() bool {
	return false
}
