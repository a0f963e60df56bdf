package core

import (
	"time"

	"github.com/google/uuid"
)

// PatronRegisteredEventType is the event type identifier.
const PatronRegisteredEventType = "PatronRegistered"

// PatronRegistered represents when a patron got a slot in the patron registry.
type PatronRegistered struct {
	LibraryID  LibraryIDString
	PatronID   PatronIDString
	FirstName  string
	LastName   string
	OccurredAt OccurredAtTS
}

// BuildPatronRegistered creates a new PatronRegistered event.
func BuildPatronRegistered(
	libraryID uuid.UUID,
	patronID int,
	firstName string,
	lastName string,
	occurredAt time.Time,
) PatronRegistered {

	return PatronRegistered{
		LibraryID:  ToLibraryID(libraryID),
		PatronID:   ToPatronID(patronID),
		FirstName:  firstName,
		LastName:   lastName,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e PatronRegistered) EventType() string {
	return PatronRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e PatronRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e PatronRegistered) IsErrorEvent() bool {
	return false
}
