package core

import (
	"time"

	"github.com/google/uuid"
)

// RegisteringPatronFailedEventType is the event type identifier.
const RegisteringPatronFailedEventType = "RegisteringPatronFailed"

// RegisteringPatronFailed represents when a patron could not be registered.
type RegisteringPatronFailed struct {
	LibraryID   LibraryIDString
	FirstName   string
	LastName    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRegisteringPatronFailed creates a new RegisteringPatronFailed event.
func BuildRegisteringPatronFailed(
	libraryID uuid.UUID,
	firstName string,
	lastName string,
	failureInfo string,
	occurredAt time.Time,
) RegisteringPatronFailed {

	return RegisteringPatronFailed{
		LibraryID:   ToLibraryID(libraryID),
		FirstName:   firstName,
		LastName:    lastName,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RegisteringPatronFailed) EventType() string {
	return RegisteringPatronFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RegisteringPatronFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RegisteringPatronFailed) IsErrorEvent() bool {
	return true
}
