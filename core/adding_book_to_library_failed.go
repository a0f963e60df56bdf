package core

import (
	"time"

	"github.com/google/uuid"
)

// AddingBookToLibraryFailedEventType is the event type identifier.
const AddingBookToLibraryFailedEventType = "AddingBookToLibraryFailed"

// AddingBookToLibraryFailed represents when a book could not be admitted, e.g., because all slots are taken.
type AddingBookToLibraryFailed struct {
	LibraryID   LibraryIDString
	Title       string
	Author      string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildAddingBookToLibraryFailed creates a new AddingBookToLibraryFailed event.
func BuildAddingBookToLibraryFailed(
	libraryID uuid.UUID,
	title string,
	author string,
	failureInfo string,
	occurredAt time.Time,
) AddingBookToLibraryFailed {

	return AddingBookToLibraryFailed{
		LibraryID:   ToLibraryID(libraryID),
		Title:       title,
		Author:      author,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e AddingBookToLibraryFailed) EventType() string {
	return AddingBookToLibraryFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AddingBookToLibraryFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e AddingBookToLibraryFailed) IsErrorEvent() bool {
	return true
}
