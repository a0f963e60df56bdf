package core

import (
	"time"

	"github.com/google/uuid"
)

// BorrowingBookFailedEventType is the event type identifier.
const BorrowingBookFailedEventType = "BorrowingBookFailed"

// BorrowingBookFailed represents when borrowing a book failed due to a business rule violation.
type BorrowingBookFailed struct {
	LibraryID   LibraryIDString
	BookID      BookIDString
	PatronID    PatronIDString
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildBorrowingBookFailed creates a new BorrowingBookFailed event.
func BuildBorrowingBookFailed(
	libraryID uuid.UUID,
	bookID int,
	patronID int,
	failureInfo string,
	occurredAt time.Time,
) BorrowingBookFailed {

	return BorrowingBookFailed{
		LibraryID:   ToLibraryID(libraryID),
		BookID:      ToBookID(bookID),
		PatronID:    ToPatronID(patronID),
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BorrowingBookFailed) EventType() string {
	return BorrowingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BorrowingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e BorrowingBookFailed) IsErrorEvent() bool {
	return true
}
