package core

import (
	"time"

	"github.com/google/uuid"
)

// BookBorrowedByPatronEventType is the event type identifier.
const BookBorrowedByPatronEventType = "BookBorrowedByPatron"

// BookBorrowedByPatron represents when a patron borrowed a book. Score is the patron's score for the book.
type BookBorrowedByPatron struct {
	LibraryID  LibraryIDString
	BookID     BookIDString
	PatronID   PatronIDString
	Score      int
	OccurredAt OccurredAtTS
}

// BuildBookBorrowedByPatron creates a new BookBorrowedByPatron event.
func BuildBookBorrowedByPatron(libraryID uuid.UUID, bookID int, patronID int, score int, occurredAt time.Time) BookBorrowedByPatron {
	return BookBorrowedByPatron{
		LibraryID:  ToLibraryID(libraryID),
		BookID:     ToBookID(bookID),
		PatronID:   ToPatronID(patronID),
		Score:      score,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookBorrowedByPatron) EventType() string {
	return BookBorrowedByPatronEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookBorrowedByPatron) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBorrowedByPatron) IsErrorEvent() bool {
	return false
}
