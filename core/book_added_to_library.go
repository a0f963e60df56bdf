package core

import (
	"time"

	"github.com/google/uuid"
)

// BookAddedToLibraryEventType is the event type identifier.
const BookAddedToLibraryEventType = "BookAddedToLibrary"

// BookAddedToLibrary represents when a book got admitted into a free slot of the library.
type BookAddedToLibrary struct {
	LibraryID         LibraryIDString
	BookID            BookIDString
	Title             string
	Author            string
	YearOfPublication int
	ComicValue        int
	DramaticValue     int
	EducationalValue  int
	OccurredAt        OccurredAtTS
}

// BuildBookAddedToLibrary creates a new BookAddedToLibrary event.
func BuildBookAddedToLibrary(
	libraryID uuid.UUID,
	bookID int,
	title string,
	author string,
	yearOfPublication int,
	comicValue int,
	dramaticValue int,
	educationalValue int,
	occurredAt time.Time,
) BookAddedToLibrary {

	return BookAddedToLibrary{
		LibraryID:         ToLibraryID(libraryID),
		BookID:            ToBookID(bookID),
		Title:             title,
		Author:            author,
		YearOfPublication: yearOfPublication,
		ComicValue:        comicValue,
		DramaticValue:     dramaticValue,
		EducationalValue:  educationalValue,
		OccurredAt:        ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAddedToLibrary) EventType() string {
	return BookAddedToLibraryEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToLibrary) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAddedToLibrary) IsErrorEvent() bool {
	return false
}
