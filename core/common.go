package core

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventTypeString represents an event type identifier.
type EventTypeString = string

// LibraryIDString identifies one Library instance.
type LibraryIDString = string

// BookIDString is a book slot id rendered as a string, so it can be used as a journal predicate.
type BookIDString = string

// PatronIDString is a patron slot id rendered as a string.
type PatronIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// ToLibraryID renders a library UUID as LibraryIDString.
func ToLibraryID(libraryID uuid.UUID) LibraryIDString {
	return libraryID.String()
}

// ToBookID renders a book slot id as BookIDString.
func ToBookID(bookID int) BookIDString {
	return strconv.Itoa(bookID)
}

// ToPatronID renders a patron slot id as PatronIDString.
func ToPatronID(patronID int) PatronIDString {
	return strconv.Itoa(patronID)
}
