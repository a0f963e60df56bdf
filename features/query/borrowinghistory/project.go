package borrowinghistory

import (
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// ProjectHistory replays the patron's borrow and return events in journal order.
//
//	INCLUDES: every borrowing and return of the patron
//	CURRENTLY BORROWED: borrowed and not returned since, oldest first
func ProjectHistory(history core.DomainEvents, query Query) History {
	patronID := core.ToPatronID(query.PatronID)
	borrowed := make(map[core.BookIDString]BorrowedBook)

	result := History{PatronID: patronID}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookBorrowedByPatron:
			if e.PatronID != patronID {
				continue
			}

			borrowed[e.BookID] = BorrowedBook{BookID: e.BookID, Score: e.Score, BorrowedAt: e.OccurredAt}
			result.TotalBorrowings++
			result.LastActivityAt = e.OccurredAt

		case core.BookReturnedByPatron:
			if e.PatronID != patronID {
				continue
			}

			delete(borrowed, e.BookID)
			result.TotalReturns++
			result.LastActivityAt = e.OccurredAt
		}
	}

	result.CurrentlyBorrowed = make([]BorrowedBook, 0, len(borrowed))
	for _, book := range borrowed {
		result.CurrentlyBorrowed = append(result.CurrentlyBorrowed, book)
	}

	slices.SortFunc(result.CurrentlyBorrowed, func(a, b BorrowedBook) int {
		if c := a.BorrowedAt.Compare(b.BorrowedAt); c != 0 {
			return c
		}

		return compareBookIDs(a.BookID, b.BookID)
	})

	return result
}

// BuildJournalFilter selects the borrow and return events of one patron.
func BuildJournalFilter(libraryID uuid.UUID, patronID int) journal.Filter {
	return journal.BuildFilter().
		Matching().
		AnyEventTypeOf(
			core.BookBorrowedByPatronEventType,
			core.BookReturnedByPatronEventType,
		).
		AndAllPredicatesOf(
			journal.P(shell.LibraryIDPredicateKey, core.ToLibraryID(libraryID)),
			journal.P("PatronID", core.ToPatronID(patronID)),
		).
		Finalize()
}

// compareBookIDs orders numeric ids numerically: "2" before "10".
func compareBookIDs(a, b core.BookIDString) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
