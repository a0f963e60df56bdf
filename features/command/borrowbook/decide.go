package borrowbook

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

// Decide lends the book to the patron if the library rules allow it.
//
//	GIVEN: a book id and a patron id
//	WHEN: BorrowBook is received
//	THEN: the book is borrowed by the patron, BookBorrowedByPatron with the patron's score
//	ERROR: the first violated rule, BorrowingBookFailed
//	IDEMPOTENCY: the patron already holds this book, nothing to journal
func Decide(lib *library.Library, libraryID uuid.UUID, command Command) core.DecisionResult {
	if book := lib.Book(command.BookID); book != nil {
		if holder, borrowed := book.Borrower().PatronID(); borrowed && holder == command.PatronID {
			return core.IdempotentDecision()
		}
	}

	if ruleErr := lib.CheckBorrow(command.BookID, command.PatronID); ruleErr != nil {
		err := fmt.Errorf("borrow book %d for patron %d: %w", command.BookID, command.PatronID, ruleErr)

		return core.ErrorDecision(
			core.BuildBorrowingBookFailed(libraryID, command.BookID, command.PatronID, err.Error(), command.OccurredAt),
			err,
		)
	}

	score := lib.Patron(command.PatronID).Score(lib.Book(command.BookID))
	lib.Borrow(command.BookID, command.PatronID)

	return core.SuccessDecision(
		core.BuildBookBorrowedByPatron(libraryID, command.BookID, command.PatronID, score, command.OccurredAt),
	)
}
