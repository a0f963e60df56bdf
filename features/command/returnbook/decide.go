package returnbook

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

// Decide takes the book back and reports which patron returned it.
//
//	GIVEN: a book id
//	WHEN: ReturnBook is received
//	THEN: the book is unborrowed and its patron's count drops, BookReturnedByPatron
//	IDEMPOTENCY: the book is not borrowed or the id is invalid, nothing to journal
func Decide(lib *library.Library, libraryID uuid.UUID, command Command) core.DecisionResult {
	patronID, returned := lib.TakeBack(command.BookID)
	if !returned {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookReturnedByPatron(libraryID, command.BookID, patronID, command.OccurredAt),
	)
}
