package addbook

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

// Decide admits the command's book into lib and returns what to journal plus the book id.
//
//	GIVEN: a book instance
//	WHEN: AddBook is received
//	THEN: the book takes the first free slot, BookAddedToLibrary
//	ERROR: no free slot, AddingBookToLibraryFailed wrapping library.ErrLibraryIsFull
//	IDEMPOTENCY: the instance is already admitted, nothing to journal
func Decide(lib *library.Library, libraryID uuid.UUID, command Command) (core.DecisionResult, int) {
	book := command.Book

	if bookID := lib.BookID(book); bookID != library.NoID {
		return core.IdempotentDecision(), bookID
	}

	bookID := lib.AddBook(book)
	if bookID == library.NoID {
		err := fmt.Errorf("add book %q: %w", book.Title(), library.ErrLibraryIsFull)

		return core.ErrorDecision(
			core.BuildAddingBookToLibraryFailed(libraryID, book.Title(), book.Author(), err.Error(), command.OccurredAt),
			err,
		), library.NoID
	}

	return core.SuccessDecision(
		core.BuildBookAddedToLibrary(
			libraryID,
			bookID,
			book.Title(),
			book.Author(),
			book.YearOfPublication(),
			book.ComicValue(),
			book.DramaticValue(),
			book.EducationalValue(),
			command.OccurredAt,
		),
	), bookID
}
