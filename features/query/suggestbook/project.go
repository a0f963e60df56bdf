package suggestbook

import (
	"github.com/AntonStoeckl/library-circulation-go/library"
)

// ProjectSuggestion reads the suggestion for the queried patron from lib. It does not change lib.
func ProjectSuggestion(lib *library.Library, query Query) Suggestion {
	suggestion := Suggestion{
		PatronID: query.PatronID,
		BookID:   library.NoID,
	}

	patron := lib.Patron(query.PatronID)
	if patron == nil {
		return suggestion
	}

	suggestion.PatronKnown = true

	bookID := lib.SuggestBookID(query.PatronID)
	if bookID == library.NoID {
		return suggestion
	}

	book := lib.Book(bookID)
	holder, borrowed := book.Borrower().PatronID()

	suggestion.Found = true
	suggestion.BookID = bookID
	suggestion.Title = book.Title()
	suggestion.Author = book.Author()
	suggestion.Score = patron.Score(book)
	suggestion.IsAvailable = !borrowed
	suggestion.BorrowedByMe = borrowed && holder == query.PatronID

	return suggestion
}
