package borrowinghistory

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// BorrowedBook is a book the patron currently holds.
type BorrowedBook struct {
	BookID     core.BookIDString
	Score      int
	BorrowedAt time.Time
}

// History is the query result.
type History struct {
	PatronID          core.PatronIDString
	CurrentlyBorrowed []BorrowedBook
	TotalBorrowings   int
	TotalReturns      int
	LastActivityAt    time.Time
}
