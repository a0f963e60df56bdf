package library

import (
	"errors"
)

// NoID is the sentinel returned instead of an identity when admission fails or an instance is unknown.
const NoID = -1

var (
	// ErrInvalidBookID is returned by CheckBorrow when the book id does not point at an occupied slot.
	ErrInvalidBookID = errors.New("book id is not valid")

	// ErrInvalidPatronID is returned by CheckBorrow when the patron id does not point at an occupied slot.
	ErrInvalidPatronID = errors.New("patron id is not valid")

	// ErrBookNotAvailable is returned by CheckBorrow when the book is currently borrowed.
	ErrBookNotAvailable = errors.New("book is not available")

	// ErrBorrowLimitReached is returned by CheckBorrow when the patron already holds the maximum number of books.
	ErrBorrowLimitReached = errors.New("patron has reached the borrow limit")

	// ErrPatronWillNotEnjoy is returned by CheckBorrow when the book's score is below the patron's threshold.
	ErrPatronWillNotEnjoy = errors.New("patron will not enjoy the book")

	// ErrLibraryIsFull reports that AddBook found no free book slot.
	ErrLibraryIsFull = errors.New("library has no free book slot")

	// ErrPatronRegistryIsFull reports that RegisterPatron found no free patron slot.
	ErrPatronRegistryIsFull = errors.New("patron registry has no free slot")
)

// IsRuleViolation reports whether err is one of the business rule errors of this package.
func IsRuleViolation(err error) bool {
	for _, ruleErr := range []error{
		ErrInvalidBookID,
		ErrInvalidPatronID,
		ErrBookNotAvailable,
		ErrBorrowLimitReached,
		ErrPatronWillNotEnjoy,
		ErrLibraryIsFull,
		ErrPatronRegistryIsFull,
	} {
		if errors.Is(err, ruleErr) {
			return true
		}
	}

	return false
}

// Library coordinates a bounded collection of books and a bounded registry of patrons.
//
// Identities are slot indexes into fixed-size registries. The three registries
// (books, patrons, borrow counts) are sized once in New and never grow.
type Library struct {
	maxBorrowedBooks int
	books            []*Book
	patrons          []*Patron
	borrowCounts     []int
}

// New creates an empty Library. Negative capacities are treated as 0.
func New(maxBookCapacity int, maxBorrowedBooks int, maxPatronCapacity int) *Library {
	maxBookCapacity = max(maxBookCapacity, 0)
	maxPatronCapacity = max(maxPatronCapacity, 0)

	return &Library{
		maxBorrowedBooks: maxBorrowedBooks,
		books:            make([]*Book, maxBookCapacity),
		patrons:          make([]*Patron, maxPatronCapacity),
		borrowCounts:     make([]int, maxPatronCapacity),
	}
}

/***** identity & admission *****/

// AddBook admits the book into the first empty slot and returns its id.
//
// If this exact instance is already admitted, its existing id is returned and
// nothing changes. On first admission the book is forced to Unborrowed.
// Returns NoID if the book is nil or no slot is free.
func (l *Library) AddBook(book *Book) int {
	if book == nil {
		return NoID
	}

	if id := l.BookID(book); id != NoID {
		return id
	}

	for i := range l.books {
		if l.books[i] == nil {
			l.books[i] = book
			book.Return()

			return i
		}
	}

	return NoID
}

// RegisterPatron registers the patron in the first empty slot and returns its id.
//
// Re-registering the same instance returns its existing id.
// Returns NoID if the patron is nil or no slot is free.
func (l *Library) RegisterPatron(patron *Patron) int {
	if patron == nil {
		return NoID
	}

	if id := l.PatronID(patron); id != NoID {
		return id
	}

	for i := range l.patrons {
		if l.patrons[i] == nil {
			l.patrons[i] = patron
			l.borrowCounts[i] = 0

			return i
		}
	}

	return NoID
}

// BookID returns the id of this exact book instance, or NoID if it was never admitted.
// Two books with equal values are different books.
func (l *Library) BookID(book *Book) int {
	if book == nil {
		return NoID
	}

	for i, b := range l.books {
		if b == book {
			return i
		}
	}

	return NoID
}

// PatronID returns the id of this exact patron instance, or NoID if it is not registered.
func (l *Library) PatronID(patron *Patron) int {
	if patron == nil {
		return NoID
	}

	for i, p := range l.patrons {
		if p == patron {
			return i
		}
	}

	return NoID
}

// IsBookIDValid reports whether bookID is inside the registry and points at an admitted book.
func (l *Library) IsBookIDValid(bookID int) bool {
	return bookID >= 0 && bookID < len(l.books) && l.books[bookID] != nil
}

// IsPatronIDValid reports whether patronID is inside the registry and points at a registered patron.
func (l *Library) IsPatronIDValid(patronID int) bool {
	return patronID >= 0 && patronID < len(l.patrons) && l.patrons[patronID] != nil
}

// Book returns the book with the given id, or nil for an invalid id.
func (l *Library) Book(bookID int) *Book {
	if !l.IsBookIDValid(bookID) {
		return nil
	}

	return l.books[bookID]
}

// Patron returns the patron with the given id, or nil for an invalid id.
func (l *Library) Patron(patronID int) *Patron {
	if !l.IsPatronIDValid(patronID) {
		return nil
	}

	return l.patrons[patronID]
}

// BorrowCount returns how many books the patron currently holds, 0 for an invalid id.
func (l *Library) BorrowCount(patronID int) int {
	if !l.IsPatronIDValid(patronID) {
		return 0
	}

	return l.borrowCounts[patronID]
}

// BookCount returns the number of occupied book slots.
func (l *Library) BookCount() int {
	count := 0
	for _, b := range l.books {
		if b != nil {
			count++
		}
	}

	return count
}

// PatronCount returns the number of occupied patron slots.
func (l *Library) PatronCount() int {
	count := 0
	for _, p := range l.patrons {
		if p != nil {
			count++
		}
	}

	return count
}

// BookCapacity returns the number of book slots fixed at construction.
func (l *Library) BookCapacity() int {
	return len(l.books)
}

// PatronCapacity returns the number of patron slots fixed at construction.
func (l *Library) PatronCapacity() int {
	return len(l.patrons)
}

// MaxBorrowedBooks returns how many books one patron may hold at the same time.
func (l *Library) MaxBorrowedBooks() int {
	return l.maxBorrowedBooks
}

/***** borrowing *****/

// IsBookAvailable reports whether bookID is valid and the book is not borrowed.
func (l *Library) IsBookAvailable(bookID int) bool {
	return l.IsBookIDValid(bookID) && !l.books[bookID].Borrower().IsBorrowed()
}

// CheckBorrow returns nil if Borrow(bookID, patronID) would succeed, otherwise the first
// violated rule, checked in this order:
//
//	ErrInvalidBookID / ErrInvalidPatronID
//	ErrBookNotAvailable
//	ErrBorrowLimitReached
//	ErrPatronWillNotEnjoy
//
// CheckBorrow never changes state.
func (l *Library) CheckBorrow(bookID int, patronID int) error {
	if !l.IsBookIDValid(bookID) {
		return ErrInvalidBookID
	}

	if !l.IsPatronIDValid(patronID) {
		return ErrInvalidPatronID
	}

	if !l.IsBookAvailable(bookID) {
		return ErrBookNotAvailable
	}

	if l.borrowCounts[patronID] >= l.maxBorrowedBooks {
		return ErrBorrowLimitReached
	}

	if !l.patrons[patronID].WillEnjoy(l.books[bookID]) {
		return ErrPatronWillNotEnjoy
	}

	return nil
}

// Borrow marks the book as borrowed by the patron and increments the patron's borrow count.
// It returns false without any side effect if CheckBorrow reports a violation.
func (l *Library) Borrow(bookID int, patronID int) bool {
	if l.CheckBorrow(bookID, patronID) != nil {
		return false
	}

	l.books[bookID].SetBorrower(patronID)
	l.borrowCounts[patronID]++

	return true
}

// ReturnBook puts the book back on the shelf and releases it from its borrower's count.
// An invalid id is a no-op.
func (l *Library) ReturnBook(bookID int) {
	l.TakeBack(bookID)
}

// TakeBack performs the same transition as ReturnBook and reports which patron held the book.
//
// returned is false for an invalid id and for a book that was not borrowed;
// in both cases no borrow count changes.
func (l *Library) TakeBack(bookID int) (patronID int, returned bool) {
	if !l.IsBookIDValid(bookID) {
		return NoID, false
	}

	book := l.books[bookID]

	patronID, borrowed := book.Borrower().PatronID()
	if !borrowed {
		book.Return()
		return NoID, false
	}

	if patronID >= 0 && patronID < len(l.borrowCounts) && l.borrowCounts[patronID] > 0 {
		l.borrowCounts[patronID]--
	}

	book.Return()

	return patronID, true
}

/***** recommendation *****/

// SuggestBook returns the book the patron will enjoy the most, or nil.
//
// All slots are scanned in index order, borrowed books included. The running best
// score starts at 0 and must be strictly exceeded, so a book scoring 0 is never
// suggested, and on ties the lowest slot wins.
func (l *Library) SuggestBook(patronID int) *Book {
	bookID := l.SuggestBookID(patronID)
	if bookID == NoID {
		return nil
	}

	return l.books[bookID]
}

// SuggestBookID returns the id of the book SuggestBook would return, or NoID.
func (l *Library) SuggestBookID(patronID int) int {
	if !l.IsPatronIDValid(patronID) {
		return NoID
	}

	patron := l.patrons[patronID]
	bestID := NoID
	bestScore := 0

	for i, book := range l.books {
		if !patron.WillEnjoy(book) {
			continue
		}

		if score := patron.Score(book); score > bestScore {
			bestID = i
			bestScore = score
		}
	}

	return bestID
}
