package library

import "strconv"

// BorrowerState is the per-book lending state: either unborrowed or borrowed by one patron.
//
// The zero value is Unborrowed.
type BorrowerState struct {
	borrowed bool
	patronID int
}

// Unborrowed returns the state of a book that is on the shelf.
func Unborrowed() BorrowerState {
	return BorrowerState{}
}

// BorrowedBy returns the state of a book held by the patron with the given id.
func BorrowedBy(patronID int) BorrowerState {
	return BorrowerState{borrowed: true, patronID: patronID}
}

// IsBorrowed reports whether the book is currently held by a patron.
func (s BorrowerState) IsBorrowed() bool {
	return s.borrowed
}

// PatronID returns the id of the holding patron and true, or NoID and false if the book is unborrowed.
func (s BorrowerState) PatronID() (int, bool) {
	if !s.borrowed {
		return NoID, false
	}

	return s.patronID, true
}

func (s BorrowerState) String() string {
	if !s.borrowed {
		return "unborrowed"
	}

	return "borrowed by patron " + strconv.Itoa(s.patronID)
}
