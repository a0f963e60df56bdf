// Package borrowbook implements the Borrow Book use case.
//
// The library checks the borrowing rules in order: both ids valid, book available, patron below
// the borrow limit, patron will enjoy the book. The first violated rule is journaled as
// BorrowingBookFailed and returned as an error wrapping the library sentinel.
//
// Borrowing a book the same patron already holds is an idempotent success with nothing journaled,
// although library.Borrow itself returns false for it.
package borrowbook
