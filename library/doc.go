// Package library contains the circulation core of a small lending library:
// books, patrons and the Library that coordinates them.
//
// The Library owns fixed-size registries for books and patrons. A registered
// instance is identified by its slot index, which is stable for the lifetime
// of the Library. Slots are allocated first-free and never reclaimed.
//
// All operations are synchronous and report failure through sentinel values
// (NoID, false, nil) instead of errors. CheckBorrow is the single exception:
// it explains why a Borrow would be rejected.
//
// Typical usage:
//
//	lib := library.New(100, 3, 50)
//	bookID := lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 2, 8, 5))
//	patronID := lib.RegisterPatron(library.NewPatron("Ada", "Lovelace", 1, 2, 3, 20))
//
//	if lib.Borrow(bookID, patronID) {
//		// ...
//		lib.ReturnBook(bookID)
//	}
//
//	suggestion := lib.SuggestBook(patronID)
//
// The package has no I/O and no logging. Journaling, observability and
// configuration live in the shell packages around it.
package library
