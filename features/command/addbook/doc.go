// Package addbook implements the Add Book use case: a book is admitted into the first free
// slot of the library.
//
// Admitting an instance that is already in the library changes nothing and returns its id.
// A full library is a business rule rejection, journaled as AddingBookToLibraryFailed.
package addbook
