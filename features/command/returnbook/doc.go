// Package returnbook implements the Return Book use case. Returning a book nobody holds,
// or an id without a book, changes nothing and journals nothing.
package returnbook
