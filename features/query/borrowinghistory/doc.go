// Package borrowinghistory implements the Borrowing History query. It is the one read model
// projected from the journal rather than from the in-memory library: the journal is the only
// place remembering past borrowings after the books came back.
package borrowinghistory
