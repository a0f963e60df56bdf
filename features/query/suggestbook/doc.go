// Package suggestbook implements the Suggest Book query: the book a patron will enjoy the most.
//
// Borrowed books are suggested as well; the suggestion is about taste, not availability.
package suggestbook
