package library

import (
	"fmt"
)

// Book is a pure value holder for the literary values of a book and its current BorrowerState.
//
// A Book does not validate its borrower. Keeping the borrower consistent with the
// patron registry is the Library's job.
type Book struct {
	title             string
	author            string
	yearOfPublication int
	comicValue        int
	dramaticValue     int
	educationalValue  int
	borrower          BorrowerState
}

// NewBook creates an unborrowed book.
func NewBook(title string, author string, yearOfPublication int, comicValue int, dramaticValue int, educationalValue int) *Book {
	return &Book{
		title:             title,
		author:            author,
		yearOfPublication: yearOfPublication,
		comicValue:        comicValue,
		dramaticValue:     dramaticValue,
		educationalValue:  educationalValue,
		borrower:          Unborrowed(),
	}
}

// Title returns the title of the book.
func (b *Book) Title() string {
	return b.title
}

// Author returns the author of the book.
func (b *Book) Author() string {
	return b.author
}

// YearOfPublication returns the year the book was published.
func (b *Book) YearOfPublication() int {
	return b.yearOfPublication
}

// ComicValue returns how funny the book is.
func (b *Book) ComicValue() int {
	return b.comicValue
}

// DramaticValue returns how dramatic the book is.
func (b *Book) DramaticValue() int {
	return b.dramaticValue
}

// EducationalValue returns how much the book teaches.
func (b *Book) EducationalValue() int {
	return b.educationalValue
}

// LiteraryValue is the plain sum of the three literary values.
func (b *Book) LiteraryValue() int {
	return b.comicValue + b.dramaticValue + b.educationalValue
}

// Borrower returns the current lending state of the book.
func (b *Book) Borrower() BorrowerState {
	return b.borrower
}

// SetBorrower marks the book as borrowed by patronID. No validation happens here.
func (b *Book) SetBorrower(patronID int) {
	b.borrower = BorrowedBy(patronID)
}

// Return marks the book as unborrowed, whatever its previous state was.
func (b *Book) Return() {
	b.borrower = Unborrowed()
}

// String renders the book as [title,author,year,literaryValue].
func (b *Book) String() string {
	return fmt.Sprintf("[%s,%s,%d,%d]", b.title, b.author, b.yearOfPublication, b.LiteraryValue())
}
