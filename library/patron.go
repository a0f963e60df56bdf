package library

// Patron is a registered reader with personal weights for the literary aspects of a book.
// It is immutable after construction.
type Patron struct {
	firstName           string
	lastName            string
	comicTendency       int
	dramaticTendency    int
	educationalTendency int
	enjoymentThreshold  int
}

// NewPatron creates a patron with the given tendencies and enjoyment threshold.
func NewPatron(
	firstName string,
	lastName string,
	comicTendency int,
	dramaticTendency int,
	educationalTendency int,
	enjoymentThreshold int,
) *Patron {

	return &Patron{
		firstName:           firstName,
		lastName:            lastName,
		comicTendency:       comicTendency,
		dramaticTendency:    dramaticTendency,
		educationalTendency: educationalTendency,
		enjoymentThreshold:  enjoymentThreshold,
	}
}

// FirstName returns the first name of the patron.
func (p *Patron) FirstName() string {
	return p.firstName
}

// LastName returns the last name of the patron.
func (p *Patron) LastName() string {
	return p.lastName
}

// ComicTendency is the weight the patron gives to a book's ComicValue.
func (p *Patron) ComicTendency() int {
	return p.comicTendency
}

// DramaticTendency is the weight the patron gives to a book's DramaticValue.
func (p *Patron) DramaticTendency() int {
	return p.dramaticTendency
}

// EducationalTendency is the weight the patron gives to a book's EducationalValue.
func (p *Patron) EducationalTendency() int {
	return p.educationalTendency
}

// EnjoymentThreshold is the minimum Score at which the patron enjoys a book.
func (p *Patron) EnjoymentThreshold() int {
	return p.enjoymentThreshold
}

// Score returns the value this patron assigns to the book: the weighted sum of
// its literary values against the patron's tendencies. A nil book scores 0.
func (p *Patron) Score(book *Book) int {
	if book == nil {
		return 0
	}

	return book.comicValue*p.comicTendency +
		book.dramaticValue*p.dramaticTendency +
		book.educationalValue*p.educationalTendency
}

// WillEnjoy reports whether the book's score reaches the patron's enjoyment threshold.
// A nil book is never enjoyed.
func (p *Patron) WillEnjoy(book *Book) bool {
	if book == nil {
		return false
	}

	return p.Score(book) >= p.enjoymentThreshold
}

// String returns "FirstName LastName".
func (p *Patron) String() string {
	return p.firstName + " " + p.lastName
}
