package suggestbook

// Suggestion is the query result. Found is false for an unknown patron and for a patron
// who would enjoy none of the books.
type Suggestion struct {
	PatronID     int
	PatronKnown  bool
	Found        bool
	BookID       int
	Title        string
	Author       string
	Score        int
	IsAvailable  bool
	BorrowedByMe bool
}
