package borrowinghistory

const (
	queryType = "BorrowingHistory"
)

// Query asks for the borrowing history of a patron.
type Query struct {
	PatronID int
}

// BuildQuery creates a new Query with the provided patron id.
func BuildQuery(patronID int) Query {
	return Query{
		PatronID: patronID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
