package borrowinghistory

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// QueryHandler projects the history from the journal of one library.
type QueryHandler struct {
	library *shell.GuardedLibrary
	journal shell.Journal
}

// NewQueryHandler creates a new QueryHandler. Only the library id is read from lib.
func NewQueryHandler(lib *shell.GuardedLibrary, j shell.Journal) QueryHandler {
	return QueryHandler{
		library: lib,
		journal: j,
	}
}

// Handle executes the query workflow: Query -> Unmarshal -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (History, error) {
	entries, _, err := h.journal.Query(ctx, BuildJournalFilter(h.library.ID(), query.PatronID))
	if err != nil {
		return History{}, err
	}

	history, err := shell.DomainEventsFrom(entries)
	if err != nil {
		return History{}, err
	}

	return ProjectHistory(history, query), nil
}
