package suggestbook

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// QueryHandler reads suggestions from the guarded library. It needs no journal.
type QueryHandler struct {
	library *shell.GuardedLibrary
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(lib *shell.GuardedLibrary) QueryHandler {
	return QueryHandler{
		library: lib,
	}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}

	var suggestion Suggestion

	h.library.Use(func(lib *library.Library) {
		suggestion = ProjectSuggestion(lib, query)
	})

	return suggestion, nil
}
