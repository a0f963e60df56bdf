package returnbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/journal/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func Test_CommandHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := library.New(2, 2, 1)
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))
	lib.AddBook(library.NewBook("Emma", "Jane Austen", 1815, 6, 1, 0))
	lib.RegisterPatron(library.NewPatron("Alan", "Turing", 1, 1, 1, 1))

	j, err := memoryengine.New()
	require.NoError(t, err)
	guarded := shell.NewGuardedLibrary(lib)

	_, err = borrowbook.NewCommandHandler(guarded, j).Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))
	require.NoError(t, err)

	handler := returnbook.NewCommandHandler(guarded, j)

	// act
	returned, returnedErr := handler.Handle(ctx, returnbook.BuildCommand(0, time.Now()))
	again, againErr := handler.Handle(ctx, returnbook.BuildCommand(0, time.Now()))
	neverBorrowed, neverBorrowedErr := handler.Handle(ctx, returnbook.BuildCommand(1, time.Now()))
	invalid, invalidErr := handler.Handle(ctx, returnbook.BuildCommand(9, time.Now()))

	// assert
	require.NoError(t, returnedErr)
	assert.False(t, returned.Idempotent)

	require.NoError(t, againErr)
	assert.True(t, again.Idempotent)
	require.NoError(t, neverBorrowedErr)
	assert.True(t, neverBorrowed.Idempotent)
	require.NoError(t, invalidErr)
	assert.True(t, invalid.Idempotent)

	guarded.Use(func(lib *library.Library) {
		assert.True(t, lib.IsBookAvailable(0))
		assert.Equal(t, 0, lib.BorrowCount(0))
	})

	entries, _, err := j.Query(ctx, returnbook.BuildJournalFilter(guarded.ID(), 0))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	event, err := shell.DomainEventFrom(entries[1])
	require.NoError(t, err)
	assert.Equal(t, core.BuildBookReturnedByPatron(guarded.ID(), 0, 0, entries[1].OccurredAt), event)
}
