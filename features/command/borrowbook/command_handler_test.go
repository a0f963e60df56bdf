package borrowbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/journal/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// givenLibrary holds two books and two patrons; patron 0 enjoys book 0 only, patron 1 enjoys both.
func givenLibrary(t *testing.T, maxBorrowed int) (*shell.GuardedLibrary, *memoryengine.Journal, borrowbook.CommandHandler) {
	t.Helper()

	lib := library.New(2, maxBorrowed, 2)
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))
	lib.AddBook(library.NewBook("Emma", "Jane Austen", 1815, 6, 1, 0))
	lib.RegisterPatron(library.NewPatron("Ada", "Lovelace", 0, 2, 1, 10))
	lib.RegisterPatron(library.NewPatron("Alan", "Turing", 1, 1, 1, 1))

	j, err := memoryengine.New()
	require.NoError(t, err)

	guarded := shell.NewGuardedLibrary(lib)

	return guarded, j, borrowbook.NewCommandHandler(guarded, j)
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	guarded, j, handler := givenLibrary(t, 1)

	// act
	result, err := handler.Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	guarded.Use(func(lib *library.Library) {
		assert.False(t, lib.IsBookAvailable(0))
		assert.Equal(t, 1, lib.BorrowCount(0))
	})

	entries, _, err := j.Query(ctx, borrowbook.BuildJournalFilter(guarded.ID(), 0))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	event, err := shell.DomainEventFrom(entries[0])
	require.NoError(t, err)
	borrowed, ok := event.(core.BookBorrowedByPatron)
	require.True(t, ok)
	assert.Equal(t, "0", borrowed.PatronID)
	assert.Equal(t, 19, borrowed.Score)
}

func Test_CommandHandler_Handle_SamePatronAgainIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	_, j, handler := givenLibrary(t, 2)
	_, err := handler.Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 1, j.Len())
}

func Test_CommandHandler_Handle_RuleViolations(t *testing.T) {
	tests := []struct {
		name        string
		arrange     func(ctx context.Context, t *testing.T, handler borrowbook.CommandHandler)
		bookID      int
		patronID    int
		expectedErr error
	}{
		{name: "invalid book", bookID: 7, patronID: 0, expectedErr: library.ErrInvalidBookID},
		{name: "invalid patron", bookID: 0, patronID: -1, expectedErr: library.ErrInvalidPatronID},
		{
			name: "book not available",
			arrange: func(ctx context.Context, t *testing.T, handler borrowbook.CommandHandler) {
				_, err := handler.Handle(ctx, borrowbook.BuildCommand(0, 1, time.Now()))
				require.NoError(t, err)
			},
			bookID: 0, patronID: 0, expectedErr: library.ErrBookNotAvailable,
		},
		{
			name: "borrow limit reached",
			arrange: func(ctx context.Context, t *testing.T, handler borrowbook.CommandHandler) {
				_, err := handler.Handle(ctx, borrowbook.BuildCommand(1, 1, time.Now()))
				require.NoError(t, err)
			},
			bookID: 0, patronID: 1, expectedErr: library.ErrBorrowLimitReached,
		},
		{name: "patron will not enjoy", bookID: 1, patronID: 0, expectedErr: library.ErrPatronWillNotEnjoy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			guarded, j, handler := givenLibrary(t, 1)
			if tt.arrange != nil {
				tt.arrange(ctx, t, handler)
			}
			entriesBefore := j.Len()

			// act
			_, err := handler.Handle(ctx, borrowbook.BuildCommand(tt.bookID, tt.patronID, time.Now()))

			// assert
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, shell.StatusRejected, shell.StatusForError(err))
			assert.Equal(t, entriesBefore+1, j.Len())

			entries, _, queryErr := j.Query(ctx, borrowbook.BuildJournalFilter(guarded.ID(), tt.bookID))
			require.NoError(t, queryErr)
			require.NotEmpty(t, entries)
			assert.Equal(t, core.BorrowingBookFailedEventType, entries[len(entries)-1].EventType)
		})
	}
}
