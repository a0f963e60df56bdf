package borrowinghistory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/query/borrowinghistory"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func Test_ProjectHistory(t *testing.T) {
	// arrange
	libraryID := uuid.New()
	start := time.Unix(0, 0).UTC()

	history := core.DomainEvents{
		core.BuildBookBorrowedByPatron(libraryID, 10, 1, 5, start),
		core.BuildBookBorrowedByPatron(libraryID, 2, 1, 7, start),
		core.BuildBookBorrowedByPatron(libraryID, 3, 2, 9, start.Add(time.Minute)),
		core.BuildBookReturnedByPatron(libraryID, 10, 1, start.Add(2*time.Minute)),
		core.BuildBookBorrowedByPatron(libraryID, 10, 1, 5, start.Add(3*time.Minute)),
	}

	// act
	result := borrowinghistory.ProjectHistory(history, borrowinghistory.BuildQuery(1))

	// assert
	assert.Equal(t, borrowinghistory.History{
		PatronID: "1",
		CurrentlyBorrowed: []borrowinghistory.BorrowedBook{
			{BookID: "2", Score: 7, BorrowedAt: start},
			{BookID: "10", Score: 5, BorrowedAt: start.Add(3 * time.Minute)},
		},
		TotalBorrowings: 3,
		TotalReturns:    1,
		LastActivityAt:  start.Add(3 * time.Minute),
	}, result)
}

func Test_QueryHandler_Handle_ReadsTheJournal(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := library.New(2, 2, 2)
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))
	lib.AddBook(library.NewBook("Emma", "Jane Austen", 1815, 6, 1, 0))
	lib.RegisterPatron(library.NewPatron("Alan", "Turing", 1, 1, 1, 1))
	lib.RegisterPatron(library.NewPatron("Grace", "Hopper", 1, 1, 1, 1))

	j, err := memoryengine.New()
	require.NoError(t, err)
	guarded := shell.NewGuardedLibrary(lib)

	borrow := borrowbook.NewCommandHandler(guarded, j)
	giveBack := returnbook.NewCommandHandler(guarded, j)

	_, err = borrow.Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))
	require.NoError(t, err)
	_, err = giveBack.Handle(ctx, returnbook.BuildCommand(0, time.Now()))
	require.NoError(t, err)
	_, err = borrow.Handle(ctx, borrowbook.BuildCommand(1, 0, time.Now()))
	require.NoError(t, err)
	_, err = borrow.Handle(ctx, borrowbook.BuildCommand(0, 1, time.Now()))
	require.NoError(t, err)

	handler := borrowinghistory.NewQueryHandler(guarded, j)

	// act
	result, err := handler.Handle(ctx, borrowinghistory.BuildQuery(0))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalBorrowings)
	assert.Equal(t, 1, result.TotalReturns)
	require.Len(t, result.CurrentlyBorrowed, 1)
	assert.Equal(t, "1", result.CurrentlyBorrowed[0].BookID)
}

func Test_QueryHandler_Handle_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	j, err := memoryengine.New()
	require.NoError(t, err)

	_, err = borrowinghistory.NewQueryHandler(shell.NewGuardedLibrary(library.New(1, 1, 1)), j).
		Handle(ctx, borrowinghistory.BuildQuery(0))

	assert.ErrorIs(t, err, context.Canceled)
}

// slowBorrowJournal delays every BookBorrowedByPatron append until a return was appended
// or hold has passed, giving a concurrent return the chance to overtake the borrow.
type slowBorrowJournal struct {
	shell.Journal
	hold           time.Duration
	borrowStarted  chan struct{}
	returnAppended chan struct{}
	startedOnce    sync.Once
	returnedOnce   sync.Once
}

func newSlowBorrowJournal(inner shell.Journal, hold time.Duration) *slowBorrowJournal {
	return &slowBorrowJournal{
		Journal:        inner,
		hold:           hold,
		borrowStarted:  make(chan struct{}),
		returnAppended: make(chan struct{}),
	}
}

func (j *slowBorrowJournal) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	entry journal.Entry,
	additionalEntries ...journal.Entry,
) error {

	switch entry.EventType {
	case core.BookBorrowedByPatronEventType:
		j.startedOnce.Do(func() { close(j.borrowStarted) })

		select {
		case <-j.returnAppended:
		case <-time.After(j.hold):
		}

	case core.BookReturnedByPatronEventType:
		err := j.Journal.Append(ctx, filter, expectedMaxSequenceNumber, entry, additionalEntries...)
		j.returnedOnce.Do(func() { close(j.returnAppended) })

		return err
	}

	return j.Journal.Append(ctx, filter, expectedMaxSequenceNumber, entry, additionalEntries...)
}

func Test_QueryHandler_Handle_JournalKeepsDecisionOrderUnderConcurrency(t *testing.T) {
	// arrange
	ctx := context.Background()
	lib := library.New(1, 1, 1)
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))
	lib.RegisterPatron(library.NewPatron("Ada", "Lovelace", 0, 2, 1, 10))

	inner, err := memoryengine.New()
	require.NoError(t, err)
	j := newSlowBorrowJournal(inner, 200*time.Millisecond)
	guarded := shell.NewGuardedLibrary(lib)

	borrow := borrowbook.NewCommandHandler(guarded, j)
	giveBack := returnbook.NewCommandHandler(guarded, j)

	// act
	borrowDone := make(chan error, 1)
	go func() {
		_, borrowErr := borrow.Handle(ctx, borrowbook.BuildCommand(0, 0, time.Now()))
		borrowDone <- borrowErr
	}()

	<-j.borrowStarted

	returnDone := make(chan error, 1)
	go func() {
		_, returnErr := giveBack.Handle(ctx, returnbook.BuildCommand(0, time.Now()))
		returnDone <- returnErr
	}()

	require.NoError(t, <-borrowDone)
	require.NoError(t, <-returnDone)

	result, err := borrowinghistory.NewQueryHandler(guarded, j).Handle(ctx, borrowinghistory.BuildQuery(0))

	// assert
	require.NoError(t, err)

	guarded.Use(func(lib *library.Library) {
		assert.True(t, lib.IsBookAvailable(0))
		assert.Zero(t, lib.BorrowCount(0))
	})

	assert.Empty(t, result.CurrentlyBorrowed, "the book is on the shelf")
	assert.Equal(t, 1, result.TotalBorrowings)
	assert.Equal(t, 1, result.TotalReturns)
}
