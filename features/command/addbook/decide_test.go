package addbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

func Test_Decide_Success_AdmitsIntoFirstFreeSlot(t *testing.T) {
	// arrange
	lib := library.New(2, 1, 1)
	libraryID := uuid.New()
	now := time.Now()
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))
	book := library.NewBook("Emma", "Jane Austen", 1815, 6, 4, 1)

	// act
	result, bookID := addbook.Decide(lib, libraryID, addbook.BuildCommand(book, now))

	// assert
	assert.Equal(t, 1, bookID)
	require.True(t, result.HasEventToAppend())
	require.NoError(t, result.HasError())

	event, ok := result.Event.(core.BookAddedToLibrary)
	require.True(t, ok)
	assert.Equal(t, core.BookAddedToLibrary{
		LibraryID:         libraryID.String(),
		BookID:            "1",
		Title:             "Emma",
		Author:            "Jane Austen",
		YearOfPublication: 1815,
		ComicValue:        6,
		DramaticValue:     4,
		EducationalValue:  1,
		OccurredAt:        core.ToOccurredAt(now),
	}, event)
}

func Test_Decide_Idempotent_WhenInstanceAlreadyAdmitted(t *testing.T) {
	// arrange
	lib := library.New(2, 1, 1)
	book := library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3)
	lib.AddBook(book)

	// act
	result, bookID := addbook.Decide(lib, uuid.New(), addbook.BuildCommand(book, time.Now()))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Equal(t, 0, bookID)
	assert.Equal(t, 1, lib.BookCount())
}

func Test_Decide_Error_WhenLibraryIsFull(t *testing.T) {
	// arrange
	lib := library.New(1, 1, 1)
	lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))

	// act
	result, bookID := addbook.Decide(lib, uuid.New(),
		addbook.BuildCommand(library.NewBook("Emma", "Jane Austen", 1815, 6, 4, 1), time.Now()))

	// assert
	assert.Equal(t, library.NoID, bookID)
	assert.ErrorIs(t, result.HasError(), library.ErrLibraryIsFull)

	event, ok := result.Event.(core.AddingBookToLibraryFailed)
	require.True(t, ok)
	assert.True(t, event.IsErrorEvent())
	assert.Equal(t, "Emma", event.Title)
	assert.Contains(t, event.FailureInfo, library.ErrLibraryIsFull.Error())
}
