package registerpatron_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/journal/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func Test_Decide_RegistersIntoFirstFreeSlot(t *testing.T) {
	// arrange
	lib := library.New(1, 1, 2)
	libraryID := uuid.New()
	patron := library.NewPatron("Ada", "Lovelace", 1, 2, 3, 10)

	// act
	result, patronID := registerpatron.Decide(lib, libraryID, registerpatron.BuildCommand(patron, time.Now()))

	// assert
	assert.Equal(t, 0, patronID)
	event, ok := result.Event.(core.PatronRegistered)
	require.True(t, ok)
	assert.Equal(t, "0", event.PatronID)
	assert.Equal(t, "Ada", event.FirstName)
	assert.Equal(t, libraryID.String(), event.LibraryID)
}

func Test_CommandHandler_Handle(t *testing.T) {
	// arrange
	ctx := context.Background()
	j, err := memoryengine.New()
	require.NoError(t, err)
	guarded := shell.NewGuardedLibrary(library.New(1, 1, 1))
	handler := registerpatron.NewCommandHandler(guarded, j, registerpatron.WithRetryOptions(shell.WithMaxAttempts(2)))

	ada := library.NewPatron("Ada", "Lovelace", 1, 2, 3, 10)
	alan := library.NewPatron("Alan", "Turing", 3, 2, 1, 10)

	// act
	registered, registerErr := handler.Handle(ctx, registerpatron.BuildCommand(ada, time.Now()))
	again, againErr := handler.Handle(ctx, registerpatron.BuildCommand(ada, time.Now()))
	full, fullErr := handler.Handle(ctx, registerpatron.BuildCommand(alan, time.Now()))
	_, missingErr := handler.Handle(ctx, registerpatron.BuildCommand(nil, time.Now()))

	// assert
	require.NoError(t, registerErr)
	assert.Equal(t, 0, registered.AssignedID)

	require.NoError(t, againErr)
	assert.True(t, again.Idempotent)
	assert.Equal(t, 0, again.AssignedID)

	assert.ErrorIs(t, fullErr, library.ErrPatronRegistryIsFull)
	assert.Equal(t, library.NoID, full.AssignedID)

	assert.ErrorIs(t, missingErr, registerpatron.ErrMissingPatron)

	entries, _, err := j.Query(ctx, registerpatron.BuildJournalFilter(guarded.ID()))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, core.PatronRegisteredEventType, entries[0].EventType)
	assert.Equal(t, core.RegisteringPatronFailedEventType, entries[1].EventType)
}
