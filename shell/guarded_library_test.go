package shell_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

func Test_GuardedLibrary_SerializesAccess(t *testing.T) {
	// arrange
	id := uuid.New()
	guarded := shell.NewGuardedLibraryWithID(id, library.New(100, 1, 1))

	// act
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			guarded.Use(func(lib *library.Library) {
				lib.AddBook(library.NewBook("Title", "Author", 2000+i, 1, 1, 1))
			})
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, id, guarded.ID())
	guarded.Use(func(lib *library.Library) {
		assert.Equal(t, 100, lib.BookCount())
	})
}

func Test_GuardedLibrary_Do_HoldsTheLockForTheWholeCallback(t *testing.T) {
	// arrange
	guarded := shell.NewGuardedLibrary(library.New(1, 1, 1))
	inside := make(chan struct{})
	release := make(chan struct{})
	failure := errors.New("journal down")

	// act
	doneDo := make(chan error, 1)
	go func() {
		doneDo <- guarded.Do(func(lib *library.Library) error {
			close(inside)
			<-release
			lib.AddBook(library.NewBook("Dune", "Frank Herbert", 1965, 1, 8, 3))

			return failure
		})
	}()

	<-inside

	bookCount := make(chan int, 1)
	go func() {
		guarded.Use(func(lib *library.Library) {
			bookCount <- lib.BookCount()
		})
	}()

	select {
	case <-bookCount:
		t.Fatal("Use ran while Do held the library")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	// assert
	assert.ErrorIs(t, <-doneDo, failure)
	assert.Equal(t, 1, <-bookCount)
}
