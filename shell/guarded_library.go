package shell

import (
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library"
)

// GuardedLibrary serializes access to a library.Library shared by several handlers
// and carries the id its journal entries are tagged with.
type GuardedLibrary struct {
	mu  sync.Mutex
	id  uuid.UUID
	lib *library.Library
}

// NewGuardedLibrary guards lib under a fresh random id.
func NewGuardedLibrary(lib *library.Library) *GuardedLibrary {
	return NewGuardedLibraryWithID(uuid.New(), lib)
}

// NewGuardedLibraryWithID guards lib under the given id.
func NewGuardedLibraryWithID(id uuid.UUID, lib *library.Library) *GuardedLibrary {
	return &GuardedLibrary{id: id, lib: lib}
}

// ID returns the library id.
func (g *GuardedLibrary) ID() uuid.UUID {
	return g.id
}

// Use runs fn with exclusive access to the library. fn must not keep the pointer.
func (g *GuardedLibrary) Use(fn func(lib *library.Library)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fn(g.lib)
}

// Do runs fn with exclusive access to the library and returns its error. Handlers decide and
// journal inside fn, so journal order equals the order changes were applied to the library.
func (g *GuardedLibrary) Do(fn func(lib *library.Library) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return fn(g.lib)
}
