package registerpatron

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

// Decide registers the command's patron in lib and returns what to journal plus the patron id.
//
//	GIVEN: a patron instance
//	WHEN: RegisterPatron is received
//	THEN: the patron takes the first free slot, PatronRegistered
//	ERROR: no free slot, RegisteringPatronFailed wrapping library.ErrPatronRegistryIsFull
//	IDEMPOTENCY: the instance is already registered, nothing to journal
func Decide(lib *library.Library, libraryID uuid.UUID, command Command) (core.DecisionResult, int) {
	patron := command.Patron

	if patronID := lib.PatronID(patron); patronID != library.NoID {
		return core.IdempotentDecision(), patronID
	}

	patronID := lib.RegisterPatron(patron)
	if patronID == library.NoID {
		err := fmt.Errorf("register patron %q: %w", patron.String(), library.ErrPatronRegistryIsFull)

		return core.ErrorDecision(
			core.BuildRegisteringPatronFailed(libraryID, patron.FirstName(), patron.LastName(), err.Error(), command.OccurredAt),
			err,
		), library.NoID
	}

	return core.SuccessDecision(
		core.BuildPatronRegistered(libraryID, patronID, patron.FirstName(), patron.LastName(), command.OccurredAt),
	), patronID
}
