package registerpatron

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

const (
	commandType = "RegisterPatron"
)

// Command represents the intent to register a patron.
type Command struct {
	Patron     *library.Patron
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(patron *library.Patron, occurredAt time.Time) Command {
	return Command{
		Patron:     patron,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
