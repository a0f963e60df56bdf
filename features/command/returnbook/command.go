package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to put a borrowed book back on the shelf.
type Command struct {
	BookID     int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID int, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
