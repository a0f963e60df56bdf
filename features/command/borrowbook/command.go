package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a patron to borrow a book.
type Command struct {
	BookID     int
	PatronID   int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID int, patronID int, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		PatronID:   patronID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
