package addbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/library"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to admit a book into the library.
type Command struct {
	Book       *library.Book
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(book *library.Book, occurredAt time.Time) Command {
	return Command{
		Book:       book,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
