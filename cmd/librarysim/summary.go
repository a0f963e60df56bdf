package main

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
)

// Summary is what a simulation run reports at the end.
type Summary struct {
	LibraryID uuid.UUID
	Duration  time.Duration
	Books     int
	Patrons   int
	Borrowed  int

	// Outcomes counts operation -> status -> occurrences.
	Outcomes map[string]map[string]int
}

// Total returns how many times operation ran, across all statuses.
func (s Summary) Total(operation string) int {
	total := 0
	for _, n := range s.Outcomes[operation] {
		total += n
	}

	return total
}

// Print writes the summary as an aligned table.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "library %s after %s\n", s.LibraryID, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "books=%d patrons=%d borrowed=%d\n\n", s.Books, s.Patrons, s.Borrowed)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tSTATUS\tCOUNT")

	operations := make([]string, 0, len(s.Outcomes))
	for operation := range s.Outcomes {
		operations = append(operations, operation)
	}
	slices.Sort(operations)

	for _, operation := range operations {
		statuses := make([]string, 0, len(s.Outcomes[operation]))
		for status := range s.Outcomes[operation] {
			statuses = append(statuses, status)
		}
		slices.Sort(statuses)

		for _, status := range statuses {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", operation, status, s.Outcomes[operation][status])
		}
	}

	_ = tw.Flush()
}
