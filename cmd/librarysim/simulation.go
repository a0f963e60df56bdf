package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerpatron"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnbook"
	"github.com/AntonStoeckl/library-circulation-go/features/query/borrowinghistory"
	"github.com/AntonStoeckl/library-circulation-go/features/query/suggestbook"
	"github.com/AntonStoeckl/library-circulation-go/library"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/config"
)

const (
	opAddBook          = "AddBook"
	opRegisterPatron   = "RegisterPatron"
	opBorrowBook       = "BorrowBook"
	opReturnBook       = "ReturnBook"
	opSuggestBook      = "SuggestBook"
	opBorrowingHistory = "BorrowingHistory"

	// statusNoMatch counts suggestions that found nothing the patron would enjoy.
	statusNoMatch = "no_match"
)

// Step weights in percent.
const (
	borrowWeight  = 45
	returnWeight  = 30
	suggestWeight = 15
)

var (
	ErrCirculationMismatch = errors.New("borrow counts do not match the borrowed books")
	ErrHistoryMismatch     = errors.New("borrowing history does not match the borrowed books")
)

// Simulation drives a library through its handlers.
type Simulation struct {
	cfg      config.Config
	library  *shell.GuardedLibrary
	handlers handlerBundle
	history  borrowinghistory.QueryHandler
	logger   *slog.Logger
	tally    *tally
}

func newSimulation(
	libraryID uuid.UUID,
	j shell.Journal,
	cfg config.Config,
	obs observability,
	logger *slog.Logger,
) (*Simulation, error) {

	guarded := shell.NewGuardedLibraryWithID(libraryID, library.New(cfg.Books, cfg.MaxBorrowed, cfg.Patrons))

	handlerLogger, err := handlerLogging(cfg)
	if err != nil {
		return nil, err
	}

	handlers, err := newHandlerBundle(guarded, j, wrapperSettings{
		metrics: obs.metrics,
		tracing: obs.tracing,
		logger:  handlerLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating handlers: %w", err)
	}

	return &Simulation{
		cfg:      cfg,
		library:  guarded,
		handlers: handlers,
		history:  borrowinghistory.NewQueryHandler(guarded, j),
		logger:   logger,
		tally:    newTally(),
	}, nil
}

// Run seeds the library and then executes cfg.Steps steps on cfg.Workers workers.
// A canceled ctx stops the workers, the summary then covers the steps done so far.
func (s *Simulation) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	if err := s.seed(ctx); err != nil {
		return s.summarize(time.Since(start)), err
	}

	s.logger.Info("library seeded", "books", s.cfg.Books, "patrons", s.cfg.Patrons)

	var remaining atomic.Int64
	remaining.Store(int64(s.cfg.Steps))

	g, gctx := errgroup.WithContext(ctx)

	for worker := range s.cfg.Workers {
		rng := rand.New(rand.NewPCG(s.cfg.Seed, uint64(worker)+1)) //nolint:gosec // simulation randomness

		g.Go(func() error {
			for remaining.Add(-1) >= 0 {
				if err := gctx.Err(); err != nil {
					return err
				}

				s.step(gctx, rng)
			}

			return nil
		})
	}

	err := g.Wait()
	summary := s.summarize(time.Since(start))

	if err != nil {
		return summary, err
	}

	if err := s.verifyCirculation(); err != nil {
		return summary, err
	}

	if err := s.verifyHistories(ctx); err != nil {
		return summary, err
	}

	s.logger.Info("simulation finished", "duration", summary.Duration.Round(time.Millisecond))

	return summary, nil
}

func (s *Simulation) seed(ctx context.Context) error {
	rng := rand.New(rand.NewPCG(s.cfg.Seed, 0)) //nolint:gosec // simulation randomness

	for range s.cfg.Books {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := s.handlers.addBook.Handle(ctx, addbook.BuildCommand(randomBook(rng), time.Now()))
		s.tally.add(opAddBook, commandStatus(result, err))
	}

	for range s.cfg.Patrons {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := s.handlers.registerPatron.Handle(ctx, registerpatron.BuildCommand(randomPatron(rng), time.Now()))
		s.tally.add(opRegisterPatron, commandStatus(result, err))
	}

	return nil
}

// step runs one randomly chosen operation. Ids are drawn one past the registries so that
// invalid ids show up among the rejections.
func (s *Simulation) step(ctx context.Context, rng *rand.Rand) {
	stepCtx, cancel := context.WithTimeout(ctx, s.cfg.StepTimeout)
	defer cancel()

	bookID := rng.IntN(s.cfg.Books + 1)
	patronID := rng.IntN(s.cfg.Patrons + 1)

	switch roll := rng.IntN(100); {
	case roll < borrowWeight:
		result, err := s.handlers.borrowBook.Handle(stepCtx, borrowbook.BuildCommand(bookID, patronID, time.Now()))
		s.tally.add(opBorrowBook, commandStatus(result, err))

	case roll < borrowWeight+returnWeight:
		result, err := s.handlers.returnBook.Handle(stepCtx, returnbook.BuildCommand(bookID, time.Now()))
		s.tally.add(opReturnBook, commandStatus(result, err))

	case roll < borrowWeight+returnWeight+suggestWeight:
		suggestion, err := s.handlers.suggestBook.Handle(stepCtx, suggestbook.BuildQuery(patronID))
		status := queryStatus(err)
		if err == nil && !suggestion.Found {
			status = statusNoMatch
		}

		s.tally.add(opSuggestBook, status)

	default:
		_, err := s.handlers.borrowingHistory.Handle(stepCtx, borrowinghistory.BuildQuery(patronID))
		s.tally.add(opBorrowingHistory, queryStatus(err))
	}
}

// verifyCirculation checks that every patron's borrow count equals the number of books
// marked as borrowed by them and stays within the limit.
func (s *Simulation) verifyCirculation() error {
	var err error

	s.library.Use(func(lib *library.Library) {
		held := make(map[int]int)

		for bookID := range lib.BookCapacity() {
			book := lib.Book(bookID)
			if book == nil {
				continue
			}

			if patronID, ok := book.Borrower().PatronID(); ok {
				held[patronID]++
			}
		}

		for patronID := range lib.PatronCapacity() {
			count := lib.BorrowCount(patronID)
			if count != held[patronID] || count > lib.MaxBorrowedBooks() {
				err = fmt.Errorf("%w: patron %d has count %d and holds %d books",
					ErrCirculationMismatch, patronID, count, held[patronID])

				return
			}
		}
	})

	return err
}

// verifyHistories checks that the journal-projected history of every patron lists exactly
// the books the library marks as borrowed by them.
func (s *Simulation) verifyHistories(ctx context.Context) error {
	held := make(map[int][]core.BookIDString)
	patrons := 0

	s.library.Use(func(lib *library.Library) {
		patrons = lib.PatronCapacity()

		for bookID := range lib.BookCapacity() {
			book := lib.Book(bookID)
			if book == nil {
				continue
			}

			if patronID, ok := book.Borrower().PatronID(); ok {
				held[patronID] = append(held[patronID], core.ToBookID(bookID))
			}
		}
	})

	for patronID := range patrons {
		history, err := s.history.Handle(ctx, borrowinghistory.BuildQuery(patronID))
		if err != nil {
			return err
		}

		projected := make([]core.BookIDString, 0, len(history.CurrentlyBorrowed))
		for _, book := range history.CurrentlyBorrowed {
			projected = append(projected, book.BookID)
		}

		slices.Sort(projected)
		expected := held[patronID]
		slices.Sort(expected)

		if !slices.Equal(projected, expected) {
			return fmt.Errorf("%w: patron %d holds %v, history says %v",
				ErrHistoryMismatch, patronID, expected, projected)
		}
	}

	return nil
}

func (s *Simulation) summarize(duration time.Duration) Summary {
	summary := Summary{
		LibraryID: s.library.ID(),
		Duration:  duration,
		Outcomes:  s.tally.snapshot(),
	}

	s.library.Use(func(lib *library.Library) {
		summary.Books = lib.BookCount()
		summary.Patrons = lib.PatronCount()

		for bookID := range lib.BookCapacity() {
			if book := lib.Book(bookID); book != nil && book.Borrower().IsBorrowed() {
				summary.Borrowed++
			}
		}
	})

	return summary
}

func commandStatus(result shell.HandlerResult, err error) string {
	switch {
	case err != nil:
		return shell.StatusForError(err)
	case result.Idempotent:
		return shell.StatusIdempotent
	default:
		return shell.StatusSuccess
	}
}

func queryStatus(err error) string {
	if err != nil {
		return shell.StatusForError(err)
	}

	return shell.StatusSuccess
}

// tally counts outcomes per operation and status.
type tally struct {
	mu     sync.Mutex
	counts map[string]map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]map[string]int)}
}

func (t *tally) add(operation, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counts[operation] == nil {
		t.counts[operation] = make(map[string]int)
	}

	t.counts[operation][status]++
}

func (t *tally) snapshot() map[string]map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]map[string]int, len(t.counts))
	for operation, statuses := range t.counts {
		out[operation] = make(map[string]int, len(statuses))
		for status, n := range statuses {
			out[operation][status] = n
		}
	}

	return out
}
