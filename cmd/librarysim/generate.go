package main

import (
	"math/rand/v2"

	"github.com/AntonStoeckl/library-circulation-go/library"
)

var (
	titleAdjectives = []string{"Silent", "Crimson", "Forgotten", "Endless", "Hidden", "Golden", "Broken", "Distant"}
	titleNouns      = []string{"River", "Empire", "Garden", "Voyage", "Archive", "Winter", "Orchard", "Machine"}
	firstNames      = []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Frances", "Ken", "Radia", "Niklaus"}
	lastNames       = []string{"Lovelace", "Turing", "Hopper", "Dijkstra", "Liskov", "Knuth", "Allen", "Thompson", "Perlman", "Wirth"}
)

// randomBook draws literary values in [0, 10).
func randomBook(rng *rand.Rand) *library.Book {
	return library.NewBook(
		pick(rng, titleAdjectives)+" "+pick(rng, titleNouns),
		pick(rng, firstNames)+" "+pick(rng, lastNames),
		1800+rng.IntN(226),
		rng.IntN(10),
		rng.IntN(10),
		rng.IntN(10),
	)
}

// randomPatron draws tendencies in [0, 4) and a threshold in [10, 60) so that roughly half
// of the books are enjoyed by a typical patron.
func randomPatron(rng *rand.Rand) *library.Patron {
	return library.NewPatron(
		pick(rng, firstNames),
		pick(rng, lastNames),
		rng.IntN(4),
		rng.IntN(4),
		rng.IntN(4),
		10+rng.IntN(50),
	)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
