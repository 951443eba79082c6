package algorithms

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// SelectionScheme names a parent selection strategy.
type SelectionScheme string

const (
	RouletteWheelSelection SelectionScheme = "RouletteWheel"
	TournamentSelection    SelectionScheme = "Tournament"

	// DefaultTournamentSize is the number of competitors drawn per tournament.
	DefaultTournamentSize = 2
)

// Selector draws one parent index from a population, given its fitness values.
type Selector interface {
	Select(fitness []int, rng *rand.Rand) (int, error)
}

// NewSelector returns the selector for scheme. tournamentSize is ignored by
// the roulette wheel.
func NewSelector(scheme SelectionScheme, tournamentSize int) (Selector, error) {
	switch scheme {
	case RouletteWheelSelection:
		return RouletteWheel{}, nil
	case TournamentSelection, "":
		if tournamentSize < 1 {
			return nil, fmt.Errorf("%w: tournament size must be at least 1, got %d", framework.ErrInvalidConfiguration, tournamentSize)
		}
		return Tournament{Size: tournamentSize}, nil
	default:
		return nil, fmt.Errorf("%w: unknown selection scheme %q", framework.ErrInvalidConfiguration, scheme)
	}
}

// RouletteWheel selects an individual with probability proportional to its fitness.
type RouletteWheel struct{}

// Select draws r uniformly from [0, sum) and walks the population in index
// order, subtracting fitness until r falls inside the current individual's slot.
func (RouletteWheel) Select(fitness []int, rng *rand.Rand) (int, error) {
	sum := 0
	for _, f := range fitness {
		if f < 0 {
			return 0, fmt.Errorf("%w: roulette wheel needs non-negative fitness, got %d", framework.ErrSelection, f)
		}
		sum += f
	}
	if sum <= 0 {
		return 0, fmt.Errorf("%w: roulette wheel needs a positive fitness sum, got %d", framework.ErrSelection, sum)
	}

	r := rng.Intn(sum)
	i := 0
	for r >= fitness[i] {
		r -= fitness[i]
		i++
	}
	return i, nil
}

// Tournament draws Size distinct individuals and returns the fittest one.
// Ties go to the lowest index. Size must be at least 1; sizes above the
// population are clamped to it.
type Tournament struct {
	Size int
}

// Select samples competitors without replacement using Floyd's algorithm.
func (t Tournament) Select(fitness []int, rng *rand.Rand) (int, error) {
	n := len(fitness)
	if n == 0 {
		return 0, fmt.Errorf("%w: empty population", framework.ErrSelection)
	}
	k := t.Size
	if k < 1 {
		return 0, fmt.Errorf("%w: tournament size must be at least 1, got %d", framework.ErrSelection, k)
	}
	if k > n {
		k = n
	}

	chosen := make(map[int]struct{}, k)
	best := -1
	for j := n - k; j < n; j++ {
		c := rng.Intn(j + 1)
		if _, dup := chosen[c]; dup {
			c = j
		}
		chosen[c] = struct{}{}
		if best < 0 || fitness[c] > fitness[best] || (fitness[c] == fitness[best] && c < best) {
			best = c
		}
	}
	return best, nil
}
