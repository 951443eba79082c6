package algorithms

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

func newTestBoard(t *testing.T, height, width int, pins ...[2]int) (framework.Board, framework.PinSet) {
	t.Helper()
	board, err := framework.NewBoard(height, width)
	if err != nil {
		t.Fatal(err)
	}
	set := framework.NewPinSet(board)
	for _, p := range pins {
		set[board.Index(p[0], p[1])] = true
	}
	return board, set
}

func sortedKeys(cs []framework.Chromosome) []string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = c.Key()
	}
	sort.Strings(keys)
	return keys
}

// invariantRecorder checks the population shape every time a generation is recorded.
type invariantRecorder struct {
	t           *testing.T
	ga          *GeneticAlgorithm
	generations int
	evaluations int
	runs        int
}

func (r *invariantRecorder) ObserveGeneration(stats GenerationStats) {
	r.generations++
	if len(r.ga.population) != r.ga.popSize || len(r.ga.fitness) != r.ga.popSize {
		r.t.Errorf("generation %d: population %d, fitness %d, want %d",
			stats.Generation, len(r.ga.population), len(r.ga.fitness), r.ga.popSize)
	}
	for i, c := range r.ga.population {
		if len(c) != r.ga.board.Cells() {
			r.t.Errorf("generation %d: individual %d has %d bits, want %d", stats.Generation, i, len(c), r.ga.board.Cells())
		}
	}
	if stats.BestCost > stats.WorstCost || float64(stats.BestCost) > stats.MeanCost+1e-9 {
		r.t.Errorf("generation %d: inconsistent stats %+v", stats.Generation, stats)
	}
}

func (r *invariantRecorder) ObserveEvaluations(n int) { r.evaluations += n }
func (r *invariantRecorder) ObserveRun(time.Duration) { r.runs++ }

func TestRunInvariants(t *testing.T) {
	board, pins := newTestBoard(t, 6, 7, [2]int{0, 0}, [2]int{5, 6}, [2]int{3, 1}, [2]int{1, 5})

	for _, scheme := range []SelectionScheme{TournamentSelection, RouletteWheelSelection} {
		for _, popSize := range []int{1, 2, 7, 20} {
			rec := &invariantRecorder{t: t}
			ga, err := NewGeneticAlgorithm(board, pins, popSize,
				WithRand(rand.New(rand.NewSource(3))),
				WithRecorder(rec),
			)
			if err != nil {
				t.Fatal(err)
			}
			rec.ga = ga

			const gens = 8
			res, err := ga.Run(gens, scheme)
			if err != nil {
				t.Fatalf("%s/%d: Run: %v", scheme, popSize, err)
			}
			if rec.generations != gens+1 || rec.evaluations != (gens+1)*popSize || rec.runs != 1 {
				t.Errorf("%s/%d: recorder saw %d generations, %d evaluations, %d runs", scheme, popSize, rec.generations, rec.evaluations, rec.runs)
			}
			if len(res.History) != gens+1 || len(res.Stats) != gens+1 {
				t.Fatalf("history %d, stats %d, want %d", len(res.History), len(res.Stats), gens+1)
			}
			for i, s := range res.Stats {
				if s.Generation != i || s.BestCost != res.History[i] {
					t.Errorf("stats[%d] = %+v, history %d", i, s, res.History[i])
				}
			}
			cost, err := ga.Evaluator().Cost(res.Best())
			if err != nil {
				t.Fatal(err)
			}
			if cost != res.BestCost() {
				t.Errorf("best chromosome costs %d, history says %d", cost, res.BestCost())
			}
			for i, f := range res.Fitness {
				if f > res.Fitness[res.BestIndex] {
					t.Errorf("individual %d has fitness %d above best %d", i, f, res.Fitness[res.BestIndex])
				}
			}
			if ga.Phase() != PhaseTerminal {
				t.Errorf("phase = %v, want Terminal", ga.Phase())
			}
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	board, pins := newTestBoard(t, 5, 5, [2]int{0, 0}, [2]int{4, 4}, [2]int{0, 4})

	run := func() *Result {
		ga, err := NewGeneticAlgorithm(board, pins, 16, WithRand(rand.New(rand.NewSource(77))))
		if err != nil {
			t.Fatal(err)
		}
		res, err := ga.Run(10, TournamentSelection)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("runs with the same seed differ (-first +second):\n%s", diff)
	}
}

func TestRunFindsTJunction(t *testing.T) {
	// Pin-only MST costs 5; a Steiner point at (0,1) brings it to 4.
	board, pins := newTestBoard(t, 3, 3, [2]int{0, 0}, [2]int{0, 2}, [2]int{2, 1})
	ga, err := NewGeneticAlgorithm(board, pins, 200, WithRand(rand.New(rand.NewSource(2024))))
	if err != nil {
		t.Fatal(err)
	}
	res, err := ga.Run(40, TournamentSelection)
	if err != nil {
		t.Fatal(err)
	}

	best := res.History[0]
	for _, cost := range res.History {
		if cost < 4 {
			t.Fatalf("history %v goes below the optimum 4", res.History)
		}
		best = min(best, cost)
	}
	if best != 4 {
		t.Errorf("best cost over the run = %d, want the optimum 4; history %v", best, res.History)
	}
	if res.BestCost() > 5 {
		t.Errorf("final best cost %d, want at most the pin-only cost 5", res.BestCost())
	}
}

func TestRunSingleCellBoardWithRoulette(t *testing.T) {
	board, pins := newTestBoard(t, 1, 1, [2]int{0, 0})
	ga, err := NewGeneticAlgorithm(board, pins, 10, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	res, err := ga.Run(5, RouletteWheelSelection)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, f := range res.Fitness {
		if f != 2 {
			t.Errorf("fitness[%d] = %d, want 2", i, f)
		}
	}
	if diff := cmp.Diff([]int{0, 0, 0, 0, 0, 0}, res.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestRecombinationAndMutationNoOp(t *testing.T) {
	board, pins := newTestBoard(t, 4, 4, [2]int{0, 0}, [2]int{3, 3})
	for _, poolSize := range []int{1, 6, 7} {
		ga, err := NewGeneticAlgorithm(board, pins, poolSize,
			WithRand(rand.New(rand.NewSource(8))),
			WithCrossoverProbability(0),
			WithMutationProbability(0),
		)
		if err != nil {
			t.Fatal(err)
		}
		ga.initialization()
		pool := append([]framework.Chromosome(nil), ga.population...)
		want := sortedKeys(pool)

		offspring := ga.recombination(pool)
		ga.mutation(offspring)

		if len(offspring) != poolSize {
			t.Fatalf("offspring size %d, want %d", len(offspring), poolSize)
		}
		if diff := cmp.Diff(want, sortedKeys(offspring)); diff != "" {
			t.Errorf("pool size %d: offspring differ from pool (-want +got):\n%s", poolSize, diff)
		}
	}
}

func TestRecombinationOwnsStorage(t *testing.T) {
	board, pins := newTestBoard(t, 2, 2, [2]int{0, 0})
	ga, err := NewGeneticAlgorithm(board, pins, 3, WithCrossoverProbability(0))
	if err != nil {
		t.Fatal(err)
	}
	parent := framework.Chromosome{true, true, true, true}
	// the same individual selected three times
	offspring := ga.recombination([]framework.Chromosome{parent, parent, parent})

	offspring[0][1] = false
	if !parent[1] || !offspring[1][1] || !offspring[2][1] {
		t.Errorf("offspring share storage: parent %v, offspring %v", parent, offspring)
	}
}

func TestMutationOnlyClearsBits(t *testing.T) {
	board, pins := newTestBoard(t, 3, 3, [2]int{1, 1})
	ga, err := NewGeneticAlgorithm(board, pins, 2, WithMutationProbability(1))
	if err != nil {
		t.Fatal(err)
	}
	offspring := []framework.Chromosome{filled(9, true), filled(9, false)}
	ga.mutation(offspring)
	for i, c := range offspring {
		if c.Count() != 0 {
			t.Errorf("offspring %d still has %d bits set", i, c.Count())
		}
	}

	ga.mutationRate = 0.3
	before := filled(9, false)
	before[2], before[5] = true, true
	c := before.Clone()
	for i := 0; i < 50; i++ {
		ga.mutation([]framework.Chromosome{c})
		for j := range c {
			if c[j] && !before[j] {
				t.Fatalf("mutation set bit %d", j)
			}
		}
	}
}

func TestNewGeneticAlgorithmErrors(t *testing.T) {
	board, pins := newTestBoard(t, 3, 3, [2]int{0, 0})
	emptyBoard, emptyPins := newTestBoard(t, 3, 3)

	tests := []struct {
		name    string
		board   framework.Board
		pins    framework.PinSet
		popSize int
		opts    []Option
	}{
		{name: "no pins", board: emptyBoard, pins: emptyPins, popSize: 4},
		{name: "zero population", board: board, pins: pins, popSize: 0},
		{name: "crossover probability above one", board: board, pins: pins, popSize: 4, opts: []Option{WithCrossoverProbability(1.5)}},
		{name: "negative mutation probability", board: board, pins: pins, popSize: 4, opts: []Option{WithMutationProbability(-0.1)}},
		{name: "zero tournament", board: board, pins: pins, popSize: 4, opts: []Option{WithTournamentSize(0)}},
		{name: "nil crossover", board: board, pins: pins, popSize: 4, opts: []Option{WithCrossover(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeneticAlgorithm(tt.board, tt.pins, tt.popSize, tt.opts...)
			if !errors.Is(err, framework.ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}

	ga, err := NewGeneticAlgorithm(board, pins, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ga.Run(-1, TournamentSelection); !errors.Is(err, framework.ErrInvalidConfiguration) {
		t.Errorf("negative generations error = %v", err)
	}
	if _, err := ga.Run(1, "Rank"); !errors.Is(err, framework.ErrInvalidConfiguration) {
		t.Errorf("unknown scheme error = %v", err)
	}
	if ga.Phase() != PhaseUninitialized {
		t.Errorf("phase after rejected runs = %v, want Uninitialized", ga.Phase())
	}
}

func TestInitialChromosomes(t *testing.T) {
	board, pins := newTestBoard(t, 3, 3, [2]int{0, 0}, [2]int{0, 2}, [2]int{2, 1})
	seed := make(framework.Chromosome, board.Cells())
	seed[board.Index(0, 1)] = true

	ga, err := NewGeneticAlgorithm(board, pins, 5,
		WithRand(rand.New(rand.NewSource(3))),
		WithInitialChromosomes(seed),
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := ga.Run(0, TournamentSelection)
	if err != nil {
		t.Fatal(err)
	}
	if res.History[0] != 4 {
		t.Errorf("initial best cost = %d, want 4 from the seeded chromosome", res.History[0])
	}
	if diff := cmp.Diff(seed, res.Population[0]); diff != "" {
		t.Errorf("seeded individual mismatch (-want +got):\n%s", diff)
	}
	res.Population[0][0] = true
	if seed[0] {
		t.Error("population aliases the seed chromosome")
	}

	// Seeding only overwrites slots; the remaining individuals match an unseeded run.
	plain, err := NewGeneticAlgorithm(board, pins, 5, WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatal(err)
	}
	plainRes, err := plain.Run(0, TournamentSelection)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plainRes.Population[1:], res.Population[1:]); diff != "" {
		t.Errorf("unseeded slots differ (-plain +seeded):\n%s", diff)
	}

	if _, err := NewGeneticAlgorithm(board, pins, 5, WithInitialChromosomes(make(framework.Chromosome, 4))); !errors.Is(err, framework.ErrInvalidConfiguration) {
		t.Errorf("short seed: got %v, want ErrInvalidConfiguration", err)
	}
}
