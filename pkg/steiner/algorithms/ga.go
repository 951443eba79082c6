// Package algorithms contains the genetic search over Steiner point subsets:
// selection strategies, crossover operators and the generational loop.
package algorithms

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/pkg/steiner/fitness"
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

const (
	Name = "SteinerGA"

	DefaultCrossoverProbability = 1.0
	DefaultMutationProbability  = 0.1
	DefaultSeed                 = 1
)

// Phase is the controller state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitialized
	PhaseEvaluated
	PhaseSelecting
	PhaseRecombining
	PhaseMutating
	PhaseReplaced
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseInitialized:
		return "Initialized"
	case PhaseEvaluated:
		return "Evaluated"
	case PhaseSelecting:
		return "Selecting"
	case PhaseRecombining:
		return "Recombining"
	case PhaseMutating:
		return "Mutating"
	case PhaseReplaced:
		return "Replaced"
	case PhaseTerminal:
		return "Terminal"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Recorder observes a run. Implementations must be cheap; they are called
// once per generation on the search goroutine.
type Recorder interface {
	ObserveGeneration(stats GenerationStats)
	ObserveEvaluations(n int)
	ObserveRun(duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveGeneration(GenerationStats) {}
func (noopRecorder) ObserveEvaluations(int)            {}
func (noopRecorder) ObserveRun(time.Duration)          {}

// Option configures a GeneticAlgorithm.
type Option func(*GeneticAlgorithm)

// WithRand sets the random source shared by every stochastic operator.
func WithRand(rng *rand.Rand) Option {
	return func(ga *GeneticAlgorithm) {
		ga.rng = rng
	}
}

// WithCrossoverProbability sets pc, the chance that a parent pair is recombined.
func WithCrossoverProbability(pc float64) Option {
	return func(ga *GeneticAlgorithm) {
		ga.crossoverRate = pc
	}
}

// WithMutationProbability sets pm, the per-bit chance of dropping a Steiner point.
func WithMutationProbability(pm float64) Option {
	return func(ga *GeneticAlgorithm) {
		ga.mutationRate = pm
	}
}

// WithTournamentSize sets the number of competitors for tournament selection.
func WithTournamentSize(k int) Option {
	return func(ga *GeneticAlgorithm) {
		ga.tournamentSize = k
	}
}

// WithCrossover replaces the single-point crossover operator.
func WithCrossover(fn CrossoverFunc) Option {
	return func(ga *GeneticAlgorithm) {
		ga.crossover = fn
	}
}

func WithLogger(logger klog.Logger) Option {
	return func(ga *GeneticAlgorithm) {
		ga.logger = logger
	}
}

func WithRecorder(r Recorder) Option {
	return func(ga *GeneticAlgorithm) {
		ga.recorder = r
	}
}

// WithInitialChromosomes places copies of cs at the front of the initial
// population. The random draws for those slots still happen, so the rest of
// the run consumes the random source exactly as without warm start.
func WithInitialChromosomes(cs ...framework.Chromosome) Option {
	return func(ga *GeneticAlgorithm) {
		ga.seeds = cs
	}
}

// GeneticAlgorithm searches Steiner point subsets for a fixed board and pin set.
// It is not safe for concurrent use.
type GeneticAlgorithm struct {
	board     framework.Board
	pins      framework.PinSet
	evaluator *fitness.Evaluator
	popSize   int

	crossoverRate  float64
	mutationRate   float64
	tournamentSize int
	crossover      CrossoverFunc
	seeds          []framework.Chromosome

	rng      *rand.Rand
	logger   klog.Logger
	recorder Recorder

	phase      Phase
	population []framework.Chromosome
	fitness    []int
	history    []int
	stats      []GenerationStats
}

// Result is what a run hands back to its caller.
type Result struct {
	// BestIndex points into Population and Fitness.
	BestIndex  int
	Population []framework.Chromosome
	Fitness    []int
	// History holds the best MST cost of every generation, starting with the initial one.
	History []int
	Stats   []GenerationStats
}

// Best returns the best chromosome of the final population.
func (r *Result) Best() framework.Chromosome {
	return r.Population[r.BestIndex]
}

// BestCost returns the best MST cost of the final population.
func (r *Result) BestCost() int {
	return r.History[len(r.History)-1]
}

// NewGeneticAlgorithm builds a search over board with the given pins and population size.
func NewGeneticAlgorithm(board framework.Board, pins framework.PinSet, populationSize int, opts ...Option) (*GeneticAlgorithm, error) {
	evaluator, err := fitness.NewEvaluator(board, pins)
	if err != nil {
		return nil, err
	}

	ga := &GeneticAlgorithm{
		board:          board,
		pins:           pins,
		evaluator:      evaluator,
		popSize:        populationSize,
		crossoverRate:  DefaultCrossoverProbability,
		mutationRate:   DefaultMutationProbability,
		tournamentSize: DefaultTournamentSize,
		crossover:      OnePointCrossover,
		logger:         klog.Background(),
		recorder:       noopRecorder{},
	}
	for _, opt := range opts {
		opt(ga)
	}
	if ga.rng == nil {
		ga.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	if err := ga.validate(); err != nil {
		return nil, err
	}
	return ga, nil
}

func (ga *GeneticAlgorithm) validate() error {
	if ga.popSize < 1 {
		return fmt.Errorf("%w: population size must be at least 1, got %d", framework.ErrInvalidConfiguration, ga.popSize)
	}
	if ga.crossoverRate < 0 || ga.crossoverRate > 1 {
		return fmt.Errorf("%w: crossover probability must be in [0, 1], got %v", framework.ErrInvalidConfiguration, ga.crossoverRate)
	}
	if ga.mutationRate < 0 || ga.mutationRate > 1 {
		return fmt.Errorf("%w: mutation probability must be in [0, 1], got %v", framework.ErrInvalidConfiguration, ga.mutationRate)
	}
	if ga.tournamentSize < 1 {
		return fmt.Errorf("%w: tournament size must be at least 1, got %d", framework.ErrInvalidConfiguration, ga.tournamentSize)
	}
	if ga.crossover == nil {
		return fmt.Errorf("%w: crossover operator is nil", framework.ErrInvalidConfiguration)
	}
	for i, c := range ga.seeds {
		if len(c) != ga.board.Cells() {
			return fmt.Errorf("%w: initial chromosome %d has length %d, want %d", framework.ErrInvalidConfiguration, i, len(c), ga.board.Cells())
		}
	}
	return nil
}

// Evaluator exposes the fitness function the search uses.
func (ga *GeneticAlgorithm) Evaluator() *fitness.Evaluator {
	return ga.evaluator
}

// Phase reports where the controller is in its lifecycle.
func (ga *GeneticAlgorithm) Phase() Phase {
	return ga.phase
}

// Run initializes a fresh population, evaluates it, and evolves it for
// numGenerations generations with the given selection scheme.
func (ga *GeneticAlgorithm) Run(numGenerations int, scheme SelectionScheme) (*Result, error) {
	if numGenerations < 0 {
		return nil, fmt.Errorf("%w: number of generations must be non-negative, got %d", framework.ErrInvalidConfiguration, numGenerations)
	}
	selector, err := NewSelector(scheme, ga.tournamentSize)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	ga.logger.Info("Starting evolution",
		"algorithm", Name,
		"board", fmt.Sprintf("%dx%d", ga.board.Height, ga.board.Width),
		"pins", ga.pins.Count(),
		"populationSize", ga.popSize,
		"generations", numGenerations,
		"selection", scheme,
		"crossoverRate", ga.crossoverRate,
		"mutationRate", ga.mutationRate,
	)

	ga.initialization()
	best, err := ga.evaluation()
	if err != nil {
		return nil, err
	}
	ga.record(0, best)

	for gen := 1; gen <= numGenerations; gen++ {
		pool, err := ga.parentSelection(selector)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}
		offspring := ga.recombination(pool)
		ga.mutation(offspring)
		ga.replacement(offspring)

		best, err = ga.evaluation()
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", gen, err)
		}
		ga.record(gen, best)
	}
	ga.phase = PhaseTerminal

	elapsed := time.Since(startTime)
	ga.recorder.ObserveRun(elapsed)
	ga.logger.Info("Evolution complete",
		"bestCost", ga.history[len(ga.history)-1],
		"initialCost", ga.history[0],
		"elapsed", elapsed,
	)

	return &Result{
		BestIndex:  best,
		Population: ga.population,
		Fitness:    ga.fitness,
		History:    ga.history,
		Stats:      ga.stats,
	}, nil
}

// initialization draws every bit of every chromosome uniformly from {0, 1}.
func (ga *GeneticAlgorithm) initialization() {
	n := ga.board.Cells()
	ga.population = make([]framework.Chromosome, ga.popSize)
	ga.fitness = make([]int, ga.popSize)
	ga.history = nil
	ga.stats = nil
	for i := range ga.population {
		c := make(framework.Chromosome, n)
		for j := range c {
			c[j] = ga.rng.Intn(2) == 1
		}
		ga.population[i] = c
	}
	for i := 0; i < len(ga.seeds) && i < ga.popSize; i++ {
		ga.population[i] = ga.seeds[i].Clone()
	}
	ga.phase = PhaseInitialized
}

// evaluation scores the population and returns the index of the first fittest individual.
func (ga *GeneticAlgorithm) evaluation() (int, error) {
	best := -1
	for i, c := range ga.population {
		f, err := ga.evaluator.Fitness(c)
		if err != nil {
			return -1, fmt.Errorf("evaluating individual %d: %w", i, err)
		}
		ga.fitness[i] = f
		if best < 0 || f > ga.fitness[best] {
			best = i
		}
		ga.logger.V(4).Info("Evaluated individual", "index", i, "fitness", f, "steinerPoints", c.Count())
	}
	ga.recorder.ObserveEvaluations(len(ga.population))
	ga.phase = PhaseEvaluated
	return best, nil
}

// parentSelection fills a mating pool of population size, with replacement.
// Pool entries reference population members; recombination copies them.
func (ga *GeneticAlgorithm) parentSelection(selector Selector) ([]framework.Chromosome, error) {
	ga.phase = PhaseSelecting
	pool := make([]framework.Chromosome, 0, ga.popSize)
	for i := 0; i < ga.popSize; i++ {
		idx, err := selector.Select(ga.fitness, ga.rng)
		if err != nil {
			return nil, err
		}
		pool = append(pool, ga.population[idx])
	}
	return pool, nil
}

// recombination consumes pool as a stack, two parents at a time from its end.
// Every returned child owns its storage.
func (ga *GeneticAlgorithm) recombination(pool []framework.Chromosome) []framework.Chromosome {
	ga.phase = PhaseRecombining
	offspring := make([]framework.Chromosome, 0, len(pool))
	for len(pool) >= 2 {
		parent1 := pool[len(pool)-1]
		parent2 := pool[len(pool)-2]
		pool = pool[:len(pool)-2]

		var child1, child2 framework.Chromosome
		if ga.rng.Float64() < ga.crossoverRate {
			child1, child2 = ga.crossover(parent1, parent2, ga.rng)
		} else {
			child1, child2 = parent1.Clone(), parent2.Clone()
		}
		offspring = append(offspring, child1, child2)
	}
	for len(pool) > 0 {
		offspring = append(offspring, pool[len(pool)-1].Clone())
		pool = pool[:len(pool)-1]
	}
	return offspring
}

// mutation clears each bit with probability mutationRate. It only ever
// removes Steiner points.
func (ga *GeneticAlgorithm) mutation(offspring []framework.Chromosome) {
	ga.phase = PhaseMutating
	for _, c := range offspring {
		for j := range c {
			if ga.rng.Float64() < ga.mutationRate {
				c[j] = false
			}
		}
	}
}

// replacement discards the previous generation entirely.
func (ga *GeneticAlgorithm) replacement(offspring []framework.Chromosome) {
	ga.population = offspring
	ga.fitness = make([]int, len(offspring))
	ga.phase = PhaseReplaced
}

func (ga *GeneticAlgorithm) record(gen, best int) {
	stats := ga.generationStats(gen, best)
	ga.history = append(ga.history, stats.BestCost)
	ga.stats = append(ga.stats, stats)
	ga.recorder.ObserveGeneration(stats)

	ga.logger.V(2).Info("Generation evaluated",
		"generation", gen,
		"bestFitness", ga.fitness[best],
		"bestCost", stats.BestCost,
		"meanCost", stats.MeanCost,
		"uniqueChromosomes", stats.Unique,
	)
}
