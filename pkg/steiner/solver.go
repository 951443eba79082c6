/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package steiner

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/rsmt/pkg/steiner/algorithms"
	"github.com/mihai-snyk/rsmt/pkg/steiner/analysis"
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/util"
	"github.com/mihai-snyk/rsmt/pkg/steiner/warmstart"
	"github.com/mihai-snyk/rsmt/pkg/tracing"
)

const Name = "SteinerSolver"

// Solver runs the genetic search described by a SteinerRunConfig
type Solver struct {
	logger   klog.Logger
	cfg      *v1alpha1.SteinerRunConfig
	recorder algorithms.Recorder
}

// Option customizes a Solver.
type Option func(*Solver)

// WithRecorder reports GA progress to r, typically a *metrics.Metrics.
func WithRecorder(r algorithms.Recorder) Option {
	return func(s *Solver) {
		s.recorder = r
	}
}

// Solution is the outcome of one Solve call.
type Solution struct {
	// Best is the fittest chromosome of the final generation.
	Best framework.Chromosome
	// Pruned is Best without non-branching Steiner points. Equal to Best when pruning is off.
	Pruned     framework.Chromosome
	Cost       int
	PrunedCost int
	History    []int
	Stats      []algorithms.GenerationStats
	// Report describes Pruned.
	Report *analysis.Report
	// Greedy is the warm start construction, nil when warm start is off.
	Greedy *warmstart.Result
}

// New validates cfg and builds a solver. A nil cfg means all defaults.
func New(ctx context.Context, cfg *v1alpha1.SteinerRunConfig, opts ...Option) (*Solver, error) {
	if cfg == nil {
		cfg = v1alpha1.NewDefaultSteinerRunConfig()
	} else {
		cfg = cfg.DeepCopy()
		v1alpha1.SetDefaults_SteinerRunConfig(cfg)
	}
	if err := v1alpha1.ValidateSteinerRunConfig(cfg); err != nil {
		return nil, err
	}

	s := &Solver{
		logger: klog.FromContext(ctx).WithValues("solver", Name),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name retrieves the solver name
func (s *Solver) Name() string {
	return Name
}

// Config returns the defaulted configuration the solver runs with.
func (s *Solver) Config() *v1alpha1.SteinerRunConfig {
	return s.cfg
}

// Solve searches for a short rectilinear Steiner tree over pins on board.
func (s *Solver) Solve(ctx context.Context, board framework.Board, pins framework.PinSet) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := framework.ValidatePins(board, pins); err != nil {
		return nil, err
	}

	ctx, span := tracing.Tracer().Start(ctx, "Solve")
	defer span.End()
	span.SetAttributes(
		attribute.Int("board.height", board.Height),
		attribute.Int("board.width", board.Width),
		attribute.Int("pins", pins.Count()),
		attribute.Int("populationSize", *s.cfg.PopulationSize),
		attribute.Int("generations", *s.cfg.Generations),
	)

	solution, err := s.solve(ctx, board, pins)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("cost", solution.Cost),
		attribute.Int("prunedCost", solution.PrunedCost),
	)
	return solution, nil
}

func (s *Solver) solve(ctx context.Context, board framework.Board, pins framework.PinSet) (*Solution, error) {
	logger := klog.FromContext(klog.NewContext(ctx, s.logger))
	s.printAlgorithmConfig(logger)

	crossover, err := algorithms.CrossoverFor(algorithms.CrossoverOperator(s.cfg.Crossover))
	if err != nil {
		return nil, err
	}
	opts := []algorithms.Option{
		algorithms.WithRand(rand.New(rand.NewSource(*s.cfg.Seed))),
		algorithms.WithCrossoverProbability(*s.cfg.CrossoverProbability),
		algorithms.WithMutationProbability(*s.cfg.MutationProbability),
		algorithms.WithTournamentSize(s.cfg.TournamentSize),
		algorithms.WithCrossover(crossover),
		algorithms.WithLogger(logger),
	}
	if s.recorder != nil {
		opts = append(opts, algorithms.WithRecorder(s.recorder))
	}

	var greedy *warmstart.Result
	if *s.cfg.WarmStart {
		greedy, err = warmstart.Greedy(logger, board, pins)
		if err != nil {
			return nil, fmt.Errorf("warm start failed: %w", err)
		}
		logger.Info("Seeding population with greedy construction", "greedyCost", greedy.Cost, "steinerPoints", greedy.Chromosome.Count())
		opts = append(opts, algorithms.WithInitialChromosomes(greedy.Chromosome))
	}

	ga, err := algorithms.NewGeneticAlgorithm(board, pins, *s.cfg.PopulationSize, opts...)
	if err != nil {
		return nil, err
	}

	_, runSpan := tracing.Tracer().Start(ctx, "GeneticAlgorithm.Run")
	result, err := ga.Run(*s.cfg.Generations, algorithms.SelectionScheme(s.cfg.Selection))
	runSpan.End()
	if err != nil {
		return nil, fmt.Errorf("genetic search failed: %w", err)
	}

	solution := &Solution{
		Best:    result.Best().Clone(),
		Cost:    result.BestCost(),
		History: result.History,
		Stats:   result.Stats,
		Greedy:  greedy,
	}

	solution.Pruned = solution.Best
	if *s.cfg.Prune {
		solution.Pruned, err = analysis.Prune(board, pins, solution.Best)
		if err != nil {
			return nil, fmt.Errorf("failed to prune best chromosome: %w", err)
		}
	}
	solution.Report, err = analysis.Analyze(board, pins, solution.Pruned)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze best chromosome: %w", err)
	}
	solution.PrunedCost = solution.Report.Cost

	logger.Info("Search complete",
		"cost", solution.Cost,
		"prunedCost", solution.PrunedCost,
		"pinOnlyCost", solution.Report.PinOnlyCost,
		"steinerPoints", solution.Report.SteinerPoints,
		"branchPoints", solution.Report.BranchPoints,
		"improvement", fmt.Sprintf("%.1f%%", solution.Report.Improvement*100),
	)

	s.writePlots(logger, board, pins, solution)
	return solution, nil
}

func (s *Solver) printAlgorithmConfig(logger klog.Logger) {
	logger.Info("Algorithm configuration",
		"populationSize", *s.cfg.PopulationSize,
		"generations", *s.cfg.Generations,
		"selection", s.cfg.Selection,
		"tournamentSize", s.cfg.TournamentSize,
		"crossover", s.cfg.Crossover,
		"crossoverProbability", *s.cfg.CrossoverProbability,
		"mutationProbability", *s.cfg.MutationProbability,
		"seed", *s.cfg.Seed,
		"prune", *s.cfg.Prune,
		"warmStart", *s.cfg.WarmStart,
	)
}

// writePlots is best effort; a failed plot does not fail the solve.
func (s *Solver) writePlots(logger klog.Logger, board framework.Board, pins framework.PinSet, solution *Solution) {
	out := s.cfg.Output
	if out == nil {
		return
	}
	if out.ConvergencePlot != "" {
		if err := util.PlotConvergence(solution.History, solution.Stats, "Best MST cost per generation", out.ConvergencePlot); err != nil {
			logger.Error(err, "Failed to write convergence plot", "file", out.ConvergencePlot)
		} else {
			logger.V(2).Info("Wrote convergence plot", "file", out.ConvergencePlot)
		}
	}
	if out.LayoutPlot != "" {
		title := fmt.Sprintf("Steiner tree, cost %d", solution.PrunedCost)
		if err := util.PlotLayout(board, pins, solution.Pruned, solution.Report.Edges, title, out.LayoutPlot); err != nil {
			logger.Error(err, "Failed to write layout plot", "file", out.LayoutPlot)
		} else {
			logger.V(2).Info("Wrote layout plot", "file", out.LayoutPlot)
		}
	}
}
