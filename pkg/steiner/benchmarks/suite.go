package benchmarks

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/rsmt/pkg/steiner"
	"github.com/mihai-snyk/rsmt/pkg/steiner/warmstart"
)

// TestSuite runs a set of benchmark problems
type TestSuite struct {
	problems []Problem
	config   *v1alpha1.SteinerRunConfig
	opts     []steiner.Option
}

// Outcome is how one problem fared.
type Outcome struct {
	Problem    string
	Optimum    int
	Cost       int
	PrunedCost int
	// GreedyCost is the iterated 1-Steiner baseline.
	GreedyCost int
	// Gap is (PrunedCost - Optimum) / Optimum. With a zero optimum it is 0
	// when the optimum is met and +Inf otherwise.
	Gap float64
}

// NewTestSuite creates a new benchmark test suite
func NewTestSuite(config *v1alpha1.SteinerRunConfig, opts ...steiner.Option) *TestSuite {
	return &TestSuite{
		config: config,
		opts:   opts,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p Problem) {
	ts.problems = append(ts.problems, p)
}

// AddStandardProblems adds the instances with closed-form optima
func (ts *TestSuite) AddStandardProblems() {
	ts.AddProblem(NewTwoPin(6, 9))
	ts.AddProblem(NewThreePin(8, 8, [2]int{0, 1}, [2]int{7, 3}, [2]int{4, 7}))
	ts.AddProblem(NewSquareCorners(5))
	ts.AddProblem(NewCross(6))
	ts.AddProblem(NewCross(10))
}

// Run solves every problem, writing convergence and layout plots into
// outputDir when it is not empty.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Outcome, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outcomes := make([]Outcome, 0, len(ts.problems))
	for _, problem := range ts.problems {
		logger.Info("Running benchmark", "problem", problem.Name, "optimum", problem.Optimum)

		cfg := ts.config.DeepCopy()
		if cfg == nil {
			cfg = &v1alpha1.SteinerRunConfig{}
		}
		cfg.Output = &v1alpha1.OutputConfig{}
		if outputDir != "" {
			base := filepath.Join(outputDir, problem.Name)
			cfg.Output.ConvergencePlot = base + "_convergence.html"
			cfg.Output.LayoutPlot = base + "_layout.html"
		}

		solver, err := steiner.New(ctx, cfg, ts.opts...)
		if err != nil {
			return nil, err
		}
		solution, err := solver.Solve(ctx, problem.Board, problem.Pins)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", problem.Name, err)
		}

		greedy, err := warmstart.Greedy(logger, problem.Board, problem.Pins)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", problem.Name, err)
		}

		outcome := Outcome{
			Problem:    problem.Name,
			Optimum:    problem.Optimum,
			Cost:       solution.Cost,
			PrunedCost: solution.PrunedCost,
			GreedyCost: greedy.Cost,
			Gap:        gap(solution.PrunedCost, problem.Optimum),
		}
		outcomes = append(outcomes, outcome)
		logger.Info("Benchmark result",
			"problem", outcome.Problem,
			"cost", outcome.Cost,
			"prunedCost", outcome.PrunedCost,
			"greedyCost", outcome.GreedyCost,
			"gap", fmt.Sprintf("%.1f%%", outcome.Gap*100))
	}

	return outcomes, nil
}

func gap(cost, optimum int) float64 {
	if cost == optimum {
		return 0
	}
	if optimum == 0 {
		return math.Inf(1)
	}
	return float64(cost-optimum) / float64(optimum)
}
