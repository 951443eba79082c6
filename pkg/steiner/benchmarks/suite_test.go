package benchmarks

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"k8s.io/klog/v2/ktesting"
	"k8s.io/utils/ptr"

	"github.com/mihai-snyk/rsmt/pkg/api/v1alpha1"
	"github.com/mihai-snyk/rsmt/pkg/steiner/mst"
)

func TestProblemOptima(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
		want    int
		pinOnly int
	}{
		{name: "two pins", problem: NewTwoPin(6, 9), want: 13, pinOnly: 13},
		{name: "three pins", problem: NewThreePin(8, 8, [2]int{0, 1}, [2]int{7, 3}, [2]int{4, 7}), want: 13, pinOnly: 16},
		{name: "square corners", problem: NewSquareCorners(5), want: 15, pinOnly: 15},
		{name: "cross", problem: NewCross(6), want: 12, pinOnly: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.problem.Optimum != tt.want {
				t.Errorf("optimum = %d, want %d", tt.problem.Optimum, tt.want)
			}
			var vertices []int
			for i, p := range tt.problem.Pins {
				if p {
					vertices = append(vertices, i)
				}
			}
			cost, err := mst.Cost(tt.problem.Board, vertices)
			if err != nil {
				t.Fatal(err)
			}
			if cost != tt.pinOnly {
				t.Errorf("pin-only MST = %d, want %d", cost, tt.pinOnly)
			}
			if cost < tt.problem.Optimum {
				t.Errorf("pin-only MST %d beats the claimed optimum %d", cost, tt.problem.Optimum)
			}
		})
	}
}

func TestBenchmarkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmark suite in short mode")
	}
	_, ctx := ktesting.NewTestContext(t)
	dir := t.TempDir()

	suite := NewTestSuite(&v1alpha1.SteinerRunConfig{
		PopulationSize: ptr.To(60),
		Generations:    ptr.To(25),
		Seed:           ptr.To(uint64(7)),
	})
	suite.AddStandardProblems()

	outcomes, err := suite.Run(ctx, dir)
	if err != nil {
		t.Fatalf("Failed to run benchmark suite: %v", err)
	}
	if len(outcomes) != 5 {
		t.Fatalf("got %d outcomes, want 5", len(outcomes))
	}
	for _, o := range outcomes {
		if o.PrunedCost < o.Optimum {
			t.Errorf("%s: pruned cost %d below the known optimum %d", o.Problem, o.PrunedCost, o.Optimum)
		}
		if o.GreedyCost < o.Optimum {
			t.Errorf("%s: greedy cost %d below the known optimum %d", o.Problem, o.GreedyCost, o.Optimum)
		}
		if o.Gap < 0 {
			t.Errorf("%s: negative gap %v", o.Problem, o.Gap)
		}
		if _, err := os.Stat(filepath.Join(dir, o.Problem+"_convergence.html")); err != nil {
			t.Errorf("%s: convergence plot missing: %v", o.Problem, err)
		}
	}

	// The greedy construction solves the cross exactly.
	if outcomes[3].GreedyCost != outcomes[3].Optimum {
		t.Errorf("%s: greedy cost = %d, want %d", outcomes[3].Problem, outcomes[3].GreedyCost, outcomes[3].Optimum)
	}

	// A pruned two-pin tree has no branch points left, so it is exact.
	if outcomes[0].PrunedCost != outcomes[0].Optimum {
		t.Errorf("two-pin pruned cost = %d, want %d", outcomes[0].PrunedCost, outcomes[0].Optimum)
	}
}

func TestRunWithoutOutputDir(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	suite := NewTestSuite(&v1alpha1.SteinerRunConfig{PopulationSize: ptr.To(4), Generations: ptr.To(1)})
	suite.AddProblem(NewTwoPin(2, 3))

	outcomes, err := suite.Run(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 || outcomes[0].Optimum != 3 {
		t.Errorf("unexpected outcomes %+v", outcomes)
	}
}

func TestSinglePinProblemHasZeroGap(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	single := newProblem("SinglePin", 3, 3, [2]int{1, 1})

	suite := NewTestSuite(&v1alpha1.SteinerRunConfig{PopulationSize: ptr.To(4), Generations: ptr.To(2)})
	suite.AddProblem(single)

	outcomes, err := suite.Run(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := outcomes[0]; got.Optimum != 0 || got.PrunedCost != 0 || got.Gap != 0 {
		t.Errorf("single pin outcome = %+v, want zero optimum, cost and gap", got)
	}
}

func TestGap(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		optimum int
		want    float64
	}{
		{name: "optimal", cost: 12, optimum: 12, want: 0},
		{name: "above optimum", cost: 15, optimum: 12, want: 0.25},
		{name: "zero optimum met", cost: 0, optimum: 0, want: 0},
		{name: "zero optimum missed", cost: 2, optimum: 0, want: math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gap(tt.cost, tt.optimum); got != tt.want {
				t.Errorf("gap(%d, %d) = %v, want %v", tt.cost, tt.optimum, got, tt.want)
			}
		})
	}
}
