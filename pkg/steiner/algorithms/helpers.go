package algorithms

import (
	"gonum.org/v1/gonum/stat"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// GenerationStats summarizes the MST costs of one evaluated population.
type GenerationStats struct {
	Generation int
	BestCost   int
	WorstCost  int
	MeanCost   float64
	StdDevCost float64
	// Unique counts distinct chromosomes, a rough diversity measure.
	Unique int
}

func (ga *GeneticAlgorithm) generationStats(gen, best int) GenerationStats {
	costs := make([]float64, len(ga.fitness))
	worst := 0
	for i, f := range ga.fitness {
		costs[i] = float64(ga.evaluator.CostOf(f))
		if f < ga.fitness[worst] {
			worst = i
		}
	}

	mean, std := stat.Mean(costs, nil), 0.0
	if len(costs) > 1 {
		mean, std = stat.MeanStdDev(costs, nil)
	}

	return GenerationStats{
		Generation: gen,
		BestCost:   ga.evaluator.CostOf(ga.fitness[best]),
		WorstCost:  ga.evaluator.CostOf(ga.fitness[worst]),
		MeanCost:   mean,
		StdDevCost: std,
		Unique:     countUnique(ga.population),
	}
}

func countUnique(population []framework.Chromosome) int {
	seen := make(map[string]struct{}, len(population))
	for _, c := range population {
		seen[c.Key()] = struct{}{}
	}
	return len(seen)
}
