package algorithms

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// CrossoverFunc recombines two parents into two freshly allocated children.
type CrossoverFunc func(p1, p2 framework.Chromosome, rng *rand.Rand) (child1, child2 framework.Chromosome)

// CrossoverOperator names a CrossoverFunc.
type CrossoverOperator string

const (
	OnePoint CrossoverOperator = "OnePoint"
	TwoPoint CrossoverOperator = "TwoPoint"
	Uniform  CrossoverOperator = "Uniform"
)

// CrossoverFor resolves an operator name.
func CrossoverFor(op CrossoverOperator) (CrossoverFunc, error) {
	switch op {
	case OnePoint, "":
		return OnePointCrossover, nil
	case TwoPoint:
		return TwoPointCrossover, nil
	case Uniform:
		return UniformCrossover, nil
	default:
		return nil, fmt.Errorf("%w: unknown crossover operator %q", framework.ErrInvalidConfiguration, op)
	}
}

// OnePointCrossover swaps the tails after a split drawn from [1, len).
// Chromosomes shorter than two bits have no valid split and are copied.
func OnePointCrossover(p1, p2 framework.Chromosome, rng *rand.Rand) (framework.Chromosome, framework.Chromosome) {
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))
	if len(p1) < 2 {
		copy(child1, p1)
		copy(child2, p2)
		return child1, child2
	}

	split := 1 + rng.Intn(len(p1)-1)

	copy(child1[:split], p1[:split])
	copy(child1[split:], p2[split:])
	copy(child2[:split], p2[:split])
	copy(child2[split:], p1[split:])

	return child1, child2
}

// TwoPointCrossover swaps the segment between two cut points.
func TwoPointCrossover(p1, p2 framework.Chromosome, rng *rand.Rand) (framework.Chromosome, framework.Chromosome) {
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))
	if len(p1) < 2 {
		copy(child1, p1)
		copy(child2, p2)
		return child1, child2
	}

	point1 := 1 + rng.Intn(len(p1)-1)
	point2 := 1 + rng.Intn(len(p1)-1)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	for i := range p1 {
		if i < point1 || i >= point2 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}

// UniformCrossover picks each bit from either parent with equal probability.
func UniformCrossover(p1, p2 framework.Chromosome, rng *rand.Rand) (framework.Chromosome, framework.Chromosome) {
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))

	for i := range p1 {
		if rng.Float64() < 0.5 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}
