// Package warmstart constructs good chromosomes without search. They serve as
// a baseline for the genetic algorithm and, when asked for, as members of its
// initial population.
//
// The construction is the iterated 1-Steiner heuristic: starting from the
// pins alone, repeatedly add the Hanan grid point that shortens the MST the
// most, then drop Steiner points that no longer branch the tree.
package warmstart

import (
	"sort"

	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/pkg/steiner/analysis"
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/mst"
)

// HananCandidates returns the cells on the intersections of pin rows and pin
// columns that are not pins themselves, in ascending index order.
func HananCandidates(board framework.Board, pins framework.PinSet) []int {
	rows := map[int]bool{}
	cols := map[int]bool{}
	for i, p := range pins {
		if p {
			r, c := board.Coord(i)
			rows[r] = true
			cols[c] = true
		}
	}

	var candidates []int
	for r := range rows {
		for c := range cols {
			i := board.Index(r, c)
			if !pins[i] {
				candidates = append(candidates, i)
			}
		}
	}
	sort.Ints(candidates)
	return candidates
}

// Result is one greedy construction.
type Result struct {
	Chromosome framework.Chromosome
	Cost       int
	// Rounds counts the Steiner points that were accepted.
	Rounds int
}

// Greedy runs the iterated 1-Steiner heuristic. Each accepted round strictly
// lowers the cost, so it terminates. Ties go to the lowest cell index.
func Greedy(logger klog.Logger, board framework.Board, pins framework.PinSet) (*Result, error) {
	if err := framework.ValidatePins(board, pins); err != nil {
		return nil, err
	}

	candidates := HananCandidates(board, pins)
	c := make(framework.Chromosome, board.Cells())
	cost, err := mst.Cost(board, framework.ActiveVertices(pins, c))
	if err != nil {
		return nil, err
	}
	logger.V(2).Info("Greedy construction starting", "candidates", len(candidates), "pinOnlyCost", cost)

	rounds := 0
	for {
		bestGain, bestVertex := 0, -1
		for _, v := range candidates {
			if c[v] {
				continue
			}
			c[v] = true
			trial, err := mst.Cost(board, framework.ActiveVertices(pins, c))
			c[v] = false
			if err != nil {
				return nil, err
			}
			if gain := cost - trial; gain > bestGain {
				bestGain, bestVertex = gain, v
			}
		}
		if bestVertex < 0 {
			break
		}

		c[bestVertex] = true
		if c, err = analysis.Prune(board, pins, c); err != nil {
			return nil, err
		}
		if cost, err = mst.Cost(board, framework.ActiveVertices(pins, c)); err != nil {
			return nil, err
		}
		rounds++
		row, col := board.Coord(bestVertex)
		logger.V(4).Info("Accepted Steiner point", "row", row, "col", col, "gain", bestGain, "cost", cost)
	}

	logger.V(2).Info("Greedy construction finished", "cost", cost, "rounds", rounds, "steinerPoints", c.Count())
	return &Result{Chromosome: c, Cost: cost, Rounds: rounds}, nil
}
