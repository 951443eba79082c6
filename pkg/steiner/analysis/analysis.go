// Package analysis inspects a finished chromosome: how many of its Steiner
// points actually branch the tree, and how much they save over the pins alone.
package analysis

import (
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/mst"
)

// Report summarizes one chromosome.
type Report struct {
	Pins int
	// SteinerPoints counts selected cells that are not pins.
	SteinerPoints int
	// BranchPoints counts Steiner points with tree degree of at least three.
	BranchPoints int
	Cost         int
	PinOnlyCost  int
	// Improvement is the relative saving over PinOnlyCost, in [0, 1) when the
	// chromosome helps and negative when it hurts.
	Improvement float64
	Edges       []mst.Edge
}

// Analyze builds the tree for pins plus c and compares it with the pins alone.
func Analyze(board framework.Board, pins framework.PinSet, c framework.Chromosome) (*Report, error) {
	if err := framework.ValidatePins(board, pins); err != nil {
		return nil, err
	}

	edges, cost, err := mst.Tree(board, framework.ActiveVertices(pins, c))
	if err != nil {
		return nil, err
	}
	pinOnly, err := mst.Cost(board, framework.ActiveVertices(pins, nil))
	if err != nil {
		return nil, err
	}

	deg := mst.Degrees(edges)
	r := &Report{
		Pins:        pins.Count(),
		Cost:        cost,
		PinOnlyCost: pinOnly,
		Edges:       edges,
	}
	for i, selected := range c {
		if !selected || pins[i] {
			continue
		}
		r.SteinerPoints++
		if deg[i] >= 3 {
			r.BranchPoints++
		}
	}
	if pinOnly > 0 {
		r.Improvement = float64(pinOnly-cost) / float64(pinOnly)
	}
	return r, nil
}

// Prune drops Steiner points that do not branch the tree. A Steiner point of
// degree two or less can be bypassed without increasing the Manhattan length,
// so the pruned chromosome never costs more than c. Bits set on pins are
// cleared as well. c is left untouched.
func Prune(board framework.Board, pins framework.PinSet, c framework.Chromosome) (framework.Chromosome, error) {
	if err := framework.ValidatePins(board, pins); err != nil {
		return nil, err
	}

	pruned := c.Clone()
	for i := range pruned {
		if pins[i] {
			pruned[i] = false
		}
	}

	for {
		edges, _, err := mst.Tree(board, framework.ActiveVertices(pins, pruned))
		if err != nil {
			return nil, err
		}
		deg := mst.Degrees(edges)

		removed := 0
		for i, selected := range pruned {
			if selected && deg[i] <= 2 {
				pruned[i] = false
				removed++
			}
		}
		if removed == 0 {
			return pruned, nil
		}
	}
}
