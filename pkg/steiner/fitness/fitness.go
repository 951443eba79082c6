// Package fitness turns a chromosome into a score to maximize.
package fitness

import (
	"fmt"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/mst"
)

// Evaluator scores chromosomes against a fixed board and pin set.
// Fitness is UpperBound - cost, so it is non-negative and grows as cost shrinks.
type Evaluator struct {
	board      framework.Board
	pins       framework.PinSet
	upperBound int
}

// NewEvaluator validates the pins and fixes the upper bound at 2*Height*Width.
func NewEvaluator(board framework.Board, pins framework.PinSet) (*Evaluator, error) {
	if err := framework.ValidatePins(board, pins); err != nil {
		return nil, err
	}
	return &Evaluator{
		board:      board,
		pins:       pins,
		upperBound: UpperBound(board),
	}, nil
}

// UpperBound exceeds the MST cost of any subset of the board's cells.
func UpperBound(board framework.Board) int {
	return 2 * board.Height * board.Width
}

// UpperBound returns the constant fitness is measured against.
func (e *Evaluator) UpperBound() int {
	return e.upperBound
}

// Cost returns the MST cost of the pins together with the selected Steiner points.
func (e *Evaluator) Cost(c framework.Chromosome) (int, error) {
	if len(c) != e.board.Cells() {
		return 0, fmt.Errorf("%w: chromosome has %d bits, board has %d cells", framework.ErrInvalidConfiguration, len(c), e.board.Cells())
	}
	return mst.Cost(e.board, framework.ActiveVertices(e.pins, c))
}

// Fitness returns UpperBound - Cost(c).
func (e *Evaluator) Fitness(c framework.Chromosome) (int, error) {
	cost, err := e.Cost(c)
	if err != nil {
		return 0, err
	}
	return e.upperBound - cost, nil
}

// CostOf converts a fitness value back into the MST cost it was derived from.
func (e *Evaluator) CostOf(fitness int) int {
	return e.upperBound - fitness
}
