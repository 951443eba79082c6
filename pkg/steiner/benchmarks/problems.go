package benchmarks

import (
	"fmt"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// Problem is a board whose rectilinear Steiner minimal tree length is known.
type Problem struct {
	Name    string
	Board   framework.Board
	Pins    framework.PinSet
	Optimum int
}

func newProblem(name string, height, width int, coords ...[2]int) Problem {
	board := framework.Board{Height: height, Width: width}
	pins := framework.NewPinSet(board)
	for _, c := range coords {
		pins[board.Index(c[0], c[1])] = true
	}
	return Problem{Name: name, Board: board, Pins: pins}
}

// NewTwoPin places pins at opposite corners of a height x width board.
// The optimum is their Manhattan distance.
func NewTwoPin(height, width int) Problem {
	p := newProblem(fmt.Sprintf("TwoPin_%dx%d", height, width), height, width,
		[2]int{0, 0}, [2]int{height - 1, width - 1})
	p.Optimum = (height - 1) + (width - 1)
	return p
}

// NewThreePin places three pins on a height x width board. Any three-terminal
// RSMT has the half-perimeter of the bounding box as its length.
func NewThreePin(height, width int, a, b, c [2]int) Problem {
	p := newProblem(fmt.Sprintf("ThreePin_%dx%d", height, width), height, width, a, b, c)
	minR, maxR := min(a[0], b[0], c[0]), max(a[0], b[0], c[0])
	minC, maxC := min(a[1], b[1], c[1]), max(a[1], b[1], c[1])
	p.Optimum = (maxR - minR) + (maxC - minC)
	return p
}

// NewSquareCorners places pins on the four corners of a square of side s.
// Pins alone need 3s as well, so the search must not make things worse.
func NewSquareCorners(s int) Problem {
	p := newProblem(fmt.Sprintf("SquareCorners_%d", s), s+1, s+1,
		[2]int{0, 0}, [2]int{0, s}, [2]int{s, 0}, [2]int{s, s})
	p.Optimum = 3 * s
	return p
}

// NewCross places four pins at the midpoints of the sides of a square with
// even side s. The center Steiner point brings the pin-only 3s down to 2s.
func NewCross(s int) Problem {
	h := s / 2
	p := newProblem(fmt.Sprintf("Cross_%d", s), s+1, s+1,
		[2]int{0, h}, [2]int{h, 0}, [2]int{h, s}, [2]int{s, h})
	p.Optimum = 2 * s
	return p
}
