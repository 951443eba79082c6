package framework

import (
	"fmt"
	"strings"
)

// Board describes the grid the pins live on. Cells are addressed by a
// single linear index i = row*Width + col.
type Board struct {
	Height int
	Width  int
}

// NewBoard returns a board with the given dimensions.
func NewBoard(height, width int) (Board, error) {
	if height <= 0 || width <= 0 {
		return Board{}, fmt.Errorf("%w: board dimensions must be positive, got %dx%d", ErrInvalidConfiguration, height, width)
	}
	return Board{Height: height, Width: width}, nil
}

// Cells returns the number of grid cells, which is also the chromosome length.
func (b Board) Cells() int {
	return b.Height * b.Width
}

// Index converts (row, col) into a linear cell index.
func (b Board) Index(row, col int) int {
	return row*b.Width + col
}

// Coord converts a linear cell index back into (row, col).
func (b Board) Coord(i int) (int, int) {
	return i / b.Width, i % b.Width
}

// Contains reports whether (row, col) lies on the board.
func (b Board) Contains(row, col int) bool {
	return row >= 0 && row < b.Height && col >= 0 && col < b.Width
}

// Distance is the Manhattan distance between two cells.
func (b Board) Distance(i, j int) int {
	ir, ic := b.Coord(i)
	jr, jc := b.Coord(j)
	return abs(ir-jr) + abs(ic-jc)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PinSet marks the fixed terminals. It is set once at load time.
type PinSet []bool

// NewPinSet returns an empty pin set sized for the board.
func NewPinSet(b Board) PinSet {
	return make(PinSet, b.Cells())
}

// Count returns the number of pins.
func (p PinSet) Count() int {
	n := 0
	for _, pin := range p {
		if pin {
			n++
		}
	}
	return n
}

// ValidatePins checks that the pin set matches the board and is non-empty.
func ValidatePins(b Board, pins PinSet) error {
	if len(pins) != b.Cells() {
		return fmt.Errorf("%w: pin set has %d cells, board has %d", ErrInvalidConfiguration, len(pins), b.Cells())
	}
	if pins.Count() == 0 {
		return fmt.Errorf("%w: at least one pin is required", ErrInvalidConfiguration)
	}
	return nil
}

// Chromosome selects candidate Steiner points, one bit per grid cell.
type Chromosome []bool

// Clone returns a copy that shares no storage with c.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// Count returns the number of selected cells.
func (c Chromosome) Count() int {
	n := 0
	for _, bit := range c {
		if bit {
			n++
		}
	}
	return n
}

// Key is a compact string form, used for dedup and multiset comparisons.
func (c Chromosome) Key() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, bit := range c {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ActiveVertices returns the indices where pins[i] || c[i], in ascending order.
func ActiveVertices(pins PinSet, c Chromosome) []int {
	vertices := make([]int, 0, pins.Count()+c.Count())
	for i := range pins {
		if pins[i] || (i < len(c) && c[i]) {
			vertices = append(vertices, i)
		}
	}
	return vertices
}

// Render draws the board with P for pins, S for selected Steiner points and . otherwise.
func Render(b Board, pins PinSet, c Chromosome) string {
	var sb strings.Builder
	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			i := b.Index(row, col)
			switch {
			case pins[i]:
				sb.WriteByte('P')
			case i < len(c) && c[i]:
				sb.WriteByte('S')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
