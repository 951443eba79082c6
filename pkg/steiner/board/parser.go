// Package board reads board descriptions: a dimension line followed by one
// "x y" pin coordinate per line, x being the row and y the column.
package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// InputFormatError reports a malformed board description.
type InputFormatError struct {
	// Line is 1-based; 0 means the problem is not tied to a line.
	Line   int
	Reason string
}

func (e *InputFormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("board: %s", e.Reason)
	}
	return fmt.Sprintf("board: line %d: %s", e.Line, e.Reason)
}

func formatErrorf(line int, format string, args ...interface{}) error {
	return &InputFormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// LoadFile parses the board description stored at path.
func LoadFile(path string) (framework.Board, framework.PinSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return framework.Board{}, nil, fmt.Errorf("failed to open board file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a board description. The first non-blank line holds either a
// single side length or "height width". Blank lines are skipped and pins may
// repeat. An input without pins is not an error here.
func Parse(r io.Reader) (framework.Board, framework.PinSet, error) {
	scanner := bufio.NewScanner(r)

	var (
		b      framework.Board
		pins   framework.PinSet
		sized  bool
		lineNo int
	)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if !sized {
			var err error
			b, err = parseDimensions(lineNo, fields)
			if err != nil {
				return framework.Board{}, nil, err
			}
			pins = framework.NewPinSet(b)
			sized = true
			continue
		}

		row, col, err := parseCoordinate(lineNo, fields)
		if err != nil {
			return framework.Board{}, nil, err
		}
		if !b.Contains(row, col) {
			return framework.Board{}, nil, formatErrorf(lineNo, "pin (%d, %d) is outside the %dx%d board", row, col, b.Height, b.Width)
		}
		pins[b.Index(row, col)] = true
	}
	if err := scanner.Err(); err != nil {
		return framework.Board{}, nil, fmt.Errorf("failed to read board: %w", err)
	}
	if !sized {
		return framework.Board{}, nil, formatErrorf(0, "missing dimension line")
	}

	return b, pins, nil
}

func parseDimensions(line int, fields []string) (framework.Board, error) {
	if len(fields) > 2 {
		return framework.Board{}, formatErrorf(line, "dimension line has %d fields, want 1 or 2", len(fields))
	}
	dims := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return framework.Board{}, formatErrorf(line, "dimension %q is not an integer", f)
		}
		if v <= 0 {
			return framework.Board{}, formatErrorf(line, "dimension %d must be positive", v)
		}
		dims[i] = v
	}
	if len(dims) == 1 {
		return framework.Board{Height: dims[0], Width: dims[0]}, nil
	}
	return framework.Board{Height: dims[0], Width: dims[1]}, nil
}

func parseCoordinate(line int, fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, formatErrorf(line, "pin line has %d fields, want 2", len(fields))
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, formatErrorf(line, "pin coordinate %q is not an integer", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, formatErrorf(line, "pin coordinate %q is not an integer", fields[1])
	}
	return row, col, nil
}
