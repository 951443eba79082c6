package warmstart

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

func pinsAt(t *testing.T, height, width int, coords ...[2]int) (framework.Board, framework.PinSet) {
	t.Helper()
	board, err := framework.NewBoard(height, width)
	if err != nil {
		t.Fatal(err)
	}
	pins := framework.NewPinSet(board)
	for _, c := range coords {
		pins[board.Index(c[0], c[1])] = true
	}
	return board, pins
}

func TestHananCandidates(t *testing.T) {
	board, pins := pinsAt(t, 4, 4, [2]int{0, 0}, [2]int{2, 3})
	got := HananCandidates(board, pins)
	want := []int{board.Index(0, 3), board.Index(2, 0)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestGreedy(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		width      int
		pins       [][2]int
		wantCost   int
		wantPoints [][2]int
	}{
		{
			name:     "single pin",
			height:   3,
			width:    3,
			pins:     [][2]int{{1, 1}},
			wantCost: 0,
		},
		{
			name:     "two pins need no Steiner point",
			height:   4,
			width:    5,
			pins:     [][2]int{{0, 0}, {3, 4}},
			wantCost: 7,
		},
		{
			name:       "T junction",
			height:     3,
			width:      3,
			pins:       [][2]int{{0, 0}, {0, 2}, {2, 1}},
			wantCost:   4,
			wantPoints: [][2]int{{0, 1}},
		},
		{
			name:       "cross",
			height:     7,
			width:      7,
			pins:       [][2]int{{0, 3}, {3, 0}, {3, 6}, {6, 3}},
			wantCost:   12,
			wantPoints: [][2]int{{3, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, pins := pinsAt(t, tt.height, tt.width, tt.pins...)
			res, err := Greedy(klog.Background(), board, pins)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Cost != tt.wantCost {
				t.Errorf("cost = %d, want %d", res.Cost, tt.wantCost)
			}
			var got [][2]int
			for i, selected := range res.Chromosome {
				if selected {
					r, c := board.Coord(i)
					got = append(got, [2]int{r, c})
				}
			}
			if diff := cmp.Diff(tt.wantPoints, got); diff != "" {
				t.Errorf("Steiner points mismatch (-want +got):\n%s", diff)
			}
			if res.Rounds != len(tt.wantPoints) {
				t.Errorf("rounds = %d, want %d", res.Rounds, len(tt.wantPoints))
			}
		})
	}
}

func TestGreedyRejectsEmptyPins(t *testing.T) {
	board, pins := pinsAt(t, 2, 2)
	if _, err := Greedy(klog.Background(), board, pins); !errors.Is(err, framework.ErrInvalidConfiguration) {
		t.Fatalf("got %v, want ErrInvalidConfiguration", err)
	}
}
