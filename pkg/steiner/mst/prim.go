// Package mst computes minimum spanning trees over grid cells under the
// Manhattan metric. Every pair of active cells is connected, so the graph is
// complete and always connected.
package mst

import (
	"container/heap"
	"errors"

	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
)

// ErrEmptyVertexSet is returned when there is nothing to span.
var ErrEmptyVertexSet = errors.New("mst: empty vertex set")

// Edge is a tree edge between two cell indices.
type Edge struct {
	From   int
	To     int
	Weight int
}

// Cost returns the weight of the minimum spanning tree over vertices.
func Cost(board framework.Board, vertices []int) (int, error) {
	cost, _, err := prim(board, vertices, false)
	return cost, err
}

// Tree returns the edges Prim's algorithm selected, in the order they were
// added, together with the total weight.
func Tree(board framework.Board, vertices []int) ([]Edge, int, error) {
	cost, edges, err := prim(board, vertices, true)
	if err != nil {
		return nil, 0, err
	}
	return edges, cost, nil
}

// prim grows the tree from vertices[0]. Each time a vertex is explored, an
// entry is pushed for every unexplored vertex at its distance from the new
// vertex; entries whose vertex was explored in the meantime are discarded
// when they surface.
func prim(board framework.Board, vertices []int, withEdges bool) (int, []Edge, error) {
	n := len(vertices)
	if n == 0 {
		return 0, nil, ErrEmptyVertexSet
	}
	if n == 1 {
		return 0, []Edge{}, nil
	}

	explored := make([]bool, n)
	var edges []Edge
	if withEdges {
		edges = make([]Edge, 0, n-1)
	}

	pq := &frontier{{vertex: 0, from: -1, weight: 0}}
	cost := 0
	for pq.Len() > 0 {
		c := heap.Pop(pq).(candidate)
		if explored[c.vertex] {
			continue
		}
		explored[c.vertex] = true
		cost += c.weight
		if withEdges && c.from >= 0 {
			edges = append(edges, Edge{From: vertices[c.from], To: vertices[c.vertex], Weight: c.weight})
		}

		u := vertices[c.vertex]
		for v := 0; v < n; v++ {
			if explored[v] {
				continue
			}
			heap.Push(pq, candidate{vertex: v, from: c.vertex, weight: board.Distance(u, vertices[v])})
		}
	}

	return cost, edges, nil
}

// Degrees counts, for every cell index touched by edges, how many tree edges meet there.
func Degrees(edges []Edge) map[int]int {
	deg := make(map[int]int, len(edges)+1)
	for _, e := range edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}
