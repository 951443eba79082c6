package mst

// candidate is a frontier entry: reaching vertex at weight from an explored vertex.
// Stale entries for vertices explored later stay in the heap and are skipped on pop.
type candidate struct {
	vertex int // position in the active vertex slice
	from   int // position of the explored endpoint, -1 for the seed
	weight int
}

// frontier implements heap.Interface as a min-heap ordered by weight.
// Equal weights are ordered by vertex position so that trees are reproducible.
type frontier []candidate

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].weight != f[j].weight {
		return f[i].weight < f[j].weight
	}
	return f[i].vertex < f[j].vertex
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) { *f = append(*f, x.(candidate)) }

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	c := old[n-1]
	*f = old[:n-1]
	return c
}
