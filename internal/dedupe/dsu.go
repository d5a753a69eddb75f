package dedupe

// disjointSet is a union-find structure over bucket indices with path
// compression and union by rank. A fresh instance is created per size
// bucket, so resolving different buckets shares no state.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// find returns the representative of x's component.
func (d *disjointSet) find(x int) int {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	// Path compression
	for d.parent[x] != root {
		d.parent[x], x = root, d.parent[x]
	}
	return root
}

// union merges the components containing a and b.
func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}
