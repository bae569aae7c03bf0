// Package graph provides a weighted directed graph and shortest-path
// computation over it. Nodes are identified by arbitrary comparable keys;
// the graph never inspects them.
package graph

// Graph is a weighted directed graph. Node and neighbor iteration follow
// insertion order, so two graphs built by the same sequence of calls behave
// identically.
type Graph[K comparable] struct {
	order    []K
	weights  map[K]map[K]uint32
	adjOrder map[K][]K
}

func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		weights:  make(map[K]map[K]uint32),
		adjOrder: make(map[K][]K),
	}
}

// AddNode adds a node to the graph. Adding a node that already exists is a
// no-op.
func (g *Graph[K]) AddNode(id K) {
	if _, ok := g.weights[id]; ok {
		return
	}

	g.order = append(g.order, id)
	g.weights[id] = make(map[K]uint32)
}

// AddEdge adds a directed edge from u to v, creating either node if it
// doesn't exist. Adding an edge that already exists replaces its weight.
func (g *Graph[K]) AddEdge(u, v K, weight uint32) {
	g.AddNode(u)
	g.AddNode(v)

	if _, ok := g.weights[u][v]; !ok {
		g.adjOrder[u] = append(g.adjOrder[u], v)
	}

	g.weights[u][v] = weight
}

func (g *Graph[K]) HasNode(id K) bool {
	_, ok := g.weights[id]
	return ok
}

// Weight returns the weight of the edge from u to v, if it exists.
func (g *Graph[K]) Weight(u, v K) (uint32, bool) {
	w, ok := g.weights[u][v]
	return w, ok
}

// Nodes returns all node IDs in insertion order. The returned slice is owned
// by the caller.
func (g *Graph[K]) Nodes() []K {
	nodes := make([]K, len(g.order))
	copy(nodes, g.order)

	return nodes
}

// Neighbors returns the targets of all edges leaving id, in insertion order.
func (g *Graph[K]) Neighbors(id K) []K {
	neighbors := make([]K, len(g.adjOrder[id]))
	copy(neighbors, g.adjOrder[id])

	return neighbors
}

func (g *Graph[K]) Len() int {
	return len(g.order)
}

func (g *Graph[K]) EdgeCount() int {
	count := 0
	for _, targets := range g.adjOrder {
		count += len(targets)
	}

	return count
}
