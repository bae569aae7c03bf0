package graph

import "container/heap"

type pqItem[K comparable] struct {
	node K
	dist uint32
	seq  int // discovery order, breaks distance ties
}

type priorityQueue[K comparable] []pqItem[K]

func (pq priorityQueue[K]) Len() int { return len(pq) }

func (pq priorityQueue[K]) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[K]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue[K]) Push(x any) {
	*pq = append(*pq, x.(pqItem[K]))
}

func (pq *priorityQueue[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// Dijkstra computes single-source shortest paths from source. It returns the
// distance to every reachable node, and each reachable node's predecessor on
// its shortest path (the source has no predecessor). Unreachable nodes appear
// in neither map. Edge weights must be non-negative, which uint32 guarantees;
// equal-distance ties are broken in discovery order.
func Dijkstra[K comparable](g *Graph[K], source K) (map[K]uint32, map[K]K) {
	dist := make(map[K]uint32)
	prev := make(map[K]K)

	if !g.HasNode(source) {
		return dist, prev
	}

	dist[source] = 0

	seq := 0
	pq := &priorityQueue[K]{{node: source, dist: 0, seq: seq}}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem[K])

		// stale entry; a shorter path was already found
		if item.dist > dist[item.node] {
			continue
		}

		for _, neighbor := range g.Neighbors(item.node) {
			weight, ok := g.Weight(item.node, neighbor)
			if !ok {
				continue
			}

			d := item.dist + weight
			if cur, seen := dist[neighbor]; !seen || d < cur {
				dist[neighbor] = d
				prev[neighbor] = item.node

				seq++
				heap.Push(pq, pqItem[K]{node: neighbor, dist: d, seq: seq})
			}
		}
	}

	return dist, prev
}
