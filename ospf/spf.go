package ospf

import (
	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/graph"
)

// Route is one routing-table entry: the total path cost to a destination and
// the first router to forward through. A zero NextHop means the destination
// is directly connected (it can only happen for network destinations; a
// router destination always has a router on the path).
type Route struct {
	Cost    uint32
	NextHop common.RouterID
}

func (r Route) DirectlyConnected() bool {
	return r.NextHop == 0
}

// RoutingTable maps each source router in the area to its routes, keyed by
// destination. Destinations a source cannot reach are simply absent; a
// source never has a route to itself.
type RoutingTable map[common.RouterID]map[Vertex]Route

// computeRoutingTable runs Dijkstra from every router vertex in the graph
// and extracts (cost, next hop) per reachable destination. The next hop is
// the first router vertex after the source on the shortest path: pseudo-nodes
// are an accounting device, never a valid next hop, so they are skipped over.
func computeRoutingTable(g *graph.Graph[Vertex]) RoutingTable {
	table := make(RoutingTable)

	for _, v := range g.Nodes() {
		if v.Kind != VertexRouter {
			continue
		}

		dist, prev := graph.Dijkstra(g, v)

		routes := make(map[Vertex]Route)
		for dest, cost := range dist {
			if dest == v {
				continue
			}

			nextHop, _ := firstRouterHop(v, dest, prev)
			routes[dest] = Route{Cost: cost, NextHop: nextHop}
		}

		table[v.Router] = routes
	}

	return table
}

// firstRouterHop reconstructs the shortest path from src to dest out of
// Dijkstra's predecessor map and returns the first router after src on it.
// For a directly attached network there is no such router and ok is false.
func firstRouterHop(src, dest Vertex, prev map[Vertex]Vertex) (common.RouterID, bool) {
	var path []Vertex

	for cur := dest; ; {
		path = append(path, cur)
		if cur == src {
			break
		}

		p, ok := prev[cur]
		if !ok {
			return 0, false
		}
		cur = p
	}

	// path holds dest..src; walk it forward from just past src
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].Kind == VertexRouter {
			return path[i].Router, true
		}
	}

	return 0, false
}
