package ospf

import (
	"net"
	"net/netip"

	"go4.org/netipx"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/graph"
)

type VertexKind uint8

const (
	VertexRouter VertexKind = iota + 1
	VertexNetwork
)

// Vertex is a node in the topology graph: either a real router or a
// pseudo-node standing in for a transit network segment. Pseudo-nodes exist
// so that a shared segment costs its entry metric once, no matter how many
// routers sit on it.
type Vertex struct {
	Kind    VertexKind
	Router  common.RouterID
	Network netip.Prefix
}

func RouterVertex(id common.RouterID) Vertex {
	return Vertex{Kind: VertexRouter, Router: id}
}

func NetworkVertex(prefix netip.Prefix) Vertex {
	return Vertex{Kind: VertexNetwork, Network: prefix}
}

func (v Vertex) String() string {
	switch v.Kind {
	case VertexRouter:
		return v.Router.String()
	case VertexNetwork:
		return v.Network.String()
	default:
		return "invalid"
	}
}

func (v Vertex) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// buildTopology derives the area's topology graph from the LSDB. It is a
// pure function of the database contents: LSAs are walked in key order, so
// the insertion history of the LSDB never shows through.
//
// Router vertices come from RouterLSAs. A point-to-point link contributes a
// single directed edge toward the neighbor, and only if the neighbor has
// advertised a RouterLSA of its own; the reverse edge is the neighbor's to
// contribute, and a one-directional link is a valid state, not an error. A
// transit link contributes an edge to the segment's pseudo-node at the
// router's cost, and the segment's NetworkLSA contributes zero-cost edges
// back to every attached router.
func buildTopology(db lsdb) *graph.Graph[Vertex] {
	g := graph.New[Vertex]()

	routerLSAs := db.routerLSAs()
	networkLSAs := db.networkLSAs()

	// NetworkLSAs are looked up by their link-state ID, the DR's interface
	// address, which is what a transit link's ID names.
	networksByID := make(map[netip.Addr]*NetworkLSA)
	for _, lsa := range networkLSAs {
		networksByID[lsa.LinkStateID] = lsa
	}

	for _, lsa := range routerLSAs {
		g.AddNode(RouterVertex(lsa.AdvertisingRouter))
	}

	for _, lsa := range routerLSAs {
		src := RouterVertex(lsa.AdvertisingRouter)

		for _, link := range lsa.Links {
			switch link.Type {
			case LinkPointToPoint:
				neighbor, ok := common.RouterIDFromAddr(link.ID)
				if !ok {
					continue
				}

				if g.HasNode(RouterVertex(neighbor)) {
					g.AddEdge(src, RouterVertex(neighbor), uint32(link.Metric))
				}
			case LinkTransit:
				nlsa, ok := networksByID[link.ID]
				if !ok {
					continue
				}

				prefix, ok := networkPrefix(nlsa.LinkStateID, nlsa.NetworkMask)
				if !ok {
					continue
				}

				g.AddEdge(src, NetworkVertex(prefix), uint32(link.Metric))
			case LinkStub, LinkVirtual:
				// not part of the intra-area SPF graph
			}
		}
	}

	for _, lsa := range networkLSAs {
		prefix, ok := networkPrefix(lsa.LinkStateID, lsa.NetworkMask)
		if !ok {
			continue
		}

		nv := NetworkVertex(prefix)
		g.AddNode(nv)

		for _, id := range lsa.AttachedRouters {
			if g.HasNode(RouterVertex(id)) {
				g.AddEdge(nv, RouterVertex(id), 0)
			}
		}
	}

	return g
}

// networkPrefix derives a transit network's address from a NetworkLSA's
// link-state ID (the DR's interface address) and network mask.
func networkPrefix(id netip.Addr, mask netip.Addr) (netip.Prefix, bool) {
	if !id.Is4() || !mask.Is4() {
		return netip.Prefix{}, false
	}

	ipnet := net.IPNet{
		IP:   id.AsSlice(),
		Mask: net.IPMask(mask.AsSlice()),
	}

	prefix, ok := netipx.FromStdIPNet(&ipnet)
	if !ok {
		return netip.Prefix{}, false
	}

	return prefix.Masked(), true
}
