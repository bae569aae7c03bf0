package ospf

import (
	"context"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/graph"
	"github.com/ospfsim/ospfsim/sync"
)

// Area owns one OSPF area's link-state database together with the topology
// graph and routing table derived from it. The derived state is a cache over
// the LSDB, rebuilt wholesale on every accepted change, never patched.
//
// AddLSA is the sole mutation entry point and is not safe for concurrent
// callers; drive an Area from one goroutine, or serialize externally.
type Area struct {
	ID common.AreaID

	db       lsdb
	topology *graph.Graph[Vertex]
	routes   RoutingTable

	notifier *sync.Notifier
}

func NewArea(id common.AreaID) *Area {
	a := &Area{
		ID:       id,
		db:       newLSDB(),
		notifier: sync.NewNotifier(),
	}

	a.rebuild()

	return a
}

// AddLSA offers an LSA to the area's LSDB. A stale instance (sequence number
// not greater than the stored one) is dropped silently; retransmissions are
// protocol-expected, not errors. On acceptance the topology graph and the
// routing tables of every router in the area are recomputed before AddLSA
// returns. It reports whether the LSA was accepted.
func (a *Area) AddLSA(l LSA) bool {
	if !a.db.install(l) {
		return false
	}

	a.rebuild()
	a.notifier.NotifyChange()

	return true
}

func (a *Area) rebuild() {
	a.topology = buildTopology(a.db)
	a.routes = computeRoutingTable(a.topology)
}

// Get returns the currently installed LSA for an identity, or nil.
func (a *Area) Get(key LSDBKey) LSA {
	return a.db.get(key)
}

// LSAs returns the LSDB's contents in stable key order.
func (a *Area) LSAs() []LSA {
	lsas := make([]LSA, 0, len(a.db))
	for _, key := range a.db.sortedKeys() {
		lsas = append(lsas, a.db[key])
	}

	return lsas
}

// Topology returns the derived topology graph. Callers must treat it as
// read-only; it is replaced wholesale on the next accepted LSDB change.
func (a *Area) Topology() *graph.Graph[Vertex] {
	return a.topology
}

// RoutingTable returns the derived routing table under the same read-only
// contract as Topology.
func (a *Area) RoutingTable() RoutingTable {
	return a.routes
}

// Routes returns one source router's routes, or nil if the router isn't in
// the area's topology.
func (a *Area) Routes(src common.RouterID) map[Vertex]Route {
	return a.routes[src]
}

func (a *Area) LastSeq() int64 {
	return a.notifier.LastSeq()
}

// AwaitChange blocks until the LSDB accepts a change past seq. See
// sync.Notifier.
func (a *Area) AwaitChange(ctx context.Context, seq int64) int64 {
	return a.notifier.AwaitChange(ctx, seq)
}
