package ospf

import (
	"fmt"
	"net/netip"

	"github.com/ospfsim/ospfsim/common"
)

// Router holds a router's identity and interfaces, and originates the LSAs
// that describe them. It does not hold an LSDB; that belongs to the Area.
type Router struct {
	ID         common.RouterID
	Interfaces []*Interface

	seq int32
}

func NewRouter(id common.RouterID) *Router {
	return &Router{
		ID:  id,
		seq: initialSequenceNumber,
	}
}

// AddInterface appends an interface to the router. Two interfaces with the
// same address on one router is a configuration error.
func (r *Router) AddInterface(iface *Interface) error {
	for _, existing := range r.Interfaces {
		if existing.Addr() == iface.Addr() {
			return fmt.Errorf("router %s: duplicate interface address %s", r.ID, iface.Addr())
		}
	}

	r.Interfaces = append(r.Interfaces, iface)

	return nil
}

func (r *Router) findInterface(addr netip.Addr) *Interface {
	for _, iface := range r.Interfaces {
		if iface.Addr() == addr {
			return iface
		}
	}

	return nil
}

// nextSequenceNumber hands out strictly increasing sequence numbers, so a
// re-origination always replaces the previous instance in the LSDB.
func (r *Router) nextSequenceNumber() int32 {
	seq := r.seq
	if r.seq < maxSequenceNumber {
		r.seq++
	}

	return seq
}

// OriginateRouterLSA builds the router's RouterLSA for areaID, with one link
// per interface in the area. A router with no interfaces in the area
// contributes nothing and returns a nil LSA; that is not an error.
//
// A point-to-point interface whose neighbor is not yet known, or a broadcast
// interface whose segment has no elected DR, is skipped: those are valid
// transient states, and the link appears on a later re-origination.
func (r *Router) OriginateRouterLSA(areaID common.AreaID) (*RouterLSA, error) {
	var links []Link
	inArea := false

	for _, iface := range r.Interfaces {
		if iface.AreaID != areaID {
			continue
		}
		inArea = true

		switch iface.Type {
		case InterfacePointToPoint:
			if iface.NeighborID == 0 {
				continue
			}

			links = append(links, Link{
				ID:     iface.NeighborID.Addr(),
				Data:   iface.Addr(),
				Type:   LinkPointToPoint,
				Metric: iface.Cost,
			})
		case InterfaceBroadcast:
			if !iface.DRAddr.IsValid() {
				continue
			}

			links = append(links, Link{
				ID:     iface.DRAddr,
				Data:   iface.Addr(),
				Type:   LinkTransit,
				Metric: iface.Cost,
			})
		default:
			return nil, fmt.Errorf("router %s: unsupported interface type %v", r.ID, iface.Type)
		}
	}

	if !inArea {
		return nil, nil
	}

	return &RouterLSA{
		LSAHeader: LSAHeader{
			Type:              LSTypeRouter,
			LinkStateID:       r.ID.Addr(),
			AdvertisingRouter: r.ID,
			SequenceNumber:    r.nextSequenceNumber(),
			Length:            routerLSALength(len(links)),
		},
		Links: links,
	}, nil
}

// OriginateNetworkLSA builds the NetworkLSA for the transit segment reached
// through the interface with the given address. The caller is the election
// authority: it must have determined that this router is the segment's DR and
// supplies the attached router list; duplicates in that list are dropped.
func (r *Router) OriginateNetworkLSA(ifaceAddr netip.Addr, attached []common.RouterID) (*NetworkLSA, error) {
	iface := r.findInterface(ifaceAddr)
	if iface == nil {
		return nil, fmt.Errorf("router %s: no interface with address %s", r.ID, ifaceAddr)
	}

	lsa := &NetworkLSA{
		LSAHeader: LSAHeader{
			Type:              LSTypeNetwork,
			LinkStateID:       iface.Addr(),
			AdvertisingRouter: r.ID,
			SequenceNumber:    r.nextSequenceNumber(),
			Length:            networkLSALength(0),
		},
		NetworkMask: iface.Mask(),
	}

	for _, id := range attached {
		lsa.AddAttachedRouter(id)
	}

	return lsa, nil
}
