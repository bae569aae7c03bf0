// Package importer is the topology-extraction side of the simulator: it
// turns a validated topology description into routers and interfaces, runs a
// simplified designated-router election on every broadcast segment, and
// drives LSA origination into a fresh area's LSDB.
package importer

import (
	"fmt"
	"net/netip"

	"golang.org/x/exp/slices"

	"github.com/ospfsim/ospfsim/common"
	"github.com/ospfsim/ospfsim/config"
	"github.com/ospfsim/ospfsim/ospf"
)

type segment struct {
	prefix  netip.Prefix
	dr      *ospf.Router
	drIface *ospf.Interface
	members []member
}

type member struct {
	router *ospf.Router
	iface  *ospf.Interface
}

// BuildArea constructs the routers described by conf, elects DRs, originates
// every router's RouterLSA and each DR's NetworkLSA, and inserts them into a
// new area. The returned routers are the immutable configuration the area's
// LSAs were derived from.
func BuildArea(conf *config.Config) (*ospf.Area, []*ospf.Router, error) {
	routers, err := buildRouters(conf)
	if err != nil {
		return nil, nil, err
	}

	segments := electSegments(routers, conf.AreaID)

	area := ospf.NewArea(conf.AreaID)

	for _, r := range routers {
		lsa, err := r.OriginateRouterLSA(area.ID)
		if err != nil {
			return nil, nil, err
		}

		if lsa != nil {
			area.AddLSA(lsa)
		}
	}

	for _, seg := range segments {
		attached := make([]common.RouterID, 0, len(seg.members))
		for _, m := range seg.members {
			attached = append(attached, m.router.ID)
		}

		lsa, err := seg.dr.OriginateNetworkLSA(seg.drIface.Addr(), attached)
		if err != nil {
			return nil, nil, err
		}

		area.AddLSA(lsa)
	}

	return area, routers, nil
}

func buildRouters(conf *config.Config) ([]*ospf.Router, error) {
	var routers []*ospf.Router

	for _, rc := range conf.Routers {
		r := ospf.NewRouter(rc.RouterID)

		for _, ic := range rc.Interfaces {
			iface, err := buildInterface(conf.AreaID, ic)
			if err != nil {
				return nil, fmt.Errorf("router %s: %w", rc.RouterID, err)
			}

			if err := r.AddInterface(iface); err != nil {
				return nil, err
			}
		}

		routers = append(routers, r)
	}

	return routers, nil
}

func buildInterface(areaID common.AreaID, ic config.InterfaceConfig) (*ospf.Interface, error) {
	iface := &ospf.Interface{
		Prefix:             ic.Prefix,
		AreaID:             areaID,
		Cost:               ic.Cost,
		HelloInterval:      ic.HelloInterval,
		RouterDeadInterval: ic.DeadInterval,
		RouterPriority:     ic.Priority,
	}

	switch ic.Network {
	case config.NetworkPointToPoint:
		iface.Type = ospf.InterfacePointToPoint
		iface.State = ospf.StatePointToPoint
		iface.NeighborID = ic.Neighbor.RouterID
		iface.NeighborAddr = ic.Neighbor.Addr
	case config.NetworkBroadcast:
		iface.Type = ospf.InterfaceBroadcast
		iface.State = ospf.StateWaiting
	default:
		return nil, fmt.Errorf("interface %s: unknown network type %q", ic.Prefix.Addr(), ic.Network)
	}

	return iface, nil
}

// electSegments groups broadcast interfaces by their network prefix and runs
// the simplified election on each segment: the interface with the
// numerically highest address wins. Every member interface learns the
// result, since transit links in RouterLSAs name the DR's address.
func electSegments(routers []*ospf.Router, areaID common.AreaID) []*segment {
	byPrefix := make(map[netip.Prefix]*segment)
	var order []netip.Prefix

	for _, r := range routers {
		for _, iface := range r.Interfaces {
			if iface.AreaID != areaID || iface.Type != ospf.InterfaceBroadcast {
				continue
			}

			prefix := iface.Prefix.Masked()

			seg, ok := byPrefix[prefix]
			if !ok {
				seg = &segment{prefix: prefix}
				byPrefix[prefix] = seg
				order = append(order, prefix)
			}

			seg.members = append(seg.members, member{router: r, iface: iface})
		}
	}

	slices.SortFunc(order, func(a, b netip.Prefix) int {
		if c := a.Addr().Compare(b.Addr()); c != 0 {
			return c
		}
		return a.Bits() - b.Bits()
	})

	segments := make([]*segment, 0, len(order))
	for _, prefix := range order {
		seg := byPrefix[prefix]

		for _, m := range seg.members {
			if seg.drIface == nil || m.iface.Addr().Compare(seg.drIface.Addr()) > 0 {
				seg.dr = m.router
				seg.drIface = m.iface
			}
		}

		for _, m := range seg.members {
			m.iface.DRID = seg.dr.ID
			m.iface.DRAddr = seg.drIface.Addr()

			if m.iface == seg.drIface {
				m.iface.State = ospf.StateDR
			} else {
				m.iface.State = ospf.StateDROther
			}
		}

		segments = append(segments, seg)
	}

	return segments
}
