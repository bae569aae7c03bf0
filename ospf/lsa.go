// Package ospf models a simplified intra-area OSPF link-state database and
// its shortest-path-first engine. LSAs are manipulated as structured records;
// there is no wire encoding, aging, or flooding.
package ospf

import (
	"math"
	"net/netip"

	"github.com/ospfsim/ospfsim/common"
)

const (
	initialSequenceNumber = math.MinInt32 + 1
	maxSequenceNumber     = math.MaxInt32
)

// Sizes in bytes of the encoded forms, used for the informational Length
// header field only.
const (
	lsaHeaderLen      = 20
	routerLSALinkLen  = 12
	attachedRouterLen = 4
)

type LSType uint8

const (
	LSTypeRouter  LSType = 1
	LSTypeNetwork LSType = 2
)

func (t LSType) String() string {
	switch t {
	case LSTypeRouter:
		return "Router"
	case LSTypeNetwork:
		return "Network"
	default:
		return "Unknown"
	}
}

type LinkType uint8

const (
	LinkPointToPoint LinkType = 1
	LinkTransit      LinkType = 2
	LinkStub         LinkType = 3
	LinkVirtual      LinkType = 4
)

func (t LinkType) String() string {
	switch t {
	case LinkPointToPoint:
		return "Point-to-point"
	case LinkTransit:
		return "Transit"
	case LinkStub:
		return "Stub"
	case LinkVirtual:
		return "Virtual"
	default:
		return "Unknown"
	}
}

// LSAHeader is the envelope shared by all LSA types. An LSA's identity in
// the LSDB is the (Type, LinkStateID, AdvertisingRouter) triple; everything
// else is payload.
type LSAHeader struct {
	Age               uint16
	Options           uint8
	Type              LSType
	LinkStateID       netip.Addr
	AdvertisingRouter common.RouterID
	SequenceNumber    int32
	Checksum          uint16
	Length            uint16
}

func (h *LSAHeader) Key() LSDBKey {
	return LSDBKey{
		Type:              h.Type,
		LinkStateID:       h.LinkStateID,
		AdvertisingRouter: h.AdvertisingRouter,
	}
}

type LSA interface {
	Header() *LSAHeader
}

// Link is one connection entry in a RouterLSA. The meaning of ID and Data
// depends on Type: for point-to-point links ID is the neighbor's router ID
// and Data the local interface address; for transit links ID is the
// designated router's interface address on the segment.
type Link struct {
	ID     netip.Addr
	Data   netip.Addr
	Type   LinkType
	Metric uint16
}

// RouterLSA (type 1) describes one router's own connections within an area.
type RouterLSA struct {
	LSAHeader
	Virtual  bool
	External bool
	Border   bool
	Links    []Link
}

func (lsa *RouterLSA) Header() *LSAHeader {
	return &lsa.LSAHeader
}

// 20 byte header, 2 bytes of flags plus 2 bytes of link count, 12 per link.
func routerLSALength(nLinks int) uint16 {
	return lsaHeaderLen + 4 + uint16(nLinks)*routerLSALinkLen
}

// NetworkLSA (type 2) describes a transit network segment and the routers
// attached to it. It is originated by the segment's designated router, and
// its link-state ID is the DR's interface address on the segment.
type NetworkLSA struct {
	LSAHeader
	NetworkMask     netip.Addr
	AttachedRouters []common.RouterID
}

func (lsa *NetworkLSA) Header() *LSAHeader {
	return &lsa.LSAHeader
}

// AddAttachedRouter records a router as attached to the segment. Routers
// already on the list are not added twice.
func (lsa *NetworkLSA) AddAttachedRouter(id common.RouterID) {
	for _, attached := range lsa.AttachedRouters {
		if attached == id {
			return
		}
	}

	lsa.AttachedRouters = append(lsa.AttachedRouters, id)
	lsa.Length = networkLSALength(len(lsa.AttachedRouters))
}

// 20 byte header, 4 byte network mask, 4 per attached router.
func networkLSALength(nAttached int) uint16 {
	return lsaHeaderLen + 4 + uint16(nAttached)*attachedRouterLen
}
