package ospf

import (
	"net"
	"net/netip"

	"github.com/ospfsim/ospfsim/common"
)

// Interface is one OSPF-enabled interface of a Router. Interfaces are
// constructed by the topology source before simulation starts and are
// read-only configuration afterwards, except for the designated-router
// fields, which the external election fills in.
type Interface struct {
	Type               InterfaceType
	State              InterfaceState
	Prefix             netip.Prefix // IP interface address and IP interface mask
	AreaID             common.AreaID
	Cost               uint16
	HelloInterval      uint16
	RouterDeadInterval uint16
	RouterPriority     uint8

	// point-to-point peer
	NeighborID   common.RouterID
	NeighborAddr netip.Addr

	// result of DR election on the attached segment
	DRID   common.RouterID
	DRAddr netip.Addr
}

func (i *Interface) Addr() netip.Addr {
	return i.Prefix.Addr()
}

// Mask returns the interface's network mask in address form, e.g.
// 255.255.255.0 for a /24.
func (i *Interface) Mask() netip.Addr {
	mask := net.CIDRMask(i.Prefix.Bits(), 32)

	var b [4]byte
	copy(b[:], mask)

	return netip.AddrFrom4(b)
}

type InterfaceType int

const (
	InterfacePointToPoint InterfaceType = iota
	InterfaceBroadcast
	InterfaceNBMA
	InterfacePointToMultipoint
	InterfaceVirtualLink
)

func (it InterfaceType) String() string {
	switch it {
	case InterfacePointToPoint:
		return "Point-to-point"
	case InterfaceBroadcast:
		return "Broadcast"
	case InterfaceNBMA:
		return "NBMA"
	case InterfacePointToMultipoint:
		return "Point-to-MultiPoint"
	case InterfaceVirtualLink:
		return "Virtual Link"
	default:
		return "Unknown"
	}
}

type InterfaceState int

const (
	StateDown InterfaceState = iota
	StateLoopback
	StateWaiting
	StatePointToPoint
	StateDROther
	StateBackup
	StateDR
)

func (is InterfaceState) String() string {
	switch is {
	case StateDown:
		return "Down"
	case StateLoopback:
		return "Loopback"
	case StateWaiting:
		return "Waiting"
	case StatePointToPoint:
		return "Point-to-point"
	case StateDROther:
		return "DROther"
	case StateBackup:
		return "Backup"
	case StateDR:
		return "DR"
	default:
		return "Unknown"
	}
}
