package common

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

type RouterID uint32
type AreaID uint32

func (r RouterID) String() string {
	return r.Addr().String()
}

func (r RouterID) Addr() netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(r))

	return netip.AddrFrom4(b)
}

func RouterIDFromAddr(addr netip.Addr) (RouterID, bool) {
	if !addr.Is4() {
		return 0, false
	}

	b := addr.As4()
	return RouterID(binary.BigEndian.Uint32(b[:])), true
}

func ParseRouterID(s string) (RouterID, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("invalid router id %q: %w", s, err)
	}

	id, ok := RouterIDFromAddr(addr)
	if !ok {
		return 0, fmt.Errorf("invalid router id %q: must be an IPv4 address", s)
	}

	return id, nil
}

func (a AreaID) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(a))
	addr := netip.AddrFrom4(b)

	return addr.String()
}

func ParseAreaID(s string) (AreaID, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, fmt.Errorf("invalid area id %q: %w", s, err)
	}

	if !addr.Is4() {
		return 0, fmt.Errorf("invalid area id %q: must be an IPv4 address", s)
	}

	b := addr.As4()
	return AreaID(binary.BigEndian.Uint32(b[:])), nil
}
