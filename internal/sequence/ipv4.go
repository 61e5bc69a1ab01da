package sequence

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// IPv4 yields base, base+inc, base+2*inc, ... treating addresses and the
// increment mask as 32-bit integers. It stops instead of wrapping past
// 255.255.255.255.
type IPv4 struct {
	next uint64
	step uint64
}

// NewIPv4 creates an IPv4 sequence from a base address and a dotted-quad
// increment mask such as 0.0.1.0
func NewIPv4(base, increment string) (*IPv4, error) {
	b, err := parseIPv4(base)
	if err != nil {
		return nil, fmt.Errorf("base address: %w", err)
	}
	inc, err := parseIPv4(increment)
	if err != nil {
		return nil, fmt.Errorf("increment mask: %w", err)
	}
	if inc == 0 {
		return nil, fmt.Errorf("increment mask %s is zero", increment)
	}
	return &IPv4{next: uint64(b), step: uint64(inc)}, nil
}

// Next returns the next address
func (s *IPv4) Next() (netip.Addr, bool) {
	if s.next > 0xFFFFFFFF {
		return netip.Addr{}, false
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(s.next))
	s.next += s.step
	return netip.AddrFrom4(buf), true
}

// Remaining returns how many addresses fit before the 32-bit limit
func (s *IPv4) Remaining() int {
	if s.next > 0xFFFFFFFF {
		return 0
	}
	return int((0xFFFFFFFF-s.next)/s.step) + 1
}

func parseIPv4(s string) (uint32, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, err
	}
	if !addr.Is4() {
		return 0, fmt.Errorf("%s is not an IPv4 address", s)
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), nil
}

// Gateway yields gateway addresses alongside an IP sequence. An absent
// gateway yields the zero netip.Addr forever.
type Gateway struct {
	seq *IPv4
}

// NewGateway creates a gateway sequence; an empty base means no gateway
func NewGateway(base, increment string) (*Gateway, error) {
	if base == "" {
		return &Gateway{}, nil
	}
	seq, err := NewIPv4(base, increment)
	if err != nil {
		return nil, err
	}
	return &Gateway{seq: seq}, nil
}

// Absent reports whether the gateway was left unset
func (g *Gateway) Absent() bool {
	return g.seq == nil
}

// Next returns the next gateway, or the zero address when absent
func (g *Gateway) Next() (netip.Addr, bool) {
	if g.seq == nil {
		return netip.Addr{}, true
	}
	return g.seq.Next()
}

// Remaining returns the remaining gateway count
func (g *Gateway) Remaining() int {
	if g.seq == nil {
		return Unbounded
	}
	return g.seq.Remaining()
}
