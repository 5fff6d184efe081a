package cidr

import (
	"fmt"
	"net/netip"

	"github.com/lunaticurey/luci-1/types"
	"go4.org/netipx"
)

// CIDR is an IPv4 or IPv6 address together with a prefix length. The zero
// value is not a valid CIDR.
type CIDR struct {
	family types.Family
	addr   uint128
	bits   int
}

func fromAddr(a netip.Addr) CIDR {
	if a.Is4() {
		return CIDR{family: types.IPv4, addr: u128From4(a.As4()), bits: 32}
	}
	return CIDR{family: types.IPv6, addr: u128From16(a.As16()), bits: 128}
}

// FromAddr builds a CIDR out of a and a prefix length. IPv4-mapped IPv6
// addresses stay IPv6.
func FromAddr(a netip.Addr, bits int) (CIDR, error) {
	if !a.IsValid() {
		return CIDR{}, parseErr("", "invalid address")
	}
	c := fromAddr(a.WithZone(""))
	if bits < 0 || bits > c.family.Bits() {
		return CIDR{}, &RangeError{Bits: bits, Max: c.family.Bits()}
	}
	c.bits = bits
	return c, nil
}

func FromPrefix(p netip.Prefix) (CIDR, error) {
	if !p.IsValid() {
		return CIDR{}, parseErr(p.String(), "invalid prefix")
	}
	return FromAddr(p.Addr(), p.Bits())
}

// FromBytes decodes a 4 or 16 byte address in network byte order as
// found in kernel messages.
func FromBytes(b []byte, bits int) (CIDR, error) {
	a, ok := netip.AddrFromSlice(b)
	if !ok {
		return CIDR{}, parseErr(fmt.Sprintf("%x", b), "address must be 4 or 16 bytes long, got %d", len(b))
	}
	return FromAddr(a, bits)
}

func (c CIDR) IsValid() bool {
	return c.family == types.IPv4 || c.family == types.IPv6
}

func (c CIDR) Family() types.Family { return c.family }
func (c CIDR) Is4() bool            { return c.family == types.IPv4 }
func (c CIDR) Is6() bool            { return c.family == types.IPv6 }

// Prefix returns the prefix length.
func (c CIDR) Prefix() int { return c.bits }

func (c CIDR) width() int { return c.family.Bits() }

func (c CIDR) withAddr(u uint128) CIDR {
	c.addr = u
	return c
}

// Addr returns the address bits, host part included.
func (c CIDR) Addr() netip.Addr {
	switch c.family {
	case types.IPv4:
		return netip.AddrFrom4(c.addr.bytes4())
	case types.IPv6:
		return netip.AddrFrom16(c.addr.bytes16())
	}
	return netip.Addr{}
}

// NetipPrefix returns c as a netip.Prefix without masking the host bits.
func (c CIDR) NetipPrefix() netip.Prefix {
	return netip.PrefixFrom(c.Addr(), c.bits)
}

// Bytes returns the address in network byte order.
func (c CIDR) Bytes() []byte {
	return c.Addr().AsSlice()
}

// Range spans the network address to the last address of c.
func (c CIDR) Range() netipx.IPRange {
	if !c.IsValid() {
		return netipx.IPRange{}
	}
	return netipx.IPRangeFrom(c.Network().Addr(), c.last().Addr())
}

func (c CIDR) String() string {
	if !c.IsValid() {
		return "invalid CIDR"
	}
	if c.bits < c.width() {
		return fmt.Sprintf("%s/%d", c.Addr(), c.bits)
	}
	return c.Addr().String()
}

func (c CIDR) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return []byte{}, nil
	}
	return []byte(c.String()), nil
}

func (c *CIDR) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = CIDR{}
		return nil
	}
	tmp, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = tmp
	return nil
}

// Is4RFC1918 reports whether the whole range lies within 10/8, 172.16/12 or
// 192.168/16.
func (c CIDR) Is4RFC1918() bool {
	return c.Is4() && types.InSet(types.RFC1918, c.Range())
}

func (c CIDR) Is4LinkLocal() bool {
	return c.Is4() && types.InSet(types.LinkLocal4, c.Range())
}

func (c CIDR) Is6LinkLocal() bool {
	return c.Is6() && types.InSet(types.LinkLocal6, c.Range())
}

// Is6Mapped4 reports whether the whole range lies within ::ffff:0:0/96.
func (c CIDR) Is6Mapped4() bool {
	return c.Is6() && types.InSet(types.Mapped4, c.Range())
}

// Compare orders by family first (IPv4 before IPv6) and then by address.
// Prefix lengths are not taken into account.
func (c CIDR) Compare(o CIDR) int {
	switch {
	case c.family < o.family:
		return -1
	case c.family > o.family:
		return 1
	}
	return c.addr.cmp(o.addr)
}

func (c CIDR) Lower(o CIDR) bool  { return c.Compare(o) < 0 }
func (c CIDR) Higher(o CIDR) bool { return c.Compare(o) > 0 }
func (c CIDR) Equal(o CIDR) bool  { return c.Compare(o) == 0 }

// Identical is Equal plus matching prefix lengths.
func (c CIDR) Identical(o CIDR) bool {
	return c == o
}

// CompareString parses s before comparing.
func (c CIDR) CompareString(s string) (int, error) {
	o, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return c.Compare(o), nil
}

func (c CIDR) LowerString(s string) (bool, error) {
	r, err := c.CompareString(s)
	return r < 0, err
}

func (c CIDR) HigherString(s string) (bool, error) {
	r, err := c.CompareString(s)
	return r > 0, err
}

func (c CIDR) EqualString(s string) (bool, error) {
	r, err := c.CompareString(s)
	return err == nil && r == 0, err
}

// SetPrefix overwrites the prefix length. The receiver is left untouched on
// error.
func (c *CIDR) SetPrefix(bits int) error {
	if bits < 0 || bits > c.width() {
		return &RangeError{Bits: bits, Max: c.width()}
	}
	c.bits = bits
	return nil
}

// SetPrefixMask is SetPrefix taking a bit count or a netmask of c's family.
func (c *CIDR) SetPrefixMask(mask string) error {
	n, err := maskBits(c.family, mask)
	if err != nil {
		return err
	}
	return c.SetPrefix(n)
}

// WithPrefix returns a copy of c with a new prefix length.
func (c CIDR) WithPrefix(bits int) (CIDR, error) {
	err := c.SetPrefix(bits)
	return c, err
}

func (c CIDR) WithMask(mask string) (CIDR, error) {
	err := c.SetPrefixMask(mask)
	return c, err
}

// Network zeroes the host bits.
func (c CIDR) Network() CIDR {
	return c.withAddr(c.addr.and(netMask(c.width(), c.bits)))
}

// Host forces the prefix to the family's width.
func (c CIDR) Host() CIDR {
	c.bits = c.width()
	return c
}

// Mask returns the netmask of the current prefix.
func (c CIDR) Mask() CIDR {
	return c.withAddr(netMask(c.width(), c.bits))
}

func (c CIDR) last() CIDR {
	return c.withAddr(c.addr.or(hostMask(c.width(), c.bits)))
}

// Broadcast sets every host bit. IPv6 has no broadcast address.
func (c CIDR) Broadcast() (CIDR, bool) {
	if !c.Is4() {
		return CIDR{}, false
	}
	return c.last(), true
}

// Mapped4 extracts the IPv4 address out of an IPv4-mapped IPv6 value.
func (c CIDR) Mapped4() (CIDR, bool) {
	if !c.Is6Mapped4() {
		return CIDR{}, false
	}
	return CIDR{family: types.IPv4, addr: c.addr.and(max32), bits: 32}, true
}

// Contains reports whether o's whole range lies within c's network.
func (c CIDR) Contains(o CIDR) bool {
	if !c.IsValid() || c.family != o.family || o.bits < c.bits {
		return false
	}
	m := netMask(c.width(), c.bits)
	return c.addr.and(m) == o.addr.and(m)
}

// MinHost is the first usable address of the network. IPv4 /31 and /32 as
// well as IPv6 /127 and /128 networks have no reserved network address.
func (c CIDR) MinHost() CIDR {
	n := c.Network()
	if c.bits >= c.width()-1 {
		return n
	}
	n.addr, _ = n.addr.add(one128)
	return n
}

// MaxHost is the last usable address of the network. Only IPv4 sets the
// broadcast address aside.
func (c CIDR) MaxHost() CIDR {
	l := c.last()
	if c.Is4() && c.bits < 31 {
		l.addr, _ = l.addr.sub(one128)
	}
	return l
}
