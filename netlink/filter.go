package netlink

import (
	"net"
	"strings"

	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/types"
)

// RouteCriteria selects routes. Nil pointers and empty strings match
// anything. Address fields match by prefix containment (the criterion must
// contain the route's value) whereas their *Exact counterparts require the
// same address and prefix length.
type RouteCriteria struct {
	Family   types.Family
	IIF      string
	OIF      string
	Type     *types.RouteType
	Scope    *types.Scope
	Protocol *types.Protocol
	Table    *uint32

	Gateway      *cidr.CIDR
	GatewayExact *cidr.CIDR
	From         *cidr.CIDR
	FromExact    *cidr.CIDR
	Src          *cidr.CIDR
	SrcExact     *cidr.CIDR
	Dest         *cidr.CIDR
	DestExact    *cidr.CIDR
}

// NeighborCriteria selects neighbour cache entries following the same rules
// as RouteCriteria. MAC addresses compare regardless of their spelling.
type NeighborCriteria struct {
	Family types.Family
	Device string

	Dest      *cidr.CIDR
	DestExact *cidr.CIDR
	MAC       string
	Router    *bool
	Proxy     *bool
}

func matchFamily(want, got types.Family) bool {
	return want.IsAny() || want == got
}

func matchString(want, got string) bool {
	return want == "" || want == got
}

func matchValue[T comparable](want *T, got T) bool {
	return want == nil || *want == got
}

// matchAddr applies a prefix criterion and an exact one to v, which may be
// missing from the entity altogether.
func matchAddr(prefix, exact *cidr.CIDR, v *cidr.CIDR) bool {
	if prefix != nil && (v == nil || !prefix.Contains(*v)) {
		return false
	}
	if exact != nil && (v == nil || !exact.Identical(*v)) {
		return false
	}
	return true
}

func matchMAC(want, got string) bool {
	if want == "" {
		return true
	}
	w, wErr := net.ParseMAC(want)
	g, gErr := net.ParseMAC(got)
	if wErr != nil || gErr != nil {
		return strings.EqualFold(want, got)
	}
	return w.String() == g.String()
}

// Match reports whether every present criterion holds for e. A nil
// criteria matches everything.
func (c *RouteCriteria) Match(e *RouteEntry) bool {
	if c == nil {
		return true
	}

	return matchFamily(c.Family, e.Family) &&
		matchString(c.IIF, e.InDevice) &&
		matchString(c.OIF, e.Device) &&
		matchValue(c.Type, e.Type) &&
		matchValue(c.Scope, e.Scope) &&
		matchValue(c.Protocol, e.Protocol) &&
		matchValue(c.Table, e.Table) &&
		matchAddr(c.Gateway, c.GatewayExact, e.Gateway) &&
		matchAddr(c.From, c.FromExact, e.From) &&
		matchAddr(c.Src, c.SrcExact, e.Src) &&
		matchAddr(c.Dest, c.DestExact, &e.Dest)
}

// families returns the address families worth dumping for c. Without an
// explicit family the first address criterion decides, if any.
func (c *RouteCriteria) families() []types.Family {
	if c == nil {
		return types.Any.Families()
	}
	return familiesFor(c.Family, c.Dest, c.DestExact, c.Gateway, c.GatewayExact,
		c.From, c.FromExact, c.Src, c.SrcExact)
}

func (c *NeighborCriteria) Match(e *NeighborEntry) bool {
	if c == nil {
		return true
	}

	return matchFamily(c.Family, e.Family) &&
		matchString(c.Device, e.Device) &&
		matchAddr(c.Dest, c.DestExact, &e.Address) &&
		matchMAC(c.MAC, e.MAC) &&
		matchValue(c.Router, e.Router) &&
		matchValue(c.Proxy, e.Proxy)
}

func (c *NeighborCriteria) families() []types.Family {
	if c == nil {
		return types.Any.Families()
	}
	return familiesFor(c.Family, c.Dest, c.DestExact)
}

func familiesFor(f types.Family, addrs ...*cidr.CIDR) []types.Family {
	if !f.IsAny() {
		return f.Families()
	}
	for _, a := range addrs {
		if a != nil && a.IsValid() {
			return a.Family().Families()
		}
	}
	return types.Any.Families()
}
