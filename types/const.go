package types

import (
	"strconv"
	"strings"
)

type (
	RouteType uint8
	Scope     uint8
	Protocol  uint8
	NudState  uint16
)

// All of these constants' names make the linter complain, but we inherited
// them from the kernel's rtnetlink.h and neighbour.h, so we will keep them
// as they are. Numeric values are part of the wire contract: never remap them.
const (
	RTN_UNSPEC      RouteType = 0
	RTN_UNICAST     RouteType = 1
	RTN_LOCAL       RouteType = 2
	RTN_BROADCAST   RouteType = 3
	RTN_ANYCAST     RouteType = 4
	RTN_MULTICAST   RouteType = 5
	RTN_BLACKHOLE   RouteType = 6
	RTN_UNREACHABLE RouteType = 7
	RTN_PROHIBIT    RouteType = 8
	RTN_THROW       RouteType = 9
	RTN_NAT         RouteType = 10

	RT_SCOPE_UNIVERSE Scope = 0
	RT_SCOPE_SITE     Scope = 200
	RT_SCOPE_LINK     Scope = 253
	RT_SCOPE_HOST     Scope = 254
	RT_SCOPE_NOWHERE  Scope = 255

	RTPROT_UNSPEC   Protocol = 0
	RTPROT_REDIRECT Protocol = 1
	RTPROT_KERNEL   Protocol = 2
	RTPROT_BOOT     Protocol = 3
	RTPROT_STATIC   Protocol = 4
	RTPROT_RA       Protocol = 9
	RTPROT_DHCP     Protocol = 16
	RTPROT_BGP      Protocol = 186
	RTPROT_OSPF     Protocol = 188

	RT_TABLE_UNSPEC  uint32 = 0
	RT_TABLE_DEFAULT uint32 = 253
	RT_TABLE_MAIN    uint32 = 254
	RT_TABLE_LOCAL   uint32 = 255

	NUD_INCOMPLETE NudState = 0x01
	NUD_REACHABLE  NudState = 0x02
	NUD_STALE      NudState = 0x04
	NUD_DELAY      NudState = 0x08
	NUD_PROBE      NudState = 0x10
	NUD_FAILED     NudState = 0x20
	NUD_NOARP      NudState = 0x40
	NUD_PERMANENT  NudState = 0x80

	NTF_PROXY  uint8 = 0x08
	NTF_ROUTER uint8 = 0x80
)

var (
	routeTypeName = map[RouteType]string{
		RTN_UNSPEC:      "unspec",
		RTN_UNICAST:     "unicast",
		RTN_LOCAL:       "local",
		RTN_BROADCAST:   "broadcast",
		RTN_ANYCAST:     "anycast",
		RTN_MULTICAST:   "multicast",
		RTN_BLACKHOLE:   "blackhole",
		RTN_UNREACHABLE: "unreachable",
		RTN_PROHIBIT:    "prohibit",
		RTN_THROW:       "throw",
		RTN_NAT:         "nat",
	}

	scopeName = map[Scope]string{
		RT_SCOPE_UNIVERSE: "global",
		RT_SCOPE_SITE:     "site",
		RT_SCOPE_LINK:     "link",
		RT_SCOPE_HOST:     "host",
		RT_SCOPE_NOWHERE:  "nowhere",
	}

	protocolName = map[Protocol]string{
		RTPROT_UNSPEC:   "unspec",
		RTPROT_REDIRECT: "redirect",
		RTPROT_KERNEL:   "kernel",
		RTPROT_BOOT:     "boot",
		RTPROT_STATIC:   "static",
		RTPROT_RA:       "ra",
		RTPROT_DHCP:     "dhcp",
		RTPROT_BGP:      "bgp",
		RTPROT_OSPF:     "ospf",
	}

	tableName = map[uint32]string{
		RT_TABLE_UNSPEC:  "unspec",
		RT_TABLE_DEFAULT: "default",
		RT_TABLE_MAIN:    "main",
		RT_TABLE_LOCAL:   "local",
	}

	// Ordered as the kernel lists them in ip-neighbour(8).
	nudStates = []NudState{
		NUD_INCOMPLETE,
		NUD_REACHABLE,
		NUD_STALE,
		NUD_DELAY,
		NUD_PROBE,
		NUD_FAILED,
		NUD_NOARP,
		NUD_PERMANENT,
	}

	nudStateName = map[NudState]string{
		NUD_INCOMPLETE: "incomplete",
		NUD_REACHABLE:  "reachable",
		NUD_STALE:      "stale",
		NUD_DELAY:      "delay",
		NUD_PROBE:      "probe",
		NUD_FAILED:     "failed",
		NUD_NOARP:      "noarp",
		NUD_PERMANENT:  "permanent",
	}
)

func nameOr[K comparable](m map[K]string, k K, n uint64) string {
	if s, ok := m[k]; ok {
		return s
	}
	return strconv.FormatUint(n, 10)
}

// lookup resolves either a symbolic name from m or a plain number that fits
// in bits.
func lookup[K ~uint8 | ~uint16 | ~uint32](m map[K]string, s string, bits int) (K, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range m {
		if v == s {
			return k, true
		}
	}
	n, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, false
	}
	return K(n), true
}

func (t RouteType) String() string { return nameOr(routeTypeName, t, uint64(t)) }
func (s Scope) String() string     { return nameOr(scopeName, s, uint64(s)) }
func (p Protocol) String() string  { return nameOr(protocolName, p, uint64(p)) }

func TableName(t uint32) string { return nameOr(tableName, t, uint64(t)) }

func ParseRouteType(s string) (RouteType, bool) { return lookup(routeTypeName, s, 8) }
func ParseScope(s string) (Scope, bool)         { return lookup(scopeName, s, 8) }
func ParseProtocol(s string) (Protocol, bool)   { return lookup(protocolName, s, 8) }

// ParseTable accepts the well-known table names as well as any id in
// 0..65535.
func ParseTable(s string) (uint32, bool) {
	t, ok := lookup(tableName, s, 32)
	if !ok || t > 0xFFFF {
		return 0, false
	}
	return t, true
}

func (n NudState) Has(state NudState) bool {
	return n&state != 0
}

// Names lists the states set in n.
func (n NudState) Names() []string {
	names := []string{}
	for _, s := range nudStates {
		if n.Has(s) {
			names = append(names, nudStateName[s])
		}
	}
	return names
}

func (n NudState) String() string {
	if n == 0 {
		return "none"
	}
	return strings.Join(n.Names(), "|")
}
