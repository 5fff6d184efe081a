package types

import (
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

/*
 * Well-known address blocks the CIDR classification predicates test
 * against. They are kept as netipx.IPSets so that whole ranges, not just
 * single addresses, can be checked for membership.
 */

func parseCidr(network string, comment string) netip.Prefix {
	prefix, err := netip.ParsePrefix(network)
	if err != nil {
		panic(fmt.Sprintf("error parsing %s (%s): %v", network, comment, err))
	}
	return prefix
}

func mustSet(prefixes ...netip.Prefix) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range prefixes {
		b.AddPrefix(p)
	}
	s, err := b.IPSet()
	if err != nil {
		panic(fmt.Sprintf("error building ip set from %v: %v", prefixes, err))
	}
	return s
}

var (
	RFC1918 = mustSet(
		parseCidr("10.0.0.0/8", "RFC 1918: Private-Use"),
		parseCidr("172.16.0.0/12", "RFC 1918: Private-Use"),
		parseCidr("192.168.0.0/16", "RFC 1918: Private-Use"),
	)

	LinkLocal4 = mustSet(parseCidr("169.254.0.0/16", "RFC 3927: Link Local"))

	LinkLocal6 = mustSet(parseCidr("fe80::/10", "RFC 4291: Link-Local Unicast"))

	Mapped4 = mustSet(parseCidr("::ffff:0:0/96", "RFC 4291: IPv4-mapped Address"))
)

// InSet reports whether the whole of r lies within s.
func InSet(s *netipx.IPSet, r netipx.IPRange) bool {
	if !r.IsValid() {
		return false
	}
	return s.ContainsRange(r)
}
