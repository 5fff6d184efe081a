package cidr

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/lunaticurey/luci-1/types"
)

// Parse accepts addr, addr/bits or addr/netmask.
func Parse(text string) (CIDR, error) {
	return parse(text, "", types.Any)
}

// ParseWithMask behaves like Parse, but mask (a bit count or a netmask of
// the same family) overrides any mask embedded in text. An empty mask is
// ignored.
func ParseWithMask(text, mask string) (CIDR, error) {
	return parse(text, mask, types.Any)
}

// Parse4 is Parse restricted to IPv4 addresses.
func Parse4(text string) (CIDR, error) {
	return parse(text, "", types.IPv4)
}

func Parse4WithMask(text, mask string) (CIDR, error) {
	return parse(text, mask, types.IPv4)
}

// Parse6 is Parse restricted to IPv6 addresses.
func Parse6(text string) (CIDR, error) {
	return parse(text, "", types.IPv6)
}

func Parse6WithMask(text, mask string) (CIDR, error) {
	return parse(text, mask, types.IPv6)
}

// MustParse panics if text can't be parsed.
func MustParse(text string) CIDR {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parse(text, mask string, want types.Family) (CIDR, error) {
	addrText, embedded, hasMask := strings.Cut(strings.TrimSpace(text), "/")

	if strings.ContainsRune(addrText, '%') {
		return CIDR{}, parseErr(text, "zoned addresses are not supported")
	}

	a, err := netip.ParseAddr(addrText)
	if err != nil {
		return CIDR{}, parseErr(text, "malformed address")
	}

	c := fromAddr(a)
	if !want.IsAny() && c.family != want {
		return CIDR{}, parseErr(text, "not an %s address", want)
	}

	if mask == "" && !hasMask {
		return c, nil
	}
	if mask == "" {
		mask = embedded
	}

	n, err := maskBits(c.family, mask)
	if err != nil {
		return CIDR{}, maskErr(text, mask, err)
	}
	if n > c.family.Bits() {
		return CIDR{}, parseErr(text, "prefix length %d exceeds %d", n, c.family.Bits())
	}
	c.bits = n

	return c, nil
}

// maskBits turns a bit count or a netmask into a prefix length. Bit counts
// are not range checked.
func maskBits(f types.Family, mask string) (int, error) {
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return 0, parseErr(mask, "empty mask")
	}

	if isDigits(mask) {
		n, err := strconv.Atoi(mask)
		if err != nil {
			return 0, parseErr(mask, "malformed prefix length")
		}
		return n, nil
	}

	m, err := netip.ParseAddr(mask)
	if err != nil || m.Zone() != "" {
		return 0, parseErr(mask, "malformed netmask")
	}

	mc := fromAddr(m)
	if mc.family != f {
		return 0, parseErr(mask, "%s netmask used with an %s address", mc.family, f)
	}

	n, ok := maskLen(mc.addr, f.Bits())
	if !ok {
		return 0, parseErr(mask, "non-contiguous netmask")
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
