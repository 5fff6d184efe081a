package types

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// Family tags an address as IPv4 or IPv6. Any other value (Any being the
// canonical one) stands for both families when used in a filter.
type Family int

const (
	Any  Family = 0
	IPv4 Family = 4
	IPv6 Family = 6
)

var (
	familyMap = map[string]Family{
		"":      Any,
		"ANY":   Any,
		"4":     IPv4,
		"IPV4":  IPv4,
		"INET":  IPv4,
		"6":     IPv6,
		"IPV6":  IPv6,
		"INET6": IPv6,
	}

	ylimafMap = map[Family]string{
		IPv4: "ipv4",
		IPv6: "ipv6",
	}
)

func (f Family) String() string {
	if s, ok := ylimafMap[f]; ok {
		return s
	}
	return "any"
}

func ParseFamily(family string) (Family, bool) {
	f, ok := familyMap[strings.ToUpper(strings.TrimSpace(family))]
	return f, ok
}

// IsAny reports whether f matches both families.
func (f Family) IsAny() bool {
	return f != IPv4 && f != IPv6
}

// Bytes is the address width of the family in bytes.
func (f Family) Bytes() int {
	switch f {
	case IPv4:
		return 4
	case IPv6:
		return 16
	}
	return 0
}

// Bits is the maximum prefix length of the family.
func (f Family) Bits() int {
	return f.Bytes() * 8
}

// AF returns the kernel address family for f.
func (f Family) AF() uint8 {
	switch f {
	case IPv4:
		return unix.AF_INET
	case IPv6:
		return unix.AF_INET6
	}
	return unix.AF_UNSPEC
}

func FamilyFromAF(af uint8) Family {
	switch af {
	case unix.AF_INET:
		return IPv4
	case unix.AF_INET6:
		return IPv6
	}
	return Any
}

// Families expands f into the concrete families it stands for.
func (f Family) Families() []Family {
	if f.IsAny() {
		return []Family{IPv4, IPv6}
	}
	return []Family{f}
}

func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	tmp, ok := ParseFamily(string(b))
	if !ok {
		return fmt.Errorf("unknown address family %q", b)
	}
	*f = tmp
	return nil
}
