package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
)

func TestDescribeCidr(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		add, sub uint64
		contains string
		want     cidrInfo
	}{
		{
			name: "prefix in text",
			args: []string{"192.168.1.77/24"},
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:      cidr.MustParse("192.168.1.77/24"),
					Family:    types.IPv4,
					Prefix:    24,
					Network:   cidr.MustParse("192.168.1.0/24"),
					Mask:      cidr.MustParse("255.255.255.0/24"),
					Broadcast: netlink.Ptr(cidr.MustParse("192.168.1.255/24")),
					MinHost:   cidr.MustParse("192.168.1.1/24"),
					MaxHost:   cidr.MustParse("192.168.1.254/24"),
					RFC1918:   true,
				},
			},
		},
		{
			name:     "dotted mask and contains",
			args:     []string{"10.24.0.0", "255.255.0.0"},
			contains: "10.24.5.1",
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:      cidr.MustParse("10.24.0.0/16"),
					Family:    types.IPv4,
					Prefix:    16,
					Network:   cidr.MustParse("10.24.0.0/16"),
					Mask:      cidr.MustParse("255.255.0.0/16"),
					Broadcast: netlink.Ptr(cidr.MustParse("10.24.255.255/16")),
					MinHost:   cidr.MustParse("10.24.0.1/16"),
					MaxHost:   cidr.MustParse("10.24.255.254/16"),
					RFC1918:   true,
				},
				Contains: netlink.Ptr(true),
			},
		},
		{
			name:     "not contained",
			args:     []string{"10.24.0.0/16"},
			contains: "10.0.0.0/8",
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:      cidr.MustParse("10.24.0.0/16"),
					Family:    types.IPv4,
					Prefix:    16,
					Network:   cidr.MustParse("10.24.0.0/16"),
					Mask:      cidr.MustParse("255.255.0.0/16"),
					Broadcast: netlink.Ptr(cidr.MustParse("10.24.255.255/16")),
					MinHost:   cidr.MustParse("10.24.0.1/16"),
					MaxHost:   cidr.MustParse("10.24.255.254/16"),
					RFC1918:   true,
				},
				Contains: netlink.Ptr(false),
			},
		},
		{
			name: "mapped",
			args: []string{"::ffff:172.16.19.1"},
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:    cidr.MustParse("::ffff:172.16.19.1"),
					Family:  types.IPv6,
					Prefix:  128,
					Network: cidr.MustParse("::ffff:172.16.19.1"),
					Mask:    cidr.MustParse("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"),
					MinHost: cidr.MustParse("::ffff:172.16.19.1"),
					MaxHost: cidr.MustParse("::ffff:172.16.19.1"),
					Mapped4: netlink.Ptr(cidr.MustParse("172.16.19.1")),
				},
			},
		},
		{
			name: "add then sub",
			args: []string{"fe80::1/64"},
			add:  0x10,
			sub:  0x1,
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:      cidr.MustParse("fe80::10/64"),
					Family:    types.IPv6,
					Prefix:    64,
					Network:   cidr.MustParse("fe80::/64"),
					Mask:      cidr.MustParse("ffff:ffff:ffff:ffff::/64"),
					MinHost:   cidr.MustParse("fe80::1/64"),
					MaxHost:   cidr.MustParse("fe80::ffff:ffff:ffff:ffff/64"),
					LinkLocal: true,
				},
			},
		},
		{
			name: "saturated",
			args: []string{"255.255.255.255"},
			add:  1,
			want: cidrInfo{
				Summary: cidr.Summary{
					CIDR:    cidr.MustParse("255.255.255.255"),
					Family:  types.IPv4,
					Prefix:  32,
					Network: cidr.MustParse("255.255.255.255"),
					Mask:    cidr.MustParse("255.255.255.255"),
					// A /32 has no host bits to set.
					Broadcast: netlink.Ptr(cidr.MustParse("255.255.255.255")),
					MinHost:   cidr.MustParse("255.255.255.255"),
					MaxHost:   cidr.MustParse("255.255.255.255"),
				},
			},
		},
	}

	for _, test := range tests {
		got, err := describeCidr(test.args, test.add, test.sub, test.contains)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpCIDR); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestDescribeCidrErrors(t *testing.T) {
	tests := []struct {
		args     []string
		contains string
	}{
		{[]string{"300.1.1.1"}, ""},
		{[]string{"10.0.0.0", "255.0.255.0"}, ""},
		{[]string{"10.0.0.0", "33"}, ""},
		{[]string{"10.0.0.0/8"}, "nope"},
	}

	for _, test := range tests {
		if _, err := describeCidr(test.args, 0, 0, test.contains); err == nil {
			t.Errorf("%v (contains %q): got no error", test.args, test.contains)
		}
	}
}
