package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
	"github.com/spf13/cobra"
)

var cmpCIDR = cmp.Comparer(func(a, b cidr.CIDR) bool { return a.Identical(b) })

func flagged(t *testing.T, add func(*cobra.Command), flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	add(cmd)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("error setting --%s=%s: %v", k, v, err)
		}
	}
	return cmd
}

func TestRouteCriteria(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		want  *netlink.RouteCriteria
	}{
		{"none", nil, &netlink.RouteCriteria{}},
		{
			"names",
			map[string]string{"family": "inet6", "oif": "eth0", "type": "unicast", "scope": "link", "proto": "ra", "table": "main"},
			&netlink.RouteCriteria{
				Family:   types.IPv6,
				OIF:      "eth0",
				Type:     netlink.Ptr(types.RTN_UNICAST),
				Scope:    netlink.Ptr(types.RT_SCOPE_LINK),
				Protocol: netlink.Ptr(types.RTPROT_RA),
				Table:    netlink.Ptr(types.RT_TABLE_MAIN),
			},
		},
		{
			"numbers",
			map[string]string{"iif": "lo", "proto": "186", "table": "100"},
			&netlink.RouteCriteria{
				IIF:      "lo",
				Protocol: netlink.Ptr(types.Protocol(186)),
				Table:    netlink.Ptr(uint32(100)),
			},
		},
		{
			"addresses",
			map[string]string{"dest-exact": "0.0.0.0/0", "gw": "192.168.1.0/24", "src-exact": "10.0.0.1", "from": "::/0"},
			&netlink.RouteCriteria{
				DestExact: netlink.Ptr(cidr.MustParse("0.0.0.0/0")),
				Gateway:   netlink.Ptr(cidr.MustParse("192.168.1.0/24")),
				SrcExact:  netlink.Ptr(cidr.MustParse("10.0.0.1")),
				From:      netlink.Ptr(cidr.MustParse("::/0")),
			},
		},
	}

	for _, test := range tests {
		got, err := routeCriteria(flagged(t, addRouteFlags, test.flags))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpCIDR); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestRouteCriteriaErrors(t *testing.T) {
	tests := []struct {
		flags map[string]string
		want  string
	}{
		{map[string]string{"family": "ipx"}, "unknown family"},
		{map[string]string{"type": "bogus"}, "bad --type"},
		{map[string]string{"scope": "256"}, "bad --scope"},
		{map[string]string{"dest": "10.0.0.0/33"}, "bad --dest"},
		{map[string]string{"gw-exact": "not-an-address"}, "bad --gw-exact"},
	}

	for _, test := range tests {
		_, err := routeCriteria(flagged(t, addRouteFlags, test.flags))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%v: got %v, want an error mentioning %q", test.flags, err, test.want)
		}
	}
}

func TestNeighborCriteria(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		want  *netlink.NeighborCriteria
	}{
		{"none", nil, &netlink.NeighborCriteria{}},
		{
			"everything",
			map[string]string{"family": "4", "dev": "eth0", "dest": "192.168.1.0/24", "mac": "AA:BB:CC:DD:EE:FF", "router": "true"},
			&netlink.NeighborCriteria{
				Family: types.IPv4,
				Device: "eth0",
				Dest:   netlink.Ptr(cidr.MustParse("192.168.1.0/24")),
				MAC:    "AA:BB:CC:DD:EE:FF",
				Router: netlink.Ptr(true),
			},
		},
		{
			"explicit false",
			map[string]string{"proxy": "false", "dest-exact": "fe80::1"},
			&netlink.NeighborCriteria{
				DestExact: netlink.Ptr(cidr.MustParse("fe80::1")),
				Proxy:     netlink.Ptr(false),
			},
		},
	}

	for _, test := range tests {
		got, err := neighborCriteria(flagged(t, addNeighborFlags, test.flags))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpCIDR); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}
