package main

import (
	"fmt"

	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
	"github.com/spf13/cobra"
)

// routeAddrFlags maps each address flag onto its criterion.
func routeAddrFlags(crit *netlink.RouteCriteria) map[string]**cidr.CIDR {
	return map[string]**cidr.CIDR{
		"gw":         &crit.Gateway,
		"gw-exact":   &crit.GatewayExact,
		"from":       &crit.From,
		"from-exact": &crit.FromExact,
		"src":        &crit.Src,
		"src-exact":  &crit.SrcExact,
		"dest":       &crit.Dest,
		"dest-exact": &crit.DestExact,
	}
}

func addRouteFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("family", "", "ipv4 or ipv6")
	f.String("iif", "", "input device")
	f.String("oif", "", "output device")
	f.String("type", "", "route type, by name or number")
	f.String("scope", "", "route scope, by name or number")
	f.String("proto", "", "routing protocol, by name or number")
	f.String("table", "", "routing table, by name or number")

	for name := range routeAddrFlags(&netlink.RouteCriteria{}) {
		f.String(name, "", fmt.Sprintf("%s address or prefix", name))
	}
}

func addNeighborFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("family", "", "ipv4 or ipv6")
	f.String("dev", "", "device")
	f.String("dest", "", "prefix containing the neighbour's address")
	f.String("dest-exact", "", "the neighbour's address")
	f.String("mac", "", "link-layer address")
	f.Bool("router", false, "only (or, when false, never) routers")
	f.Bool("proxy", false, "only (or, when false, never) proxy entries")
}

func flagFamily(cmd *cobra.Command) (types.Family, error) {
	v, _ := cmd.Flags().GetString("family")
	f, ok := types.ParseFamily(v)
	if !ok {
		return types.Any, fmt.Errorf("unknown family %q", v)
	}
	return f, nil
}

func flagAddr(cmd *cobra.Command, name string) (*cidr.CIDR, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil, nil
	}
	a, err := cidr.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("bad --%s: %w", name, err)
	}
	return &a, nil
}

// flagBool is tri-state: unset flags leave the criterion out.
func flagBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	b, _ := cmd.Flags().GetBool(name)
	return &b
}

func flagLookup[T any](cmd *cobra.Command, name string, parse func(string) (T, bool)) (*T, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil, nil
	}
	t, ok := parse(v)
	if !ok {
		return nil, fmt.Errorf("bad --%s %q", name, v)
	}
	return &t, nil
}

func routeCriteria(cmd *cobra.Command) (*netlink.RouteCriteria, error) {
	var (
		crit netlink.RouteCriteria
		err  error
	)

	if crit.Family, err = flagFamily(cmd); err != nil {
		return nil, err
	}
	crit.IIF, _ = cmd.Flags().GetString("iif")
	crit.OIF, _ = cmd.Flags().GetString("oif")

	if crit.Type, err = flagLookup(cmd, "type", types.ParseRouteType); err != nil {
		return nil, err
	}
	if crit.Scope, err = flagLookup(cmd, "scope", types.ParseScope); err != nil {
		return nil, err
	}
	if crit.Protocol, err = flagLookup(cmd, "proto", types.ParseProtocol); err != nil {
		return nil, err
	}
	if crit.Table, err = flagLookup(cmd, "table", types.ParseTable); err != nil {
		return nil, err
	}

	for name, dst := range routeAddrFlags(&crit) {
		if *dst, err = flagAddr(cmd, name); err != nil {
			return nil, err
		}
	}

	return &crit, nil
}

func neighborCriteria(cmd *cobra.Command) (*netlink.NeighborCriteria, error) {
	var (
		crit netlink.NeighborCriteria
		err  error
	)

	if crit.Family, err = flagFamily(cmd); err != nil {
		return nil, err
	}
	crit.Device, _ = cmd.Flags().GetString("dev")
	crit.MAC, _ = cmd.Flags().GetString("mac")

	if crit.Dest, err = flagAddr(cmd, "dest"); err != nil {
		return nil, err
	}
	if crit.DestExact, err = flagAddr(cmd, "dest-exact"); err != nil {
		return nil, err
	}
	crit.Router = flagBool(cmd, "router")
	crit.Proxy = flagBool(cmd, "proxy")

	return &crit, nil
}
