package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
)

func queryFamily(c echo.Context) (types.Family, error) {
	f, ok := types.ParseFamily(c.QueryParam("family"))
	if !ok {
		return types.Any, fmt.Errorf("unknown family %q", c.QueryParam("family"))
	}
	return f, nil
}

func queryAddr(c echo.Context, name string) (*cidr.CIDR, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	a, err := cidr.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("bad %s: %w", name, err)
	}
	return &a, nil
}

func queryBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("bad %s %q", name, v)
	}
	return &b, nil
}

// queryLookup resolves parameters taking either a kernel name or a number.
func queryLookup[T any](c echo.Context, name string, parse func(string) (T, bool)) (*T, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, ok := parse(v)
	if !ok {
		return nil, fmt.Errorf("bad %s %q", name, v)
	}
	return &t, nil
}

func routeCriteria(c echo.Context) (*netlink.RouteCriteria, error) {
	var (
		crit netlink.RouteCriteria
		err  error
	)

	if crit.Family, err = queryFamily(c); err != nil {
		return nil, err
	}
	crit.IIF = c.QueryParam("iif")
	crit.OIF = c.QueryParam("oif")

	if crit.Type, err = queryLookup(c, "type", types.ParseRouteType); err != nil {
		return nil, err
	}
	if crit.Scope, err = queryLookup(c, "scope", types.ParseScope); err != nil {
		return nil, err
	}
	if crit.Protocol, err = queryLookup(c, "proto", types.ParseProtocol); err != nil {
		return nil, err
	}
	if crit.Table, err = queryLookup(c, "table", types.ParseTable); err != nil {
		return nil, err
	}

	for name, dst := range map[string]**cidr.CIDR{
		"gw":         &crit.Gateway,
		"gw_exact":   &crit.GatewayExact,
		"from":       &crit.From,
		"from_exact": &crit.FromExact,
		"src":        &crit.Src,
		"src_exact":  &crit.SrcExact,
		"dest":       &crit.Dest,
		"dest_exact": &crit.DestExact,
	} {
		if *dst, err = queryAddr(c, name); err != nil {
			return nil, err
		}
	}

	return &crit, nil
}

func neighborCriteria(c echo.Context) (*netlink.NeighborCriteria, error) {
	var (
		crit netlink.NeighborCriteria
		err  error
	)

	if crit.Family, err = queryFamily(c); err != nil {
		return nil, err
	}
	crit.Device = c.QueryParam("dev")
	crit.MAC = c.QueryParam("mac")

	if crit.Dest, err = queryAddr(c, "dest"); err != nil {
		return nil, err
	}
	if crit.DestExact, err = queryAddr(c, "dest_exact"); err != nil {
		return nil, err
	}
	if crit.Router, err = queryBool(c, "router"); err != nil {
		return nil, err
	}
	if crit.Proxy, err = queryBool(c, "proxy"); err != nil {
		return nil, err
	}

	return &crit, nil
}
