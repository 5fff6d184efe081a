package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
)

func fail(c echo.Context, code int, err error) error {
	return c.JSONPretty(code, &errorResponse{Error: err.Error()}, JSON_PRETTY_INDENT)
}

// queryFailed maps a failed kernel query onto a response.
func queryFailed(cc *extendedContext, err error) error {
	var tErr *netlink.TransportError
	if errors.As(err, &tErr) {
		cc.logger.Warn("kernel query failed", "path", cc.Path(), "op", tErr.Op, "errno", int(tErr.Errno), "err", err)
	} else {
		cc.logger.Warn("query failed", "path", cc.Path(), "err", err)
	}
	return fail(cc, http.StatusInternalServerError, err)
}

func handleRoot(c echo.Context) error {
	cc := c.(*extendedContext)
	return c.JSONPretty(http.StatusOK, &rootResponse{
		ApiRoutes: cc.apiRoutes,
	}, JSON_PRETTY_INDENT)
}

func handleRoute(c echo.Context) error {
	cc := c.(*extendedContext)

	dest, err := cidr.Parse(c.Param("dest"))
	if err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	r, err := cc.q.Route(dest)
	if err != nil {
		return queryFailed(cc, err)
	}
	if r == nil {
		return fail(c, http.StatusNotFound, fmt.Errorf("no route to %s", dest))
	}

	return c.JSONPretty(http.StatusOK, r, JSON_PRETTY_INDENT)
}

func handleRoutes(c echo.Context) error {
	cc := c.(*extendedContext)

	crit, err := routeCriteria(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	routes, err := cc.q.Routes(crit)
	if err != nil {
		return queryFailed(cc, err)
	}

	return c.JSONPretty(http.StatusOK, routes, JSON_PRETTY_INDENT)
}

func handleNeighbors(c echo.Context) error {
	cc := c.(*extendedContext)

	crit, err := neighborCriteria(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	neighbors, err := cc.q.Neighbors(crit)
	if err != nil {
		return queryFailed(cc, err)
	}

	return c.JSONPretty(http.StatusOK, neighbors, JSON_PRETTY_INDENT)
}

func handleLink(c echo.Context) error {
	cc := c.(*extendedContext)

	withStats := false
	if v := c.QueryParam("stats"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, fmt.Errorf("bad stats %q", v))
		}
		withStats = b
	}

	name := c.Param("name")
	l, err := cc.q.Link(name)
	if err != nil {
		return queryFailed(cc, err)
	}
	if !l.Exists() {
		return fail(c, http.StatusNotFound, fmt.Errorf("no such device %q", name))
	}

	resp := linkResponse{LinkInfo: l}
	if withStats && cc.stats != nil {
		s, ok, err := cc.stats.Stats(name)
		if err != nil {
			return queryFailed(cc, err)
		}
		if ok {
			resp.Stats = &s
		}
	}

	return c.JSONPretty(http.StatusOK, &resp, JSON_PRETTY_INDENT)
}

func handleCidr(c echo.Context) error {
	addr, err := cidr.ParseWithMask(c.Param("addr"), c.QueryParam("mask"))
	if err != nil {
		return fail(c, http.StatusBadRequest, err)
	}

	resp := cidr.Describe(addr)

	return c.JSONPretty(http.StatusOK, &resp, JSON_PRETTY_INDENT)
}
