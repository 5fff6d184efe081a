package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/netlink"
)

const (
	JSON_PRETTY_INDENT string = "    "
)

type rootResponse struct {
	ApiRoutes []*echo.Route `json:"routes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type linkResponse struct {
	netlink.LinkInfo
	Stats *procnet.LinkStats `json:"stats,omitempty"`
}

type extendedContext struct {
	echo.Context
	apiRoutes []*echo.Route
	q         Querier
	stats     StatsReader
	logger    *slog.Logger
}
