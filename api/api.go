// Package api serves the routing, neighbour and link queries over a
// read-only HTTP/JSON interface.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/netlink"
)

// Querier is implemented by *netlink.Client.
type Querier interface {
	Route(dest cidr.CIDR) (*netlink.RouteEntry, error)
	Routes(c *netlink.RouteCriteria) ([]netlink.RouteEntry, error)
	Neighbors(c *netlink.NeighborCriteria) ([]netlink.NeighborEntry, error)
	Link(name string) (netlink.LinkInfo, error)
}

// StatsReader is implemented by *procnet.Reader.
type StatsReader interface {
	Stats(name string) (procnet.LinkStats, bool, error)
}

type Server struct {
	Config

	server *echo.Echo
	logger *slog.Logger
}

// New sets the API up. stats may be nil, in which case link counters
// are never reported.
func New(c *Config, q Querier, stats StatsReader) *Server {
	if c == nil {
		c = &DefaultConfig
	}

	s := Server{Config: *c}
	if c.Log {
		s.logger = slog.Default().With("t", "api")
	} else {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.logger.Debug("initialising the api")
	s.server = echo.New()

	// Prevent the banner from showing up in the log
	s.server.HideBanner = true
	s.server.HidePort = true

	// Hand the handlers what they need through the context.
	s.server.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&extendedContext{c, s.server.Routes(), q, stats, s.logger})
		}
	})

	// Configure the methods for each path
	s.server.GET("/", handleRoot)
	s.server.GET("/route/:dest", handleRoute)
	s.server.GET("/routes", handleRoutes)
	s.server.GET("/neighbors", handleNeighbors)
	s.server.GET("/link/:name", handleLink)
	s.server.GET("/cidr/:addr", handleCidr)

	return &s
}

func (s *Server) String() string {
	return "api"
}

// Metrics serves h under /metrics.
func (s *Server) Metrics(h http.Handler) {
	s.server.GET("/metrics", echo.WrapHandler(h))
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server
}

func (s *Server) Run(done <-chan struct{}) {
	s.logger.Debug("running the api")

	go func() {
		addr := fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
		if err := s.server.Start(addr); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("couldn't start the API server", "addr", addr, "err", err)
		}
	}()

	// Simply wait until we're done
	<-done
	s.logger.Debug("cleanly exiting the api")
}

func (s *Server) Cleanup() error {
	s.logger.Debug("cleaning up the api")
	if err := s.server.Shutdown(context.TODO()); err != nil {
		return fmt.Errorf("error shutting down the API server: %w", err)
	}
	return nil
}
