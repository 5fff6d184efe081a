package netlink

import (
	"log/slog"
)

// Client runs read-only rtnetlink queries. It holds no socket: every query
// opens its own and closes it before returning, so a Client can be shared
// freely between goroutines.
type Client struct {
	Config

	logger *slog.Logger
}

func New(c *Config) *Client {
	if c == nil {
		c = &DefaultConfig
	}

	cl := Client{Config: *c}
	if c.Log {
		cl.logger = slog.Default().With("t", "netlink")
	} else {
		cl.logger = slog.New(slog.DiscardHandler)
	}

	return &cl
}

func (c *Client) String() string {
	return "netlink"
}

// Routes collects every route matching crit, in kernel order.
func (c *Client) Routes(crit *RouteCriteria) ([]RouteEntry, error) {
	routes := []RouteEntry{}
	err := c.RoutesFunc(crit, func(r RouteEntry) {
		routes = append(routes, r)
	})
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// Neighbors collects every neighbour cache entry matching crit.
func (c *Client) Neighbors(crit *NeighborCriteria) ([]NeighborEntry, error) {
	neighbors := []NeighborEntry{}
	err := c.NeighborsFunc(crit, func(n NeighborEntry) {
		neighbors = append(neighbors, n)
	})
	if err != nil {
		return nil, err
	}
	return neighbors, nil
}
