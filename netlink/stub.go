//go:build !linux

package netlink

import "github.com/lunaticurey/luci-1/cidr"

func (c *Client) Route(dest cidr.CIDR) (*RouteEntry, error) {
	return nil, ErrUnsupported
}

func (c *Client) RouteString(dest string) (*RouteEntry, error) {
	return nil, ErrUnsupported
}

func (c *Client) RoutesFunc(crit *RouteCriteria, fn func(RouteEntry)) error {
	return ErrUnsupported
}

func (c *Client) NeighborsFunc(crit *NeighborCriteria, fn func(NeighborEntry)) error {
	return ErrUnsupported
}

func (c *Client) Link(name string) (LinkInfo, error) {
	return LinkInfo{}, ErrUnsupported
}

func (c *Client) Links() ([]LinkInfo, error) {
	return nil, ErrUnsupported
}
