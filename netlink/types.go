package netlink

import (
	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/types"
)

// RouteEntry is a decoded RTM_NEWROUTE message. The structs and lean tags
// drive the key=value rendering of the CLI.
type RouteEntry struct {
	Type     types.RouteType `json:"type" structs:"type" lean:"type"`
	Family   types.Family    `json:"family" structs:"family" lean:"-"`
	Dest     cidr.CIDR       `json:"dest" structs:"dest,omitnested" lean:"dest,omitnested"`
	Gateway  *cidr.CIDR      `json:"gateway,omitempty" structs:"gateway,omitempty,omitnested" lean:"gateway,omitempty,omitnested"`
	From     *cidr.CIDR      `json:"from,omitempty" structs:"from,omitempty,omitnested" lean:"-"`
	Src      *cidr.CIDR      `json:"src,omitempty" structs:"src,omitempty,omitnested" lean:"src,omitempty,omitnested"`
	Device   string          `json:"dev,omitempty" structs:"dev,omitempty" lean:"dev,omitempty"`
	InDevice string          `json:"iif,omitempty" structs:"iif,omitempty" lean:"-"`
	Table    uint32          `json:"table" structs:"table" lean:"-"`
	Protocol types.Protocol  `json:"proto" structs:"proto" lean:"-"`
	Scope    types.Scope     `json:"scope" structs:"scope" lean:"-"`
	Metric   *uint32         `json:"metric,omitempty" structs:"metric,omitempty" lean:"metric,omitempty"`

	// Seconds until an IPv6 route expires.
	Expires *uint32 `json:"expires,omitempty" structs:"expires,omitempty" lean:"-"`

	// Negative errno cached for the destination, if any.
	Error *int32 `json:"error,omitempty" structs:"error,omitempty" lean:"-"`
}

// NeighborEntry is a decoded RTM_NEWNEIGH message. Only the state flags the
// kernel reported are set.
type NeighborEntry struct {
	Family  types.Family `json:"family" structs:"family" lean:"-"`
	Device  string       `json:"dev" structs:"dev" lean:"dev"`
	Address cidr.CIDR    `json:"dest" structs:"dest,omitnested" lean:"dest,omitnested"`
	MAC     string       `json:"mac,omitempty" structs:"mac,omitempty" lean:"mac,omitempty"`

	Router     bool `json:"router,omitempty" structs:"router,omitempty" lean:"-"`
	Proxy      bool `json:"proxy,omitempty" structs:"proxy,omitempty" lean:"-"`
	Incomplete bool `json:"incomplete,omitempty" structs:"incomplete,omitempty" lean:"-"`
	Reachable  bool `json:"reachable,omitempty" structs:"reachable,omitempty" lean:"reachable,omitempty"`
	Stale      bool `json:"stale,omitempty" structs:"stale,omitempty" lean:"stale,omitempty"`
	Delay      bool `json:"delay,omitempty" structs:"delay,omitempty" lean:"-"`
	Probe      bool `json:"probe,omitempty" structs:"probe,omitempty" lean:"-"`
	Failed     bool `json:"failed,omitempty" structs:"failed,omitempty" lean:"failed,omitempty"`
	NoARP      bool `json:"noarp,omitempty" structs:"noarp,omitempty" lean:"-"`
	Permanent  bool `json:"permanent,omitempty" structs:"permanent,omitempty" lean:"permanent,omitempty"`
}

// State folds the boolean state flags back into the kernel's bitmask.
func (n *NeighborEntry) State() types.NudState {
	var s types.NudState
	for state, set := range map[types.NudState]bool{
		types.NUD_INCOMPLETE: n.Incomplete,
		types.NUD_REACHABLE:  n.Reachable,
		types.NUD_STALE:      n.Stale,
		types.NUD_DELAY:      n.Delay,
		types.NUD_PROBE:      n.Probe,
		types.NUD_FAILED:     n.Failed,
		types.NUD_NOARP:      n.NoARP,
		types.NUD_PERMANENT:  n.Permanent,
	} {
		if set {
			s |= state
		}
	}
	return s
}

func (n *NeighborEntry) setState(s types.NudState) {
	n.Incomplete = s.Has(types.NUD_INCOMPLETE)
	n.Reachable = s.Has(types.NUD_REACHABLE)
	n.Stale = s.Has(types.NUD_STALE)
	n.Delay = s.Has(types.NUD_DELAY)
	n.Probe = s.Has(types.NUD_PROBE)
	n.Failed = s.Has(types.NUD_FAILED)
	n.NoARP = s.Has(types.NUD_NOARP)
	n.Permanent = s.Has(types.NUD_PERMANENT)
}

// LinkInfo describes a network device. The zero value stands for a device
// that doesn't exist.
type LinkInfo struct {
	Up           bool   `json:"up" structs:"up" lean:"up"`
	Type         uint16 `json:"type" structs:"type" lean:"-"`
	Name         string `json:"name" structs:"name" lean:"name"`
	Master       string `json:"master,omitempty" structs:"master,omitempty" lean:"master,omitempty"`
	MTU          uint32 `json:"mtu" structs:"mtu" lean:"mtu"`
	TxQueueLen   uint32 `json:"qlen" structs:"qlen" lean:"-"`
	HardwareAddr string `json:"mac,omitempty" structs:"mac,omitempty" lean:"mac,omitempty"`
}

func (l LinkInfo) Exists() bool {
	return l.Name != ""
}

// Ptr is a small helper to fill in optional criteria.
func Ptr[T any](v T) *T {
	return &v
}
