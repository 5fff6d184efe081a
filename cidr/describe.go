package cidr

import "github.com/lunaticurey/luci-1/types"

// Summary gathers every value derived from a CIDR. The lean tags pick what
// the CLI prints on a single line.
type Summary struct {
	CIDR      CIDR         `json:"cidr" yaml:"cidr" lean:"cidr,omitnested"`
	Family    types.Family `json:"family" yaml:"family" lean:"family"`
	Prefix    int          `json:"prefix" yaml:"prefix" lean:"-"`
	Network   CIDR         `json:"network" yaml:"network" lean:"network,omitnested"`
	Mask      CIDR         `json:"mask" yaml:"mask" lean:"mask,omitnested"`
	Broadcast *CIDR        `json:"broadcast,omitempty" yaml:"broadcast,omitempty" lean:"broadcast,omitempty,omitnested"`
	MinHost   CIDR         `json:"minHost" yaml:"minHost" lean:"min,omitnested"`
	MaxHost   CIDR         `json:"maxHost" yaml:"maxHost" lean:"max,omitnested"`
	Mapped4   *CIDR        `json:"mapped4,omitempty" yaml:"mapped4,omitempty" lean:"mapped4,omitempty,omitnested"`
	RFC1918   bool         `json:"rfc1918" yaml:"rfc1918" lean:"rfc1918,omitempty"`
	LinkLocal bool         `json:"linkLocal" yaml:"linkLocal" lean:"linklocal,omitempty"`
}

func Describe(c CIDR) Summary {
	s := Summary{
		CIDR:      c,
		Family:    c.Family(),
		Prefix:    c.Prefix(),
		Network:   c.Network(),
		Mask:      c.Mask(),
		MinHost:   c.MinHost(),
		MaxHost:   c.MaxHost(),
		RFC1918:   c.Is4RFC1918(),
		LinkLocal: c.Is4LinkLocal() || c.Is6LinkLocal(),
	}
	if b, ok := c.Broadcast(); ok {
		s.Broadcast = &b
	}
	if m, ok := c.Mapped4(); ok {
		s.Mapped4 = &m
	}
	return s
}
