//go:build linux

package netlink

import (
	"fmt"

	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/types"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Route asks the kernel which route it would use to reach dest. Only the
// address of dest is looked at. A nil entry and a nil error mean no route
// resolves.
//
// The lookup is served by inet_rtm_getroute [0] and inet6_rtm_getroute [1].
//
// 0: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv4/route.c#L3257
//
// 1: https://elixir.bootlin.com/linux/v6.12.4/source/net/ipv6/route.c#L6062
func (c *Client) Route(dest cidr.CIDR) (*RouteEntry, error) {
	if !dest.IsValid() {
		return nil, fmt.Errorf("invalid route destination")
	}

	s, err := c.open()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	ae := netlink.NewAttributeEncoder()
	ae.Bytes(unix.RTA_DST, dest.Bytes())
	attrs, err := ae.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding the route request: %w", err)
	}

	hdr := encodeRtMsg(unix.RtMsg{
		Family:  dest.Family().AF(),
		Dst_len: uint8(dest.Family().Bits()),
		Flags:   unix.RTM_F_LOOKUP_TABLE,
	})

	msgs, err := s.get("route", unix.RTM_GETROUTE, append(hdr, attrs...))
	if err != nil {
		if isErrno(err, unix.ENETUNREACH, unix.EHOSTUNREACH, unix.ENOENT, unix.ESRCH) {
			s.logger.Debug("no route to destination", "dest", dest, "err", err)
			return nil, nil
		}
		return nil, err
	}

	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWROUTE {
			continue
		}
		r, ok, err := s.decodeRoute(m, false)
		if err != nil {
			return nil, err
		}
		if ok {
			return &r, nil
		}
	}

	return nil, nil
}

// RouteString is Route taking an address or CIDR in text form.
func (c *Client) RouteString(dest string) (*RouteEntry, error) {
	d, err := cidr.Parse(dest)
	if err != nil {
		return nil, err
	}
	return c.Route(d)
}

// RoutesFunc dumps the routing tables and calls fn for every route matching
// crit, in the order the kernel reports them. IPv4 routes come first when
// both families are dumped. fn runs before RoutesFunc returns.
func (c *Client) RoutesFunc(crit *RouteCriteria, fn func(RouteEntry)) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.Close()

	for _, f := range crit.families() {
		msgs, err := s.dump("route dump", unix.RTM_GETROUTE, encodeRtMsg(unix.RtMsg{Family: f.AF()}))
		if err != nil {
			return err
		}

		n := 0
		for _, m := range msgs {
			if m.Header.Type != unix.RTM_NEWROUTE {
				continue
			}

			r, ok, err := s.decodeRoute(m, true)
			if err != nil {
				return err
			}
			if !ok || !crit.Match(&r) {
				continue
			}

			fn(r)
			n++
		}
		s.logger.Debug("dumped routes", "family", f, "total", len(msgs), "matched", n)
	}

	return nil
}

// decodeRoute turns an RTM_NEWROUTE message into a RouteEntry. The boolean
// is false for messages that should be skipped: foreign families and, when
// dumping, cloned cache entries.
func (s *session) decodeRoute(m netlink.Message, dumping bool) (RouteEntry, bool, error) {
	hdr, err := decodeRtMsg(m.Data)
	if err != nil {
		return RouteEntry{}, false, err
	}

	family := types.FamilyFromAF(hdr.Family)
	if family.IsAny() {
		return RouteEntry{}, false, nil
	}
	if dumping && hdr.Flags&unix.RTM_F_CLONED != 0 {
		return RouteEntry{}, false, nil
	}

	e := RouteEntry{
		Type:     types.RouteType(hdr.Type),
		Family:   family,
		Table:    uint32(hdr.Table),
		Protocol: types.Protocol(hdr.Protocol),
		Scope:    types.Scope(hdr.Scope),
	}

	var (
		dst, src, gw, prefSrc []byte
		oif, iif              uint32
	)

	ad, err := netlink.NewAttributeDecoder(m.Data[unix.SizeofRtMsg:])
	if err != nil {
		return RouteEntry{}, false, fmt.Errorf("error decoding route attributes: %w", err)
	}
	for ad.Next() {
		s.trace("route attribute", ad.Type(), rtaName, len(ad.Bytes()))
		switch ad.Type() {
		case unix.RTA_DST:
			dst = ad.Bytes()
		case unix.RTA_SRC:
			src = ad.Bytes()
		case unix.RTA_GATEWAY:
			gw = ad.Bytes()
		case unix.RTA_PREFSRC:
			prefSrc = ad.Bytes()
		case unix.RTA_OIF:
			oif = ad.Uint32()
		case unix.RTA_IIF:
			iif = ad.Uint32()
		case unix.RTA_PRIORITY:
			e.Metric = Ptr(ad.Uint32())
		case unix.RTA_TABLE:
			e.Table = ad.Uint32()
		case unix.RTA_CACHEINFO:
			expires, errno, err := cacheInfo(ad.Bytes())
			if err != nil {
				return RouteEntry{}, false, err
			}
			if family == types.IPv6 && expires > 0 {
				e.Expires = Ptr(uint32(expires / userHZ))
			}
			if errno != 0 {
				e.Error = Ptr(errno)
			}
		}
	}
	if err := ad.Err(); err != nil {
		return RouteEntry{}, false, fmt.Errorf("error decoding route attributes: %w", err)
	}

	if dst == nil {
		dst = make([]byte, family.Bytes())
	}
	if e.Dest, err = cidr.FromBytes(dst, int(hdr.Dst_len)); err != nil {
		return RouteEntry{}, false, fmt.Errorf("error decoding RTA_DST: %w", err)
	}
	if src != nil {
		from, err := cidr.FromBytes(src, int(hdr.Src_len))
		if err != nil {
			return RouteEntry{}, false, fmt.Errorf("error decoding RTA_SRC: %w", err)
		}
		e.From = &from
	}
	if e.Gateway, err = hostFromBytes(gw); err != nil {
		return RouteEntry{}, false, fmt.Errorf("error decoding RTA_GATEWAY: %w", err)
	}
	if e.Src, err = hostFromBytes(prefSrc); err != nil {
		return RouteEntry{}, false, fmt.Errorf("error decoding RTA_PREFSRC: %w", err)
	}

	if oif != 0 {
		e.Device = s.linkName(oif)
	}
	if iif != 0 {
		e.InDevice = s.linkName(iif)
	}

	return e, true, nil
}

// hostFromBytes decodes an optional full-width address.
func hostFromBytes(b []byte) (*cidr.CIDR, error) {
	if b == nil {
		return nil, nil
	}
	c, err := cidr.FromBytes(b, len(b)*8)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
