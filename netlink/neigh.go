//go:build linux

package netlink

import (
	"fmt"
	"net"

	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/types"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// NeighborsFunc dumps the ARP and NDP caches and calls fn for every entry
// matching crit, in kernel order, before returning. Proxy entries live in a
// separate kernel table and are dumped after the regular ones of each family,
// unless crit rules them out.
func (c *Client) NeighborsFunc(crit *NeighborCriteria, fn func(NeighborEntry)) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.Close()

	var proxy *bool
	if crit != nil {
		proxy = crit.Proxy
	}

	for _, f := range crit.families() {
		if proxy == nil || !*proxy {
			if err := s.dumpNeighbors(crit, "neighbor dump", unix.NdMsg{Family: f.AF()}, fn); err != nil {
				return err
			}
		}
		if proxy == nil || *proxy {
			hdr := unix.NdMsg{Family: f.AF(), Flags: unix.NTF_PROXY}
			if err := s.dumpNeighbors(crit, "proxy neighbor dump", hdr, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *session) dumpNeighbors(crit *NeighborCriteria, op string, hdr unix.NdMsg, fn func(NeighborEntry)) error {
	msgs, err := s.dump(op, unix.RTM_GETNEIGH, encodeNdMsg(hdr))
	if err != nil {
		return err
	}

	n := 0
	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWNEIGH {
			continue
		}

		e, ok, err := s.decodeNeighbor(m)
		if err != nil {
			return err
		}
		if !ok || !crit.Match(&e) {
			continue
		}

		fn(e)
		n++
	}
	s.logger.Debug("dumped neighbors", "op", op, "family", types.FamilyFromAF(hdr.Family),
		"total", len(msgs), "matched", n)

	return nil
}

// decodeNeighbor turns an RTM_NEWNEIGH message into a NeighborEntry.
// Entries of foreign families or without a destination are skipped.
func (s *session) decodeNeighbor(m netlink.Message) (NeighborEntry, bool, error) {
	hdr, err := decodeNdMsg(m.Data)
	if err != nil {
		return NeighborEntry{}, false, err
	}

	family := types.FamilyFromAF(hdr.Family)
	if family.IsAny() {
		return NeighborEntry{}, false, nil
	}

	e := NeighborEntry{
		Family: family,
		Router: hdr.Flags&types.NTF_ROUTER != 0,
		Proxy:  hdr.Flags&types.NTF_PROXY != 0,
	}
	e.setState(types.NudState(hdr.State))

	var dst []byte

	ad, err := netlink.NewAttributeDecoder(m.Data[unix.SizeofNdMsg:])
	if err != nil {
		return NeighborEntry{}, false, fmt.Errorf("error decoding neighbor attributes: %w", err)
	}
	for ad.Next() {
		s.trace("neighbor attribute", ad.Type(), ndaName, len(ad.Bytes()))
		switch ad.Type() {
		case unix.NDA_DST:
			dst = ad.Bytes()
		case unix.NDA_LLADDR:
			if b := ad.Bytes(); len(b) > 0 {
				e.MAC = net.HardwareAddr(b).String()
			}
		}
	}
	if err := ad.Err(); err != nil {
		return NeighborEntry{}, false, fmt.Errorf("error decoding neighbor attributes: %w", err)
	}

	if dst == nil {
		return NeighborEntry{}, false, nil
	}
	if e.Address, err = cidr.FromBytes(dst, len(dst)*8); err != nil {
		return NeighborEntry{}, false, fmt.Errorf("error decoding NDA_DST: %w", err)
	}

	if hdr.Ifindex > 0 {
		e.Device = s.linkName(uint32(hdr.Ifindex))
	}

	return e, true, nil
}
