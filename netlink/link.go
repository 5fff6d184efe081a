//go:build linux

package netlink

import (
	"fmt"
	"net"

	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// Link looks a device up by name. Devices that don't exist yield a zero
// LinkInfo and no error.
func (c *Client) Link(name string) (LinkInfo, error) {
	if name == "" || len(name) > sizeofIfNameMaximum {
		return LinkInfo{}, nil
	}

	s, err := c.open()
	if err != nil {
		return LinkInfo{}, err
	}
	defer s.Close()

	ae := netlink.NewAttributeEncoder()
	ae.String(unix.IFLA_IFNAME, name)
	attrs, err := ae.Encode()
	if err != nil {
		return LinkInfo{}, fmt.Errorf("error encoding the link request: %w", err)
	}

	hdr := encodeIfInfomsg(unix.IfInfomsg{Family: unix.AF_UNSPEC})

	msgs, err := s.get("link", unix.RTM_GETLINK, append(hdr, attrs...))
	if err != nil {
		if isErrno(err, unix.ENODEV) {
			s.logger.Debug("no such device", "name", name)
			return LinkInfo{}, nil
		}
		return LinkInfo{}, err
	}

	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWLINK {
			continue
		}
		l, master, err := s.decodeLink(m)
		if err != nil {
			return LinkInfo{}, err
		}
		if master != 0 {
			l.Master = s.linkName(master)
		}
		return l, nil
	}

	return LinkInfo{}, nil
}

// Links dumps every device, masters resolved, in ifindex order.
func (c *Client) Links() ([]LinkInfo, error) {
	s, err := c.open()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	msgs, err := s.dump("link dump", unix.RTM_GETLINK, encodeIfInfomsg(unix.IfInfomsg{Family: unix.AF_UNSPEC}))
	if err != nil {
		return nil, err
	}

	links := []LinkInfo{}
	masters := []uint32{}
	s.names = map[uint32]string{}
	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWLINK {
			continue
		}
		hdr, err := decodeIfInfomsg(m.Data)
		if err != nil {
			return nil, err
		}
		l, master, err := s.decodeLink(m)
		if err != nil {
			return nil, err
		}
		s.names[uint32(hdr.Index)] = l.Name
		links = append(links, l)
		masters = append(masters, master)
	}

	for i, master := range masters {
		if master != 0 {
			links[i].Master = s.names[master]
		}
	}

	s.logger.Debug("dumped links", "total", len(links))
	return links, nil
}

// decodeLink turns an RTM_NEWLINK message into a LinkInfo, also returning
// the master's index, if any.
func (s *session) decodeLink(m netlink.Message) (LinkInfo, uint32, error) {
	hdr, err := decodeIfInfomsg(m.Data)
	if err != nil {
		return LinkInfo{}, 0, err
	}

	l := LinkInfo{
		Up:   hdr.Flags&unix.IFF_UP != 0,
		Type: hdr.Type,
	}

	var master uint32

	ad, err := netlink.NewAttributeDecoder(m.Data[unix.SizeofIfInfomsg:])
	if err != nil {
		return LinkInfo{}, 0, fmt.Errorf("error decoding link attributes: %w", err)
	}
	for ad.Next() {
		s.trace("link attribute", ad.Type(), iflaName, len(ad.Bytes()))
		switch ad.Type() {
		case unix.IFLA_IFNAME:
			l.Name = ad.String()
		case unix.IFLA_MTU:
			l.MTU = ad.Uint32()
		case unix.IFLA_TXQLEN:
			l.TxQueueLen = ad.Uint32()
		case unix.IFLA_MASTER:
			master = ad.Uint32()
		case unix.IFLA_ADDRESS:
			if b := ad.Bytes(); len(b) > 0 {
				l.HardwareAddr = net.HardwareAddr(b).String()
			}
		}
	}
	if err := ad.Err(); err != nil {
		return LinkInfo{}, 0, fmt.Errorf("error decoding link attributes: %w", err)
	}

	return l, master, nil
}

// linkName resolves an interface index. The first miss dumps every link on
// the session's socket so that long route or neighbour dumps cost a single
// extra request. Unknown indices resolve to an empty name.
func (s *session) linkName(index uint32) string {
	if name, ok := s.names[index]; ok {
		return name
	}
	if s.names != nil {
		return ""
	}

	s.names = map[uint32]string{}

	msgs, err := s.dump("link dump", unix.RTM_GETLINK, encodeIfInfomsg(unix.IfInfomsg{Family: unix.AF_UNSPEC}))
	if err != nil {
		s.logger.Warn("couldn't resolve interface names", "err", err)
		return ""
	}

	for _, m := range msgs {
		if m.Header.Type != unix.RTM_NEWLINK {
			continue
		}
		hdr, err := decodeIfInfomsg(m.Data)
		if err != nil {
			s.logger.Warn("skipping malformed link", "err", err)
			continue
		}
		l, _, err := s.decodeLink(m)
		if err != nil {
			s.logger.Warn("skipping malformed link", "index", hdr.Index, "err", err)
			continue
		}
		s.names[uint32(hdr.Index)] = l.Name
	}

	return s.names[index]
}
