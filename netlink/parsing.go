//go:build linux

package netlink

import (
	"fmt"

	"github.com/josharian/native"
	"golang.org/x/sys/unix"
)

// USER_HZ, the unit rta_cacheinfo reports times in.
const userHZ = 100

// Layout of struct rta_cacheinfo and the longest name IFLA_IFNAME takes.
const (
	sizeofRtaCacheInfo  = 0x20
	offsetCacheExpires  = 0x8
	offsetCacheError    = 0xc
	sizeofIfNameMaximum = unix.IFNAMSIZ - 1
)

// Please note the readBuffer has been plundered from
// github.com/vishvananda/netlink/socket_linux.go
type readBuffer struct {
	Bytes []byte
	pos   int
}

func (b *readBuffer) Read() byte {
	c := b.Bytes[b.pos]
	b.pos++
	return c
}

func (b *readBuffer) Next(n int) []byte {
	s := b.Bytes[b.pos : b.pos+n]
	b.pos += n
	return s
}

func decodeRtMsg(b []byte) (unix.RtMsg, error) {
	var m unix.RtMsg
	if len(b) < unix.SizeofRtMsg {
		return m, fmt.Errorf("rtmsg short read (%d); want %d", len(b), unix.SizeofRtMsg)
	}

	rb := readBuffer{Bytes: b}
	m.Family = rb.Read()
	m.Dst_len = rb.Read()
	m.Src_len = rb.Read()
	m.Tos = rb.Read()
	m.Table = rb.Read()
	m.Protocol = rb.Read()
	m.Scope = rb.Read()
	m.Type = rb.Read()
	m.Flags = native.Endian.Uint32(rb.Next(4))

	return m, nil
}

func encodeRtMsg(m unix.RtMsg) []byte {
	b := make([]byte, unix.SizeofRtMsg)
	b[0] = m.Family
	b[1] = m.Dst_len
	b[2] = m.Src_len
	b[3] = m.Tos
	b[4] = m.Table
	b[5] = m.Protocol
	b[6] = m.Scope
	b[7] = m.Type
	native.Endian.PutUint32(b[8:], m.Flags)
	return b
}

func decodeNdMsg(b []byte) (unix.NdMsg, error) {
	var m unix.NdMsg
	if len(b) < unix.SizeofNdMsg {
		return m, fmt.Errorf("ndmsg short read (%d); want %d", len(b), unix.SizeofNdMsg)
	}

	rb := readBuffer{Bytes: b}
	m.Family = rb.Read()
	m.Pad1 = rb.Read()
	m.Pad2 = native.Endian.Uint16(rb.Next(2))
	m.Ifindex = int32(native.Endian.Uint32(rb.Next(4)))
	m.State = native.Endian.Uint16(rb.Next(2))
	m.Flags = rb.Read()
	m.Type = rb.Read()

	return m, nil
}

func encodeNdMsg(m unix.NdMsg) []byte {
	b := make([]byte, unix.SizeofNdMsg)
	b[0] = m.Family
	b[1] = m.Pad1
	native.Endian.PutUint16(b[2:], m.Pad2)
	native.Endian.PutUint32(b[4:], uint32(m.Ifindex))
	native.Endian.PutUint16(b[8:], m.State)
	b[10] = m.Flags
	b[11] = m.Type
	return b
}

func decodeIfInfomsg(b []byte) (unix.IfInfomsg, error) {
	var m unix.IfInfomsg
	if len(b) < unix.SizeofIfInfomsg {
		return m, fmt.Errorf("ifinfomsg short read (%d); want %d", len(b), unix.SizeofIfInfomsg)
	}

	rb := readBuffer{Bytes: b}
	m.Family = rb.Read()
	rb.Read() // padding
	m.Type = native.Endian.Uint16(rb.Next(2))
	m.Index = int32(native.Endian.Uint32(rb.Next(4)))
	m.Flags = native.Endian.Uint32(rb.Next(4))
	m.Change = native.Endian.Uint32(rb.Next(4))

	return m, nil
}

func encodeIfInfomsg(m unix.IfInfomsg) []byte {
	b := make([]byte, unix.SizeofIfInfomsg)
	b[0] = m.Family
	native.Endian.PutUint16(b[2:], m.Type)
	native.Endian.PutUint32(b[4:], uint32(m.Index))
	native.Endian.PutUint32(b[8:], m.Flags)
	native.Endian.PutUint32(b[12:], m.Change)
	return b
}

// cacheInfo pulls rta_expires and rta_error out of a struct rta_cacheinfo.
func cacheInfo(b []byte) (expires int32, errno int32, err error) {
	if len(b) < sizeofRtaCacheInfo {
		return 0, 0, fmt.Errorf("rta_cacheinfo short read (%d); want %d", len(b), sizeofRtaCacheInfo)
	}
	expires = int32(native.Endian.Uint32(b[offsetCacheExpires:]))
	errno = int32(native.Endian.Uint32(b[offsetCacheError:]))
	return expires, errno, nil
}
