//go:build linux

package netlink

import (
	"context"
	"log/slog"
	"time"

	"github.com/lunaticurey/luci-1/types"
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"
)

// dial opens the socket backing a single query. Tests replace it with an
// nltest connection.
var dial = func(c *Config) (*netlink.Conn, error) {
	return netlink.Dial(unix.NETLINK_ROUTE, &netlink.Config{
		NetNS:  c.NetNS,
		Strict: c.Strict,
	})
}

// session is the lifetime of one query: a socket plus the interface names
// resolved through it.
type session struct {
	conn   *netlink.Conn
	logger *slog.Logger

	names map[uint32]string
}

func (c *Client) open() (*session, error) {
	conn, err := dial(&c.Config)
	if err != nil {
		return nil, transportError("dial", err)
	}

	if c.TimeoutMs > 0 {
		if err := conn.SetDeadline(time.Now().Add(time.Duration(c.TimeoutMs) * time.Millisecond)); err != nil {
			c.logger.Debug("couldn't set the socket deadline", "err", err)
		}
	}

	if c.ReceiveBuffer > 0 {
		if err := conn.SetReadBuffer(c.ReceiveBuffer); err != nil {
			c.logger.Debug("couldn't set the receive buffer size", "err", err)
		}
	}

	return &session{conn: conn, logger: c.logger}, nil
}

func (s *session) Close() {
	if err := s.conn.Close(); err != nil {
		s.logger.Warn("error closing the netlink socket", "err", err)
	}
}

// execute sends req and waits for the whole, possibly multipart, reply.
// Sequence numbers and the trailing NLMSG_DONE are handled by the
// connection itself.
func (s *session) execute(op string, req netlink.Message) ([]netlink.Message, error) {
	s.logger.Log(context.Background(), types.LevelTrace, "sending request", "op", op,
		"type", msgTypeName[req.Header.Type], "flags", req.Header.Flags, "len", len(req.Data))

	msgs, err := s.conn.Execute(req)
	if err != nil {
		return nil, transportError(op, err)
	}

	s.logger.Log(context.Background(), types.LevelTrace, "got reply", "op", op, "n", len(msgs))
	return msgs, nil
}

// dump issues a NLM_F_DUMP request.
func (s *session) dump(op string, t netlink.HeaderType, data []byte) ([]netlink.Message, error) {
	return s.execute(op, netlink.Message{
		Header: netlink.Header{
			Type:  t,
			Flags: netlink.Request | netlink.Dump,
		},
		Data: data,
	})
}

// get issues a request for a single object.
func (s *session) get(op string, t netlink.HeaderType, data []byte) ([]netlink.Message, error) {
	return s.execute(op, netlink.Message{
		Header: netlink.Header{
			Type:  t,
			Flags: netlink.Request,
		},
		Data: data,
	})
}

func (s *session) trace(msg string, attr uint16, names map[uint16]string, n int) {
	s.logger.Log(context.Background(), types.LevelTrace, msg, "type", names[attr], "len", n)
}
