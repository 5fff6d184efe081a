// Package procnet reads per-device traffic counters out of /proc/net/dev,
// which rtnetlink link queries leave out.
package procnet

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/procfs"
)

// LinkStats holds the counters of a single device since it came up.
type LinkStats struct {
	RxBytes   uint64 `json:"rxBytes" structs:"rx_bytes" lean:"rx_bytes"`
	RxPackets uint64 `json:"rxPackets" structs:"rx_packets" lean:"rx_packets"`
	RxErrors  uint64 `json:"rxErrors" structs:"rx_errors" lean:"-"`
	RxDropped uint64 `json:"rxDropped" structs:"rx_dropped" lean:"-"`
	TxBytes   uint64 `json:"txBytes" structs:"tx_bytes" lean:"tx_bytes"`
	TxPackets uint64 `json:"txPackets" structs:"tx_packets" lean:"tx_packets"`
	TxErrors  uint64 `json:"txErrors" structs:"tx_errors" lean:"-"`
	TxDropped uint64 `json:"txDropped" structs:"tx_dropped" lean:"-"`
}

type Reader struct {
	Config

	fs     procfs.FS
	logger *slog.Logger
}

func New(c *Config) (*Reader, error) {
	if c == nil {
		c = &DefaultConfig
	}

	r := Reader{Config: *c}
	if c.Log {
		r.logger = slog.Default().With("t", "procnet")
	} else {
		r.logger = slog.New(slog.DiscardHandler)
	}

	fs, err := procfs.NewFS(c.ProcPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialise the procfs filesystem: %w", err)
	}
	r.fs = fs

	return &r, nil
}

func (r *Reader) String() string {
	return "procnet"
}

// All returns the counters of every device keyed by name.
func (r *Reader) All() (map[string]LinkStats, error) {
	nd, err := r.fs.NetDev()
	if err != nil {
		return nil, fmt.Errorf("error reading net/dev: %w", err)
	}

	stats := make(map[string]LinkStats, len(nd))
	for name, line := range nd {
		stats[name] = fromLine(line)
	}
	r.logger.Debug("read device counters", "n", len(stats))

	return stats, nil
}

// Stats returns the counters of a single device. The boolean is false when
// the device isn't listed.
func (r *Reader) Stats(name string) (LinkStats, bool, error) {
	stats, err := r.All()
	if err != nil {
		return LinkStats{}, false, err
	}

	s, ok := stats[name]
	return s, ok, nil
}

func fromLine(l procfs.NetDevLine) LinkStats {
	return LinkStats{
		RxBytes:   l.RxBytes,
		RxPackets: l.RxPackets,
		RxErrors:  l.RxErrors,
		RxDropped: l.RxDropped,
		TxBytes:   l.TxBytes,
		TxPackets: l.TxPackets,
		TxErrors:  l.TxErrors,
		TxDropped: l.TxDropped,
	}
}
