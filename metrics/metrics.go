// Package metrics exports routing table, neighbour cache and device
// figures in the Prometheus exposition format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Exporter struct {
	Config

	reg     *prometheus.Registry
	handler http.Handler
	server  *http.Server
	logger  *slog.Logger
}

func (e *Exporter) String() string {
	return "metrics"
}

// New builds an exporter over q. stats may be nil, in which case no
// traffic counters are exported.
func New(c *Config, q Querier, stats StatsReader) (*Exporter, error) {
	if c == nil {
		c = &DefaultConfig
	}

	e := Exporter{Config: *c}
	e.Families = normalFamilies(c.Families)
	if c.Log {
		e.logger = slog.Default().With("t", "metrics")
	} else {
		e.logger = slog.New(slog.DiscardHandler)
	}

	e.logger.Debug("initialising the metrics exporter")

	// Create a non-global registry.
	e.reg = prometheus.NewRegistry()

	if err := e.reg.Register(newCollector(q, stats, e.Families, e.logger)); err != nil {
		return nil, fmt.Errorf("error registering the collector: %w", err)
	}

	e.handler = promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{Registry: e.reg})

	if e.Port != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", e.handler)

		e.server = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", e.BindAddress, e.Port),
			Handler: mux,
		}
	} else {
		e.logger.Info("dedicated metrics server disabled")
	}

	return &e, nil
}

// Handler serves the exposition format; mount it wherever it's needed.
func (e *Exporter) Handler() http.Handler {
	return e.handler
}

// Run serves metrics on the dedicated port, if any, until done is closed.
func (e *Exporter) Run(done <-chan struct{}) {
	e.logger.Debug("running the metrics exporter")

	if e.server != nil {
		go func() {
			if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				e.logger.Error("metrics server failed", "err", err)
				return
			}
			e.logger.Info("stopped listening", "addr", e.server.Addr)
		}()
	}

	<-done
	e.logger.Debug("cleanly exiting the metrics exporter")
}

func (e *Exporter) Cleanup() error {
	e.logger.Debug("cleaning up the metrics exporter")

	if e.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return e.server.Shutdown(ctx)
}
