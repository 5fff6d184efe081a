package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lunaticurey/luci-1/api"
	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/metrics"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
	"github.com/rjeczalik/notify"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the queries over HTTP along with Prometheus metrics.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := netlink.New(conf.Netlink)

		// Counters are optional: a missing procfs mustn't keep us from serving.
		var (
			apiStats     api.StatsReader
			metricsStats metrics.StatsReader
		)
		if r, err := procnet.New(conf.Procnet); err != nil {
			slog.Warn("link counters disabled", "err", err)
		} else {
			apiStats, metricsStats = r, r
		}

		exporter, err := metrics.New(conf.Metrics, client, metricsStats)
		if err != nil {
			return err
		}

		server := api.New(conf.Api, client, apiStats)
		server.Metrics(exporter.Handler())

		doneChan := make(chan struct{})
		go server.Run(doneChan)
		go exporter.Run(doneChan)

		// A nil channel never fires when there's nothing to watch.
		var events chan notify.EventInfo
		if confPath != "" {
			events = make(chan notify.EventInfo, 1)
			if err := notify.Watch(confPath, events, notify.Write); err != nil {
				slog.Warn("configuration reloads disabled", "path", confPath, "err", err)
				events = nil
			} else {
				defer notify.Stop(events)
			}
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		slog.Info("serving", "api", server, "metrics", exporter)

		for {
			select {
			case e := <-events:
				slog.Debug("configuration changed", "path", e.Path())
				reload(cmd)
			case s := <-sigChan:
				slog.Info("shutting down", "signal", s)
				close(doneChan)

				if err := server.Cleanup(); err != nil {
					slog.Error("error cleaning up the api", "err", err)
				}
				if err := exporter.Cleanup(); err != nil {
					slog.Error("error cleaning up the metrics exporter", "err", err)
				}
				return nil
			}
		}
	},
}

// reload re-reads the configuration file and applies its log level unless
// one was given on the command line. Everything else needs a restart.
func reload(cmd *cobra.Command) {
	c, err := ReadConf(confPath)
	if err != nil {
		slog.Error("keeping the current configuration", "err", err)
		return
	}

	if cmd.Flags().Changed("log-level") {
		slog.Info("reloaded configuration, log level pinned by --log-level")
		return
	}

	l, err := types.ParseLevel(c.LogLevel)
	if err != nil {
		slog.Error("keeping the current log level", "err", err)
		return
	}
	logLevel.Set(l)

	slog.Info("reloaded configuration", "level", types.LevelName(l))
}
