package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/spf13/cobra"
)

func init() {
	addRouteFlags(routesCmd)
	addNeighborFlags(neighborsCmd)
	linkCmd.Flags().BoolVar(&linkStatsFlag, "stats", false, "add the traffic counters from procfs")
}

// linkOutput is what the link sub-command prints.
type linkOutput struct {
	netlink.LinkInfo `yaml:",inline"`
	Stats            *procnet.LinkStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

var (
	linkStatsFlag bool

	routeCmd = &cobra.Command{
		Use:   "route <dest>",
		Short: "Show the route the kernel would pick to reach dest.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := netlink.New(conf.Netlink).RouteString(args[0])
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("no route to %s", args[0])
			}
			return printRecord(os.Stdout, r)
		},
	}

	routesCmd = &cobra.Command{
		Use:   "routes",
		Short: "List the routes matching the given criteria.",
		Long: "List the routes matching the given criteria. Address criteria match\n" +
			"routes whose value they contain; their -exact variants need the same\n" +
			"address and prefix length.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := routeCriteria(cmd)
			if err != nil {
				return err
			}
			routes, err := netlink.New(conf.Netlink).Routes(crit)
			if err != nil {
				return err
			}
			slog.Debug("listed routes", "n", len(routes))
			return printRecords(os.Stdout, routes)
		},
	}

	neighborsCmd = &cobra.Command{
		Use:     "neighbors",
		Aliases: []string{"neigh"},
		Short:   "List the ARP and NDP cache entries matching the given criteria.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := neighborCriteria(cmd)
			if err != nil {
				return err
			}
			neighbors, err := netlink.New(conf.Netlink).Neighbors(crit)
			if err != nil {
				return err
			}
			slog.Debug("listed neighbors", "n", len(neighbors))
			return printRecords(os.Stdout, neighbors)
		},
	}

	linkCmd = &cobra.Command{
		Use:   "link [name]",
		Short: "Show a device, or every device when no name is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stats map[string]procnet.LinkStats
			if linkStatsFlag {
				r, err := procnet.New(conf.Procnet)
				if err != nil {
					return err
				}
				if stats, err = r.All(); err != nil {
					return err
				}
			}

			client := netlink.New(conf.Netlink)

			if len(args) == 0 {
				links, err := client.Links()
				if err != nil {
					return err
				}
				return printLinks(os.Stdout, withStats(links, stats))
			}

			l, err := client.Link(args[0])
			if err != nil {
				return err
			}
			if !l.Exists() {
				return fmt.Errorf("no such device %q", args[0])
			}
			out := withStats([]netlink.LinkInfo{l}, stats)
			if outputFlag != "text" {
				return printRecord(os.Stdout, out[0])
			}
			return printLinks(os.Stdout, out)
		},
	}
)

// withStats pairs links with their counters, if any were read.
func withStats(links []netlink.LinkInfo, stats map[string]procnet.LinkStats) []linkOutput {
	out := make([]linkOutput, 0, len(links))
	for _, l := range links {
		o := linkOutput{LinkInfo: l}
		if s, ok := stats[l.Name]; ok {
			o.Stats = &s
		}
		out = append(out, o)
	}
	return out
}

// printLinks writes links, appending the counters to the same line on text
// output.
func printLinks(w io.Writer, links []linkOutput) error {
	if outputFlag != "text" {
		return printRecords(w, links)
	}

	for _, l := range links {
		line := textLine(l.LinkInfo)
		if l.Stats != nil {
			line += " " + textLine(*l.Stats)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
