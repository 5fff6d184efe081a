package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lunaticurey/luci-1/cidr"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/spf13/cobra"
)

func init() {
	cidrCmd.Flags().Uint64Var(&cidrAddFlag, "add", 0, "move the address this many positions up first")
	cidrCmd.Flags().Uint64Var(&cidrSubFlag, "sub", 0, "move the address this many positions down first")
	cidrCmd.Flags().StringVar(&cidrContainsFlag, "contains", "", "also report whether the CIDR contains this address")
}

// cidrInfo is what the cidr sub-command prints.
type cidrInfo struct {
	cidr.Summary `yaml:",inline"`
	Contains     *bool `json:"contains,omitempty" yaml:"contains,omitempty" lean:"contains,omitempty"`
}

var (
	cidrAddFlag      uint64
	cidrSubFlag      uint64
	cidrContainsFlag string

	cidrCmd = &cobra.Command{
		Use:   "cidr <addr> [mask]",
		Short: "Show the network, mask, broadcast and host range of a CIDR.",
		Long: "Show the network, mask, broadcast and host range of a CIDR. The\n" +
			"optional mask, either a prefix length or a dotted quad, replaces the\n" +
			"one in addr. Arithmetic saturates at the ends of the address space.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := describeCidr(args, cidrAddFlag, cidrSubFlag, cidrContainsFlag)
			if err != nil {
				return err
			}
			return printRecord(os.Stdout, info)
		},
	}
)

func describeCidr(args []string, add, sub uint64, contains string) (cidrInfo, error) {
	var (
		c   cidr.CIDR
		err error
	)
	if len(args) > 1 {
		c, err = cidr.ParseWithMask(args[0], args[1])
	} else {
		c, err = cidr.Parse(args[0])
	}
	if err != nil {
		return cidrInfo{}, err
	}

	if add > 0 && !c.AddInPlace(add) {
		slog.Warn("addition saturated", "add", add, "cidr", c)
	}
	if sub > 0 && !c.SubInPlace(sub) {
		slog.Warn("subtraction saturated", "sub", sub, "cidr", c)
	}

	info := cidrInfo{Summary: cidr.Describe(c)}

	if contains != "" {
		o, err := cidr.Parse(contains)
		if err != nil {
			return cidrInfo{}, fmt.Errorf("bad --contains: %w", err)
		}
		info.Contains = netlink.Ptr(c.Contains(o))
	}

	return info, nil
}
