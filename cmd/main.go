package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lunaticurey/luci-1/types"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&confPath, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "one of trace, debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&logTimeFlag, "log-time", false, "include timestamps in log lines")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "one of text, json or yaml")
}

var (
	rootCmd = &cobra.Command{
		Use:   "luci",
		Short: "Inspect the kernel's routes, neighbours and links.",
		Long: "luci runs read-only rtnetlink queries against the running kernel and\n" +
			"does CIDR arithmetic. It can also serve both over HTTP.",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Get the built version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("built commit: %s\n", builtCommit)
		},
	}

	confPath     string
	logLevelFlag string
	logTimeFlag  bool
	outputFlag   string
	builtCommit  = "dev"

	conf     *Config
	logLevel = new(slog.LevelVar)
)

func init() {
	// Disable completion please!
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add the different sub-commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(neighborsCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(cidrCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration and installs the logger before any
// sub-command runs. An explicit --log-level wins over the configuration.
func setup(cmd *cobra.Command, args []string) error {
	if _, ok := outputs[outputFlag]; !ok {
		return fmt.Errorf("unknown output format %q", outputFlag)
	}

	c := defaultConf()
	if confPath != "" {
		var err error
		if c, err = ReadConf(confPath); err != nil {
			return err
		}
	}
	conf = c

	level := conf.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = logLevelFlag
	}
	l, err := types.ParseLevel(level)
	if err != nil {
		return err
	}
	logLevel.Set(l)

	slog.SetDefault(newLogger(os.Stderr))
	slog.Debug("loaded configuration", "path", confPath, "level", types.LevelName(l))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
