package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/lunaticurey/luci-1/api"
	"github.com/lunaticurey/luci-1/internal/procnet"
	"github.com/lunaticurey/luci-1/metrics"
	"github.com/lunaticurey/luci-1/netlink"
	"github.com/lunaticurey/luci-1/types"
)

// Config gathers every component's settings. Missing sections fall back to
// the component's DefaultConfig.
type Config struct {
	LogLevel string `yaml:"logLevel"`

	Netlink *netlink.Config `yaml:"netlink"`
	Procnet *procnet.Config `yaml:"procnet"`
	Api     *api.Config     `yaml:"api"`
	Metrics *metrics.Config `yaml:"metrics"`
}

func defaultConf() *Config {
	return &Config{LogLevel: "info"}
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(*defaultConf())

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	if _, err := types.ParseLevel(def.LogLevel); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}

func ReadConf(path string) (*Config, error) {
	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	c := defaultConf()
	if err := yaml.Unmarshal(r, c); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return c, nil
}
