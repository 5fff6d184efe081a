package procnet

import (
	"github.com/goccy/go-yaml"
)

type Config struct {
	Log bool `yaml:"log"`

	// ProcPath is where procfs is mounted.
	ProcPath string `yaml:"procPath"`
}

var DefaultConfig = Config{
	Log:      true,
	ProcPath: "/proc",
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = Config(def)

	return nil
}
