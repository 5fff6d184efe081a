package netlink

import (
	"github.com/goccy/go-yaml"
)

type Config struct {
	Log bool `yaml:"log"`

	// NetNS is a file descriptor of the network namespace to query. Zero
	// stays in the caller's namespace.
	NetNS int `yaml:"netns"`

	// TimeoutMs bounds every query; zero disables the deadline.
	TimeoutMs int `yaml:"timeoutMs"`

	// ReceiveBuffer sets SO_RCVBUF on each socket when non-zero.
	ReceiveBuffer int `yaml:"receiveBuffer"`

	Strict bool `yaml:"strict"`
}

var DefaultConfig = Config{
	Log:       true,
	TimeoutMs: 5000,
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
