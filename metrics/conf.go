package metrics

import (
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/lunaticurey/luci-1/types"
)

type Config struct {
	Log         bool   `yaml:"log"`
	BindAddress string `yaml:"bindAddress"`

	// Port the exporter listens on. Zero disables the dedicated server:
	// metrics are then only served by the API under /metrics.
	Port uint16 `yaml:"port"`

	// Families whose routes and neighbours are exported.
	Families []types.Family `yaml:"families"`
}

var DefaultConfig = Config{
	Log:         true,
	BindAddress: "127.0.0.1",
	Port:        9110,
	Families:    []types.Family{types.IPv4, types.IPv6},
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := config(DefaultConfig)
	def.Families = nil

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	if def.Families == nil {
		def.Families = DefaultConfig.Families
	}
	def.Families = normalFamilies(def.Families)

	*c = Config(def)

	return nil
}

// normalFamilies expands any into both families and drops repeats, so that
// no family is collected twice.
func normalFamilies(fs []types.Family) []types.Family {
	out := make([]types.Family, 0, 2)
	for _, f := range fs {
		for _, ff := range f.Families() {
			if !slices.Contains(out, ff) {
				out = append(out, ff)
			}
		}
	}
	return out
}
