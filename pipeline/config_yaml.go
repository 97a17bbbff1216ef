package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and unmarshals a YAML config file, e.g. a checked-in
// .sysmlconfig.yaml holding library_paths/select_patterns/delete_patterns
// so they don't need to be repeated as flags on every invocation.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
