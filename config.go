package cyls

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file searched for by
// FindConfig.
const ConfigFileName = ".cyls.yaml"

// Config represents the .cyls.yaml configuration file.
type Config struct {
	// Neo4j holds connection settings for live schema introspection.
	Neo4j *Neo4jConfig `yaml:"neo4j,omitempty"`

	// SchemaFile points at a static schema snapshot (YAML). When both a
	// connection and a file are configured, the file wins; it needs no
	// running database.
	SchemaFile string `yaml:"schema,omitempty"`
}

// Neo4jConfig holds Neo4j connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// LoadConfig reads a config file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfig searches for a .cyls.yaml starting at dir and walking up to the
// filesystem root. Returns ErrConfigNotFound when no file exists.
func FindConfig(dir string) (*Config, string, error) {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			if err != nil {
				return nil, path, err
			}

			return cfg, path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", ErrConfigNotFound
		}

		dir = parent
	}
}
