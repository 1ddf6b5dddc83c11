package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Values come from an optional YAML file
// and can be overridden per-key through environment variables.
type Config struct {
	Address     string `yaml:"address"`
	DBPath      string `yaml:"db_path"`
	WeightsPath string `yaml:"weights_path"`
	FixturesDir string `yaml:"fixtures_dir"`
	LogMode     string `yaml:"log_mode"`
}

func Default() Config {
	return Config{
		Address:     ":8080",
		DBPath:      "data/citycat.db",
		WeightsPath: "configs/weights.json",
		FixturesDir: "data",
		LogMode:     "dev",
	}
}

// Load reads the YAML config at path and applies env overrides. An empty
// path skips the file and uses defaults plus env.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, errors.Wrap(err, "unmarshal config")
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Address = getEnv("API_ADDRESS", c.Address)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.WeightsPath = getEnv("WEIGHTS_PATH", c.WeightsPath)
	c.FixturesDir = getEnv("FIXTURES_DIR", c.FixturesDir)
	c.LogMode = getEnv("LOG_MODE", c.LogMode)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
