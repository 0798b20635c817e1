package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the matinspect configuration file
// (~/.config/matinspect/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Checksum  string `yaml:"checksum"`

	// Write defaults for convert and demo
	Compress         *bool `yaml:"compress"`
	CompressionLevel *int  `yaml:"compression_level"`
}

func configPath() string {
	if p := os.Getenv("MATINSPECT_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "matinspect", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	return parseConfig(data)
}

func parseConfig(data []byte) Config {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyGlobalConfig applies config file defaults to the global flags when
// the corresponding flag was not explicitly set.
func applyGlobalConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
	if cfg.Checksum != "" && !c.IsSet("checksum") {
		checksum = cfg.Checksum
	}
}

// applyWriteConfig applies config file defaults to a writing command.
func applyWriteConfig(c *cli.Command, cfg Config, compress *bool, level *int) {
	if cfg.Compress != nil && !c.IsSet("compress") {
		*compress = *cfg.Compress
	}
	if cfg.CompressionLevel != nil && !c.IsSet("level") {
		*level = *cfg.CompressionLevel
	}
}
