package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultPath = "config.yaml"
	EnvPrefix   = "TWEETSENSE_"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Log        LogConfig        `koanf:"log"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type ClassifierConfig struct {
	Backend     string        `koanf:"backend"`
	Model       string        `koanf:"model"`
	BaseURL     string        `koanf:"base_url"`
	APIToken    string        `koanf:"api_token"`
	Timeout     time.Duration `koanf:"timeout"`
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var defaults = map[string]any{
	"server.addr":             ":8080",
	"server.read_timeout":     "30s",
	"server.write_timeout":    "90s",
	"server.shutdown_timeout": "15s",

	"classifier.backend":      "huggingface",
	"classifier.model":        "",
	"classifier.base_url":     "",
	"classifier.api_token":    "",
	"classifier.timeout":      "60s",
	"classifier.load_timeout": "2m",

	"log.level":  "info",
	"log.format": "json",
}

// Load reads defaults, then the YAML file at path (if it exists), then
// TWEETSENSE_* environment variables. A double underscore in a variable name
// separates nesting levels: TWEETSENSE_CLASSIFIER__API_TOKEN.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
