package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit config path is given.
const DefaultFile = "gatefold.yaml"

// Config is the application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Library LibraryConfig `mapstructure:"library"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	MCP     MCPConfig     `mapstructure:"mcp"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LibraryConfig points at a directory of model documents.
type LibraryConfig struct {
	Dir string `mapstructure:"dir"`
}

// StoreConfig selects the lowered-model cache: "none", "memory", "file" or "redis".
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
	Lock     bool          `mapstructure:"lock"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MCPConfig selects the MCP transport: "stdio" or "sse".
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Library: LibraryConfig{Dir: "."},
		Store: StoreConfig{
			Backend: "memory",
			Dir:     filepath.Join(".gatefold", "models"),
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "gatefold:"},
		},
		Server: ServerConfig{Port: 8080},
		MCP:    MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// Load reads a configuration file (YAML or JSON) on top of Default.
// A missing file is not an error when path is DefaultFile or empty.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != "" && path != DefaultFile
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode merges a generic map into cfg. Durations may be written as strings ("10m").
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// Validate rejects unknown enumerated values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "none", "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q", c.MCP.Transport)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
