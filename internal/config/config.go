package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Transport TransportConfig `yaml:"transport"`
	Library   LibraryConfig   `yaml:"library"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the document store backend: "file" keeps one JSON
// document on disk, "sqlite" uses an embedded database.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// TransportConfig selects how operations are exposed: "http" serves the web
// UI with the MCP endpoint mounted under /mcp, "stdio" speaks MCP only.
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LibraryConfig struct {
	DefaultSourceDir string `yaml:"default_source_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Store: StoreConfig{
			Driver: "file",
			Path:   "photosift.json",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Library: LibraryConfig{
			DefaultSourceDir: "./images",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("PHOTOSIFT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("PHOTOSIFT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("PHOTOSIFT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PHOTOSIFT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if driver := os.Getenv("PHOTOSIFT_STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if path := os.Getenv("PHOTOSIFT_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if mode := os.Getenv("PHOTOSIFT_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dir := os.Getenv("PHOTOSIFT_LIBRARY_DIR"); dir != "" {
		cfg.Library.DefaultSourceDir = dir
	}
	if level := os.Getenv("PHOTOSIFT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.Driver != "file" && cfg.Store.Driver != "sqlite" {
		return Config{}, fmt.Errorf("invalid store driver %q (want file or sqlite)", cfg.Store.Driver)
	}
	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q (want http or stdio)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
