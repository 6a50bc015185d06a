// Package config handles loading taskshare.toml configuration files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/taskshare/taskshare/internal/logging"
	"github.com/taskshare/taskshare/internal/paths"
	"github.com/taskshare/taskshare/kv"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "taskshare.toml"

const (
	DefaultBaseURL  = "http://localhost:8080"
	DefaultAddr     = "127.0.0.1:8080"
	DefaultLogLevel = "warn"
)

// Config represents the taskshare.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Share   Share   `toml:"share"`
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
}

// Storage selects where tasks are persisted.
type Storage struct {
	// Backend is one of file, sqlite or memory. Defaults to file.
	Backend string `toml:"backend"`

	// Path is the data directory for the file backend or the database file
	// for the sqlite backend. A leading ~/ expands to the home directory.
	Path string `toml:"path"`
}

// Share configures share links.
type Share struct {
	// BaseURL is the origin share URLs are built from.
	BaseURL string `toml:"base-url"`
}

// Server configures the shared view server.
type Server struct {
	Addr string `toml:"addr"`
}

// Log configures diagnostics written to stderr.
type Log struct {
	Level string `toml:"level"`
}

// Load loads configuration from dir and the global config file, then
// applies defaults. Returns the defaults if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyDefaults(merged)
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Backend = mergeString(projectMeta.IsDefined("storage", "backend"), projectCfg.Storage.Backend, globalCfg.Storage.Backend)
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Share.BaseURL = mergeString(projectMeta.IsDefined("share", "base-url"), projectCfg.Share.BaseURL, globalCfg.Share.BaseURL)
	merged.Server.Addr = mergeString(projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr, globalCfg.Server.Addr)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyDefaults(cfg *Config) {
	if cfg.Share.BaseURL == "" {
		cfg.Share.BaseURL = DefaultBaseURL
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// StorageConfig resolves the storage section into a kv.Config, filling in
// the default location for the chosen backend.
func (c *Config) StorageConfig() (kv.Config, error) {
	backend, err := kv.ParseBackend(c.Storage.Backend)
	if err != nil {
		return kv.Config{}, err
	}

	path, err := paths.ExpandHome(c.Storage.Path)
	if err != nil {
		return kv.Config{}, err
	}
	if path == "" {
		switch backend {
		case kv.BackendFile:
			path, err = paths.DefaultDataDir()
		case kv.BackendSQLite:
			path, err = paths.DefaultDatabasePath()
		}
		if err != nil {
			return kv.Config{}, err
		}
	}

	return kv.Config{Backend: backend, Path: path}, nil
}

// LogLevel parses the log section.
func (c *Config) LogLevel() (slog.Level, error) {
	return logging.ParseLevel(c.Log.Level)
}
