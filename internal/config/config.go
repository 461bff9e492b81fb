// Package config loads the tabspace configuration file.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/rcliao/tabspace/internal/store"
)

// Config is the tabspace configuration.
type Config struct {
	ConfigVersion int             `mapstructure:"config_version" yaml:"config_version" json:"config_version"`
	DBPath        string          `mapstructure:"db_path" yaml:"db_path" json:"db_path"`
	Logging       LoggingConfig   `mapstructure:"logging" yaml:"logging" json:"logging"`
	Workspace     WorkspaceConfig `mapstructure:"workspace" yaml:"workspace" json:"workspace"`
	Snapshot      SnapshotConfig  `mapstructure:"snapshot" yaml:"snapshot" json:"snapshot"`
	HTTP          HTTPConfig      `mapstructure:"http" yaml:"http" json:"http"`
	Host          HostConfig      `mapstructure:"host" yaml:"host" json:"host"`
}

// CurrentConfigVersion is the only config_version Load accepts.
const CurrentConfigVersion = 1

// LoggingConfig sets the log level: trace, debug, info, warn or error.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// WorkspaceConfig configures first-run workspace creation.
type WorkspaceConfig struct {
	DefaultName string `mapstructure:"default_name" yaml:"default_name" json:"default_name"`
}

// SnapshotConfig configures live window snapshots.
type SnapshotConfig struct {
	CloseWindows bool `mapstructure:"close_windows" yaml:"close_windows" json:"close_windows"`
}

// HTTPConfig configures the local API.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr"`
}

// HostConfig configures the native-messaging host.
type HostConfig struct {
	MaxMessageBytes int `mapstructure:"max_message_bytes" yaml:"max_message_bytes" json:"max_message_bytes"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		DBPath:        filepath.Join(xdg.DataHome, "tabspace", "tabspace.db"),
		Logging:       LoggingConfig{Level: "info"},
		Workspace:     WorkspaceConfig{DefaultName: store.DefaultWorkspaceName},
		Snapshot:      SnapshotConfig{CloseWindows: false},
		HTTP:          HTTPConfig{Addr: "127.0.0.1:27513"},
		Host:          HostConfig{MaxMessageBytes: 4 << 20},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tabspace/config.yaml.
func DefaultConfigPath() (string, error) {
	return filepath.Join(xdg.ConfigHome, "tabspace", "config.yaml"), nil
}
