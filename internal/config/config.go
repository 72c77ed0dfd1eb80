// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists Sentinel's own settings (not the
// sshd_config under edit). Settings come from, in increasing precedence:
// defaults, sentinel.yaml in the system/user config directories,
// SENTINEL_* environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration for Sentinel.
type Config struct {
	// File is the sshd_config file under edit.
	File     string `mapstructure:"file" yaml:"file"`
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Sentinel")
		default: // Linux, macOS, etc.
			configDir = "/etc/sentinel"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "sentinel")
	}

	return filepath.Join(configDir, "sentinel.yaml"), nil
}

// LoadConfig assembles the configuration for a command invocation. The
// optional explicit config file path (from the --config flag) takes
// precedence over the standard search locations.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitConfigFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("sentinel")
	v.SetConfigType("yaml")

	if explicitConfigFile != nil {
		v.SetConfigFile(*explicitConfigFile)
	}

	// Standard config locations
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for sentinel.yaml in current dir

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("sentinel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile persists the configuration as YAML at the standard
// user or system location, creating the directory if needed.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0600)
}
