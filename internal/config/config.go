// Package config loads and validates bpauto test descriptions.
//
// A description is a YAML file with the sections Connection, General and
// Network (Interfaces, VLANs, IP Routers, IP Static Hosts), plus the
// optional Payloads and Superflows sections. Keys keep their spaced,
// capitalized spelling ("Start Number", "Increment Mask").
//
// Config file locations when none is given (priority order):
//  1. $BPAUTO_CONFIG
//  2. ./bpauto.yaml
//  3. $XDG_CONFIG_HOME/bpauto/config.yaml
//  4. ~/.config/bpauto/config.yaml
//  5. /etc/bpauto/config.yaml
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultLogin       = "admin"
	DefaultPassword    = "admin"
	DefaultSSHPort     = 22
	DefaultNetworkName = "NN"
)

// Config file discovery
const (
	EnvConfigPath  = "BPAUTO_CONFIG"
	ConfigFileName = "bpauto.yaml"
	ConfigDirName  = "bpauto"
)

// searchPaths lists candidate config files, most specific first
func searchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	if abs, err := filepath.Abs(ConfigFileName); err == nil {
		paths = append(paths, abs)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing config file from the package
// search order, or "" when there is none
func FindConfigPath() string {
	for _, p := range searchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// DefaultConfigPath is where -init writes a new config: the per-user config
// directory when one is known, the working directory otherwise
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// LoadFromPath loads and validates config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates config from YAML bytes.
// Unknown keys are rejected so that typos in section names surface early.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Connection.Login == "" {
		c.Connection.Login = DefaultLogin
	}
	if c.Connection.Password == "" {
		c.Connection.Password = DefaultPassword
	}
	if c.Connection.SSHPort == 0 {
		c.Connection.SSHPort = DefaultSSHPort
	}

	if c.Network == nil {
		return
	}
	if c.Network.Name == "" {
		c.Network.Name = DefaultNetworkName
	}
	for i := range c.Network.Interfaces {
		if c.Network.Interfaces[i].Increment == 0 {
			c.Network.Interfaces[i].Increment = 1
		}
	}
	for i := range c.Network.VLANs {
		if c.Network.VLANs[i].Increment == 0 {
			c.Network.VLANs[i].Increment = 1
		}
	}
	for i := range c.Network.IPStaticHosts {
		if c.Network.IPStaticHosts[i].IPCount == 0 {
			c.Network.IPStaticHosts[i].IPCount = 1
		}
	}
}

// Overrides replaces connection settings given on the command line
type Overrides struct {
	TesterIP string
	Login    string
	Password string
}

// ApplyOverrides replaces connection settings with non-empty overrides
// and re-validates the result
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.TesterIP != "" {
		c.Connection.TesterIP = o.TesterIP
	}
	if o.Login != "" {
		c.Connection.Login = o.Login
	}
	if o.Password != "" {
		c.Connection.Password = o.Password
	}
	return c.Validate()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Tester: %s (login %s), Prefix: %q\n",
		c.Connection.TesterIP, c.Connection.Login, c.General.Prefix)
	if c.Network != nil {
		n := c.Network
		summary += fmt.Sprintf("Network %s: %d interface, %d VLAN, %d router, %d host entries\n",
			n.Name, len(n.Interfaces), len(n.VLANs), len(n.IPRouters), len(n.IPStaticHosts))
	}
	summary += fmt.Sprintf("Payloads: %d, Superflows: %d", len(c.Payloads), len(c.Superflows))
	return summary
}
