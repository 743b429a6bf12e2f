package config

import (
	"fmt"
	"strings"
)

// ConfigManager applies edits to a config and persists them
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Config returns the managed configuration
func (m *ConfigManager) Config() *Config {
	return m.config
}

// SetDirectory updates the output directory
func (m *ConfigManager) SetDirectory(dir string) error {
	m.config.Directory = strings.TrimSpace(dir)
	return Save(m.config, m.configPath)
}

// SetColor toggles colored output
func (m *ConfigManager) SetColor(enabled bool) error {
	m.config.Display.Color = enabled
	return Save(m.config, m.configPath)
}

// SetTableStyle updates the info table style
func (m *ConfigManager) SetTableStyle(style string) error {
	style = strings.ToLower(strings.TrimSpace(style))
	if !validTableStyle(style) {
		return fmt.Errorf("unknown table style %q: expected one of %v", style, TableStyles)
	}
	m.config.Display.TableStyle = style
	return Save(m.config, m.configPath)
}
