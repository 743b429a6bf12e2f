package config

import (
	"errors"
	"fmt"
	"os"

	"yt2audio/infrastructure/filesystem"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given
const DefaultPath = "config.yml"

// Table styles accepted in display.table_style
var TableStyles = []string{"default", "rounded", "light", "bold"}

// Config represents the complete application configuration
type Config struct {
	Directory string         `yaml:"directory"`
	Display   DisplayConfig  `yaml:"display"`
	FFmpeg    FFmpegConfig   `yaml:"ffmpeg"`
	Download  DownloadConfig `yaml:"download"`
}

// DisplayConfig contains presentation preferences
type DisplayConfig struct {
	Color      bool   `yaml:"color"`
	TableStyle string `yaml:"table_style"`
}

// FFmpegConfig contains transcoder executable paths
type FFmpegConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// DownloadConfig contains remote fetch settings
type DownloadConfig struct {
	Retries int `yaml:"retries"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Color:      true,
			TableStyle: "rounded",
		},
		FFmpeg: FFmpegConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
		Download: DownloadConfig{
			Retries: 3,
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every invalid field
func (c *Config) Validate() error {
	var err error
	if c.Download.Retries < 0 {
		err = multierr.Append(err, fmt.Errorf("download.retries must not be negative, got %d", c.Download.Retries))
	}
	if c.Display.TableStyle != "" && !validTableStyle(c.Display.TableStyle) {
		err = multierr.Append(err, fmt.Errorf("display.table_style %q is not one of %v", c.Display.TableStyle, TableStyles))
	}
	if c.FFmpeg.FFmpegPath == "" {
		err = multierr.Append(err, errors.New("ffmpeg.ffmpeg_path must not be empty"))
	}
	if c.FFmpeg.FFprobePath == "" {
		err = multierr.Append(err, errors.New("ffmpeg.ffprobe_path must not be empty"))
	}
	return err
}

// DirectoryChecker reports whether a path is an existing directory
type DirectoryChecker interface {
	IsDir(path string) bool
}

// OutputDirectory expands ~ in the configured directory and returns it if it
// exists. A missing or unset directory yields "", meaning the working directory.
func (c *Config) OutputDirectory(checker DirectoryChecker) string {
	if c.Directory == "" {
		return ""
	}
	dir, err := filesystem.ExpandHome(c.Directory)
	if err != nil {
		return ""
	}
	if !checker.IsDir(dir) {
		return ""
	}
	return dir
}

func validTableStyle(s string) bool {
	for _, style := range TableStyles {
		if s == style {
			return true
		}
	}
	return false
}
