package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains the program configuration
type Config struct {
	Verbose     bool   `yaml:"verbose"`
	SongsCSV    string `yaml:"songs_csv"`
	LessonsCSV  string `yaml:"lessons_csv"`
	StudentsCSV string `yaml:"students_csv"`
	AssetsDir   string `yaml:"assets_dir"`
	OutputDir   string `yaml:"output_dir"`
	Timezone    string `yaml:"timezone"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Verbose:   false,
		OutputDir: "export",
		Timezone:  "Europe/Amsterdam",
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.SongsCSV = ExpandHome(cfg.SongsCSV)
	cfg.LessonsCSV = ExpandHome(cfg.LessonsCSV)
	cfg.StudentsCSV = ExpandHome(cfg.StudentsCSV)
	cfg.AssetsDir = ExpandHome(cfg.AssetsDir)
	cfg.OutputDir = ExpandHome(cfg.OutputDir)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := homeDir()
	locations := []string{
		"./musicdott.yaml",
		"./musicdott.yml",
		filepath.Join(home, ".config", "musicdott", "config.yaml"),
		filepath.Join(home, ".config", "musicdott", "config.yml"),
		filepath.Join(home, ".musicdott.yaml"),
		filepath.Join(home, ".musicdott.yml"),
	}

	for _, path := range locations {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the current configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "musicdott", "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(homeDir(), ".local", "share", "musicdott", "logs")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

// Validate checks if the configuration is valid for an import run
func (c *Config) Validate() error {
	if c.SongsCSV == "" && c.LessonsCSV == "" && c.StudentsCSV == "" {
		return fmt.Errorf("no input files configured: set at least one of songs_csv, lessons_csv, students_csv")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	if c.Timezone == "" {
		return fmt.Errorf("timezone cannot be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	if c.AssetsDir != "" {
		if _, err := os.Stat(c.AssetsDir); err != nil {
			return fmt.Errorf("assets directory does not exist: %s", c.AssetsDir)
		}
	}

	return nil
}
