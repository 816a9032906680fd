package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ConfigFileName = "clientdesk.json"

// Config represents the console's project configuration file
type Config struct {
	// APIURL is the base URL of the clientdesk API, e.g. "https://desk.example.com"
	APIURL string `json:"api_url"`
}

// DefaultConfig returns a default configuration pointing at a local server
func DefaultConfig() *Config {
	return &Config{
		APIURL: "http://localhost:8080",
	}
}

// FindConfigFile searches for clientdesk.json in the current directory and
// parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find clientdesk.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("clientdesk.json not found in %s or any parent directory", currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from the current directory or a parent
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveAPIURL returns the API base URL, letting the CLIENTDESK_API_URL
// environment variable override the project file. The trailing slash is
// stripped so callers can join paths naively.
func ResolveAPIURL() (string, error) {
	if url := os.Getenv("CLIENTDESK_API_URL"); url != "" {
		return strings.TrimRight(url, "/"), nil
	}

	cfg, err := LoadFromCurrentDir()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w\nRun 'clientdesk init' to create a configuration file", err)
	}

	if cfg.APIURL == "" {
		return "", fmt.Errorf("api_url is empty. Please edit clientdesk.json and add the API base URL")
	}

	return strings.TrimRight(cfg.APIURL, "/"), nil
}
