package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/utils"
)

const (
	ConfigFileName = "config.yaml"
	AppDirName     = ".ocr2text"
	ConfigDirEnv   = "OCR2TEXT_CONFIG_DIR"
)

// ConfigFile represents the YAML configuration file structure
type ConfigFile struct {
	APIKey          string `yaml:"api_key,omitempty"`
	RemoteEndpoint  string `yaml:"remote_endpoint,omitempty"`
	GhostscriptPath string `yaml:"ghostscript_path,omitempty"`
	ProxyURL        string `yaml:"proxy_url,omitempty"`
	NoProxy         string `yaml:"no_proxy,omitempty"`
	Language        string `yaml:"language,omitempty"`
	ChunkSize       int    `yaml:"chunk_size,omitempty"`
	BackendTimeout  string `yaml:"backend_timeout,omitempty"`
}

// GetConfigDir returns the user configuration directory (~/.ocr2text unless overridden)
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeIO, "failed to get user home directory")
	}

	return filepath.Join(homeDir, AppDirName), nil
}

// GetConfigFilePath returns the full path to the configuration file
func GetConfigFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfig loads configuration from the config file; a missing file yields defaults
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return NewConfig(), nil
	}

	return loadConfigFromFile(configPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read config file")
	}

	var configFile ConfigFile
	if err := yaml.Unmarshal(data, &configFile); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeValidation, "failed to parse config file")
	}

	return configFileToConfig(&configFile)
}

// SaveConfig saves the persisted part of the configuration
func SaveConfig(config *Config) error {
	configPath, err := GetConfigFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), constants.DefaultDirPermission); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to create config directory")
	}

	return saveConfigFile(configPath, configToConfigFile(config))
}

func saveConfigFile(configPath string, configFile *ConfigFile) error {
	data, err := yaml.Marshal(configFile)
	if err != nil {
		return utils.WrapError(err, utils.ErrorTypeSystem, "failed to marshal config")
	}

	// The file may hold an API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write config file")
	}

	return nil
}

// configFileToConfig overlays file values on the defaults
func configFileToConfig(cf *ConfigFile) (*Config, error) {
	config := NewConfig()

	if cf.APIKey != "" {
		config.APIKey = cf.APIKey
	}
	if cf.RemoteEndpoint != "" {
		config.RemoteEndpoint = cf.RemoteEndpoint
	}
	if cf.GhostscriptPath != "" {
		config.GhostscriptPath = cf.GhostscriptPath
	}
	if cf.ProxyURL != "" {
		config.ProxyURL = cf.ProxyURL
	}
	if cf.NoProxy != "" {
		config.NoProxy = cf.NoProxy
	}
	if cf.Language != "" {
		config.Language = cf.Language
	}
	if cf.ChunkSize != 0 {
		config.ChunkSize = cf.ChunkSize
	}
	if cf.BackendTimeout != "" {
		d, err := ParseDuration(cf.BackendTimeout)
		if err != nil {
			return nil, utils.NewValidationError(fmt.Sprintf("invalid backend_timeout: %s", cf.BackendTimeout), err)
		}
		config.BackendTimeout = d
	}

	return config, nil
}

func configToConfigFile(c *Config) *ConfigFile {
	cf := &ConfigFile{
		APIKey:          c.APIKey,
		RemoteEndpoint:  c.RemoteEndpoint,
		GhostscriptPath: c.GhostscriptPath,
		ProxyURL:        c.ProxyURL,
		NoProxy:         c.NoProxy,
		Language:        c.Language,
		ChunkSize:       c.ChunkSize,
	}
	if c.BackendTimeout > 0 {
		cf.BackendTimeout = c.BackendTimeout.String()
	}
	return cf
}

// GetConfigValue gets a specific configuration value by key
func GetConfigValue(key string) (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	switch key {
	case "api_key":
		return config.APIKey, nil
	case "remote_endpoint":
		return config.RemoteEndpoint, nil
	case "ghostscript_path":
		return config.GhostscriptPath, nil
	case "proxy_url":
		return config.ProxyURL, nil
	case "no_proxy":
		return config.NoProxy, nil
	case "language":
		return config.Language, nil
	case "chunk_size":
		return strconv.Itoa(config.ChunkSize), nil
	case "backend_timeout":
		return config.BackendTimeout.String(), nil
	default:
		return "", utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}
}

// SetConfigValue sets a specific configuration value by key and saves the file
func SetConfigValue(key, value string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "api_key":
		config.APIKey = value
	case "remote_endpoint":
		config.RemoteEndpoint = value
	case "ghostscript_path":
		config.GhostscriptPath = value
	case "proxy_url":
		config.ProxyURL = value
	case "no_proxy":
		config.NoProxy = value
	case "language":
		config.Language = value
	case "chunk_size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 1 {
			return utils.NewValidationError("chunk_size must be a positive integer", err)
		}
		config.ChunkSize = size
	case "backend_timeout":
		d, err := ParseDuration(value)
		if err != nil || d <= 0 {
			return utils.NewValidationError("backend_timeout must be a positive duration", err)
		}
		config.BackendTimeout = d
	default:
		return utils.NewValidationError(fmt.Sprintf("unknown config key: %s", key), nil)
	}

	return SaveConfig(config)
}

// ListConfigKeys returns all persisted configuration keys
func ListConfigKeys() []string {
	return []string{
		"api_key",
		"remote_endpoint",
		"ghostscript_path",
		"proxy_url",
		"no_proxy",
		"language",
		"chunk_size",
		"backend_timeout",
	}
}

// MaskSecret hides all but the last four characters of a secret value
func MaskSecret(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
