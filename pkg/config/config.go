package config

import (
	"fmt"
	"os"
	"time"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/types"
)

// Default values
const (
	DefaultLogLevel        = "info"
	DefaultEnableVerbose   = false
	DefaultEnhanceImages   = true
	DefaultPageHeaders     = true
	DefaultBackendStrategy = types.BackendStrategyAuto
	DefaultGhostscriptPath = "gs"
)

// Config holds application configuration
type Config struct {
	// Persisted settings (config file)
	APIKey          string
	RemoteEndpoint  string
	GhostscriptPath string
	ProxyURL        string
	NoProxy         string
	Language        string
	ChunkSize       int
	BackendTimeout  time.Duration

	// Runtime settings (environment and flags only)
	BackendStrategy types.BackendStrategy
	RemoteOCREngine int
	TesseractPSM    int
	DPI             int
	EnhanceImages   bool
	MaxImageWidth   int
	MaxImageHeight  int
	MaxConcurrency  int
	PageHeaders     bool
	LogLevel        string
	EnableVerbose   bool
}

// NewConfig returns a configuration populated with built-in defaults only
func NewConfig() *Config {
	return &Config{
		RemoteEndpoint:  constants.DefaultRemoteEndpoint,
		GhostscriptPath: DefaultGhostscriptPath,
		Language:        constants.DefaultLanguage,
		ChunkSize:       constants.DefaultChunkSize,
		BackendTimeout:  constants.DefaultBackendTimeout,
		BackendStrategy: DefaultBackendStrategy,
		RemoteOCREngine: constants.DefaultRemoteOCREngine,
		TesseractPSM:    constants.DefaultTesseractPSM,
		DPI:             constants.DefaultImageDPI,
		EnhanceImages:   DefaultEnhanceImages,
		MaxImageWidth:   constants.DefaultMaxImageWidth,
		MaxImageHeight:  constants.DefaultMaxImageHeight,
		MaxConcurrency:  constants.DefaultMaxConcurrency,
		PageHeaders:     DefaultPageHeaders,
		LogLevel:        DefaultLogLevel,
		EnableVerbose:   DefaultEnableVerbose,
	}
}

// DefaultConfig returns the configuration from the config file, or built-in defaults
func DefaultConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config file, using defaults: %v\n", err)
		return NewConfig()
	}
	return config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validator := NewConfigValidator()
	return validator.Validate(c)
}

// RemoteConfigured reports whether the remote backend has credentials
func (c *Config) RemoteConfigured() bool {
	return c.APIKey != ""
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Backend: %s, Language: %s, ChunkSize: %d, Timeout: %s, Remote: %v, Verbose: %v}",
		c.BackendStrategy, c.Language, c.ChunkSize, c.BackendTimeout, c.RemoteConfigured(), c.EnableVerbose)
}
