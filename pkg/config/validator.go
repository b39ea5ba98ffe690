package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// ConfigValidator checks a Config and reports every problem at once
type ConfigValidator struct{}

// NewConfigValidator creates a configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate validates the configuration
func (v *ConfigValidator) Validate(c *Config) error {
	var errors []string

	if err := v.validateBackendStrategy(c.BackendStrategy); err != nil {
		errors = append(errors, err.Error())
	}

	if err := v.validateRemote(c); err != nil {
		errors = append(errors, err.Error())
	}

	if err := v.validateNumericValues(c); err != nil {
		errors = append(errors, err.Error())
	}

	if err := v.validateLogLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return utils.NewValidationError("configuration validation failed",
			fmt.Errorf("validation errors: %s", strings.Join(errors, "; ")))
	}

	return nil
}

func (v *ConfigValidator) validateBackendStrategy(strategy types.BackendStrategy) error {
	validStrategies := []types.BackendStrategy{
		types.BackendStrategyAuto,
		types.BackendStrategyRemote,
		types.BackendStrategyLocal,
	}

	for _, valid := range validStrategies {
		if strategy == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid backend strategy: %s", strategy)
}

func (v *ConfigValidator) validateRemote(c *Config) error {
	if c.BackendStrategy == types.BackendStrategyLocal {
		return nil
	}
	if c.RemoteEndpoint == "" {
		return fmt.Errorf("remote endpoint must not be empty")
	}
	if u, err := url.Parse(c.RemoteEndpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid remote endpoint: %s", c.RemoteEndpoint)
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("invalid proxy url: %s", c.ProxyURL)
		}
	}
	return nil
}

func (v *ConfigValidator) validateNumericValues(c *Config) error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be at least 1")
	}
	if c.BackendTimeout < time.Second {
		return fmt.Errorf("backend timeout must be at least 1s")
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	if c.MaxConcurrency > constants.MaxConcurrencyLimit {
		return fmt.Errorf("max concurrency should not exceed %d", constants.MaxConcurrencyLimit)
	}
	if c.DPI < constants.MinImageDPI || c.DPI > constants.MaxImageDPI {
		return fmt.Errorf("dpi must be between %d and %d", constants.MinImageDPI, constants.MaxImageDPI)
	}
	if c.MaxImageWidth < 1 || c.MaxImageHeight < 1 {
		return fmt.Errorf("max image dimensions must be positive")
	}
	if c.TesseractPSM < 0 || c.TesseractPSM > 13 {
		return fmt.Errorf("tesseract page segmentation mode must be between 0 and 13")
	}
	return nil
}

func (v *ConfigValidator) validateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}

	for _, valid := range validLevels {
		if strings.ToLower(level) == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid log level: %s", level)
}
