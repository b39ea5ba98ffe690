package config

import (
	"os"
	"strconv"
	"time"

	"github.com/nodewee/ocr2text/pkg/types"
)

// LoadConfigWithEnvOverrides loads the config file and applies environment variable overrides
func LoadConfigWithEnvOverrides() *Config {
	config := DefaultConfig()
	ApplyEnvOverrides(config, os.Getenv)
	return config
}

// ApplyEnvOverrides applies environment overrides read through getenv
func ApplyEnvOverrides(config *Config, getenv func(string) string) {
	// Remote backend
	if value := getenv("OCR_SPACE_API_KEY"); value != "" {
		config.APIKey = value
	}
	if value := getenv("OCR2TEXT_API_KEY"); value != "" {
		config.APIKey = value
	}
	if value := getenv("OCR2TEXT_REMOTE_ENDPOINT"); value != "" {
		config.RemoteEndpoint = value
	}
	if value := getenv("OCR2TEXT_PROXY"); value != "" {
		config.ProxyURL = value
	}
	if value := getenv("OCR2TEXT_NO_PROXY"); value != "" {
		config.NoProxy = value
	}
	if value := getenv("OCR2TEXT_REMOTE_ENGINE"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.RemoteOCREngine = intVal
		}
	}

	// Tool paths
	if value := getenv("GHOSTSCRIPT_PATH"); value != "" {
		config.GhostscriptPath = value
	}

	// Recognition
	if value := getenv("OCR2TEXT_LANGUAGE"); value != "" {
		config.Language = value
	}
	if value := getenv("OCR2TEXT_BACKEND"); value != "" {
		config.BackendStrategy = types.BackendStrategy(value)
	}
	if value := getenv("OCR2TEXT_BACKEND_TIMEOUT"); value != "" {
		if d, err := ParseDuration(value); err == nil {
			config.BackendTimeout = d
		}
	}
	if value := getenv("OCR2TEXT_TESSERACT_PSM"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.TesseractPSM = intVal
		}
	}

	// Preparation and output
	if value := getenv("OCR2TEXT_CHUNK_SIZE"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.ChunkSize = intVal
		}
	}
	if value := getenv("OCR2TEXT_DPI"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.DPI = intVal
		}
	}
	if value := getenv("OCR2TEXT_ENHANCE"); value != "" {
		config.EnhanceImages = parseBool(value)
	}
	if value := getenv("OCR2TEXT_PAGE_HEADERS"); value != "" {
		config.PageHeaders = parseBool(value)
	}
	if value := getenv("OCR2TEXT_MAX_CONCURRENCY"); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			config.MaxConcurrency = intVal
		}
	}
	if value := getenv("OCR2TEXT_LOG_LEVEL"); value != "" {
		config.LogLevel = value
	}
	if value := getenv("OCR2TEXT_VERBOSE"); value != "" {
		config.EnableVerbose = parseBool(value)
	}
}

// ParseDuration accepts Go duration strings ("45s", "1m") or a bare number of seconds
func ParseDuration(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func parseBool(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}
