package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

func TestNewConfig_DefaultsAreValid(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, constants.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, constants.DefaultBackendTimeout, cfg.BackendTimeout)
	assert.Equal(t, constants.DefaultLanguage, cfg.Language)
	assert.Equal(t, types.BackendStrategyAuto, cfg.BackendStrategy)
	assert.False(t, cfg.RemoteConfigured())
	require.NoError(t, cfg.Validate())
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"OCR_SPACE_API_KEY":        "from-ocr-space",
		"OCR2TEXT_API_KEY":         "from-app",
		"OCR2TEXT_LANGUAGE":        "ara",
		"OCR2TEXT_CHUNK_SIZE":      "1000",
		"OCR2TEXT_BACKEND_TIMEOUT": "45",
		"OCR2TEXT_BACKEND":         "local",
		"OCR2TEXT_ENHANCE":         "false",
		"OCR2TEXT_PAGE_HEADERS":    "0",
		"OCR2TEXT_MAX_CONCURRENCY": "2",
		"OCR2TEXT_DPI":             "not-a-number",
		"OCR2TEXT_VERBOSE":         "yes",
		"GHOSTSCRIPT_PATH":         "/opt/gs/bin/gs",
	}
	cfg := NewConfig()

	ApplyEnvOverrides(cfg, func(key string) string { return env[key] })

	assert.Equal(t, "from-app", cfg.APIKey)
	assert.Equal(t, "ara", cfg.Language)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 45*time.Second, cfg.BackendTimeout)
	assert.Equal(t, types.BackendStrategyLocal, cfg.BackendStrategy)
	assert.False(t, cfg.EnhanceImages)
	assert.False(t, cfg.PageHeaders)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, constants.DefaultImageDPI, cfg.DPI, "unparsable values are ignored")
	assert.True(t, cfg.EnableVerbose)
	assert.Equal(t, "/opt/gs/bin/gs", cfg.GhostscriptPath)
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("90")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	d, err = ParseDuration("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = ParseDuration("soon")
	assert.Error(t, err)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.BackendStrategy = "cloud-only"
	cfg.ChunkSize = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
	assert.Contains(t, err.Error(), "invalid backend strategy: cloud-only")
	assert.Contains(t, err.Error(), "chunk size must be at least 1")
	assert.Contains(t, err.Error(), "invalid log level: loud")
}

func TestValidate_RemoteEndpoint(t *testing.T) {
	cfg := NewConfig()
	cfg.RemoteEndpoint = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.BackendStrategy = types.BackendStrategyLocal
	assert.NoError(t, cfg.Validate(), "endpoint is irrelevant for local-only runs")
}

func TestValidate_Timeout(t *testing.T) {
	cfg := NewConfig()
	cfg.BackendTimeout = 10 * time.Millisecond
	assert.Error(t, cfg.Validate())
}

func TestConfigFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg, "missing file yields defaults")

	require.NoError(t, SetConfigValue("api_key", "K1234567"))
	require.NoError(t, SetConfigValue("language", "ara"))
	require.NoError(t, SetConfigValue("chunk_size", "2048"))
	require.NoError(t, SetConfigValue("backend_timeout", "1m"))

	info, err := os.Stat(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "K1234567", cfg.APIKey)
	assert.Equal(t, "ara", cfg.Language)
	assert.Equal(t, 2048, cfg.ChunkSize)
	assert.Equal(t, time.Minute, cfg.BackendTimeout)

	value, err := GetConfigValue("backend_timeout")
	require.NoError(t, err)
	assert.Equal(t, "1m0s", value)
}

func TestSetConfigValue_Rejects(t *testing.T) {
	t.Setenv(ConfigDirEnv, t.TempDir())

	assert.Error(t, SetConfigValue("chunk_size", "-3"))
	assert.Error(t, SetConfigValue("backend_timeout", "later"))
	assert.Error(t, SetConfigValue("output_dir", "/tmp/out"))

	_, err := GetConfigValue("output_dir")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("backend_timeout: forever\n"), 0600))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****5678", MaskSecret("12345678"))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "", MaskSecret(""))
}
