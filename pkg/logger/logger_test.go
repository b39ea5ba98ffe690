package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", true, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	log.Warn("remote failed: %s", "503")
	log.Error("both failed")

	assert.Equal(t, "[WARN] remote failed: 503\n[ERROR] both failed\n", buf.String())
}

func TestLogger_InfoAndProgressNeedVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewLoggerWithWriter("debug", false, &buf)

	quiet.Info("not shown")
	quiet.Progress("📄", "page %d", 1)
	quiet.ProgressAlways("✅", "done")

	assert.Equal(t, "✅ done\n", buf.String())

	buf.Reset()
	loud := NewLoggerWithWriter("info", true, &buf)
	loud.Info("shown")
	loud.Progress("📄", "page %d", 2)

	assert.Equal(t, "[INFO] shown\n📄 page 2\n", buf.String())
	assert.True(t, loud.Verbose())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("chatty"))
}
