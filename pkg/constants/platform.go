package constants

import (
	"runtime"
)

// PlatformConfig lists where external tools are usually installed
type PlatformConfig struct {
	GhostscriptPaths []string
	TempDirPrefix    string
}

// GetPlatformConfig returns platform-specific configuration
func GetPlatformConfig() *PlatformConfig {
	switch runtime.GOOS {
	case "windows":
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gswin64c.exe",
				"gswin32c.exe",
				"gs.exe",
				"C:\\Program Files\\gs\\gs*\\bin\\gswin64c.exe",
				"C:\\Program Files (x86)\\gs\\gs*\\bin\\gswin32c.exe",
			},
			TempDirPrefix: "ocr2text-",
		}
	case "darwin":
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gs",
				"/opt/homebrew/bin/gs",
				"/usr/local/bin/gs",
				"/usr/bin/gs",
			},
			TempDirPrefix: "ocr2text-",
		}
	default: // Linux and other Unix-like systems
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gs",
				"/usr/bin/gs",
				"/usr/local/bin/gs",
				"/bin/gs",
			},
			TempDirPrefix: "ocr2text-",
		}
	}
}
