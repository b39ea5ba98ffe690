package constants

import "time"

// Application constants
const (
	AppName = "ocr2text"
	// AppVersion is injected at build time via ldflags in main.go
)

// File processing constants
const (
	DefaultFilePermission = 0644
	DefaultDirPermission  = 0755

	// Page banners; the separator line is repeated around each page number
	PageSeparator     = "=================================================="
	PageHeaderFormat  = PageSeparator + "\nPage %d\n" + PageSeparator + "\n\n"
	TotalPagesFormat  = "Total Pages: %d\n" + PageSeparator + "\n\n"
	PageJoinSeparator = "\n\n" + PageSeparator + "\n\n"
)

// Recognition defaults
const (
	DefaultLanguage        = "eng"
	DefaultChunkSize       = 4096
	DefaultBackendTimeout  = 30 * time.Second
	DefaultRemoteEndpoint  = "https://api.ocr.space/parse/image"
	DefaultRemoteOCREngine = 2
	DefaultTesseractPSM    = 3 // fully automatic page segmentation
	DefaultMaxConcurrency  = 4
	MaxConcurrencyLimit    = 20
)

// File size limits (in bytes)
const (
	MaxFileSize       = 100 * 1024 * 1024 // 100MB
	WarnFileSizeLimit = 10 * 1024 * 1024  // 10MB
)

// Image preparation constants
const (
	DefaultImageDPI       = 300
	MinImageDPI           = 72
	MaxImageDPI           = 1200
	DefaultMaxImageWidth  = 10000
	DefaultMaxImageHeight = 10000
	SmallImageThreshold   = 300 // images narrower or shorter than this are upscaled
	SharpenSigma          = 1.0
	ContrastPercentage    = 50 // +50% matches a 1.5 contrast factor
)

// Error messages
const (
	ErrUnsupportedFormat = "unsupported file format"
	ErrCorruptInput      = "input could not be decoded"
	ErrNoTextFound       = "no text detected in image"
)

