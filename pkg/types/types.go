package types

import "time"

// InputFormat represents the decoded format of an input file or unit
type InputFormat string

const (
	FormatUnknown InputFormat = ""
	FormatJPEG    InputFormat = "jpeg"
	FormatPNG     InputFormat = "png"
	FormatGIF     InputFormat = "gif"
	FormatBMP     InputFormat = "bmp"
	FormatTIFF    InputFormat = "tiff"
	FormatWEBP    InputFormat = "webp"
	FormatPDF     InputFormat = "pdf"
)

// IsImage reports whether the format is one of the supported raster image formats
func (f InputFormat) IsImage() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatGIF, FormatBMP, FormatTIFF, FormatWEBP:
		return true
	}
	return false
}

// MIMEType returns the canonical MIME type for the format
func (f InputFormat) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatWEBP:
		return "image/webp"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// BackendKind identifies which recognition backend produced a result
type BackendKind string

const (
	BackendNone   BackendKind = ""
	BackendRemote BackendKind = "remote"
	BackendLocal  BackendKind = "local"
)

// BackendStrategy selects which backends the orchestrator may use
type BackendStrategy string

const (
	BackendStrategyAuto   BackendStrategy = "auto"   // remote first, local on failure
	BackendStrategyRemote BackendStrategy = "remote" // remote only
	BackendStrategyLocal  BackendStrategy = "local"  // local only
)

// InputUnit is one standalone image or one rendered PDF page
type InputUnit struct {
	Data      []byte      `json:"-"`
	Format    InputFormat `json:"format"`
	MIMEType  string      `json:"mime_type"`
	PageIndex int         `json:"page_index"` // zero-based
	PageCount int         `json:"page_count"`
	Origin    InputFormat `json:"origin"` // format of the submitted file
}

// PageNumber returns the one-based page number
func (u InputUnit) PageNumber() int {
	return u.PageIndex + 1
}

// IsPage reports whether the unit was produced from a PDF page
func (u InputUnit) IsPage() bool {
	return u.Origin == FormatPDF
}

// BackendAttempt records a single call to a backend
type BackendAttempt struct {
	Backend BackendKind   `json:"backend"`
	Name    string        `json:"name"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// RecognitionResult is produced once per InputUnit
type RecognitionResult struct {
	Text      string           `json:"text"`
	Backend   BackendKind      `json:"backend,omitempty"`
	Success   bool             `json:"success"`
	Err       error            `json:"-"`
	Detail    string           `json:"error,omitempty"`
	PageIndex int              `json:"page_index"`
	Attempts  []BackendAttempt `json:"attempts,omitempty"`
}

// FallbackUsed reports whether the local backend answered after a remote failure
func (r RecognitionResult) FallbackUsed() bool {
	return r.Success && r.Backend == BackendLocal && len(r.Attempts) > 1
}

// TextChunk is an ordered fragment of a larger text
type TextChunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// TextStats holds basic statistics about a text
type TextStats struct {
	Lines      int `json:"lines"`
	Words      int `json:"words"`
	Characters int `json:"characters"`
}

// PageResult is the post-processed output for one InputUnit
type PageResult struct {
	Result RecognitionResult `json:"result"`
	Chunks []TextChunk       `json:"chunks"`
	Stats  TextStats         `json:"stats"`
}

// DocumentResult aggregates the page results of one submitted file
type DocumentResult struct {
	Source      string       `json:"source"`
	Format      InputFormat  `json:"format"`
	PageCount   int          `json:"page_count"`
	Pages       []PageResult `json:"pages"`
	Text        string       `json:"text"`
	Chunks      []TextChunk  `json:"chunks"`
	Stats       TextStats    `json:"stats"`
	Failed      bool         `json:"failed"`
	ProcessTime int64        `json:"process_time_ms"`
}

// FailedPages returns the zero-based indexes of pages whose recognition failed
func (d *DocumentResult) FailedPages() []int {
	var failed []int
	for _, p := range d.Pages {
		if !p.Result.Success {
			failed = append(failed, p.Result.PageIndex)
		}
	}
	return failed
}
