package prepare

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

var pdfMagic = []byte("%PDF-")

var tiffMagic = [][]byte{
	[]byte("II*\x00"),
	[]byte("MM\x00*"),
}

var extensionFormats = map[string]types.InputFormat{
	"jpg":  types.FormatJPEG,
	"jpeg": types.FormatJPEG,
	"jpe":  types.FormatJPEG,
	"png":  types.FormatPNG,
	"gif":  types.FormatGIF,
	"bmp":  types.FormatBMP,
	"tif":  types.FormatTIFF,
	"tiff": types.FormatTIFF,
	"webp": types.FormatWEBP,
	"pdf":  types.FormatPDF,
}

var mimeFormats = map[string]types.InputFormat{
	"image/jpeg":        types.FormatJPEG,
	"image/jpg":         types.FormatJPEG,
	"image/pjpeg":       types.FormatJPEG,
	"image/png":         types.FormatPNG,
	"image/gif":         types.FormatGIF,
	"image/bmp":         types.FormatBMP,
	"image/x-ms-bmp":    types.FormatBMP,
	"image/tiff":        types.FormatTIFF,
	"image/webp":        types.FormatWEBP,
	"application/pdf":   types.FormatPDF,
	"application/x-pdf": types.FormatPDF,
}

// DetectFormat resolves the input format from a declared type, falling back
// to content sniffing when nothing is declared. The declared type may be a
// MIME type or a file extension with or without the leading dot.
func DetectFormat(data []byte, declared string) (types.InputFormat, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared == "" {
		return sniffFormat(data)
	}

	if strings.Contains(declared, "/") {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err != nil {
			mediaType = declared
		}
		if format, ok := mimeFormats[mediaType]; ok {
			return format, nil
		}
	} else if format, ok := extensionFormats[strings.TrimPrefix(declared, ".")]; ok {
		return format, nil
	}

	return types.FormatUnknown, utils.NewUnsupportedFormatError(
		fmt.Sprintf("%s: %s", constants.ErrUnsupportedFormat, declared), nil)
}

func sniffFormat(data []byte) (types.InputFormat, error) {
	if bytes.HasPrefix(data, pdfMagic) {
		return types.FormatPDF, nil
	}
	for _, magic := range tiffMagic {
		if bytes.HasPrefix(data, magic) {
			return types.FormatTIFF, nil
		}
	}

	contentType := http.DetectContentType(data)
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if format, ok := mimeFormats[mediaType]; ok {
		return format, nil
	}

	return types.FormatUnknown, utils.NewUnsupportedFormatError(
		fmt.Sprintf("%s: detected %s", constants.ErrUnsupportedFormat, contentType), nil)
}
