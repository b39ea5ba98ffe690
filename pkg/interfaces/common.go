package interfaces

import (
	"context"

	"github.com/nodewee/ocr2text/pkg/types"
)

// PageRenderer rasterizes a single PDF page
type PageRenderer interface {
	// RenderPage renders the zero-based page of the PDF at pdfPath as PNG bytes
	RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int) ([]byte, error)
}

// FileProcessor processes an input file into a document result
type FileProcessor interface {
	ProcessFile(ctx context.Context, inputFile string) (*types.DocumentResult, error)
	ProcessBytes(ctx context.Context, name string, data []byte, declaredType string) (*types.DocumentResult, error)
}
