//go:build !tesseract

package engines

import (
	"context"

	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// TesseractAvailable reports whether the binary was built with the Tesseract engine
const TesseractAvailable = false

// TesseractEngine is a placeholder used when the binary is built without
// the tesseract tag. Every call fails with a local backend error.
type TesseractEngine struct{}

// NewTesseractEngine returns the unavailable local backend
func NewTesseractEngine(psm int, log *logger.Logger) *TesseractEngine {
	return &TesseractEngine{}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Kind() types.BackendKind { return types.BackendLocal }

func (e *TesseractEngine) Recognize(context.Context, types.InputUnit, string) (string, error) {
	return "", utils.NewLocalBackendError("tesseract unavailable: rebuild with -tags tesseract", nil)
}
