//go:build tesseract

package engines

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rotisserie/eris"

	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// TesseractAvailable reports whether the binary was built with the Tesseract engine
const TesseractAvailable = true

// TesseractEngine recognizes text locally through libtesseract
type TesseractEngine struct {
	psm           int
	clientFactory func() *gosseract.Client
	logger        *logger.Logger
}

// NewTesseractEngine creates the local backend with the given page segmentation mode
func NewTesseractEngine(psm int, log *logger.Logger) *TesseractEngine {
	if log == nil {
		log = logger.Discard()
	}
	return &TesseractEngine{psm: psm, clientFactory: gosseract.NewClient, logger: log}
}

// Name returns the backend name
func (e *TesseractEngine) Name() string { return "tesseract" }

// Kind reports the local backend kind
func (e *TesseractEngine) Kind() types.BackendKind { return types.BackendLocal }

type tessResult struct {
	text string
	err  error
}

// Recognize runs Tesseract on the unit. The cgo call cannot be interrupted, so
// on cancellation the result is abandoned and the client closed once it returns.
func (e *TesseractEngine) Recognize(ctx context.Context, unit types.InputUnit, language string) (string, error) {
	done := make(chan tessResult, 1)

	go func() {
		c := e.clientFactory()
		defer c.Close()
		text, err := e.recognizeWithClient(c, unit, language)
		done <- tessResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", utils.NewLocalBackendError("tesseract recognition failed", r.err)
		}
		return r.text, nil
	}
}

func (e *TesseractEngine) recognizeWithClient(c *gosseract.Client, unit types.InputUnit, language string) (string, error) {
	if language != "" {
		if err := c.SetLanguage(strings.Split(language, "+")...); err != nil {
			return "", eris.Wrapf(err, "tesseract: set language %s", language)
		}
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(e.psm)); err != nil {
		return "", eris.Wrapf(err, "tesseract: set page segmentation mode %d", e.psm)
	}
	if err := c.SetImageFromBytes(unit.Data); err != nil {
		return "", eris.Wrap(err, "tesseract: set image")
	}

	text, err := c.Text()
	if err != nil {
		return "", eris.Wrap(err, "tesseract: recognize text")
	}
	e.logger.Debug("Tesseract recognized %d bytes on page %d", len(text), unit.PageNumber())
	return strings.TrimSpace(text), nil
}
