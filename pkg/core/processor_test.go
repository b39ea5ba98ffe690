package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/ocr2text/pkg/chunk"
	"github.com/nodewee/ocr2text/pkg/config"
	"github.com/nodewee/ocr2text/pkg/prepare"
	"github.com/nodewee/ocr2text/pkg/prepare/preparetest"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// scriptedRecognizer answers per page; pages listed in fail report failure
type scriptedRecognizer struct {
	texts map[int]string
	fail  map[int]bool
	delay func(page int) time.Duration

	mu        sync.Mutex
	languages []string
}

func (s *scriptedRecognizer) Recognize(ctx context.Context, unit types.InputUnit, language string) types.RecognitionResult {
	s.mu.Lock()
	s.languages = append(s.languages, language)
	s.mu.Unlock()

	if s.delay != nil {
		time.Sleep(s.delay(unit.PageIndex))
	}
	if s.fail[unit.PageIndex] {
		err := utils.NewLocalBackendError("local backend unavailable", nil)
		return types.RecognitionResult{PageIndex: unit.PageIndex, Err: err, Detail: err.Error()}
	}
	return types.RecognitionResult{
		PageIndex: unit.PageIndex,
		Text:      s.texts[unit.PageIndex],
		Backend:   types.BackendRemote,
		Success:   true,
	}
}

func newTestProcessor(t *testing.T, cfg *config.Config, renderer *preparetest.Renderer, rec *scriptedRecognizer) *DefaultFileProcessor {
	t.Helper()
	opts := prepare.DefaultOptions()
	opts.Enhance = false
	p, err := NewFileProcessorWith(cfg, nil, prepare.NewPreparer(opts, renderer, nil), rec)
	require.NoError(t, err)
	return p
}

func TestProcessBytes_Image(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ChunkSize = 10
	cfg.Language = "ara"
	rec := &scriptedRecognizer{texts: map[int]string{0: "Hello World, this is OCR."}}

	doc, err := newTestProcessor(t, cfg, nil, rec).
		ProcessBytes(context.Background(), "scan.png", preparetest.PNG(t, 64, 64), "png")
	require.NoError(t, err)

	assert.False(t, doc.Failed)
	assert.Equal(t, types.FormatPNG, doc.Format)
	assert.Equal(t, 1, doc.PageCount)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "Hello World, this is OCR.", doc.Text, "single images carry no page headers")
	assert.Equal(t, doc.Pages[0].Result.Text, chunk.Join(doc.Pages[0].Chunks))
	assert.Len(t, doc.Pages[0].Chunks, 4)
	assert.Equal(t, 5, doc.Stats.Words)
	assert.Equal(t, []string{"ara"}, rec.languages)
}

func TestProcessBytes_PDFPreservesPageOrder(t *testing.T) {
	cfg := config.NewConfig()
	cfg.MaxConcurrency = 3
	renderer := &preparetest.Renderer{FailAt: -1, Image: preparetest.PNG(t, 400, 400)}
	rec := &scriptedRecognizer{
		texts: map[int]string{0: "first", 1: "second", 2: "third"},
		// later pages finish first
		delay: func(page int) time.Duration { return time.Duration(3-page) * 20 * time.Millisecond },
	}

	doc, err := newTestProcessor(t, cfg, renderer, rec).
		ProcessBytes(context.Background(), "report.pdf", preparetest.PDF(3), "")
	require.NoError(t, err)

	assert.False(t, doc.Failed)
	assert.Equal(t, types.FormatPDF, doc.Format)
	require.Len(t, doc.Pages, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, i, doc.Pages[i].Result.PageIndex)
		assert.Equal(t, want, doc.Pages[i].Result.Text)
	}

	assert.True(t, strings.HasPrefix(doc.Text, "Total Pages: 3"))
	assert.Less(t, strings.Index(doc.Text, "first"), strings.Index(doc.Text, "second"))
	assert.Less(t, strings.Index(doc.Text, "second"), strings.Index(doc.Text, "third"))
	assert.Equal(t, doc.Text, chunk.Join(doc.Chunks))

	for _, path := range renderer.Paths() {
		assert.NoFileExists(t, path, "temporary PDF is removed")
	}
}

func TestProcessBytes_NoPageHeaders(t *testing.T) {
	cfg := config.NewConfig()
	cfg.PageHeaders = false
	renderer := &preparetest.Renderer{FailAt: -1, Image: preparetest.PNG(t, 400, 400)}
	rec := &scriptedRecognizer{texts: map[int]string{0: "a", 1: "b"}}

	doc, err := newTestProcessor(t, cfg, renderer, rec).
		ProcessBytes(context.Background(), "two.pdf", preparetest.PDF(2), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", doc.Text)
}

func TestProcessBytes_FailedPage(t *testing.T) {
	cfg := config.NewConfig()
	renderer := &preparetest.Renderer{FailAt: -1, Image: preparetest.PNG(t, 400, 400)}
	rec := &scriptedRecognizer{
		texts: map[int]string{0: "ok", 2: "also ok"},
		fail:  map[int]bool{1: true},
	}

	doc, err := newTestProcessor(t, cfg, renderer, rec).
		ProcessBytes(context.Background(), "scan.pdf", preparetest.PDF(3), "pdf")
	require.NoError(t, err)

	assert.True(t, doc.Failed)
	assert.Equal(t, []int{1}, doc.FailedPages())
	assert.True(t, utils.IsLocalBackend(doc.Pages[1].Result.Err))
	assert.Empty(t, doc.Pages[1].Chunks)
}

func TestProcessBytes_RenderFailure(t *testing.T) {
	cfg := config.NewConfig()
	renderer := &preparetest.Renderer{FailAt: 1, Image: preparetest.PNG(t, 400, 400)}
	rec := &scriptedRecognizer{texts: map[int]string{0: "page one"}}

	doc, err := newTestProcessor(t, cfg, renderer, rec).
		ProcessBytes(context.Background(), "broken.pdf", preparetest.PDF(3), "pdf")
	require.Error(t, err)
	assert.True(t, utils.IsCorruptInput(err))

	require.NotNil(t, doc)
	assert.True(t, doc.Failed)
	assert.Equal(t, []int{1, 2}, doc.FailedPages())
	assert.Equal(t, "page one", doc.Pages[0].Result.Text)
}

func TestProcessBytes_UnsupportedFormat(t *testing.T) {
	rec := &scriptedRecognizer{}
	_, err := newTestProcessor(t, config.NewConfig(), nil, rec).
		ProcessBytes(context.Background(), "notes.txt", []byte("plain text"), "txt")

	require.Error(t, err)
	assert.True(t, utils.IsUnsupportedFormat(err))
	assert.Empty(t, rec.languages, "no backend is attempted")
}

func TestProcessBytes_NormalizesText(t *testing.T) {
	rec := &scriptedRecognizer{texts: map[int]string{0: "Cafe\u0301"}}
	doc, err := newTestProcessor(t, config.NewConfig(), nil, rec).
		ProcessBytes(context.Background(), "menu.png", preparetest.PNG(t, 32, 32), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", doc.Pages[0].Result.Text)
	assert.Equal(t, 4, doc.Stats.Characters)
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.png")
	require.NoError(t, os.WriteFile(path, preparetest.PNG(t, 50, 50), 0644))

	rec := &scriptedRecognizer{texts: map[int]string{0: "TOTAL 9.99"}}
	doc, err := newTestProcessor(t, config.NewConfig(), nil, rec).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, "TOTAL 9.99", doc.Text)

	_, err = newTestProcessor(t, config.NewConfig(), nil, rec).
		ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Equal(t, utils.ErrorTypeNotFound, utils.GetErrorType(err))
}

func TestNewFileProcessor_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ChunkSize = 0
	_, err := NewFileProcessor(cfg, nil)
	assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
}
