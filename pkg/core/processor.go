// Package core wires preparation, recognition and chunking into file processing.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nodewee/ocr2text/pkg/chunk"
	"github.com/nodewee/ocr2text/pkg/config"
	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/prepare"
	"github.com/nodewee/ocr2text/pkg/textutil"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// DefaultFileProcessor implements FileProcessor
type DefaultFileProcessor struct {
	config     *config.Config
	logger     *logger.Logger
	preparer   *prepare.Preparer
	recognizer interfaces.Recognizer
	chunker    *chunk.Chunker
}

// NewFileProcessor validates cfg and builds a processor with the configured backends
func NewFileProcessor(cfg *config.Config, log *logger.Logger) (*DefaultFileProcessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	return NewFileProcessorWith(cfg, log, NewPreparer(cfg, log), NewRecognizer(cfg, log))
}

// NewFileProcessorWith builds a processor from explicit components
func NewFileProcessorWith(cfg *config.Config, log *logger.Logger, preparer *prepare.Preparer, recognizer interfaces.Recognizer) (*DefaultFileProcessor, error) {
	chunker, err := chunk.NewChunker(cfg.ChunkSize)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	log.Info("File processor initialized:")
	log.Info("  Backend strategy: %s", cfg.BackendStrategy)
	log.Info("  Remote configured: %v", cfg.RemoteConfigured())
	log.Info("  Language: %s", cfg.Language)
	log.Info("  Chunk size: %d", cfg.ChunkSize)
	log.Info("  Max concurrency: %d", cfg.MaxConcurrency)

	return &DefaultFileProcessor{
		config:     cfg,
		logger:     log,
		preparer:   preparer,
		recognizer: recognizer,
		chunker:    chunker,
	}, nil
}

// ProcessFile reads inputFile and recognizes it. The declared type comes from the extension.
func (p *DefaultFileProcessor) ProcessFile(ctx context.Context, inputFile string) (*types.DocumentResult, error) {
	p.logger.Info("=== Starting file processing ===")
	p.logger.Info("Input file: %s", inputFile)

	data, err := utils.ReadInputFile(inputFile, constants.MaxFileSize)
	if err != nil {
		return nil, err
	}
	if len(data) > constants.WarnFileSizeLimit {
		p.logger.Warn("Large file detected (%d bytes), processing may take longer", len(data))
	}

	return p.ProcessBytes(ctx, inputFile, data, utils.FileExtension(inputFile))
}

// ProcessBytes recognizes an in-memory input. The result is returned even when
// pages fail; Failed reports whether any did. A page render failure is also
// returned as the error.
func (p *DefaultFileProcessor) ProcessBytes(ctx context.Context, name string, data []byte, declaredType string) (*types.DocumentResult, error) {
	startTime := time.Now()

	prepared, err := p.preparer.Prepare(ctx, data, declaredType)
	if err != nil {
		return nil, utils.WrapError(err, "", "input preparation failed")
	}
	defer func() {
		if err := prepared.Close(); err != nil {
			p.logger.Warn("Failed to clean up temporary files: %v", err)
		}
	}()

	p.logger.Progress("🔍", "Recognizing %s (%s, %d page(s))", filepath.Base(name), prepared.Format, prepared.PageCount)

	pages, renderErr := p.recognizeUnits(ctx, prepared)

	doc := p.assemble(name, prepared, pages)
	doc.ProcessTime = time.Since(startTime).Milliseconds()

	if doc.Failed {
		p.logger.Warn("Recognition failed for page(s) %v", pageNumbers(doc.FailedPages()))
	} else {
		p.logger.Progress("✅", "Text extraction completed successfully in %dms", doc.ProcessTime)
	}
	p.logger.Info("  Characters: %d, words: %d, lines: %d", doc.Stats.Characters, doc.Stats.Words, doc.Stats.Lines)
	p.logger.Info("=== File processing completed ===")

	return doc, renderErr
}

// recognizeUnits recognizes units with bounded parallelism. Results are stored
// by page index so page order does not depend on completion order.
func (p *DefaultFileProcessor) recognizeUnits(ctx context.Context, prepared *prepare.Prepared) ([]types.PageResult, error) {
	pages := make([]types.PageResult, prepared.PageCount)
	done := make([]bool, prepared.PageCount)

	limit := p.config.MaxConcurrency
	if limit < 1 {
		limit = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)

	var renderErr error
	for unit, err := range prepared.Units(ctx) {
		if err != nil {
			renderErr = err
			break
		}
		g.Go(func() error {
			result := p.recognizer.Recognize(ctx, unit, p.config.Language)
			pages[unit.PageIndex] = p.postProcess(result)
			done[unit.PageIndex] = true
			return nil
		})
	}
	_ = g.Wait()

	for i := range pages {
		if done[i] {
			continue
		}
		cause := renderErr
		if cause == nil {
			cause = utils.NewSystemError("page was not recognized", nil)
		}
		pages[i] = types.PageResult{Result: types.RecognitionResult{
			PageIndex: i,
			Err:       cause,
			Detail:    cause.Error(),
		}}
	}

	return pages, renderErr
}

// postProcess normalizes the recognized text and splits it into chunks
func (p *DefaultFileProcessor) postProcess(result types.RecognitionResult) types.PageResult {
	result.Text = textutil.Normalize(result.Text)
	return types.PageResult{
		Result: result,
		Chunks: p.chunker.Split(result.Text),
		Stats:  textutil.Stats(result.Text),
	}
}

func (p *DefaultFileProcessor) assemble(name string, prepared *prepare.Prepared, pages []types.PageResult) *types.DocumentResult {
	doc := &types.DocumentResult{
		Source:    name,
		Format:    prepared.Format,
		PageCount: prepared.PageCount,
		Pages:     pages,
	}

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.Result.Text
		doc.Stats.Lines += page.Stats.Lines
		doc.Stats.Words += page.Stats.Words
		doc.Stats.Characters += page.Stats.Characters
		if !page.Result.Success {
			doc.Failed = true
		}
	}

	headers := p.config.PageHeaders && prepared.Format == types.FormatPDF && len(pages) > 1
	doc.Text = textutil.JoinPages(texts, headers)
	doc.Chunks = p.chunker.Split(doc.Text)
	return doc
}

func pageNumbers(indexes []int) []string {
	out := make([]string, len(indexes))
	for i, idx := range indexes {
		out[i] = fmt.Sprint(idx + 1)
	}
	return out
}
