// Package prepare validates input files and turns them into recognizable units.
package prepare

import (
	"context"
	"fmt"
	"iter"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// Options controls image normalization and PDF rendering
type Options struct {
	DPI       int
	Enhance   bool
	MaxWidth  int
	MaxHeight int
	TempDir   string
}

// DefaultOptions returns the built-in preparation settings
func DefaultOptions() Options {
	return Options{
		DPI:       constants.DefaultImageDPI,
		Enhance:   true,
		MaxWidth:  constants.DefaultMaxImageWidth,
		MaxHeight: constants.DefaultMaxImageHeight,
	}
}

// Preparer turns raw input bytes into InputUnits
type Preparer struct {
	opts     Options
	renderer interfaces.PageRenderer
	norm     *normalizer
	logger   *logger.Logger
}

// NewPreparer creates a preparer. A nil renderer means PDFs cannot be rendered.
func NewPreparer(opts Options, renderer interfaces.PageRenderer, log *logger.Logger) *Preparer {
	if log == nil {
		log = logger.Discard()
	}
	if opts.DPI <= 0 {
		opts.DPI = constants.DefaultImageDPI
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = constants.DefaultMaxImageWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = constants.DefaultMaxImageHeight
	}
	return &Preparer{
		opts:     opts,
		renderer: renderer,
		logger:   log,
		norm: &normalizer{
			enhance:   opts.Enhance,
			maxWidth:  opts.MaxWidth,
			maxHeight: opts.MaxHeight,
			logger:    log,
		},
	}
}

// Prepared is a validated input ready for recognition. Callers must Close it.
type Prepared struct {
	Format    types.InputFormat
	PageCount int

	image     *types.InputUnit
	pdfPath   string
	preparer  *Preparer
	resources *utils.ResourceManager
}

// Prepare validates data against its declared type. Images are decoded and
// normalized immediately; PDFs are opened and their pages rendered lazily.
func (p *Preparer) Prepare(ctx context.Context, data []byte, declaredType string) (*Prepared, error) {
	format, err := DetectFormat(data, declaredType)
	if err != nil {
		return nil, err
	}

	if format == types.FormatPDF {
		return p.preparePDF(data)
	}
	if !format.IsImage() {
		return nil, utils.NewUnsupportedFormatError(fmt.Sprintf("%s: %s", constants.ErrUnsupportedFormat, format), nil)
	}
	return p.prepareImage(data, format)
}

func (p *Preparer) prepareImage(data []byte, format types.InputFormat) (*Prepared, error) {
	normalized, outFormat, err := p.norm.normalize(data, format, true)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Prepared %s image (%d bytes)", format, len(normalized))
	return &Prepared{
		Format:    format,
		PageCount: 1,
		image: &types.InputUnit{
			Data:      normalized,
			Format:    outFormat,
			MIMEType:  outFormat.MIMEType(),
			PageIndex: 0,
			PageCount: 1,
			Origin:    format,
		},
		preparer: p,
	}, nil
}

func (p *Preparer) preparePDF(data []byte) (*Prepared, error) {
	pageCount, err := countPDFPages(data)
	if err != nil {
		return nil, err
	}

	resources := utils.NewResourceManager(p.opts.TempDir, p.logger)
	pdfPath, err := resources.WriteTempFile(constants.GetPlatformConfig().TempDirPrefix+"*.pdf", data)
	if err != nil {
		resources.Cleanup()
		return nil, err
	}

	p.logger.Debug("Prepared PDF with %d pages at %s", pageCount, pdfPath)
	return &Prepared{
		Format:    types.FormatPDF,
		PageCount: pageCount,
		pdfPath:   pdfPath,
		preparer:  p,
		resources: resources,
	}, nil
}

// Units yields the input's units in page order. For PDFs each page is
// rendered when requested; the first failure is yielded and ends the sequence.
func (d *Prepared) Units(ctx context.Context) iter.Seq2[types.InputUnit, error] {
	return func(yield func(types.InputUnit, error) bool) {
		if d.image != nil {
			yield(*d.image, nil)
			return
		}

		for i := 0; i < d.PageCount; i++ {
			if err := ctx.Err(); err != nil {
				yield(types.InputUnit{PageIndex: i}, utils.WrapError(err, utils.ErrorTypeTimeout, "page preparation cancelled"))
				return
			}

			unit, err := d.preparer.renderPage(ctx, d.pdfPath, i, d.PageCount)
			if !yield(unit, err) || err != nil {
				return
			}
		}
	}
}

func (p *Preparer) renderPage(ctx context.Context, pdfPath string, pageIndex, pageCount int) (types.InputUnit, error) {
	unit := types.InputUnit{
		PageIndex: pageIndex,
		PageCount: pageCount,
		Origin:    types.FormatPDF,
	}

	if p.renderer == nil {
		return unit, utils.NewNotFoundError("no PDF page renderer configured", nil)
	}

	p.logger.Progress("📄", "Rendering page %d/%d", pageIndex+1, pageCount)
	data, err := p.renderer.RenderPage(ctx, pdfPath, pageIndex, p.opts.DPI)
	if err != nil {
		switch utils.GetErrorType(err) {
		case utils.ErrorTypeNotFound, utils.ErrorTypeTimeout:
			return unit, err
		}
		return unit, utils.NewCorruptInputError(fmt.Sprintf("failed to render page %d", pageIndex+1), err).
			WithContext("page", pageIndex+1)
	}

	normalized, format, err := p.norm.normalize(data, types.FormatPNG, false)
	if err != nil {
		return unit, utils.NewCorruptInputError(fmt.Sprintf("rendered page %d is not a valid image", pageIndex+1), err).
			WithContext("page", pageIndex+1)
	}

	unit.Data = normalized
	unit.Format = format
	unit.MIMEType = format.MIMEType()
	return unit, nil
}

// Close releases temporary files held by the prepared input
func (d *Prepared) Close() error {
	if d.resources == nil {
		return nil
	}
	return d.resources.Cleanup()
}
