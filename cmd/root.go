package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nodewee/ocr2text/pkg/config"
	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/core"
	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/ocr"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// options holds the root command flags
type options struct {
	outputPath  string
	language    string
	chunkSize   int
	timeout     string
	backend     string
	apiKey      string
	dpi         int
	noEnhance   bool
	format      string
	separator   string
	pageHeaders bool
	concurrency int
	logLevel    string
	verbose     bool
	showVersion bool
}

// AppHandler encapsulates application main processing logic
type AppHandler struct {
	opts   *options
	cmd    *cobra.Command
	config *config.Config
	logger *logger.Logger
}

// NewAppHandler creates an application handler
func NewAppHandler(cmd *cobra.Command, opts *options) *AppHandler {
	return &AppHandler{opts: opts, cmd: cmd}
}

// ProcessFile recognizes inputFile and writes its chunks to the output
func (h *AppHandler) ProcessFile(ctx context.Context, inputFile string) error {
	if err := h.initialize(); err != nil {
		return err
	}

	var processor interfaces.FileProcessor
	processor, err := core.NewFileProcessor(h.config, h.logger)
	if err != nil {
		return err
	}

	doc, err := processor.ProcessFile(ctx, inputFile)
	if doc == nil {
		return err
	}

	if writeErr := h.writeOutput(doc); writeErr != nil {
		return writeErr
	}
	h.displaySummary(doc)

	if err != nil {
		return err
	}
	if doc.Failed {
		return utils.NewError(utils.GetErrorType(firstPageError(doc)),
			fmt.Sprintf("recognition failed for %d of %d page(s)", len(doc.FailedPages()), doc.PageCount),
			firstPageError(doc))
	}
	return nil
}

// initialize loads configuration: defaults, config file, environment, then flags
func (h *AppHandler) initialize() error {
	h.config = config.LoadConfigWithEnvOverrides()
	if err := h.applyCommandLineOverrides(); err != nil {
		return err
	}

	if err := h.config.Validate(); err != nil {
		return err
	}
	if h.opts.format != formatText && h.opts.format != formatJSON {
		return utils.NewValidationError(fmt.Sprintf("invalid output format: %s (use text or json)", h.opts.format), nil)
	}

	h.logger = logger.NewLoggerWithWriter(h.config.LogLevel, h.config.EnableVerbose, h.cmd.ErrOrStderr())
	return nil
}

// applyCommandLineOverrides applies only the flags the user actually set
func (h *AppHandler) applyCommandLineOverrides() error {
	flags := h.cmd.Flags()

	if flags.Changed("lang") {
		h.config.Language = h.opts.language
	}
	if flags.Changed("chunk-size") {
		h.config.ChunkSize = h.opts.chunkSize
	}
	if flags.Changed("timeout") {
		d, err := config.ParseDuration(h.opts.timeout)
		if err != nil {
			return utils.NewValidationError(fmt.Sprintf("invalid --timeout: %s", h.opts.timeout), err)
		}
		h.config.BackendTimeout = d
	}
	if flags.Changed("backend") {
		strategy, err := ocr.ParseStrategy(h.opts.backend)
		if err != nil {
			return err
		}
		h.config.BackendStrategy = strategy
	}
	if flags.Changed("api-key") {
		h.config.APIKey = h.opts.apiKey
	}
	if flags.Changed("dpi") {
		h.config.DPI = h.opts.dpi
	}
	if h.opts.noEnhance {
		h.config.EnhanceImages = false
	}
	if flags.Changed("page-headers") {
		h.config.PageHeaders = h.opts.pageHeaders
	}
	if flags.Changed("concurrency") {
		h.config.MaxConcurrency = h.opts.concurrency
	}
	if flags.Changed("log-level") {
		h.config.LogLevel = strings.ToLower(h.opts.logLevel)
	}
	if h.opts.verbose {
		h.config.EnableVerbose = true
	}
	return nil
}

// writeOutput writes the chunks (or the JSON document) to the output file or stdout
func (h *AppHandler) writeOutput(doc *types.DocumentResult) error {
	var content []byte
	switch h.opts.format {
	case formatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return utils.NewSystemError("failed to encode result", err)
		}
		content = append(data, '\n')
	default:
		var b strings.Builder
		for _, c := range doc.Chunks {
			b.WriteString(c.Text)
			b.WriteString(h.opts.separator)
		}
		content = []byte(b.String())
	}

	if h.opts.outputPath == "" {
		_, err := h.cmd.OutOrStdout().Write(content)
		if err != nil {
			return utils.WrapError(err, utils.ErrorTypeIO, "failed to write output")
		}
		return nil
	}

	if err := utils.WriteOutputFile(h.opts.outputPath, content); err != nil {
		return err
	}
	h.logger.ProgressAlways("💾", "Text saved to: %s", h.opts.outputPath)
	return nil
}

// displaySummary logs the per-page outcome to stderr
func (h *AppHandler) displaySummary(doc *types.DocumentResult) {
	h.logger.Progress("📊", "Pages: %d, chunks: %d, characters: %d", doc.PageCount, len(doc.Chunks), doc.Stats.Characters)
	h.logger.Progress("⏱️", "Processing time: %dms", doc.ProcessTime)

	for _, page := range doc.Pages {
		r := page.Result
		switch {
		case !r.Success:
			h.logger.Warn("Page %d failed: %s", r.PageIndex+1, r.Detail)
		case r.FallbackUsed():
			h.logger.Progress("⚠️", "Page %d: fallback backend used (%s)", r.PageIndex+1, r.Attempts[0].Error)
		}
	}
}

func firstPageError(doc *types.DocumentResult) error {
	for _, page := range doc.Pages {
		if page.Result.Err != nil {
			return page.Result.Err
		}
	}
	return nil
}

// NewRootCmd creates the root command with its subcommands
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   constants.AppName + " [input_file]",
		Short: "Extract text from images and scanned PDFs with OCR",
		Long: `Extract text from images and scanned PDF documents.

Each image or PDF page is sent to the OCR.space API. When the remote call
fails, times out or is not configured, the page is recognized locally with
Tesseract (available in builds made with -tags tesseract).

Supported inputs: JPEG, PNG, GIF, BMP, TIFF, WEBP and PDF (rendered with Ghostscript).

Configuration is read from ~/.ocr2text/config.yaml, then environment
variables (OCR2TEXT_*, OCR_SPACE_API_KEY), then command line flags.

Examples:
  ocr2text scan.png                              # Print recognized text
  ocr2text invoice.pdf --lang ara                # Arabic document
  ocr2text invoice.pdf --backend local           # Never call the remote API
  ocr2text book.pdf --chunk-size 2000 -o out.txt # Write 2000-character chunks to a file
  ocr2text scan.jpg --format json                # Full result with per-page attempts`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "ocr2text %s\n", version)
				return nil
			}
			if len(args) == 0 {
				return cmd.Help()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return NewAppHandler(cmd, opts).ProcessFile(ctx, args[0])
		},
	}

	defaults := config.NewConfig()
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVarP(&opts.language, "lang", "l", defaults.Language, "Recognition language hint (e.g. eng, ara)")
	flags.IntVar(&opts.chunkSize, "chunk-size", defaults.ChunkSize, "Maximum chunk length in characters")
	flags.StringVar(&opts.timeout, "timeout", defaults.BackendTimeout.String(), "Per-backend timeout (seconds or duration, e.g. 45s)")
	flags.StringVar(&opts.backend, "backend", string(defaults.BackendStrategy), "Backend strategy (auto, remote, local)")
	flags.StringVar(&opts.apiKey, "api-key", "", "OCR.space API key")
	flags.IntVar(&opts.dpi, "dpi", defaults.DPI, "PDF rendering resolution")
	flags.BoolVar(&opts.noEnhance, "no-enhance", false, "Disable image enhancement before recognition")
	flags.StringVar(&opts.format, "format", formatText, "Output format (text, json)")
	flags.StringVar(&opts.separator, "separator", "\n---\n", "Text written after each chunk in text format")
	flags.BoolVar(&opts.pageHeaders, "page-headers", defaults.PageHeaders, "Add page banners to multi-page documents")
	flags.IntVar(&opts.concurrency, "concurrency", defaults.MaxConcurrency, "Maximum pages recognized in parallel")
	flags.StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output to show progress information")
	flags.BoolVarP(&opts.showVersion, "version", "V", false, "Show version information")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		fmt.Fprintf(w, "Error (%s): %s\n", appErr.Type, appErr.Message)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	if utils.IsRecoverable(err) {
		fmt.Fprintln(w, "💡 Tip: this looks transient; try again or raise --timeout")
	}
}
