package core

import (
	"github.com/nodewee/ocr2text/pkg/config"
	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/ocr"
	"github.com/nodewee/ocr2text/pkg/ocr/engines"
	"github.com/nodewee/ocr2text/pkg/prepare"
)

// NewPreparer builds the input preparer from configuration
func NewPreparer(cfg *config.Config, log *logger.Logger) *prepare.Preparer {
	return prepare.NewPreparer(prepare.Options{
		DPI:       cfg.DPI,
		Enhance:   cfg.EnhanceImages,
		MaxWidth:  cfg.MaxImageWidth,
		MaxHeight: cfg.MaxImageHeight,
	}, prepare.NewGhostscriptRenderer(cfg.GhostscriptPath), log)
}

// NewRemoteBackend returns the OCR.space backend, or nil when no API key is set
func NewRemoteBackend(cfg *config.Config, log *logger.Logger) interfaces.RecognitionBackend {
	if !cfg.RemoteConfigured() {
		log.Debug("Remote backend disabled: no API key configured")
		return nil
	}
	return engines.NewOCRSpaceEngine(engines.OCRSpaceOptions{
		APIKey:    cfg.APIKey,
		Endpoint:  cfg.RemoteEndpoint,
		OCREngine: cfg.RemoteOCREngine,
		ProxyURL:  cfg.ProxyURL,
		NoProxy:   cfg.NoProxy,
	}, log)
}

// NewLocalBackend returns the Tesseract backend
func NewLocalBackend(cfg *config.Config, log *logger.Logger) interfaces.RecognitionBackend {
	if !engines.TesseractAvailable {
		log.Debug("Local backend not compiled in; build with -tags tesseract to enable it")
	}
	return engines.NewTesseractEngine(cfg.TesseractPSM, log)
}

// NewRecognizer builds the recognition orchestrator from configuration
func NewRecognizer(cfg *config.Config, log *logger.Logger) *ocr.Orchestrator {
	return ocr.NewOrchestrator(
		NewRemoteBackend(cfg, log),
		NewLocalBackend(cfg, log),
		cfg.BackendStrategy,
		cfg.BackendTimeout,
		log)
}
