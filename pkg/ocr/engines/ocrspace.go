// Package engines contains the recognition backends.
package engines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/http/httpproxy"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

const maxErrorBody = 512

// OCRSpaceOptions configures the OCR.space client
type OCRSpaceOptions struct {
	APIKey    string
	Endpoint  string
	OCREngine int
	ProxyURL  string
	NoProxy   string
	// HTTPClient overrides the client built from the proxy settings
	HTTPClient *http.Client
}

// OCRSpaceEngine recognizes text with the OCR.space HTTP API
type OCRSpaceEngine struct {
	opts   OCRSpaceOptions
	client *http.Client
	logger *logger.Logger
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
		ErrorMessage      string `json:"ErrorMessage"`
	} `json:"ParsedResults"`
	OCRExitCode           int             `json:"OCRExitCode"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// NewOCRSpaceEngine creates the remote backend
func NewOCRSpaceEngine(opts OCRSpaceOptions, log *logger.Logger) *OCRSpaceEngine {
	if opts.Endpoint == "" {
		opts.Endpoint = constants.DefaultRemoteEndpoint
	}
	if opts.OCREngine == 0 {
		opts.OCREngine = constants.DefaultRemoteOCREngine
	}
	if log == nil {
		log = logger.Discard()
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Transport: newTransport(opts.ProxyURL, opts.NoProxy)}
	}

	return &OCRSpaceEngine{opts: opts, client: client, logger: log}
}

// newTransport honours an explicit proxy, otherwise the standard proxy environment variables
func newTransport(proxyURL, noProxy string) *http.Transport {
	proxyConfig := httpproxy.FromEnvironment()
	if proxyURL != "" {
		proxyConfig = &httpproxy.Config{
			HTTPProxy:  proxyURL,
			HTTPSProxy: proxyURL,
			NoProxy:    noProxy,
		}
	}
	proxyFunc := proxyConfig.ProxyFunc()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		return proxyFunc(req.URL)
	}
	return transport
}

// Name returns the backend name
func (e *OCRSpaceEngine) Name() string {
	return "ocr.space"
}

// Kind reports the remote backend kind
func (e *OCRSpaceEngine) Kind() types.BackendKind {
	return types.BackendRemote
}

// Recognize uploads the unit and returns the parsed text of the first result
func (e *OCRSpaceEngine) Recognize(ctx context.Context, unit types.InputUnit, language string) (string, error) {
	if e.opts.APIKey == "" {
		return "", utils.NewRemoteBackendError("OCR.space API key not configured", nil)
	}

	body, contentType, err := e.buildForm(unit, language)
	if err != nil {
		return "", utils.NewRemoteBackendError("failed to build OCR.space request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.opts.Endpoint, body)
	if err != nil {
		return "", utils.NewRemoteBackendError("failed to create OCR.space request", err)
	}
	req.Header.Set("Content-Type", contentType)

	e.logger.Debug("Uploading page %d (%d bytes) to %s", unit.PageNumber(), len(unit.Data), e.opts.Endpoint)
	resp, err := e.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", utils.NewError(utils.ErrorTypeNetwork, "OCR.space request failed", eris.Wrap(err, "ocr.space: post"))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", utils.NewRemoteBackendError("failed to read OCR.space response", eris.Wrap(err, "ocr.space: read body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", utils.NewRemoteBackendError(
			fmt.Sprintf("OCR.space returned HTTP %d", resp.StatusCode),
			eris.New(truncate(strings.TrimSpace(string(payload)), maxErrorBody))).
			WithContext("status", resp.StatusCode)
	}

	return parseOCRSpaceResponse(payload)
}

func (e *OCRSpaceEngine) buildForm(unit types.InputUnit, language string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ key, value string }{
		{"apikey", e.opts.APIKey},
		{"language", language},
		{"isOverlayRequired", "false"},
		{"detectOrientation", "true"},
		{"scale", "true"},
		{"OCREngine", strconv.Itoa(e.opts.OCREngine)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", eris.Wrapf(err, "ocr.space: write field %s", f.key)
		}
	}

	part, err := w.CreateFormFile("file", uploadName(unit))
	if err != nil {
		return nil, "", eris.Wrap(err, "ocr.space: create file part")
	}
	if _, err := part.Write(unit.Data); err != nil {
		return nil, "", eris.Wrap(err, "ocr.space: write file part")
	}
	if err := w.Close(); err != nil {
		return nil, "", eris.Wrap(err, "ocr.space: close form")
	}

	return &buf, w.FormDataContentType(), nil
}

// uploadName returns a file name whose extension tells the API the image type
func uploadName(unit types.InputUnit) string {
	ext := string(unit.Format)
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("page_%d.%s", unit.PageNumber(), ext)
}

func parseOCRSpaceResponse(payload []byte) (string, error) {
	var parsed ocrSpaceResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", utils.NewRemoteBackendError("invalid OCR.space response", eris.Wrap(err, "ocr.space: decode response"))
	}

	if parsed.IsErroredOnProcessing {
		msg := errorMessages(parsed.ErrorMessage)
		if msg == "" {
			msg = "unknown error"
		}
		return "", utils.NewRemoteBackendError(fmt.Sprintf("OCR.space processing error: %s", msg), nil).
			WithContext("exit_code", parsed.OCRExitCode)
	}

	if len(parsed.ParsedResults) == 0 {
		return "", utils.NewRemoteBackendError(constants.ErrNoTextFound, nil)
	}

	text := strings.TrimSpace(parsed.ParsedResults[0].ParsedText)
	if text == "" {
		return "", utils.NewRemoteBackendError(constants.ErrNoTextFound, nil)
	}
	return text, nil
}

// errorMessages flattens ErrorMessage, which the API sends as a string or a list of strings
func errorMessages(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return string(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
