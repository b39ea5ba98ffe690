// Package ocr selects and invokes text recognition backends.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// Orchestrator recognizes units with the remote backend first and falls back
// to the local backend. It holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	remote   interfaces.RecognitionBackend
	local    interfaces.RecognitionBackend
	strategy types.BackendStrategy
	timeout  time.Duration
	logger   *logger.Logger
}

// NewOrchestrator creates an orchestrator. Either backend may be nil.
func NewOrchestrator(remote, local interfaces.RecognitionBackend, strategy types.BackendStrategy, timeout time.Duration, log *logger.Logger) *Orchestrator {
	if strategy == "" {
		strategy = types.BackendStrategyAuto
	}
	if timeout <= 0 {
		timeout = constants.DefaultBackendTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Orchestrator{
		remote:   remote,
		local:    local,
		strategy: strategy,
		timeout:  timeout,
		logger:   log,
	}
}

// Recognize runs the fallback chain for one unit. Failures are reported in
// the result, never dropped: Err holds the last backend error.
func (o *Orchestrator) Recognize(ctx context.Context, unit types.InputUnit, language string) types.RecognitionResult {
	result := types.RecognitionResult{PageIndex: unit.PageIndex}
	chain := selectBackends(o.strategy, o.remote, o.local)

	var lastErr error
	for i, slot := range chain {
		if err := ctx.Err(); err != nil {
			lastErr = utils.WrapError(err, utils.ErrorTypeTimeout, "recognition cancelled")
			break
		}

		if i > 0 {
			o.logger.Warn("Page %d: %s failed, trying fallback: %s", unit.PageNumber(), chain[i-1].name(), slot.name())
		}
		o.logger.Debug("Page %d: attempting recognition with %s (attempt %d/%d)", unit.PageNumber(), slot.name(), i+1, len(chain))

		text, attempt, err := o.attempt(ctx, slot, unit, language)
		result.Attempts = append(result.Attempts, attempt)
		if err != nil {
			o.logger.Debug("Page %d: %s failed: %v", unit.PageNumber(), slot.name(), err)
			lastErr = err
			continue
		}

		result.Text = text
		result.Backend = slot.kind
		result.Success = true
		if i > 0 {
			o.logger.Progress("✅", "Page %d: fallback backend '%s' succeeded", unit.PageNumber(), slot.name())
		}
		return result
	}

	if lastErr == nil {
		lastErr = utils.NewSystemError("no recognition backend selected", nil)
	}
	result.Err = lastErr
	result.Detail = lastErr.Error()
	o.logger.Error("Page %d: all recognition backends failed: %v", unit.PageNumber(), lastErr)
	return result
}

// attempt calls one backend with a bounded wait
func (o *Orchestrator) attempt(ctx context.Context, slot backendSlot, unit types.InputUnit, language string) (string, types.BackendAttempt, error) {
	attempt := types.BackendAttempt{Backend: slot.kind, Name: slot.name()}

	if slot.backend == nil {
		err := slot.unavailable()
		attempt.Error = err.Error()
		return "", attempt, err
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	text, err := slot.backend.Recognize(callCtx, unit, language)
	attempt.Elapsed = time.Since(start)

	if err == nil && callCtx.Err() != nil && ctx.Err() == nil {
		err = callCtx.Err()
	}
	if err != nil {
		err = o.classify(ctx, callCtx, slot, err)
		attempt.Error = err.Error()
		return "", attempt, err
	}

	text = strings.TrimSpace(text)
	if text == "" && slot.kind == types.BackendRemote {
		err := utils.NewRemoteBackendError(constants.ErrNoTextFound, nil)
		attempt.Error = err.Error()
		return "", attempt, err
	}

	return text, attempt, nil
}

// classify keeps backend errors typed so callers can tell remote from local failures
func (o *Orchestrator) classify(parent, callCtx context.Context, slot backendSlot, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
		message := fmt.Sprintf("%s timed out after %s", slot.name(), o.timeout)
		return backendError(slot, message, utils.NewError(utils.ErrorTypeTimeout, "deadline exceeded", err))
	}

	switch utils.GetErrorType(err) {
	case utils.ErrorTypeRemoteBackend, utils.ErrorTypeLocalBackend:
		return err
	}
	return backendError(slot, fmt.Sprintf("%s failed", slot.name()), err)
}

// backendError tags cause with the kind of the backend that produced it
func backendError(slot backendSlot, message string, cause error) *utils.AppError {
	var err *utils.AppError
	if slot.kind == types.BackendRemote {
		err = utils.NewRemoteBackendError(message, cause)
	} else {
		err = utils.NewLocalBackendError(message, cause)
	}
	return err.WithContext("backend", slot.name())
}
