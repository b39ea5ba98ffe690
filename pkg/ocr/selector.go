package ocr

import (
	"fmt"
	"strings"

	"github.com/nodewee/ocr2text/pkg/interfaces"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// ParseStrategy parses a backend strategy name
func ParseStrategy(s string) (types.BackendStrategy, error) {
	switch strategy := types.BackendStrategy(strings.ToLower(strings.TrimSpace(s))); strategy {
	case types.BackendStrategyAuto, types.BackendStrategyRemote, types.BackendStrategyLocal:
		return strategy, nil
	case "":
		return types.BackendStrategyAuto, nil
	default:
		return "", utils.NewValidationError(fmt.Sprintf("unknown backend strategy: %s (use auto, remote or local)", s), nil)
	}
}

// backendSlot is one position in the fallback chain. The backend may be nil
// when it was not configured or is not compiled in.
type backendSlot struct {
	kind    types.BackendKind
	backend interfaces.RecognitionBackend
}

func (s backendSlot) name() string {
	if s.backend == nil {
		return string(s.kind)
	}
	return s.backend.Name()
}

// unavailable returns the error recorded for a slot without a backend
func (s backendSlot) unavailable() error {
	if s.kind == types.BackendRemote {
		return utils.NewRemoteBackendError("remote backend not configured", nil)
	}
	return utils.NewLocalBackendError("local backend unavailable", nil)
}

// selectBackends returns the backends to try, in order, for a strategy
func selectBackends(strategy types.BackendStrategy, remote, local interfaces.RecognitionBackend) []backendSlot {
	remoteSlot := backendSlot{kind: types.BackendRemote, backend: remote}
	localSlot := backendSlot{kind: types.BackendLocal, backend: local}

	switch strategy {
	case types.BackendStrategyRemote:
		return []backendSlot{remoteSlot}
	case types.BackendStrategyLocal:
		return []backendSlot{localSlot}
	default:
		return []backendSlot{remoteSlot, localSlot}
	}
}
