package interfaces

import (
	"context"

	"github.com/nodewee/ocr2text/pkg/types"
)

// RecognitionBackend turns one prepared image into plain text
type RecognitionBackend interface {
	// Name returns the backend name used in logs and attempt records
	Name() string
	// Kind reports whether the backend is remote or local
	Kind() types.BackendKind
	// Recognize returns the text found in unit. An empty result is not an error.
	Recognize(ctx context.Context, unit types.InputUnit, language string) (string, error)
}

// Recognizer applies the backend policy to a unit. It never returns an error;
// failures are reported through the result.
type Recognizer interface {
	Recognize(ctx context.Context, unit types.InputUnit, language string) types.RecognitionResult
}
