//go:build !tesseract

package engines

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

func TestTesseractStub_Unavailable(t *testing.T) {
	engine := NewTesseractEngine(3, nil)

	assert.False(t, TesseractAvailable)
	assert.Equal(t, types.BackendLocal, engine.Kind())

	_, err := engine.Recognize(context.Background(), types.InputUnit{}, "eng")
	assert.True(t, utils.IsLocalBackend(err))
	assert.Contains(t, err.Error(), "unavailable")
}
