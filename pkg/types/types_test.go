package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputFormat_IsImage(t *testing.T) {
	for _, f := range []InputFormat{FormatJPEG, FormatPNG, FormatGIF, FormatBMP, FormatTIFF, FormatWEBP} {
		assert.True(t, f.IsImage(), f)
	}
	assert.False(t, FormatPDF.IsImage())
	assert.False(t, FormatUnknown.IsImage())
	assert.False(t, InputFormat("txt").IsImage())
}
