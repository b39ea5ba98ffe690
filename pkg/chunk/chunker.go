// Package chunk splits text into bounded, ordered fragments.
package chunk

import (
	"fmt"
	"unicode"

	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// Chunker splits text into chunks of at most MaxLen runes
type Chunker struct {
	MaxLen int
}

// NewChunker creates a chunker with the given maximum chunk length
func NewChunker(maxLen int) (*Chunker, error) {
	if maxLen <= 0 {
		return nil, utils.NewValidationError(fmt.Sprintf("chunk size must be positive, got %d", maxLen), nil)
	}
	return &Chunker{MaxLen: maxLen}, nil
}

// Split is a convenience wrapper around NewChunker(maxLen).Split(text)
func Split(text string, maxLen int) ([]types.TextChunk, error) {
	c, err := NewChunker(maxLen)
	if err != nil {
		return nil, err
	}
	return c.Split(text), nil
}

// Split divides text into chunks whose concatenation is exactly text.
//
// Each chunk is at most MaxLen runes. When the remaining text is longer,
// the chunk ends at MaxLen if the next rune is whitespace, otherwise just
// after the last whitespace rune within the window; if there is none, it
// is cut at exactly MaxLen runes. Whitespace leading a window is not a
// break point, so no chunk is a lone separator.
func (c *Chunker) Split(text string) []types.TextChunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]types.TextChunk, 0, len(runes)/c.MaxLen+1)

	for start := 0; start < len(runes); {
		end := len(runes)
		if end-start > c.MaxLen {
			end = c.breakPoint(runes, start)
		}
		chunks = append(chunks, types.TextChunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
		start = end
	}

	return chunks
}

// breakPoint returns the exclusive end of the chunk starting at start
func (c *Chunker) breakPoint(runes []rune, start int) int {
	limit := start + c.MaxLen
	if unicode.IsSpace(runes[limit]) {
		return limit
	}
	for i := limit - 1; i > start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return limit
}

// Join concatenates chunk texts in index order
func Join(chunks []types.TextChunk) string {
	n := 0
	for _, ch := range chunks {
		n += len(ch.Text)
	}
	buf := make([]byte, 0, n)
	for _, ch := range chunks {
		buf = append(buf, ch.Text...)
	}
	return string(buf)
}
