package chunk

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/ocr2text/pkg/utils"
)

func chunkTexts(t *testing.T, text string, maxLen int) []string {
	t.Helper()
	chunks, err := Split(text, maxLen)
	require.NoError(t, err)
	out := make([]string, len(chunks))
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		out[i] = ch.Text
	}
	return out
}

func TestSplit_BreaksAfterWhitespace(t *testing.T) {
	got := chunkTexts(t, "Hello World, this is OCR.", 10)
	assert.Equal(t, []string{"Hello ", "World, ", "this is ", "OCR."}, got)
}

func TestSplit_WordEndingAtLimit(t *testing.T) {
	assert.Equal(t, []string{"Hello", " big ", "world"}, chunkTexts(t, "Hello big world", 5))
	assert.Equal(t, []string{"Hello", " Worl", "d"}, chunkTexts(t, "Hello World", 5))
}

func TestSplit_HardSplitWithoutWhitespace(t *testing.T) {
	got := chunkTexts(t, "abcdefghijklmnopqrstuvwxy", 10)
	assert.Equal(t, []string{"abcdefghij", "klmnopqrst", "uvwxy"}, got)
}

func TestSplit_ShortTextIsSingleChunk(t *testing.T) {
	assert.Equal(t, []string{"short"}, chunkTexts(t, "short", 10))
	assert.Equal(t, []string{"exactly10!"}, chunkTexts(t, "exactly10!", 10))
}

func TestSplit_Empty(t *testing.T) {
	chunks, err := Split("", 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_InvalidLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Split("text", n)
		require.Error(t, err)
		assert.Equal(t, utils.ErrorTypeValidation, utils.GetErrorType(err))
	}
}

func TestSplit_CountsRunesNotBytes(t *testing.T) {
	text := "مرحبا بالعالم هذا نص"
	got := chunkTexts(t, text, 7)
	for _, c := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 7)
		assert.True(t, utf8.ValidString(c))
	}
	assert.Equal(t, text, strings.Join(got, ""))
	assert.Equal(t, "مرحبا ", got[0])
}

func TestSplit_NewlinesAreBreakPoints(t *testing.T) {
	got := chunkTexts(t, "line one\nline two", 12)
	assert.Equal(t, []string{"line one\n", "line two"}, got)
}

func TestSplit_RoundTripAndBound(t *testing.T) {
	alphabet := []rune("abc xyz\n\tمرحبا日本語 ")
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(300)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		text := string(runes)
		maxLen := rng.Intn(20) + 1

		chunks, err := Split(text, maxLen)
		require.NoError(t, err)

		assert.Equal(t, text, Join(chunks))
		for _, ch := range chunks {
			assert.NotEmpty(t, ch.Text)
			assert.LessOrEqual(t, utf8.RuneCountInString(ch.Text), maxLen)
		}
	}
}

func TestNewChunker(t *testing.T) {
	c, err := NewChunker(5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.MaxLen)

	_, err = NewChunker(0)
	assert.Error(t, err)
}
