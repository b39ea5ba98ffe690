// Package textutil post-processes recognized text before it is chunked.
package textutil

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/types"
)

// Normalize converts text to Unicode NFC. OCR engines disagree on whether
// Arabic and Latin diacritics come back composed or decomposed.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Stats returns basic statistics about a text
func Stats(text string) types.TextStats {
	if text == "" {
		return types.TextStats{}
	}
	return types.TextStats{
		Lines:      strings.Count(text, "\n") + 1,
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}
}

// PageHeader returns the banner placed before a page of a multi-page document
func PageHeader(pageNumber int) string {
	return fmt.Sprintf(constants.PageHeaderFormat, pageNumber)
}

// JoinPages assembles page texts in order. With headers enabled, the output
// starts with the page total and each page is preceded by its banner.
func JoinPages(pages []string, headers bool) string {
	if !headers {
		return strings.Join(pages, "\n\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, constants.TotalPagesFormat, len(pages))
	for i, page := range pages {
		if i > 0 {
			b.WriteString(constants.PageJoinSeparator)
		}
		b.WriteString(PageHeader(i + 1))
		b.WriteString(page)
	}
	return b.String()
}
