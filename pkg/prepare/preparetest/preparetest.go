// Package preparetest builds small image and PDF fixtures for tests.
package preparetest

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
)

// PNG returns a w x h PNG with a black horizontal line through the middle
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// PDF returns a minimal, well-formed PDF with the given number of empty pages
func PDF(pages int) []byte {
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages),
	}
	for i := 0; i < pages; i++ {
		objects = append(objects, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// Renderer is a PageRenderer that returns a fixed image and records calls
type Renderer struct {
	Image  []byte
	FailAt int // zero-based page that fails; negative disables
	Err    error

	mu    sync.Mutex
	pages []int
	paths []string
}

// RenderPage implements interfaces.PageRenderer
func (r *Renderer) RenderPage(_ context.Context, pdfPath string, pageIndex, _ int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, pageIndex)
	r.paths = append(r.paths, pdfPath)
	if r.FailAt >= 0 && pageIndex == r.FailAt {
		if r.Err != nil {
			return nil, r.Err
		}
		return nil, fmt.Errorf("render page %d failed", pageIndex+1)
	}
	return r.Image, nil
}

// Pages returns the page indexes rendered so far
func (r *Renderer) Pages() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.pages...)
}

// Paths returns the PDF paths passed to RenderPage
func (r *Renderer) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
