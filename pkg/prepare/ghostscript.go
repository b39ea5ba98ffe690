package prepare

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// GhostscriptRenderer renders PDF pages to PNG with the Ghostscript CLI
type GhostscriptRenderer struct {
	path string
}

// NewGhostscriptRenderer creates a renderer. An empty path searches the
// platform's usual install locations.
func NewGhostscriptRenderer(path string) *GhostscriptRenderer {
	return &GhostscriptRenderer{path: path}
}

func (g *GhostscriptRenderer) findGhostscriptPath() (string, error) {
	candidates := append([]string{g.path}, constants.GetPlatformConfig().GhostscriptPaths...)
	if path, ok := utils.FindExecutable(candidates...); ok {
		return path, nil
	}
	return "", utils.NewNotFoundError("Ghostscript not found. Please install Ghostscript", nil)
}

// RenderPage renders one zero-based page as PNG bytes
func (g *GhostscriptRenderer) RenderPage(ctx context.Context, pdfPath string, pageIndex, dpi int) ([]byte, error) {
	gsPath, err := g.findGhostscriptPath()
	if err != nil {
		return nil, err
	}

	page := pageIndex + 1
	cmd := exec.CommandContext(ctx, gsPath,
		"-q",
		"-dNOPAUSE",
		"-dBATCH",
		"-dSAFER",
		"-sDEVICE=png16m",
		fmt.Sprintf("-r%d", dpi),
		fmt.Sprintf("-dFirstPage=%d", page),
		fmt.Sprintf("-dLastPage=%d", page),
		"-sOutputFile=-",
		pdfPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(ctx.Err(), utils.ErrorTypeTimeout, fmt.Sprintf("rendering page %d cancelled", page))
		}
		msg := strings.TrimSpace(stderr.String())
		return nil, utils.NewSystemError(fmt.Sprintf("ghostscript failed on page %d: %s", page, msg), err)
	}
	if stdout.Len() == 0 {
		return nil, utils.NewSystemError(fmt.Sprintf("ghostscript produced no output for page %d", page), nil)
	}

	return stdout.Bytes(), nil
}
