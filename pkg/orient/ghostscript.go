package orient

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Ghostscript renders pages with the gs command-line tool.
type Ghostscript struct {
	// Path of the gs binary; "gs" from PATH when empty.
	Path string
}

// Rasterize implements Rasterizer.
func (g Ghostscript) Rasterize(ctx context.Context, path string, pageIndex, dpi int) (image.Image, error) {
	dir, err := os.MkdirTemp("", "scanstamp-gs")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	bin := g.Path
	if bin == "" {
		bin = "gs"
	}
	pngName := filepath.Join(dir, "page.png")
	page := pageIndex + 1

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin,
		"-q", "-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=png16m", fmt.Sprintf("-r%d", dpi),
		fmt.Sprintf("-dFirstPage=%d", page), fmt.Sprintf("-dLastPage=%d", page),
		"-o", pngName,
		path)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("ghostscript: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("ghostscript: %w", err)
	}

	fd, err := os.Open(pngName)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, err := png.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("decoding page %d raster: %w", page, err)
	}
	return img, nil
}

// Available reports whether the gs binary can be found.
func (g Ghostscript) Available() bool {
	bin := g.Path
	if bin == "" {
		bin = "gs"
	}
	_, err := exec.LookPath(bin)
	return err == nil
}
