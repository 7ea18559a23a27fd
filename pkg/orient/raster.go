package orient

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultDPI is the resolution pages are rendered at for detection. A4 at
// 300 dpi is 2480x3508 pixels.
const DefaultDPI = 300

// RasterReader renders each page and hands it to an Oracle. Only one page
// raster is alive at a time.
type RasterReader struct {
	Rasterizer Rasterizer
	Oracle     Oracle
	DPI        int
	Logger     *slog.Logger
}

// Readings implements Reader.
func (r *RasterReader) Readings(ctx context.Context, pdf []byte, pageCount int) ([]Reading, error) {
	dir, err := os.MkdirTemp("", "scanstamp-raster")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	logger := r.logger()

	readings := make([]Reading, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := r.Rasterizer.Rasterize(ctx, path, i, dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDetection, i+1, err)
		}
		reading, err := r.Oracle.Detect(ctx, img, i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDetection, i+1, err)
		}
		reading.PageIndex = i
		logger.Debug("page orientation", "page", i+1, "degrees", reading.Degrees, "confidence", reading.Confidence)
		readings = append(readings, reading)
	}
	return readings, nil
}

// Close releases the oracle.
func (r *RasterReader) Close() error {
	if r.Oracle == nil {
		return nil
	}
	return r.Oracle.Close()
}

func (r *RasterReader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
