// Package orient detects how each page of a scanned PDF is turned.
//
// Detection is split the way the engines need it: an Oracle looks at one
// rasterized page at a time, a Rasterizer turns a PDF page into pixels, and
// a Reader produces one Reading per page for a whole document. Engines that
// read PDFs directly (Document AI) implement Reader without going through a
// raster.
//
// Degrees in a Reading is the clockwise turn observed in the page content:
// 0 is upright, 90 means the text runs top to bottom and so on. Confidence
// has no fixed upper bound; below 2.0 a reading is considered unreliable.
package orient

import (
	"context"
	"errors"
	"image"
)

// ErrDetection wraps every failure of an orientation engine.
var ErrDetection = errors.New("orientation detection failed")

// Reading is the detected orientation of one page.
type Reading struct {
	PageIndex  int
	Degrees    int
	Confidence float64
}

// Oracle classifies the orientation of one rasterized page.
type Oracle interface {
	Detect(ctx context.Context, img image.Image, pageIndex int) (Reading, error)
	Close() error
}

// Rasterizer renders a single page (zero based) of the PDF file at path.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string, pageIndex, dpi int) (image.Image, error)
}

// Reader returns one reading per page of a PDF document, in page order.
type Reader interface {
	Readings(ctx context.Context, pdf []byte, pageCount int) ([]Reading, error)
	Close() error
}
