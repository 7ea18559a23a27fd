//go:build !ocr

package orient

import (
	"context"
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when the Tesseract oracle is requested but
// was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract is the stub oracle used when the "ocr" build tag is not set.
type Tesseract struct{}

// NewTesseract returns ErrOCRNotEnabled.
func NewTesseract(lang, tessdata string) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Detect returns ErrOCRNotEnabled.
func (t *Tesseract) Detect(context.Context, image.Image, int) (Reading, error) {
	return Reading{}, ErrOCRNotEnabled
}

// Close is a no-op. It is safe to call on a nil oracle.
func (t *Tesseract) Close() error { return nil }
