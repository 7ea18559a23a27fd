//go:build ocr

package orient

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/gardar/scanstamp/pkg/hocr"
)

// Tesseract detects orientation by recognizing the page at each of the four
// right-angle turns and keeping the turn whose words Tesseract is most sure
// about.
//
// It requires Tesseract to be installed. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates an oracle for lang ("eng", "deu+eng", ...).
// tessdata may be empty to use the system default. Close the oracle to free
// the engine.
func NewTesseract(lang, tessdata string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if tessdata != "" {
		if err := client.SetTessdataPrefix(tessdata); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting tessdata prefix: %w", err)
		}
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting language: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	return &Tesseract{client: client}, nil
}

// Detect implements Oracle.
func (t *Tesseract) Detect(ctx context.Context, img image.Image, pageIndex int) (Reading, error) {
	scores := make(map[int]float64, len(candidates))
	for _, deg := range candidates {
		if err := ctx.Err(); err != nil {
			return Reading{}, err
		}
		score, err := t.score(RotateCCW(img, deg))
		if err != nil {
			return Reading{}, fmt.Errorf("turn %d: %w", deg, err)
		}
		scores[deg] = score
	}
	deg, conf := Pick(scores)
	return Reading{PageIndex: pageIndex, Degrees: deg, Confidence: conf}, nil
}

func (t *Tesseract) score(img image.Image) (float64, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, fmt.Errorf("encoding raster: %w", err)
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("failed to set image: %w", err)
	}
	out, err := t.client.HOCRText()
	if err != nil {
		return 0, fmt.Errorf("OCR failed: %w", err)
	}
	doc, err := hocr.ParseHOCR([]byte(out))
	if err != nil {
		// A blank page produces no ocr_page content worth scoring.
		return 0, nil
	}
	return ScoreWords(hocr.AllWords(doc)), nil
}

// Close releases the Tesseract engine.
func (t *Tesseract) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
