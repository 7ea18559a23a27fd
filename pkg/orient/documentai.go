package orient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gardar/scanstamp/pkg/gdocai"
)

// documentAIScale brings Document AI confidences (0..1) onto the same
// scale the raster oracles use.
const documentAIScale = 10

// DocumentAI reads orientations from Google Document AI. The whole PDF is
// sent in one request.
type DocumentAI struct {
	Processor gdocai.Processor
	Logger    *slog.Logger
	// DumpResponse logs the raw response as JSON at debug level.
	DumpResponse bool
}

// Readings implements Reader.
func (d *DocumentAI) Readings(ctx context.Context, pdf []byte, pageCount int) ([]Reading, error) {
	doc, err := d.Processor.ProcessDocument(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if d.DumpResponse {
		if js, err := gdocai.ToJSON(doc); err == nil {
			logger.Debug("document ai response", "json", js)
		}
	}

	pages := gdocai.PageOrientations(doc)
	if len(pages) != pageCount {
		return nil, fmt.Errorf("%w: document ai returned %d pages, document has %d",
			ErrDetection, len(pages), pageCount)
	}

	readings := make([]Reading, pageCount)
	for i, p := range pages {
		readings[i] = Reading{
			PageIndex:  i,
			Degrees:    p.Degrees,
			Confidence: p.Confidence * documentAIScale,
		}
		if !p.Known {
			readings[i].Confidence = 0
		}
		logger.Debug("page orientation", "page", p.PageNumber, "degrees", p.Degrees, "confidence", readings[i].Confidence)
	}
	return readings, nil
}

// Close closes the processor if it holds a connection.
func (d *DocumentAI) Close() error {
	if c, ok := d.Processor.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
