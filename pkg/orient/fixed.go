package orient

import "context"

// Fixed reports every page as upright. It is used when detection is turned
// off, so Confidence is set high enough not to raise flags.
type Fixed struct {
	Confidence float64
}

// Readings implements Reader.
func (f Fixed) Readings(_ context.Context, _ []byte, pageCount int) ([]Reading, error) {
	readings := make([]Reading, pageCount)
	for i := range readings {
		readings[i] = Reading{PageIndex: i, Confidence: f.Confidence}
	}
	return readings, nil
}

// Close implements Reader.
func (Fixed) Close() error { return nil }
