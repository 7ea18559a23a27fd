package normalize

import "github.com/gardar/scanstamp/pkg/stamp"

// Pipeline runs the per-page stages in their fixed order.
type Pipeline struct {
	Scale      float64
	Layout     stamp.Layout
	Header     stamp.Band
	Footer     stamp.Band
	OnlyRotate bool
}

// Enabled reports whether the pipeline would change anything at all.
func (pl Pipeline) Enabled() bool {
	return pl.OnlyRotate || pl.Header.Enabled || pl.Footer.Enabled
}

// Process normalizes base for a detector reading raw. runCounter is the
// zero-based position of the file in the batch and drives dynamic stamp
// text.
func (pl Pipeline) Process(base Page, raw int, c Capturer, runCounter int) (Page, error) {
	p := Rotate(base, raw)
	if pl.OnlyRotate {
		return p, nil
	}
	p, err := TransformContent(p, c, pl.Scale)
	if err != nil {
		return p, err
	}
	p = ReprojectAnnotations(p, pl.Scale)
	return Stamp(p, pl.Layout, pl.Header, pl.Footer, runCounter), nil
}
