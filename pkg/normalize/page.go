// Package normalize turns an input page description into the normalized
// output description: rotation corrected, content shrunk around the center,
// annotations re-projected and header/footer rows stamped.
//
// Pages are values. Every stage takes a Page and returns a new Page with the
// stage's ops appended, so a stage never mutates its input and the writer
// only runs once all stages are done.
package normalize

import (
	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/stamp"
)

// Content is a replayable capture of an input page's drawing. It is created
// by the PDF adapter and is opaque here.
type Content interface {
	// Size is the width and height the capture was taken at.
	Size() (w, h float64)
}

// Capturer produces the content of an original, unmodified input page.
type Capturer interface {
	Capture(pageIndex int) (Content, error)
}

// Color is an RGB triple with 0..255 channels.
type Color struct {
	R, G, B int
}

var (
	White  = Color{255, 255, 255}
	Orange = Color{255, 165, 0}
)

// Op is one element of a page's display list.
type Op interface {
	isOp()
}

// SaveState pushes the graphics state.
type SaveState struct{}

// RestoreState pops the graphics state.
type RestoreState struct{}

// Concat multiplies the current transform by M.
type Concat struct {
	M geom.Matrix
}

// FillRect paints Rect in Color. Alpha below 1 paints translucently.
type FillRect struct {
	Rect  geom.Rect
	Color Color
	Alpha float64
}

// DrawContent replays captured page content with its lower-left corner at
// the origin of the current transform.
type DrawContent struct {
	Content Content
}

// DrawRow prints a stamp row.
type DrawRow struct {
	Row stamp.Row
}

func (SaveState) isOp()    {}
func (RestoreState) isOp() {}
func (Concat) isOp()       {}
func (FillRect) isOp()     {}
func (DrawContent) isOp()  {}
func (DrawRow) isOp()      {}

// Annotation is a page annotation as seen by the pipeline. Payload belongs to
// the PDF adapter and carries every property the pipeline does not touch.
type Annotation struct {
	Subtype string
	Rect    geom.Rect
	Payload any
}

// SubtypeHighlight is the annotation subtype that gets flattened into an
// overlay.
const SubtypeHighlight = "Highlight"

// Page describes one output page. Width and Height are the unrotated
// page size; Rotation is the clockwise display rotation in degrees.
type Page struct {
	Index       int
	Width       float64
	Height      float64
	Rotation    int
	Annotations []Annotation
	Ops         []Op
}

// DisplaySize is the size of the page as a viewer shows it.
func (p Page) DisplaySize() (float64, float64) {
	return geom.RotatedSize(p.Width, p.Height, p.Rotation)
}

// clone copies the slices so the returned page can be extended without
// touching p.
func (p Page) clone() Page {
	out := p
	out.Ops = append([]Op(nil), p.Ops...)
	out.Annotations = append([]Annotation(nil), p.Annotations...)
	return out
}

func (p Page) withOps(ops ...Op) Page {
	out := p.clone()
	out.Ops = append(out.Ops, ops...)
	return out
}
