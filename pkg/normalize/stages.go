package normalize

import (
	"errors"
	"fmt"

	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/stamp"
)

// ErrContentCapture is returned when a page's original content cannot be
// captured for re-drawing.
var ErrContentCapture = errors.New("content capture failed")

// HighlightAlpha is the opacity of flattened highlight overlays.
const HighlightAlpha = 0.25

// Rotate applies the rotation resolver for a detector reading raw.
func Rotate(p Page, raw int) Page {
	out := p.clone()
	out.Rotation = geom.ResolveRotation(p.Rotation, raw)
	return out
}

// TransformContent erases the page and draws its original content again,
// scaled by s around the page center.
func TransformContent(p Page, c Capturer, s float64) (Page, error) {
	content, err := c.Capture(p.Index)
	if err != nil {
		return p, fmt.Errorf("%w: page %d: %v", ErrContentCapture, p.Index+1, err)
	}
	if content == nil {
		return p, fmt.Errorf("%w: page %d: no content", ErrContentCapture, p.Index+1)
	}
	return p.withOps(
		SaveState{},
		FillRect{Rect: geom.Rect{W: p.Width, H: p.Height}, Color: White, Alpha: 1},
		Concat{M: geom.ScaleToCenter(p.Width, p.Height, s)},
		DrawContent{Content: content},
		RestoreState{},
	), nil
}

// ReprojectAnnotations moves every annotation to where its target landed
// after TransformContent. Highlights are removed and painted as translucent
// orange boxes instead.
func ReprojectAnnotations(p Page, s float64) Page {
	out := p.clone()
	out.Annotations = out.Annotations[:0]
	for _, a := range p.Annotations {
		r := geom.ScaleRect(a.Rect, p.Width, p.Height, s)
		if a.Subtype == SubtypeHighlight {
			out.Ops = append(out.Ops, FillRect{Rect: r, Color: Orange, Alpha: HighlightAlpha})
			continue
		}
		a.Rect = r
		out.Annotations = append(out.Annotations, a)
	}
	return out
}

// Stamp draws the header and footer rows upright in the page's displayed
// frame.
func Stamp(p Page, l stamp.Layout, header, footer stamp.Band, runCounter int) Page {
	rw, rh := p.DisplaySize()
	rows := l.Rows(header, footer, runCounter, rw, rh)
	if len(rows) == 0 {
		return p.clone()
	}
	ops := []Op{SaveState{}, Concat{M: geom.CanvasRotation(p.Rotation, rw, rh)}}
	for _, r := range rows {
		ops = append(ops, DrawRow{Row: r})
	}
	ops = append(ops, RestoreState{})
	return p.withOps(ops...)
}
