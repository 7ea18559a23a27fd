package stamp

import "github.com/gardar/scanstamp/pkg/geom"

// Align is the horizontal alignment of a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Cell is a resolved piece of stamp text.
type Cell struct {
	Text  string
	Align Align
}

// Row is a positioned header or footer, in the upright frame of the page.
// Rect spans the full page width.
type Row struct {
	Rect  geom.Rect
	Cells [2]Cell
}

// Layout holds the fixed placement parameters of the stamp rows.
type Layout struct {
	MarginTop    float64
	MarginBottom float64
	RowHeight    float64
	Padding      float64 // horizontal padding inside each cell
}

// DefaultLayout matches the placement used for scanned office documents:
// header 30pt below the top edge, footer on the bottom edge.
var DefaultLayout = Layout{
	MarginTop:    30,
	MarginBottom: 0,
	RowHeight:    20,
	Padding:      10,
}

// Rows returns the rows for a page whose displayed size is rw x rh.
// The header row's lower edge sits at rh-MarginTop, the footer row's at
// MarginBottom. Disabled bands yield no row.
func (l Layout) Rows(header, footer Band, runCounter int, rw, rh float64) []Row {
	var rows []Row
	if header.Enabled {
		rows = append(rows, l.row(header, runCounter, rw, rh-l.MarginTop))
	}
	if footer.Enabled {
		rows = append(rows, l.row(footer, runCounter, rw, l.MarginBottom))
	}
	return rows
}

func (l Layout) row(b Band, runCounter int, rw, y float64) Row {
	return Row{
		Rect: geom.Rect{X: 0, Y: y, W: rw, H: l.RowHeight},
		Cells: [2]Cell{
			{Text: b.Left.Resolve(runCounter), Align: AlignLeft},
			{Text: b.Right.Resolve(runCounter), Align: AlignRight},
		},
	}
}
