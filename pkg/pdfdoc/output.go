package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/normalize"
	"github.com/gardar/scanstamp/pkg/stamp"
)

// ErrClosed is returned when an Output is used after Save or Close.
var ErrClosed = errors.New("output already closed")

// template is a captured input page.
type template struct {
	id   int
	w, h float64
}

func (t template) Size() (float64, float64) { return t.w, t.h }

// Output assembles one output PDF from the pages of a Document.
type Output struct {
	doc      *Document
	pdf      *fpdf.Fpdf
	importer *gofpdi.Importer
	rs       io.ReadSeeker
	font     Font
	padding  float64
	logger   *slog.Logger

	templates map[int]template
	carried   map[int][]carried // by zero-based output page
	dropped   map[string]int
	closed    bool
}

// OutputOptions configures how stamp text is printed.
type OutputOptions struct {
	Font    Font
	Padding float64
	Logger  *slog.Logger
}

// NewOutput starts an empty output document.
func (d *Document) NewOutput(opts OutputOptions) (*Output, error) {
	font := opts.Font
	if font.Family == "" {
		font = DefaultFont
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(opts.Padding)
	if font.File != "" {
		pdf.AddUTF8Font(font.Family, font.Style, font.File)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	return &Output{
		doc:       d,
		pdf:       pdf,
		importer:  gofpdi.NewImporter(),
		rs:        io.ReadSeeker(bytes.NewReader(d.raw)),
		font:      font,
		padding:   opts.Padding,
		logger:    logger,
		templates: make(map[int]template),
		carried:   make(map[int][]carried),
		dropped:   make(map[string]int),
	}, nil
}

// Capture imports input page i as a reusable template.
func (o *Output) Capture(i int) (c normalize.Content, err error) {
	if o.closed {
		return nil, ErrClosed
	}
	if t, ok := o.templates[i]; ok {
		return t, nil
	}
	if i < 0 || i >= len(o.doc.pages) {
		return nil, fmt.Errorf("page %d out of range", i+1)
	}

	// gofpdi panics on damaged input instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importing page %d: %v", i+1, r)
		}
	}()

	id := o.importer.ImportPageFromStream(o.pdf, &o.rs, i+1, "/MediaBox")
	if err := o.pdf.Error(); err != nil {
		return nil, fmt.Errorf("importing page %d: %w", i+1, err)
	}

	// gofpdi sizes a template with /Rotate applied, the same displayed size
	// the Document reports. The raw MediaBox would shrink rotated pages.
	t := template{id: id, w: o.doc.pages[i].width, h: o.doc.pages[i].height}
	o.templates[i] = t
	return t, nil
}

// BasePage describes input page i as it is: its captured content drawn
// full size and its annotations.
func (o *Output) BasePage(i int) (normalize.Page, error) {
	c, err := o.Capture(i)
	if err != nil {
		return normalize.Page{}, fmt.Errorf("%w: %v", normalize.ErrContentCapture, err)
	}
	sp := o.doc.pages[i]
	annots := make([]normalize.Annotation, len(sp.annots))
	copy(annots, sp.annots)
	return normalize.Page{
		Index:       i,
		Width:       sp.width,
		Height:      sp.height,
		Annotations: annots,
		Ops:         []normalize.Op{normalize.DrawContent{Content: c}},
	}, nil
}

// WritePage appends p to the output.
func (o *Output) WritePage(p normalize.Page) error {
	if o.closed {
		return ErrClosed
	}
	rw, rh := p.DisplaySize()
	o.pdf.AddPageFormat("P", fpdf.SizeType{Wd: rw, Ht: rh})

	display := geom.DisplayMatrix(p.Rotation, p.Width, p.Height)
	r := renderer{o: o, pageHeight: rh}

	o.pdf.TransformBegin()
	r.concat(display)
	for _, op := range p.Ops {
		if err := r.op(op); err != nil {
			return fmt.Errorf("page %d: %w", p.Index+1, err)
		}
	}
	o.pdf.TransformEnd()

	page := o.pdf.PageNo() - 1
	for _, a := range p.Annotations {
		o.annotation(page, a, display)
	}

	if err := o.pdf.Error(); err != nil {
		return fmt.Errorf("page %d: %w", p.Index+1, err)
	}
	return nil
}

// annotation queues the input dictionary of a for output page page, with
// its rectangle moved onto that page.
func (o *Output) annotation(page int, a normalize.Annotation, display geom.Matrix) {
	data, _ := a.Payload.(*AnnotData)
	if data == nil || data.Dict == nil {
		o.dropped[a.Subtype]++
		return
	}
	o.logger.Debug("carrying annotation", "page", page+1, "subtype", a.Subtype, "contents", data.Contents)
	o.carried[page] = append(o.carried[page], carried{dict: data.Dict, rect: display.ApplyRect(a.Rect)})
}

// Save writes the document to path and closes the output.
func (o *Output) Save(path string) error {
	if o.closed {
		return ErrClosed
	}
	o.closed = true
	o.reportDropped()

	var buf bytes.Buffer
	if err := o.pdf.Output(&buf); err != nil {
		return err
	}
	data := buf.Bytes()
	if len(o.carried) > 0 {
		var err error
		data, err = appendAnnotations(data, o.carried, o.doc.objects, o.doc.pageNums)
		if err != nil {
			return fmt.Errorf("writing annotations: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Close discards the output. It is safe to call more than once and after
// Save.
func (o *Output) Close() error {
	o.closed = true
	o.templates = nil
	o.rs = nil
	return nil
}

func (o *Output) reportDropped() {
	if len(o.dropped) == 0 {
		return
	}
	kinds := make([]string, 0, len(o.dropped))
	for k := range o.dropped {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		o.logger.Warn("annotation not carried over", "subtype", k, "count", o.dropped[k])
	}
}

// renderer turns display list ops into fpdf calls. fpdf places shapes in a
// top-left coordinate system, so every y is flipped against the page height.
type renderer struct {
	o          *Output
	pageHeight float64
}

func (r renderer) op(op normalize.Op) error {
	pdf := r.o.pdf
	switch op := op.(type) {
	case normalize.SaveState:
		pdf.TransformBegin()
	case normalize.RestoreState:
		pdf.TransformEnd()
	case normalize.Concat:
		r.concat(op.M)
	case normalize.FillRect:
		r.fill(op)
	case normalize.DrawContent:
		t, ok := op.Content.(template)
		if !ok {
			return fmt.Errorf("content of type %T was not captured by this output", op.Content)
		}
		r.o.importer.UseImportedTemplate(pdf, t.id, 0, r.pageHeight-t.h, t.w, t.h)
	case normalize.DrawRow:
		r.row(op.Row)
	default:
		return fmt.Errorf("unsupported op %T", op)
	}
	return nil
}

func (r renderer) concat(m geom.Matrix) {
	if m.IsIdentity() {
		return
	}
	r.o.pdf.Transform(fpdf.TransformMatrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F})
}

func (r renderer) fill(op normalize.FillRect) {
	pdf := r.o.pdf
	pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
	translucent := op.Alpha < 1
	if translucent {
		pdf.SetAlpha(op.Alpha, "Normal")
	}
	pdf.Rect(op.Rect.X, r.pageHeight-op.Rect.Y-op.Rect.H, op.Rect.W, op.Rect.H, "F")
	if translucent {
		pdf.SetAlpha(1, "Normal")
	}
}

func (r renderer) row(row stamp.Row) {
	pdf := r.o.pdf
	font := r.o.font
	pdf.SetFont(font.Family, font.Style, font.Size)
	pdf.SetTextColor(0, 0, 0)

	half := row.Rect.W / 2
	y := r.pageHeight - row.Rect.Y - row.Rect.H
	for i, cell := range row.Cells {
		align := "LM"
		if cell.Align == stamp.AlignRight {
			align = "RM"
		}
		pdf.SetXY(row.Rect.X+float64(i)*half, y)
		pdf.CellFormat(half, row.Rect.H, font.encode(cell.Text), "", 0, align, false, 0, "")
	}
}
