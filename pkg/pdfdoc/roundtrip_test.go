package pdfdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/reader"

	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/normalize"
	"github.com/gardar/scanstamp/pkg/stamp"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

// buildPDF lays out objs as objects 1..n with a catalog in object 1.
func buildPDF(objs ...string) []byte {
	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

func stream(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
}

const blueBox = "0 0 1 rg 50 50 200 300 re f"

// annotatedPDF is a single 600x800 page with a text note and its popup, a
// URI link and a highlight.
func annotatedPDF() []byte {
	return buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 600 800] /Resources << /ProcSet [/PDF] >> /Contents 4 0 R /Annots [5 0 R 6 0 R 7 0 R 9 0 R] >>",
		stream(blueBox),
		"<< /Type /Annot /Subtype /Text /Rect [100 600 130 630] /Contents (Reviewer note) /Name /Comment /C [1 0 0] /P 3 0 R /Popup 6 0 R >>",
		"<< /Type /Annot /Subtype /Popup /Rect [140 600 300 700] /Parent 5 0 R >>",
		"<< /Type /Annot /Subtype /Link /Rect [50 50 250 80] /Border [0 0 0] /A 8 0 R >>",
		"<< /S /URI /URI (https://example.org/akte) >>",
		"<< /Type /Annot /Subtype /Highlight /Rect [300 400 400 420] /QuadPoints [300 420 400 420 300 400 400 400] /C [1 1 0] >>",
	)
}

// writeThrough runs every page of raw through pl and saves the result.
func writeThrough(t *testing.T, raw []byte, pl normalize.Pipeline, detected int) string {
	t.Helper()
	doc, err := Open(raw)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	out, err := doc.NewOutput(OutputOptions{Padding: 10})
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}
	defer out.Close()
	for i := 0; i < doc.PageCount(); i++ {
		base, err := out.BasePage(i)
		if err != nil {
			t.Fatalf("BasePage(%d): %v", i, err)
		}
		p, err := pl.Process(base, detected, out, 0)
		if err != nil {
			t.Fatalf("Process(%d): %v", i, err)
		}
		if err := out.WritePage(p); err != nil {
			t.Fatalf("WritePage(%d): %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := out.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func reopen(t *testing.T, path string) *Document {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Open(raw)
	if err != nil {
		t.Fatalf("reopening output: %v", err)
	}
	return doc
}

// pageContent returns the decoded content stream of page i of the file.
func pageContent(t *testing.T, path string, i int) string {
	t.Helper()
	r, err := reader.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	w, err := walkPages(r)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := r.Resolve(w.leaves[i].dict.Get("Contents"))
	if err != nil {
		t.Fatal(err)
	}
	var streams []core.Object
	switch v := obj.(type) {
	case core.Array:
		streams = v
	default:
		streams = []core.Object{v}
	}
	var b strings.Builder
	for _, s := range streams {
		resolved, err := r.Resolve(s)
		if err != nil {
			t.Fatal(err)
		}
		st, ok := resolved.(*core.Stream)
		if !ok {
			t.Fatalf("contents of page %d is %T", i+1, resolved)
		}
		data, err := st.Decode()
		if err != nil {
			t.Fatal(err)
		}
		b.Write(data)
	}
	return b.String()
}

var templateScale = regexp.MustCompile(`q ([\d.]+) 0 0 ([\d.]+) \S+ \S+ cm /GOFPDITPL\d+ Do`)

func TestRotatedInputKeepsScale(t *testing.T) {
	raw := buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 600 800] /Rotate 90 /Resources << /ProcSet [/PDF] >> /Contents 4 0 R >>",
		stream(blueBox),
	)
	doc, err := Open(raw)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := doc.PageSize(0); w != 800 || h != 600 {
		t.Fatalf("PageSize = %vx%v, want 800x600", w, h)
	}

	out, err := doc.NewOutput(OutputOptions{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := out.Capture(0)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 800 || h != 600 {
		t.Errorf("captured size = %vx%v, want 800x600", w, h)
	}
	base, err := out.BasePage(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.WritePage(base); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := out.Save(path); err != nil {
		t.Fatal(err)
	}

	if w, h := reopen(t, path).PageSize(0); w != 800 || h != 600 {
		t.Errorf("output page = %vx%v, want 800x600", w, h)
	}
	m := templateScale.FindStringSubmatch(pageContent(t, path, 0))
	if m == nil {
		t.Fatal("no template draw in page content")
	}
	if m[1] != "1.0000" || m[2] != "1.0000" {
		t.Errorf("template drawn at scale %s x %s, want 1.0000 x 1.0000", m[1], m[2])
	}
}

func TestNormalizedRoundTrip(t *testing.T) {
	pl := normalize.Pipeline{
		Scale:  0.92,
		Layout: stamp.DefaultLayout,
		Header: stamp.Band{
			Enabled: true,
			Left:    stamp.Side{Mode: stamp.Dynamic, Text: "L Header", Count: 100000},
			Right:   stamp.Side{Mode: stamp.Static, Text: "R Header"},
		},
	}
	// A reading of 90 resolves to a display rotation of 270.
	path := writeThrough(t, annotatedPDF(), pl, 90)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(raw, []byte("/ca 0.250")) {
		t.Error("no translucent fill state for the flattened highlight")
	}

	doc := reopen(t, path)
	if w, h := doc.PageSize(0); w != 800 || h != 600 {
		t.Errorf("output page = %vx%v, want 800x600", w, h)
	}

	content := pageContent(t, path, 0)
	if !strings.Contains(content, "0.00000 1.00000 -1.00000 0.00000 800.00000 0.00000 cm") {
		t.Error("page content is not turned by the display rotation")
	}
	for _, text := range []string{"(L Header - 100000)", "(R Header)"} {
		if !strings.Contains(content, text) {
			t.Errorf("stamp text %s missing from page content", text)
		}
	}

	got := map[string]*AnnotData{}
	rects := map[string]geom.Rect{}
	for _, a := range doc.pages[0].annots {
		got[a.Subtype] = a.Payload.(*AnnotData)
		rects[a.Subtype] = a.Rect
	}
	if diff := cmp.Diff([]string{"Link", "Text"}, sortedKeys(got)); diff != "" {
		t.Fatalf("annotation subtypes (-want +got):\n%s", diff)
	}

	display := geom.DisplayMatrix(270, 600, 800)
	wantRects := map[string]geom.Rect{
		"Text": display.ApplyRect(geom.ScaleRect(geom.RectFromCorners(100, 600, 130, 630), 600, 800, 0.92)),
		"Link": display.ApplyRect(geom.ScaleRect(geom.RectFromCorners(50, 50, 250, 80), 600, 800, 0.92)),
	}
	if diff := cmp.Diff(wantRects, rects, approx); diff != "" {
		t.Errorf("annotation rects (-want +got):\n%s", diff)
	}

	note := got["Text"]
	if note.Contents != "Reviewer note" {
		t.Errorf("Contents = %q", note.Contents)
	}
	if name, _ := note.Dict.GetName("Name"); name != "Comment" {
		t.Errorf("Name = %q, want Comment", name)
	}
	if diff := cmp.Diff(core.Array{core.Int(1), core.Int(0), core.Int(0)}, note.Dict.Get("C")); diff != "" {
		t.Errorf("color (-want +got):\n%s", diff)
	}
	if note.Dict.Get("Popup") != nil {
		t.Error("popup reference was carried over")
	}

	ref, ok := got["Link"].Dict.Get("A").(core.IndirectRef)
	if !ok {
		t.Fatalf("link action is %T, want a reference", got["Link"].Dict.Get("A"))
	}
	action, ok := doc.objects[ref.Number].(core.Dict)
	if !ok {
		t.Fatalf("link action object %d is %T", ref.Number, doc.objects[ref.Number])
	}
	if uri, _ := action.Get("URI").(core.String); uri != "https://example.org/akte" {
		t.Errorf("URI = %q", uri)
	}
}

func TestLinkDestinationFollowsPage(t *testing.T) {
	raw := buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 600 800] /Resources << /ProcSet [/PDF] >> /Contents 5 0 R /Annots [6 0 R] >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 600 800] /Resources << /ProcSet [/PDF] >> /Contents 5 0 R >>",
		stream(blueBox),
		"<< /Type /Annot /Subtype /Link /Rect [50 700 250 730] /Dest [4 0 R /XYZ 0 800 null] >>",
	)
	path := writeThrough(t, raw, normalize.Pipeline{OnlyRotate: true}, 0)

	doc := reopen(t, path)
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", doc.PageCount())
	}
	annots := doc.pages[0].annots
	if len(annots) != 1 {
		t.Fatalf("got %d annotations on page 1, want 1", len(annots))
	}
	dest, ok := annots[0].Payload.(*AnnotData).Dict.GetArray("Dest")
	if !ok || len(dest) == 0 {
		t.Fatal("link lost its destination")
	}
	ref, ok := dest[0].(core.IndirectRef)
	if !ok {
		t.Fatalf("destination page is %T", dest[0])
	}
	if idx, ok := doc.pageNums[ref.Number]; !ok || idx != 1 {
		t.Errorf("destination points at object %d (page index %d, found %v), want page 2", ref.Number, idx, ok)
	}
}

func sortedKeys(m map[string]*AnnotData) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
