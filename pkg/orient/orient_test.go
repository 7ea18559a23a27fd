package orient

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/google/go-cmp/cmp"

	"github.com/gardar/scanstamp/pkg/hocr"
)

func TestScoreWords(t *testing.T) {
	words := []hocr.Word{
		{Text: "Invoice", Confidence: 90},
		{Text: "2024", Confidence: 80},
		{Text: "~", Confidence: 99},
		{Text: "ab", Confidence: 99},
		{Text: "lll", Confidence: 97, BBox: hocr.BoundingBox{X1: 10, Y1: 10, X2: 14, Y2: 40}},
		{Text: "Total", Confidence: 70, BBox: hocr.BoundingBox{X1: 100, Y1: 300, X2: 260, Y2: 340}},
	}
	if got := ScoreWords(words); got != 80 {
		t.Errorf("ScoreWords = %g, want 80", got)
	}
	if got := ScoreWords(nil); got != 0 {
		t.Errorf("ScoreWords(nil) = %g, want 0", got)
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		name     string
		scores   map[int]float64
		wantDeg  int
		wantConf float64
	}{
		{"clear winner", map[int]float64{0: 20, 90: 85, 180: 30, 270: 25}, 90, 5.5},
		{"close call", map[int]float64{0: 60, 90: 10, 180: 55, 270: 10}, 0, 0.5},
		{"tie prefers upright", map[int]float64{0: 40, 180: 40}, 0, 0},
		{"single candidate", map[int]float64{270: 70}, 270, 7},
		{"empty", map[int]float64{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deg, conf := Pick(tt.scores)
			if deg != tt.wantDeg || conf != tt.wantConf {
				t.Errorf("Pick = (%d, %g), want (%d, %g)", deg, conf, tt.wantDeg, tt.wantConf)
			}
		})
	}
}

// marked returns a 4x2 image with a single black pixel at (x, y).
func marked(x, y int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for yy := 0; yy < 2; yy++ {
		for xx := 0; xx < 4; xx++ {
			img.Set(xx, yy, color.White)
		}
	}
	img.Set(x, y, color.Black)
	return img
}

func blackAt(img image.Image) (int, int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r == 0 {
				return x, y
			}
		}
	}
	return -1, -1
}

func TestRotateCCW(t *testing.T) {
	// The top-right pixel of a 4x2 image.
	src := marked(3, 0)
	tests := []struct {
		deg          int
		w, h         int
		wantX, wantY int
	}{
		{0, 4, 2, 3, 0},
		{90, 2, 4, 0, 0},
		{180, 4, 2, 0, 1},
		{270, 2, 4, 1, 3},
	}
	for _, tt := range tests {
		got := RotateCCW(src, tt.deg)
		if got.Bounds().Dx() != tt.w || got.Bounds().Dy() != tt.h {
			t.Errorf("deg %d: size %v, want %dx%d", tt.deg, got.Bounds().Size(), tt.w, tt.h)
			continue
		}
		if x, y := blackAt(got); x != tt.wantX || y != tt.wantY {
			t.Errorf("deg %d: marked pixel at (%d,%d), want (%d,%d)", tt.deg, x, y, tt.wantX, tt.wantY)
		}
	}
}

type fakeRasterizer struct {
	pages []int
	err   error
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ string, pageIndex, _ int) (image.Image, error) {
	f.pages = append(f.pages, pageIndex)
	if f.err != nil {
		return nil, f.err
	}
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

type scriptedOracle struct {
	readings []Reading
	closed   bool
}

func (o *scriptedOracle) Detect(_ context.Context, _ image.Image, pageIndex int) (Reading, error) {
	r := o.readings[pageIndex]
	r.PageIndex = -1
	return r, nil
}

func (o *scriptedOracle) Close() error {
	o.closed = true
	return nil
}

func TestRasterReader(t *testing.T) {
	oracle := &scriptedOracle{readings: []Reading{
		{Degrees: 0, Confidence: 8},
		{Degrees: 90, Confidence: 1.5},
	}}
	raster := &fakeRasterizer{}
	r := &RasterReader{Rasterizer: raster, Oracle: oracle}

	got, err := r.Readings(context.Background(), []byte("%PDF-1.4"), 2)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	want := []Reading{
		{PageIndex: 0, Degrees: 0, Confidence: 8},
		{PageIndex: 1, Degrees: 90, Confidence: 1.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, raster.pages); diff != "" {
		t.Errorf("rasterized pages (-want +got):\n%s", diff)
	}
	if err := r.Close(); err != nil || !oracle.closed {
		t.Errorf("Close() = %v, oracle closed = %v", err, oracle.closed)
	}
}

func TestRasterReaderError(t *testing.T) {
	r := &RasterReader{
		Rasterizer: &fakeRasterizer{err: errors.New("gs exploded")},
		Oracle:     &scriptedOracle{},
	}
	_, err := r.Readings(context.Background(), []byte("%PDF-1.4"), 1)
	if !errors.Is(err, ErrDetection) {
		t.Errorf("err = %v, want ErrDetection", err)
	}
}

func TestFixed(t *testing.T) {
	got, err := Fixed{Confidence: 10}.Readings(context.Background(), nil, 3)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	if len(got) != 3 || got[2].PageIndex != 2 || got[2].Degrees != 0 || got[2].Confidence != 10 {
		t.Errorf("unexpected readings %+v", got)
	}
}

type fakeProcessor struct {
	doc *documentaipb.Document
	err error
}

func (f fakeProcessor) ProcessDocument(context.Context, []byte) (*documentaipb.Document, error) {
	return f.doc, f.err
}

func TestDocumentAI(t *testing.T) {
	doc := &documentaipb.Document{Pages: []*documentaipb.Document_Page{
		{PageNumber: 1, Layout: &documentaipb.Document_Page_Layout{
			Orientation: documentaipb.Document_Page_Layout_PAGE_LEFT, Confidence: 0.5}},
		{PageNumber: 2, Layout: &documentaipb.Document_Page_Layout{
			Orientation: documentaipb.Document_Page_Layout_ORIENTATION_UNSPECIFIED, Confidence: 0.5}},
	}}
	r := &DocumentAI{Processor: fakeProcessor{doc: doc}}

	got, err := r.Readings(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("Readings: %v", err)
	}
	want := []Reading{
		{PageIndex: 0, Degrees: 270, Confidence: 5},
		{PageIndex: 1, Degrees: 0, Confidence: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("readings mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.Readings(context.Background(), nil, 3); !errors.Is(err, ErrDetection) {
		t.Errorf("page count mismatch: err = %v, want ErrDetection", err)
	}
	r.Processor = fakeProcessor{err: errors.New("quota")}
	if _, err := r.Readings(context.Background(), nil, 2); !errors.Is(err, ErrDetection) {
		t.Errorf("processor failure: err = %v, want ErrDetection", err)
	}
}
