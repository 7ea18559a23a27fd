package hocr

// HOCR is a parsed hOCR document.
type HOCR struct {
	Title    string
	Language string
	Metadata map[string]string // ocr-system, ocr-capabilities, ...
	Pages    []Page
}

// Page is one element with class 'ocr_page'.
type Page struct {
	ID         string
	PageNumber int    // ppageno, zero based as written by Tesseract
	ImageName  string // source image, if recorded
	BBox       BoundingBox
	Lines      []Line
}

// Line is a text line. Tesseract emits several line classes (ocr_line,
// ocr_caption, ocr_header, ocr_textfloat); all of them end up here.
type Line struct {
	ID       string
	Class    string
	BBox     BoundingBox
	Baseline string
	Words    []Word
}

// Word is one element with class 'ocrx_word'.
type Word struct {
	ID         string
	Text       string
	BBox       BoundingBox
	Confidence float64 // x_wconf, 0-100
	Lang       string
}

// BoundingBox is an hOCR bbox in image pixels, origin top-left.
type BoundingBox struct {
	X1, Y1 float64 // top-left
	X2, Y2 float64 // bottom-right
}

// Width of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
