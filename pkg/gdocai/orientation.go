package gdocai

import "cloud.google.com/go/documentai/apiv1/documentaipb"

// PageOrientation is the layout orientation Document AI saw on one page.
type PageOrientation struct {
	PageNumber int     // 1-based
	Degrees    int     // clockwise turn of the content: 0, 90, 180 or 270
	Confidence float64 // 0..1
	Known      bool    // false when the processor left the orientation unspecified
}

// PageOrientations extracts one PageOrientation per page, in page order.
func PageOrientations(doc *documentaipb.Document) []PageOrientation {
	var out []PageOrientation
	for i, page := range doc.GetPages() {
		po := PageOrientation{PageNumber: int(page.GetPageNumber())}
		if po.PageNumber == 0 {
			po.PageNumber = i + 1
		}
		layout := page.GetLayout()
		po.Confidence = float64(layout.GetConfidence())
		po.Degrees, po.Known = orientationDegrees(layout.GetOrientation())
		out = append(out, po)
	}
	return out
}

// orientationDegrees maps the direction the top of the text points to into
// a clockwise turn.
func orientationDegrees(o documentaipb.Document_Page_Layout_Orientation) (int, bool) {
	switch o {
	case documentaipb.Document_Page_Layout_PAGE_UP:
		return 0, true
	case documentaipb.Document_Page_Layout_PAGE_RIGHT:
		return 90, true
	case documentaipb.Document_Page_Layout_PAGE_DOWN:
		return 180, true
	case documentaipb.Document_Page_Layout_PAGE_LEFT:
		return 270, true
	}
	return 0, false
}
