package hocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

var lineClasses = []string{"ocr_line", "ocr_caption", "ocr_header", "ocr_textfloat"}

// ParseHOCR converts raw hOCR data into an HOCR value.
func ParseHOCR(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	decoded, err := decode(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("parsing hOCR html: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "html":
				result.Language = firstNonEmpty(attr(n, "lang"), attr(n, "xml:lang"))
			case n.Data == "title" && n.FirstChild != nil:
				result.Title = strings.TrimSpace(n.FirstChild.Data)
			case n.Data == "meta":
				if name := attr(n, "name"); strings.HasPrefix(name, "ocr-") {
					result.Metadata[name] = attr(n, "content")
				}
			case hasClass(n, "ocr_page"):
				result.Pages = append(result.Pages, parsePage(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// decode converts Latin-1 declared documents to UTF-8.
func decode(data []byte) ([]byte, error) {
	head := data
	if len(head) > 2048 {
		head = head[:2048]
	}
	lower := strings.ToLower(string(head))
	i := strings.Index(lower, "charset=")
	if i < 0 {
		return data, nil
	}
	enc := strings.TrimLeft(lower[i+len("charset="):], `"'`)
	if end := strings.IndexAny(enc, `"'; >`); end >= 0 {
		enc = enc[:end]
	}
	switch enc {
	case "", "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "latin1", "latin-1", "windows-1252":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
		}
		return decoded, nil
	}
	return nil, fmt.Errorf("unsupported hOCR charset %q", enc)
}

func parsePage(n *html.Node) Page {
	page := Page{ID: attr(n, "id")}
	props := ParseTitle(attr(n, "title"))
	if bbox, ok := bboxFromProps(props); ok {
		page.BBox = bbox
	}
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(strings.Join(image, " "), `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	// Words that are not inside any line are gathered into one line of
	// their own so nothing recognized is dropped.
	var orphans Line
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			if class, ok := lineClass(c); ok {
				page.Lines = append(page.Lines, parseLine(c, class))
				return
			}
			if hasClass(c, "ocrx_word") {
				orphans.Words = append(orphans.Words, parseWord(c))
				return
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	if len(orphans.Words) > 0 {
		page.Lines = append(page.Lines, orphans)
	}
	return page
}

func parseLine(n *html.Node, class string) Line {
	line := Line{ID: attr(n, "id"), Class: class}
	props := ParseTitle(attr(n, "title"))
	if bbox, ok := bboxFromProps(props); ok {
		line.BBox = bbox
	}
	if baseline, ok := props["baseline"]; ok {
		line.Baseline = strings.Join(baseline, " ")
	}

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && hasClass(c, "ocrx_word") {
			line.Words = append(line.Words, parseWord(c))
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return line
}

func parseWord(n *html.Node) Word {
	word := Word{ID: attr(n, "id"), Lang: attr(n, "lang")}
	props := ParseTitle(attr(n, "title"))
	if bbox, ok := bboxFromProps(props); ok {
		word.BBox = bbox
	}
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	word.Text = textContent(n)
	return word
}

// ParseTitle breaks down an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

func bboxFromProps(props map[string][]string) (BoundingBox, bool) {
	v, ok := props["bbox"]
	if !ok || len(v) < 4 {
		return BoundingBox{}, false
	}
	var f [4]float64
	for i := range f {
		x, err := strconv.ParseFloat(v[i], 64)
		if err != nil {
			return BoundingBox{}, false
		}
		f[i] = x
	}
	return BoundingBox{X1: f[0], Y1: f[1], X2: f[2], Y2: f[3]}, true
}

func lineClass(n *html.Node) (string, bool) {
	for _, c := range lineClasses {
		if hasClass(n, c) {
			return c, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return strings.TrimSpace(b.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
