package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Font is the font stamp rows are printed in.
type Font struct {
	Family string  // fpdf family name
	Style  string  // "", "B", "I" or "BI"
	Size   float64 // points
	File   string  // TrueType file, empty for the built-in fonts
}

// standardFonts maps the PostScript-style names of the 14 standard fonts
// to fpdf's core font families.
var standardFonts = map[string]Font{
	"TIMES-ROMAN":           {Family: "Times"},
	"TIMES-BOLD":            {Family: "Times", Style: "B"},
	"TIMES-ITALIC":          {Family: "Times", Style: "I"},
	"TIMES-BOLDITALIC":      {Family: "Times", Style: "BI"},
	"HELVETICA":             {Family: "Helvetica"},
	"HELVETICA-BOLD":        {Family: "Helvetica", Style: "B"},
	"HELVETICA-OBLIQUE":     {Family: "Helvetica", Style: "I"},
	"HELVETICA-BOLDOBLIQUE": {Family: "Helvetica", Style: "BI"},
	"COURIER":               {Family: "Courier"},
	"COURIER-BOLD":          {Family: "Courier", Style: "B"},
	"COURIER-OBLIQUE":       {Family: "Courier", Style: "I"},
	"COURIER-BOLDOBLIQUE":   {Family: "Courier", Style: "BI"},
	"SYMBOL":                {Family: "Symbol"},
	"ZAPFDINGBATS":          {Family: "ZapfDingbats"},
}

// DefaultFont is Times at 14pt.
var DefaultFont = Font{Family: "Times", Size: 14}

// ParseFont resolves a configured font name. Standard font names are
// matched case-insensitively ("Times-Roman", "HELVETICA-BOLD"); a path to a
// .ttf file loads that font.
func ParseFont(name string, size float64) (Font, error) {
	if size <= 0 {
		return Font{}, fmt.Errorf("font size must be positive, got %g", size)
	}
	if strings.EqualFold(filepath.Ext(name), ".ttf") {
		if _, err := os.Stat(name); err != nil {
			return Font{}, fmt.Errorf("font file: %w", err)
		}
		family := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		return Font{Family: family, Size: size, File: name}, nil
	}
	f, ok := standardFonts[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Font{}, fmt.Errorf("unknown font %q", name)
	}
	f.Size = size
	return f, nil
}

// encode converts text for the built-in fonts, which use cp1252.
// Characters they cannot show become '?'.
func (f Font) encode(s string) string {
	if f.File != "" {
		return s
	}
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		return s
	}
	return out
}
