// Package stamp lays out the two-column header and footer rows that are
// written onto every processed page.
//
// A Band is one row (header or footer). Each row always has exactly two
// cells, a left-aligned and a right-aligned one. A side whose mode is Off
// still yields an empty cell so the columns stay balanced.
package stamp

import (
	"fmt"
	"strings"
)

// Mode controls what a cell shows.
type Mode int

const (
	// Off leaves the cell empty.
	Off Mode = iota
	// Static prints the configured text unchanged.
	Static
	// Dynamic prints the text followed by a running file number.
	Dynamic
)

var modeNames = map[Mode]string{
	Off:     "off",
	Static:  "static",
	Dynamic: "dynamic",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names used in configuration files, case-insensitive.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return m, nil
		}
	}
	return Off, fmt.Errorf("unknown stamp mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	name, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown stamp mode %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Side is one cell of a band.
type Side struct {
	Mode  Mode   `yaml:"mode"`
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

// Resolve returns the text printed for this side on the runCounter-th file
// of a batch (zero based).
func (s Side) Resolve(runCounter int) string {
	switch s.Mode {
	case Static:
		return s.Text
	case Dynamic:
		return fmt.Sprintf("%s - %d", s.Text, s.Count+runCounter)
	}
	return ""
}

// Band is a header or a footer row.
type Band struct {
	Enabled bool `yaml:"enabled"`
	Left    Side `yaml:"left"`
	Right   Side `yaml:"right"`
}
