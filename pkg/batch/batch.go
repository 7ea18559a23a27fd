// Package batch runs a set of scanned PDFs through orientation detection
// and page normalization as a single unit of work.
//
// A run either commits, leaving one output PDF per input plus an
// Index.txt manifest in a fresh timestamped directory, or rolls back and
// removes that directory entirely.
package batch

import (
	"path/filepath"

	"github.com/gardar/scanstamp/pkg/normalize"
)

// SourceDocument is an input file queued for processing.
type SourceDocument struct {
	Path  string
	Raw   []byte
	Pages int
}

// Name is the base name of the file, as printed in the manifest.
func (d SourceDocument) Name() string {
	return filepath.Base(d.Path)
}

// Engine opens PDF bytes for reading.
type Engine interface {
	Open(raw []byte) (Input, error)
}

// Input is an opened source document.
type Input interface {
	PageCount() int
	NewOutput() (Output, error)
}

// Output builds the normalized copy of one Input. Pages are written in the
// order WritePage is called.
type Output interface {
	normalize.Capturer
	BasePage(i int) (normalize.Page, error)
	WritePage(p normalize.Page) error
	Save(path string) error
	Close() error
}
