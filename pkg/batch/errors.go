package batch

import (
	"errors"
	"fmt"

	"github.com/gardar/scanstamp/pkg/normalize"
	"github.com/gardar/scanstamp/pkg/orient"
)

var (
	ErrNoDocuments        = errors.New("no documents to process")
	ErrProcessingDisabled = errors.New("processing disabled: enable rotation only, header or footer")
	ErrRunInProgress      = errors.New("a run is already in progress")
	ErrInvalidExtension   = errors.New("only .pdf files are accepted")
	ErrFileCorrupt        = errors.New("file corrupt or unreadable")
	ErrOutputWrite        = errors.New("output write failed")
)

// Kind classifies a FileError.
type Kind int

const (
	KindCorrupt Kind = iota
	KindContentCapture
	KindDetection
	KindOutputWrite
)

func (k Kind) sentinel() error {
	switch k {
	case KindContentCapture:
		return normalize.ErrContentCapture
	case KindDetection:
		return orient.ErrDetection
	case KindOutputWrite:
		return ErrOutputWrite
	}
	return ErrFileCorrupt
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// FileError is a failure tied to one input file and, when known, one page
// (1-based, 0 when the whole file is affected).
type FileError struct {
	Kind Kind
	File string
	Page int
	Err  error
}

func (e *FileError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: page %d: %s: %v", e.File, e.Page, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFileCorrupt) and friends match on the kind
// even when the cause was produced elsewhere.
func (e *FileError) Is(target error) bool {
	return target == e.Kind.sentinel()
}
