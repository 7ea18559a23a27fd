package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ValidExtensions reports whether every path ends in .pdf, ignoring case.
// An empty list is not valid.
func ValidExtensions(paths []string) bool {
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			return false
		}
	}
	return true
}

var errEmptyDocument = errors.New("document has no pages")

// AddReport describes what Session.Add did with each path.
type AddReport struct {
	Added      []string
	Duplicates []string
	Corrupt    []*FileError
}

// Session holds the documents queued for the next run and the state of the
// last one.
type Session struct {
	engine  Engine
	docs    []SourceDocument
	state   State
	counter int
}

// NewSession returns an empty session that opens files with engine.
func NewSession(engine Engine) *Session {
	return &Session{engine: engine}
}

// Add queues paths. The whole call is rejected with ErrInvalidExtension if
// any path is not a PDF. A path already queued is skipped unless
// confirmDuplicate returns true for it; a nil confirmDuplicate skips all
// duplicates. Files that cannot be read or parsed are reported in
// Corrupt and not queued, the rest are still added.
func (s *Session) Add(paths []string, confirmDuplicate func(path string) bool) (AddReport, error) {
	var rep AddReport
	if !ValidExtensions(paths) {
		return rep, ErrInvalidExtension
	}
	if s.state == Running {
		return rep, ErrRunInProgress
	}

	for _, p := range paths {
		if s.contains(p) && (confirmDuplicate == nil || !confirmDuplicate(p)) {
			rep.Duplicates = append(rep.Duplicates, p)
			continue
		}
		doc, err := s.load(p)
		if err != nil {
			rep.Corrupt = append(rep.Corrupt, &FileError{Kind: KindCorrupt, File: filepath.Base(p), Err: err})
			continue
		}
		s.docs = append(s.docs, doc)
		rep.Added = append(rep.Added, p)
	}
	return rep, nil
}

func (s *Session) load(path string) (SourceDocument, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // paths come from the user
	if err != nil {
		return SourceDocument{}, err
	}
	in, err := s.engine.Open(raw)
	if err != nil {
		return SourceDocument{}, err
	}
	if in.PageCount() == 0 {
		return SourceDocument{}, errEmptyDocument
	}
	return SourceDocument{Path: path, Raw: raw, Pages: in.PageCount()}, nil
}

func (s *Session) contains(path string) bool {
	for _, d := range s.docs {
		if d.Path == path {
			return true
		}
	}
	return false
}

// Remove drops every queued document with the given path.
func (s *Session) Remove(path string) {
	kept := s.docs[:0]
	for _, d := range s.docs {
		if d.Path != path {
			kept = append(kept, d)
		}
	}
	s.docs = kept
}

// Clear empties the queue.
func (s *Session) Clear() { s.docs = nil }

// Documents returns a copy of the queue in insertion order.
func (s *Session) Documents() []SourceDocument {
	out := make([]SourceDocument, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len is the number of queued documents.
func (s *Session) Len() int { return len(s.docs) }

// State is the state of the last run, Idle before the first one.
func (s *Session) State() State { return s.state }
