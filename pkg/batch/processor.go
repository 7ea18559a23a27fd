package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gardar/scanstamp/pkg/config"
	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/normalize"
	"github.com/gardar/scanstamp/pkg/orient"
)

// State of a run.
type State int

const (
	Idle State = iota
	Running
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	}
	return "idle"
}

// Flag marks a page whose orientation reading is unreliable.
type Flag struct {
	FileIndex  int // zero based position in the batch
	File       string
	PageNumber int // one based
	Confidence float64
}

// Result describes a finished run. On rollback OutputDir names a directory
// that no longer exists and Entries lists the files that were done before
// the failure.
type Result struct {
	State         State
	OutputDir     string
	Entries       []Entry
	LowConfidence []Flag
}

// Processor runs sessions.
type Processor struct {
	Config config.Config
	Engine Engine
	Reader orient.Reader
	Logger *slog.Logger
	// Now defaults to time.Now and names the output directory.
	Now func() time.Time
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Pipeline is the per-page pipeline built from the configuration.
func (p *Processor) Pipeline() normalize.Pipeline {
	return normalize.Pipeline{
		Scale:      p.Config.ScaleFactor,
		Layout:     p.Config.Layout(),
		Header:     p.Config.Header,
		Footer:     p.Config.Footer,
		OnlyRotate: p.Config.OnlyRotatePages,
	}
}

// Run processes every document queued in s. Both outcomes clear the
// queue. The returned Result is non-nil whenever the run got past its
// guards, including on rollback. Cancelling ctx after Run has started has
// no effect.
func (p *Processor) Run(ctx context.Context, s *Session) (*Result, error) {
	if s.Len() == 0 {
		return nil, ErrNoDocuments
	}
	pl := p.Pipeline()
	if !pl.Enabled() {
		return nil, ErrProcessingDisabled
	}
	if s.state == Running {
		return nil, ErrRunInProgress
	}
	root, err := p.Config.ResolveOutputRoot()
	if err != nil {
		return nil, err
	}
	dir, err := CreateOutputDir(root, p.now())
	if err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrOutputWrite, err)
	}

	s.state = Running
	s.counter = 0
	res := &Result{State: Running, OutputDir: dir}
	log := p.logger().With("dir", dir)
	log.Info("run started", "files", s.Len())

	ctx = context.WithoutCancel(ctx)
	for i, doc := range s.docs {
		entry, err := p.file(ctx, s, res, pl, i, doc, dir)
		if err != nil {
			return p.rollback(s, res, err)
		}
		res.Entries = append(res.Entries, entry)
		s.counter++
	}

	if err := WriteManifest(dir, res.Entries); err != nil {
		return p.rollback(s, res, fmt.Errorf("%w: %v", ErrOutputWrite, err))
	}
	s.state = Committed
	s.counter = 0
	s.Clear()
	res.State = Committed
	log.Info("run committed", "files", len(res.Entries), "low_confidence", len(res.LowConfidence))
	return res, nil
}

func (p *Processor) rollback(s *Session, res *Result, cause error) (*Result, error) {
	log := p.logger()
	if err := os.RemoveAll(res.OutputDir); err != nil {
		log.Error("removing output directory", "dir", res.OutputDir, "error", err)
	}
	s.state = RolledBack
	s.counter = 0
	s.Clear()
	res.State = RolledBack
	log.Error("run rolled back", "dir", res.OutputDir, "error", cause)
	return res, cause
}

// file normalizes one document and saves it into dir.
func (p *Processor) file(ctx context.Context, s *Session, res *Result, pl normalize.Pipeline, index int, doc SourceDocument, dir string) (Entry, error) {
	name := doc.Name()
	fail := func(kind Kind, page int, err error) error {
		return &FileError{Kind: kind, File: name, Page: page, Err: err}
	}

	in, err := p.Engine.Open(doc.Raw)
	if err != nil {
		return Entry{}, fail(KindCorrupt, 0, err)
	}
	n := in.PageCount()

	readings, err := p.Reader.Readings(ctx, doc.Raw, n)
	if err != nil {
		return Entry{}, fail(KindDetection, 0, err)
	}
	if len(readings) != n {
		return Entry{}, fail(KindDetection, 0,
			fmt.Errorf("%w: got %d readings for %d pages", orient.ErrDetection, len(readings), n))
	}

	for _, r := range readings {
		if r.Confidence < p.Config.ConfidenceThreshold {
			f := Flag{FileIndex: index, File: name, PageNumber: r.PageIndex + 1, Confidence: r.Confidence}
			res.LowConfidence = append(res.LowConfidence, f)
			p.logger().Warn("low orientation confidence", "file", name, "page", f.PageNumber, "confidence", r.Confidence)
		}
	}

	out, err := in.NewOutput()
	if err != nil {
		return Entry{}, fail(KindOutputWrite, 0, err)
	}
	defer out.Close()

	for i := 0; i < n; i++ {
		raw := readings[i].Degrees
		if !geom.ValidRotation(raw) {
			return Entry{}, fail(KindDetection, i+1, fmt.Errorf("%w: invalid rotation %d", orient.ErrDetection, raw))
		}
		base, err := out.BasePage(i)
		if err != nil {
			return Entry{}, fail(KindContentCapture, i+1, err)
		}
		page, err := pl.Process(base, raw, out, s.counter)
		if err != nil {
			return Entry{}, fail(KindContentCapture, i+1, err)
		}
		if err := out.WritePage(page); err != nil {
			return Entry{}, fail(KindOutputWrite, i+1, err)
		}
		p.logger().Debug("page normalized", "file", name, "page", i+1,
			"detected", raw, "rotation", page.Rotation, "confidence", readings[i].Confidence)
	}

	outName := OutputName(p.Config.BaseCounter + s.counter)
	if err := out.Save(filepath.Join(dir, outName)); err != nil {
		return Entry{}, fail(KindOutputWrite, 0, err)
	}
	return Entry{Output: outName, Original: name}, nil
}

// IsFileError reports whether err carries per-file context.
func IsFileError(err error) (*FileError, bool) {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
