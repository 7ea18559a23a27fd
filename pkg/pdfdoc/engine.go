package pdfdoc

import (
	"fmt"
	"log/slog"

	"github.com/gardar/scanstamp/pkg/batch"
)

// Engine opens documents for the batch processor and prints stamps with a
// fixed font.
type Engine struct {
	Font    Font
	Padding float64
	Logger  *slog.Logger
}

// NewEngine resolves the configured font name and size.
func NewEngine(fontName string, size, padding float64, logger *slog.Logger) (*Engine, error) {
	font, err := ParseFont(fontName, size)
	if err != nil {
		return nil, err
	}
	return &Engine{Font: font, Padding: padding, Logger: logger}, nil
}

// Open implements batch.Engine.
func (e *Engine) Open(raw []byte) (in batch.Input, err error) {
	defer func() {
		if r := recover(); r != nil {
			in, err = nil, fmt.Errorf("parsing pdf: %v", r)
		}
	}()
	doc, err := Open(raw)
	if err != nil {
		return nil, err
	}
	return input{doc: doc, opts: OutputOptions{Font: e.Font, Padding: e.Padding, Logger: e.Logger}}, nil
}

type input struct {
	doc  *Document
	opts OutputOptions
}

func (in input) PageCount() int { return in.doc.PageCount() }

func (in input) NewOutput() (batch.Output, error) {
	out, err := in.doc.NewOutput(in.opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}
