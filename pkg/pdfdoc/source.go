package pdfdoc

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"

	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/normalize"
)

// ErrNoPages is returned for documents whose page tree is empty.
var ErrNoPages = errors.New("document has no pages")

// maxTreeDepth bounds page tree recursion on malformed files.
const maxTreeDepth = 64

// Document is a parsed input PDF. Everything needed later is read at Open
// time, so a Document holds no file handles.
type Document struct {
	raw   []byte
	pages []sourcePage

	// objects holds every non-page object the annotations refer to, keyed
	// by input object number. pageNums maps page object numbers to page
	// indexes.
	objects  map[int]core.Object
	pageNums map[int]int
}

type sourcePage struct {
	width, height float64 // displayed size
	rotate        int     // /Rotate of the input page
	annots        []normalize.Annotation
}

// Open parses raw PDF bytes.
func Open(raw []byte) (*Document, error) {
	var doc *Document
	err := withTempFile(raw, func(path string) error {
		r, err := reader.Open(path)
		if err != nil {
			return fmt.Errorf("parsing pdf: %w", err)
		}
		defer r.Close()

		w, err := walkPages(r)
		if err != nil {
			return err
		}
		doc = &Document{raw: raw, objects: w.objects, pageNums: w.refs}
		for i, leaf := range w.leaves {
			sp, err := w.page(leaf)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			doc.pages = append(doc.pages, sp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// withTempFile hands fn the path of a temporary copy of data. tabula only
// reads from files.
func withTempFile(data []byte, fn func(path string) error) error {
	f, err := os.CreateTemp("", "scanstamp-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return fn(f.Name())
}

// walkPages collects the leaves of the page tree of r.
func walkPages(r *reader.Reader) (*treeWalker, error) {
	catalog, err := r.GetCatalog()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	root, err := resolveDict(r, catalog.Get("Pages"))
	if err != nil {
		return nil, fmt.Errorf("reading page tree: %w", err)
	}
	w := &treeWalker{r: r, refs: make(map[int]int), objects: make(map[int]core.Object)}
	if err := w.walk(root, core.Dict{}, 0); err != nil {
		return nil, err
	}
	if len(w.leaves) == 0 {
		return nil, ErrNoPages
	}
	return w, nil
}

// PageCount is the number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Raw returns the bytes the document was opened from.
func (d *Document) Raw() []byte {
	return d.raw
}

// PageSize returns the displayed size of page i (zero based).
func (d *Document) PageSize(i int) (float64, float64) {
	return d.pages[i].width, d.pages[i].height
}

// inheritable page attributes, copied down the page tree.
var inheritable = []string{"MediaBox", "CropBox", "Rotate", "Resources"}

type leaf struct {
	dict      core.Dict
	inherited core.Dict
}

type treeWalker struct {
	r        *reader.Reader
	leaves   []leaf
	leafRefs []core.IndirectRef
	refs     map[int]int // page object number -> page index
	objects  map[int]core.Object
}

func (w *treeWalker) walk(node, inherited core.Dict, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("page tree deeper than %d levels", maxTreeDepth)
	}
	kids, ok := node.GetArray("Kids")
	if !ok {
		if obj := node.Get("Kids"); obj != nil {
			resolved, err := w.r.Resolve(obj)
			if err != nil {
				return fmt.Errorf("resolving /Kids: %w", err)
			}
			kids, ok = resolved.(core.Array)
		}
	}
	if !ok {
		return fmt.Errorf("page tree node without /Kids")
	}

	next := core.Dict{}
	for k, v := range inherited {
		next[k] = v
	}
	for _, k := range inheritable {
		if v := node.Get(k); v != nil {
			next[k] = v
		}
	}

	for i, kid := range kids {
		dict, err := resolveDict(w.r, kid)
		if err != nil {
			return fmt.Errorf("resolving kid %d: %w", i, err)
		}
		typ, _ := dict.GetName("Type")
		if typ == "Pages" || (typ == "" && dict.Get("Kids") != nil) {
			if err := w.walk(dict, next, depth+1); err != nil {
				return err
			}
			continue
		}
		ref, _ := kid.(core.IndirectRef)
		if ref.Number > 0 {
			w.refs[ref.Number] = len(w.leaves)
		}
		w.leaves = append(w.leaves, leaf{dict: dict, inherited: next})
		w.leafRefs = append(w.leafRefs, ref)
	}
	return nil
}

func (w *treeWalker) page(l leaf) (sourcePage, error) {
	p := pages.NewPage(l.dict, l.inherited, w.r)
	box, err := p.MediaBox()
	if err != nil {
		return sourcePage{}, err
	}
	width, height := box[2]-box[0], box[3]-box[1]
	if width <= 0 || height <= 0 {
		return sourcePage{}, fmt.Errorf("empty media box %v", box)
	}
	rot, err := geom.NormalizeRotation(p.Rotate())
	if err != nil {
		rot = 0
	}

	annots, err := w.annotations(l.dict, box, rot, width, height)
	if err != nil {
		return sourcePage{}, err
	}

	dw, dh := geom.RotatedSize(width, height, rot)
	return sourcePage{width: dw, height: dh, rotate: rot, annots: annots}, nil
}

func resolveDict(r *reader.Reader, obj core.Object) (core.Dict, error) {
	if obj == nil {
		return nil, fmt.Errorf("missing object")
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	d, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("expected dictionary, got %T", resolved)
	}
	return d, nil
}

func number(r *reader.Reader, obj core.Object) (float64, bool) {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return 0, false
	}
	switch v := resolved.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	}
	return 0, false
}
