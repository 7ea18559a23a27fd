package pdfdoc

import (
	"github.com/tsawler/tabula/core"

	"github.com/gardar/scanstamp/pkg/geom"
	"github.com/gardar/scanstamp/pkg/normalize"
)

// maxObjectDepth bounds the walk over objects an annotation refers to.
const maxObjectDepth = 256

// detachedKeys tie an annotation to its old page or to a popup that is not
// carried over. They are dropped from the copied dictionary.
var detachedKeys = []string{"P", "Popup", "Parent"}

// AnnotData is the payload pdfdoc attaches to every normalize.Annotation.
// Dict is the annotation dictionary as found in the input, minus the
// detached keys; references in it still use input object numbers.
type AnnotData struct {
	Subtype  string
	Contents string
	Dict     core.Dict
}

// annotations reads the /Annots of a page. Rectangles are moved into the
// displayed frame of the page and to a lower-left origin of (0,0).
func (w *treeWalker) annotations(page core.Dict, box []float64, rot int, width, height float64) ([]normalize.Annotation, error) {
	obj := page.Get("Annots")
	if obj == nil {
		return nil, nil
	}
	resolved, err := w.r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	arr, ok := resolved.(core.Array)
	if !ok {
		return nil, nil
	}

	display := geom.Translate(-box[0], -box[1]).Mul(geom.DisplayMatrix(rot, width, height))

	var out []normalize.Annotation
	for _, item := range arr {
		dict, err := resolveDict(w.r, item)
		if err != nil {
			continue
		}
		subtype, _ := dict.GetName("Subtype")
		rect, ok := w.rect(dict)
		if !ok || subtype == "Popup" {
			continue
		}

		detached := make(core.Dict, len(dict))
		for k, v := range dict {
			detached[k] = v
		}
		for _, k := range detachedKeys {
			delete(detached, k)
		}
		w.collect(detached, 0)

		data := &AnnotData{Subtype: string(subtype), Dict: detached}
		if s, ok := w.str(dict.Get("Contents")); ok {
			data.Contents = s
		}
		out = append(out, normalize.Annotation{
			Subtype: string(subtype),
			Rect:    display.ApplyRect(rect),
			Payload: data,
		})
	}
	return out, nil
}

// collect records every object reachable from obj, except pages, so the
// annotation can be written out after the input is closed.
func (w *treeWalker) collect(obj core.Object, depth int) {
	if depth > maxObjectDepth {
		return
	}
	switch v := obj.(type) {
	case core.IndirectRef:
		if _, ok := w.refs[v.Number]; ok {
			return
		}
		if _, ok := w.objects[v.Number]; ok {
			return
		}
		resolved, err := w.r.Resolve(v)
		if err != nil {
			resolved = core.Null{}
		}
		w.objects[v.Number] = resolved
		w.collect(resolved, depth+1)
	case core.Dict:
		for _, x := range v {
			w.collect(x, depth+1)
		}
	case core.Array:
		for _, x := range v {
			w.collect(x, depth+1)
		}
	case *core.Stream:
		w.collect(v.Dict, depth+1)
	}
}

func (w *treeWalker) rect(dict core.Dict) (geom.Rect, bool) {
	obj := dict.Get("Rect")
	if obj == nil {
		return geom.Rect{}, false
	}
	resolved, err := w.r.Resolve(obj)
	if err != nil {
		return geom.Rect{}, false
	}
	arr, ok := resolved.(core.Array)
	if !ok || len(arr) != 4 {
		return geom.Rect{}, false
	}
	var v [4]float64
	for i := range v {
		if v[i], ok = number(w.r, arr[i]); !ok {
			return geom.Rect{}, false
		}
	}
	return geom.RectFromCorners(v[0], v[1], v[2], v[3]), true
}

func (w *treeWalker) str(obj core.Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	resolved, err := w.r.Resolve(obj)
	if err != nil {
		return "", false
	}
	s, ok := resolved.(core.String)
	if !ok {
		return "", false
	}
	return decodeTextString([]byte(s)), true
}
