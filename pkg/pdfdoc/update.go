package pdfdoc

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/reader"

	"github.com/gardar/scanstamp/pkg/geom"
)

// carried is an input annotation waiting for its output page.
type carried struct {
	dict core.Dict
	rect geom.Rect
}

// outputRef is a reference into the output file. Plain core.IndirectRef
// values in carried objects point into the input and get renumbered.
type outputRef core.IndirectRef

func (r outputRef) Type() core.ObjectType { return core.ObjIndirect }
func (r outputRef) String() string        { return core.IndirectRef(r).String() }

// outputPage is a page of the file fpdf wrote.
type outputPage struct {
	ref    outputRef
	dict   core.Dict
	annots core.Array
}

type outputFile struct {
	pages     []outputPage
	size      int
	root      core.Object
	info      core.Object
	id        core.Object
	startxref int
}

// readOutput parses the document fpdf produced.
func readOutput(data []byte) (*outputFile, error) {
	startxref, err := lastStartXref(data)
	if err != nil {
		return nil, err
	}
	out := &outputFile{startxref: startxref}
	err = withTempFile(data, func(path string) error {
		r, err := reader.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()

		trailer := r.Trailer()
		size, ok := number(r, trailer.Get("Size"))
		if !ok {
			return errors.New("trailer without /Size")
		}
		out.size = int(size)
		out.root = asOutput(trailer.Get("Root"))
		if v := trailer.Get("Info"); v != nil {
			out.info = asOutput(v)
		}
		if v := trailer.Get("ID"); v != nil {
			out.id = asOutput(v)
		}

		w, err := walkPages(r)
		if err != nil {
			return err
		}
		for i, l := range w.leaves {
			p := outputPage{ref: outputRef(w.leafRefs[i]), dict: l.dict}
			if a := l.dict.Get("Annots"); a != nil {
				if resolved, err := r.Resolve(a); err == nil {
					p.annots, _ = asOutput(resolved).(core.Array)
				}
			}
			out.pages = append(out.pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	return out, nil
}

func lastStartXref(data []byte) (int, error) {
	i := bytes.LastIndex(data, []byte("startxref"))
	if i < 0 {
		return 0, errors.New("no startxref")
	}
	fields := strings.Fields(string(data[i+len("startxref"):]))
	if len(fields) == 0 {
		return 0, errors.New("no startxref offset")
	}
	return strconv.Atoi(fields[0])
}

// asOutput marks every reference in obj as pointing into the output.
func asOutput(obj core.Object) core.Object {
	switch v := obj.(type) {
	case core.IndirectRef:
		return outputRef(v)
	case core.Array:
		out := make(core.Array, len(v))
		for i, x := range v {
			out[i] = asOutput(x)
		}
		return out
	case core.Dict:
		out := make(core.Dict, len(v))
		for k, x := range v {
			out[k] = asOutput(x)
		}
		return out
	}
	return obj
}

// update appends new and changed objects to a PDF as an incremental
// update, leaving the original bytes untouched.
type update struct {
	buf     bytes.Buffer
	offsets map[int]int
	next    int

	objects    map[int]core.Object // input objects
	inputPages map[int]int
	pages      []outputRef
	renumbered map[int]int
	queue      []int
}

// appendAnnotations attaches the carried annotations, keyed by zero-based
// output page, to the fpdf output base.
func appendAnnotations(base []byte, annots map[int][]carried, objects map[int]core.Object, inputPages map[int]int) ([]byte, error) {
	out, err := readOutput(base)
	if err != nil {
		return nil, err
	}

	u := &update{
		offsets:    make(map[int]int),
		next:       out.size,
		objects:    objects,
		inputPages: inputPages,
		renumbered: make(map[int]int),
	}
	for _, p := range out.pages {
		u.pages = append(u.pages, p.ref)
	}
	u.buf.Grow(len(base) + 4096)
	u.buf.Write(base)
	if !bytes.HasSuffix(base, []byte("\n")) {
		u.buf.WriteByte('\n')
	}

	indexes := make([]int, 0, len(annots))
	for i := range annots {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	for _, i := range indexes {
		if i < 0 || i >= len(out.pages) {
			return nil, fmt.Errorf("annotations for missing output page %d", i+1)
		}
		page := out.pages[i]
		refs := append(core.Array(nil), page.annots...)
		for _, c := range annots[i] {
			num := u.alloc()
			d := make(core.Dict, len(c.dict)+2)
			for k, v := range c.dict {
				d[k] = v
			}
			d["Rect"] = core.Array{
				core.Real(c.rect.X), core.Real(c.rect.Y),
				core.Real(c.rect.X + c.rect.W), core.Real(c.rect.Y + c.rect.H),
			}
			d["P"] = page.ref
			u.object(num, d)
			refs = append(refs, outputRef{Number: num})
		}
		pd := asOutput(page.dict).(core.Dict)
		pd["Annots"] = refs
		u.object(page.ref.Number, pd)
	}
	for len(u.queue) > 0 {
		num := u.queue[0]
		u.queue = u.queue[1:]
		u.object(u.renumbered[num], u.objects[num])
	}

	u.finish(out)
	return u.buf.Bytes(), nil
}

func (u *update) alloc() int {
	n := u.next
	u.next++
	return n
}

func (u *update) object(num int, obj core.Object) {
	u.offsets[num] = u.buf.Len()
	fmt.Fprintf(&u.buf, "%d 0 obj\n", num)
	u.write(obj)
	u.buf.WriteString("\nendobj\n")
}

// finish writes the cross-reference section and trailer.
func (u *update) finish(out *outputFile) {
	nums := make([]int, 0, len(u.offsets))
	for n := range u.offsets {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	xref := u.buf.Len()
	u.buf.WriteString("xref\n")
	for i := 0; i < len(nums); {
		j := i
		for j+1 < len(nums) && nums[j+1] == nums[j]+1 {
			j++
		}
		fmt.Fprintf(&u.buf, "%d %d\n", nums[i], j-i+1)
		for k := i; k <= j; k++ {
			fmt.Fprintf(&u.buf, "%010d 00000 n \n", u.offsets[nums[k]])
		}
		i = j + 1
	}

	trailer := core.Dict{
		"Size": core.Int(u.next),
		"Root": out.root,
		"Prev": core.Int(out.startxref),
	}
	if out.info != nil {
		trailer["Info"] = out.info
	}
	if out.id != nil {
		trailer["ID"] = out.id
	}
	u.buf.WriteString("trailer\n")
	u.write(trailer)
	fmt.Fprintf(&u.buf, "\nstartxref\n%d\n%%%%EOF\n", xref)
}

// write serializes obj in PDF syntax.
func (u *update) write(obj core.Object) {
	b := &u.buf
	switch v := obj.(type) {
	case core.Bool:
		b.WriteString(strconv.FormatBool(bool(v)))
	case core.Int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case core.Real:
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 64))
	case core.String:
		b.WriteByte('<')
		b.WriteString(hex.EncodeToString([]byte(v)))
		b.WriteByte('>')
	case core.Name:
		writeName(b, string(v))
	case core.Array:
		b.WriteByte('[')
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			u.write(x)
		}
		b.WriteByte(']')
	case core.Dict:
		u.writeDict(v)
	case *core.Stream:
		d := make(core.Dict, len(v.Dict))
		for k, x := range v.Dict {
			d[k] = x
		}
		d["Length"] = core.Int(len(v.Data))
		u.writeDict(d)
		b.WriteString("\nstream\n")
		b.Write(v.Data)
		b.WriteString("\nendstream")
	case outputRef:
		fmt.Fprintf(b, "%d %d R", v.Number, v.Generation)
	case core.IndirectRef:
		u.writeInputRef(v)
	default:
		b.WriteString("null")
	}
}

func (u *update) writeDict(d core.Dict) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	u.buf.WriteString("<<")
	for _, k := range keys {
		writeName(&u.buf, k)
		u.buf.WriteByte(' ')
		u.write(d[k])
	}
	u.buf.WriteString(">>")
}

// writeInputRef renumbers a reference read from the input. Pages map to
// the output page at the same index; other objects are copied once.
func (u *update) writeInputRef(ref core.IndirectRef) {
	if idx, ok := u.inputPages[ref.Number]; ok {
		if idx < len(u.pages) {
			u.write(u.pages[idx])
			return
		}
		u.buf.WriteString("null")
		return
	}
	if _, ok := u.objects[ref.Number]; !ok {
		u.buf.WriteString("null")
		return
	}
	num, ok := u.renumbered[ref.Number]
	if !ok {
		num = u.alloc()
		u.renumbered[ref.Number] = num
		u.queue = append(u.queue, ref.Number)
	}
	fmt.Fprintf(&u.buf, "%d 0 R", num)
}

func writeName(b *bytes.Buffer, name string) {
	b.WriteByte('/')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x21 || c > 0x7e || strings.IndexByte("()<>[]{}/%#", c) >= 0 {
			fmt.Fprintf(b, "#%02X", c)
			continue
		}
		b.WriteByte(c)
	}
}
