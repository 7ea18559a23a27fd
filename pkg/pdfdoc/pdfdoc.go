// Package pdfdoc connects the page pipeline to real PDF files.
//
// The read side parses the input with tabula to learn page sizes, rotations
// and annotations. The write side builds a fresh document with fpdf: every
// input page is imported as a form XObject through gofpdi and replayed by
// the page's display list.
//
// fpdf cannot write a /Rotate entry, so output pages are emitted in their
// displayed orientation: the page box takes the rotated size and the whole
// display list runs under the matrix that turns the unrotated page into the
// displayed one. Viewers show the same thing a /Rotate entry would produce.
//
// fpdf has no way to write arbitrary annotations, so they are appended to
// its output as an incremental update: each input annotation dictionary is
// copied with its /Rect moved onto the output page, together with the
// objects it refers to. References to input pages are pointed at the
// output page with the same index.
package pdfdoc
