// Package geom holds the page geometry used while normalizing scanned pages:
// affine matrices with PDF "cm" semantics, rectangles in page units, the
// rotation resolver and the helpers that scale content around the page
// center or compensate a page rotation for stamped content.
//
// All coordinates use the PDF convention: origin at the lower-left corner,
// y growing upwards, units in points.
package geom
