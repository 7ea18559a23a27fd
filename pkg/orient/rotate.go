package orient

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// RotateCCW returns img turned counter-clockwise by deg, which must be a
// multiple of 90.
func RotateCCW(img image.Image, deg int) image.Image {
	deg = ((deg % 360) + 360) % 360
	if deg == 0 {
		return img
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	minX, minY := float64(b.Min.X), float64(b.Min.Y)

	var m f64.Aff3
	var dst *image.RGBA
	switch deg {
	case 90:
		// (x, y) -> (y, w-x)
		m = f64.Aff3{0, 1, -minY, -1, 0, w + minX}
		dst = image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	case 180:
		// (x, y) -> (w-x, h-y)
		m = f64.Aff3{-1, 0, w + minX, 0, -1, h + minY}
		dst = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	case 270:
		// (x, y) -> (h-y, x)
		m = f64.Aff3{0, -1, h + minY, 1, 0, -minX}
		dst = image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	default:
		return img
	}

	xdraw.NearestNeighbor.Transform(dst, m, img, b, draw.Src, nil)
	return dst
}
