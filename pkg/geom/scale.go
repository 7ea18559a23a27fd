package geom

// ScaleOffset is the translation that keeps a w x h box scaled by s centered
// on the original box.
func ScaleOffset(w, h, s float64) (ox, oy float64) {
	return (w - w*s) / 2, (h - h*s) / 2
}

// ScaleToCenter scales by s and recenters on a w x h page.
func ScaleToCenter(w, h, s float64) Matrix {
	ox, oy := ScaleOffset(w, h, s)
	return Matrix{A: s, D: s, E: ox, F: oy}
}

// ScaleRect moves r to where it lands after ScaleToCenter(w, h, s).
func ScaleRect(r Rect, w, h, s float64) Rect {
	ox, oy := ScaleOffset(w, h, s)
	return Rect{
		X: r.X*s + ox,
		Y: r.Y*s + oy,
		W: r.W * s,
		H: r.H * s,
	}
}
