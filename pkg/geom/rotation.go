package geom

import "fmt"

// ValidRotation reports whether deg is one of the four right-angle page
// rotations.
func ValidRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// NormalizeRotation folds any multiple of 90 into [0, 360).
func NormalizeRotation(deg int) (int, error) {
	if deg%90 != 0 {
		return 0, fmt.Errorf("rotation %d is not a multiple of 90", deg)
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

// CorrectiveRotation maps the raw orientation reported by a detector to the
// page rotation that is written back. Zero stays zero, every other value is
// turned half a revolution.
func CorrectiveRotation(raw int) int {
	if raw == 0 {
		return 0
	}
	return (raw + 180) % 360
}

// ResolveRotation returns the page rotation after correction. A zero
// reading keeps the current rotation; anything else replaces it with the
// corrective value regardless of what was set before.
func ResolveRotation(current, raw int) int {
	if raw == 0 {
		return current
	}
	return CorrectiveRotation(raw)
}

// RotatedSize returns the displayed size of a w x h page shown with rot.
func RotatedSize(w, h float64, rot int) (float64, float64) {
	if rot == 90 || rot == 270 {
		return h, w
	}
	return w, h
}

// CanvasRotation returns the pre-transform that keeps content drawn in the
// displayed frame upright on a page with rotation rot. rw and rh are the
// page width and height after rotation.
func CanvasRotation(rot int, rw, rh float64) Matrix {
	switch rot {
	case 90:
		return Matrix{A: 0, B: 1, C: -1, D: 0, E: rh, F: 0}
	case 180:
		return Matrix{A: -1, B: 0, C: 0, D: -1, E: rw, F: rh}
	case 270:
		return Matrix{A: 0, B: -1, C: 1, D: 0, E: 0, F: rw}
	}
	return Identity
}

// DisplayMatrix maps the unrotated user space of a w x h page onto the frame
// a viewer shows for rotation rot (clockwise), with the displayed lower-left
// corner at the origin. It is the inverse of CanvasRotation.
func DisplayMatrix(rot int, w, h float64) Matrix {
	switch rot {
	case 90:
		return Matrix{A: 0, B: -1, C: 1, D: 0, E: 0, F: w}
	case 180:
		return Matrix{A: -1, B: 0, C: 0, D: -1, E: w, F: h}
	case 270:
		return Matrix{A: 0, B: 1, C: -1, D: 0, E: h, F: 0}
	}
	return Identity
}
