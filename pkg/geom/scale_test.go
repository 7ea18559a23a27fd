package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestScaleOffset(t *testing.T) {
	ox, oy := ScaleOffset(600, 800, 0.92)
	if math.Abs(ox-24) > 1e-9 || math.Abs(oy-32) > 1e-9 {
		t.Errorf("ScaleOffset = (%g,%g), want (24,32)", ox, oy)
	}
}

func TestScaleRect(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"full page", Rect{0, 0, 600, 800}, Rect{24, 32, 552, 736}},
		{"origin point", Rect{0, 0, 0, 0}, Rect{24, 32, 0, 0}},
		{"inner box", Rect{100, 100, 50, 25}, Rect{116, 124, 46, 23}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleRect(tt.in, 600, 800, 0.92)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ScaleRect mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScaleToCenterMatchesScaleRect(t *testing.T) {
	r := Rect{100, 200, 300, 150}
	m := ScaleToCenter(600, 800, 0.92)
	if diff := cmp.Diff(ScaleRect(r, 600, 800, 0.92), m.ApplyRect(r), approx); diff != "" {
		t.Errorf("matrix and rect scaling disagree (-rect +matrix):\n%s", diff)
	}
}

func TestMatrixMul(t *testing.T) {
	m := Translate(10, 20).Mul(Scale(2, 3))
	x, y := m.Apply(1, 1)
	if x != 22 || y != 63 {
		t.Errorf("translate then scale: (%g,%g), want (22,63)", x, y)
	}
}

func TestRectFromCorners(t *testing.T) {
	got := RectFromCorners(50, 90, 10, 30)
	want := Rect{10, 30, 40, 60}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RectFromCorners mismatch (-want +got):\n%s", diff)
	}
}
