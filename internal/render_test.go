package internal

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestLinearGradient(t *testing.T) {
	g := LinearGradient{Top: color.NRGBA{200, 100, 0, 255}, Bottom: color.NRGBA{100, 50, 0, 255}}

	if got := g.At(0, 100); got != (color.NRGBA{200, 100, 0, 255}) {
		t.Errorf("top row = %v", got)
	}
	if got := g.At(50, 100); got != (color.NRGBA{150, 75, 0, 255}) {
		t.Errorf("middle row = %v", got)
	}
}

func TestFadeGradient(t *testing.T) {
	g := FadeGradient{Base: color.NRGBA{200, 100, 50, 255}, Fade: 0.3}

	if got := g.At(0, 100); got != (color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("top row = %v", got)
	}
	// last row is close to 70% of the base
	got := g.At(99, 100)
	if got.R < 139 || got.R > 141 {
		t.Errorf("bottom row = %v", got)
	}
}

func TestScale(t *testing.T) {
	if got := Scale(color.NRGBA{255, 149, 0, 255}, 0.8); got != (color.NRGBA{204, 119, 0, 255}) {
		t.Errorf("Scale() = %v", got)
	}
}

func TestRenderGradient(t *testing.T) {
	img := RenderGradient(4, 10, LinearGradient{Top: color.NRGBA{255, 0, 0, 255}, Bottom: color.NRGBA{0, 0, 255, 255}})

	if img.Bounds() != image.Rect(0, 0, 4, 10) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}
	if got := img.NRGBAAt(3, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("top right = %v", got)
	}
	if a, b := img.NRGBAAt(0, 9), img.NRGBAAt(3, 9); a != b {
		t.Errorf("row not uniform: %v vs %v", a, b)
	}
}

func TestLoadTypeface_Fallback(t *testing.T) {
	tf := LoadTypeface([]string{filepath.Join(t.TempDir(), "missing.ttc")}, NopLogger())
	if !tf.IsFallback() {
		t.Error("Expected bitmap fallback when no font loads")
	}
}

func TestDrawLabels(t *testing.T) {
	canvas := RenderGradient(200, 100, LinearGradient{Top: color.NRGBA{A: 255}, Bottom: color.NRGBA{A: 255}})
	tf := LoadTypeface(nil, NopLogger())

	out, err := DrawLabels(canvas, []Label{
		{Text: "Tokyo", Size: 26, Opacity: 1, Y: 10, Centered: true},
		{Text: "", Size: 26, Opacity: 1},
	}, tf)
	if err != nil {
		t.Fatalf("DrawLabels failed: %v", err)
	}
	if out.Bounds() != canvas.Bounds() {
		t.Fatalf("Canvas size changed to %v", out.Bounds())
	}

	// some white-ish pixels appear in the label band, centred horizontally
	minX, maxX := 200, -1
	for y := 10; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if out.NRGBAAt(x, y).R > 128 {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if maxX < 0 {
		t.Fatal("No label pixels drawn")
	}
	if mid := (minX + maxX) / 2; mid < 90 || mid > 110 {
		t.Errorf("Label centred at x=%d", mid)
	}
}
