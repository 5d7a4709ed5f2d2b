package internal

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Gradient describes a vertical background
type Gradient interface {
	At(y, height int) color.NRGBA
}

// LinearGradient interpolates from Top (first row) to Bottom
type LinearGradient struct {
	Top    color.NRGBA
	Bottom color.NRGBA
}

func (g LinearGradient) At(y, height int) color.NRGBA {
	ratio := float64(y) / float64(height)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-ratio) + float64(b)*ratio)
	}
	return color.NRGBA{
		R: mix(g.Top.R, g.Bottom.R),
		G: mix(g.Top.G, g.Bottom.G),
		B: mix(g.Top.B, g.Bottom.B),
		A: 255,
	}
}

// FadeGradient darkens Base linearly down to (1-Fade) of its value
type FadeGradient struct {
	Base color.NRGBA
	Fade float64
}

func (g FadeGradient) At(y, height int) color.NRGBA {
	k := 1 - float64(y)/float64(height)*g.Fade
	return color.NRGBA{
		R: uint8(float64(g.Base.R) * k),
		G: uint8(float64(g.Base.G) * k),
		B: uint8(float64(g.Base.B) * k),
		A: 255,
	}
}

// Scale multiplies each channel by k, truncating
func Scale(c color.NRGBA, k float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: 255,
	}
}

// RenderGradient fills a width x height canvas row by row
func RenderGradient(width, height int, g Gradient) *image.NRGBA {
	img := imaging.New(width, height, color.NRGBA{A: 255})
	for y := 0; y < height; y++ {
		c := g.At(y, height)
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// Label is one line of white overlay text
type Label struct {
	Text     string
	Size     float64 // face height in pixels
	Opacity  float64 // 0..1
	X, Y     int     // top-left corner; X is ignored when Centered
	Centered bool
}

// Typeface is a best-effort font: an OpenType font when one of the candidate
// files loads, otherwise the built-in 7x13 bitmap face scaled up.
type Typeface struct {
	Path string // empty for the bitmap fallback
	font *opentype.Font
}

// LoadTypeface tries the candidates in order. It never fails.
func LoadTypeface(candidates []string, log *Logger) *Typeface {
	for _, path := range candidates {
		f, err := parseFontFile(path)
		if err != nil {
			log.Debug("font candidate skipped", "path", path, "error", err)
			continue
		}
		log.Debug("font loaded", "path", path)
		return &Typeface{Path: path, font: f}
	}
	log.Debug("no font candidate loaded, using bitmap fallback")
	return &Typeface{}
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return coll.Font(0)
	}
	return opentype.Parse(data)
}

// IsFallback reports whether the bitmap face is in use
func (t *Typeface) IsFallback() bool {
	return t == nil || t.font == nil
}

// renderText draws s in white on a transparent image sized to the text
func (t *Typeface) renderText(s string, size float64) (*image.NRGBA, error) {
	var face font.Face = basicfont.Face7x13
	if !t.IsFallback() {
		f, err := opentype.NewFace(t.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		defer f.Close()
		face = f
	}

	width := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{Y: m.Ascent},
	}
	d.DrawString(s)

	if t.IsFallback() {
		k := int(math.Round(size / 13))
		if k > 1 {
			img = imaging.Resize(img, width*k, height*k, imaging.NearestNeighbor)
		}
	}
	return img, nil
}

// DrawLabels composites the labels over canvas and returns the result
func DrawLabels(canvas *image.NRGBA, labels []Label, tf *Typeface) (*image.NRGBA, error) {
	out := canvas
	for _, l := range labels {
		text, err := tf.renderText(l.Text, l.Size)
		if err != nil {
			return nil, err
		}
		if text == nil {
			continue
		}
		x := l.X
		if l.Centered {
			x = out.Bounds().Dx()/2 - text.Bounds().Dx()/2
		}
		out = imaging.Overlay(out, text, image.Pt(x, l.Y), l.Opacity)
	}
	return out, nil
}
