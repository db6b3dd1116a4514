package format

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// MaxColors is the largest palette Reduce will produce.
const MaxColors = 256

// Return the colors used in m in the order they are first seen, giving up
// once more than limit are found
func uniqueColors(m image.Image, limit int) (color.Palette, bool) {
	b := m.Bounds()
	seen := make(map[color.NRGBA]struct{})
	var p color.Palette
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(p) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			p = append(p, c)
		}
	}
	return p, true
}

func hasTransparent(m image.Image) bool {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a == 0 {
				return true
			}
		}
	}
	return false
}

// Reduce returns a paletted copy of m using no more than n colors. If m
// already uses n colors or fewer the copy is exact, otherwise the palette is
// chosen by median cut. Pixels are mapped to their nearest palette entry
// without dithering so equal pixels in m are always equal in the copy.
func Reduce(m image.Image, n int) *image.Paletted {
	if n > MaxColors {
		n = MaxColors
	}
	b := m.Bounds()

	p, ok := uniqueColors(m, n)
	if !ok {
		p = make(color.Palette, 0, n)

		// Keep fully transparent pixels transparent
		if hasTransparent(m) {
			p = append(p, color.NRGBA{})
		}

		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(p, m)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return pm
}
