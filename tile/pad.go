package tile

import (
	"image"
	"image/color"
)

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Copy the pixels of src starting at sp into the rectangle r of m
func copyRect(m *image.NRGBA, r image.Rectangle, src image.Image, sp image.Point) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, nrgba(At(src, sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)))
		}
	}
}

func fill(m *image.NRGBA, r image.Rectangle, c color.Color) {
	n := nrgba(c)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, n)
		}
	}
}

// Pad returns a copy of the tile covering r in src surrounded by border
// pixels on each side. The border repeats the outermost row or column of the
// tile and each corner block repeats the matching corner pixel. The returned
// image has its origin at (0, 0).
func Pad(src image.Image, r image.Rectangle, border int) *image.NRGBA {
	w, h, b := r.Dx(), r.Dy(), border
	if b < 0 {
		b = 0
	}

	m := image.NewNRGBA(image.Rect(0, 0, w+b<<1, h+b<<1))
	if w <= 0 || h <= 0 {
		return m
	}

	// Tile
	copyRect(m, image.Rect(b, b, b+w, b+h), src, r.Min)

	// Edges
	for i := 0; i < b; i++ {
		copyRect(m, image.Rect(b, i, b+w, i+1), src, r.Min)
		copyRect(m, image.Rect(b, b+h+i, b+w, b+h+i+1), src, image.Pt(r.Min.X, r.Max.Y-1))
		copyRect(m, image.Rect(i, b, i+1, b+h), src, r.Min)
		copyRect(m, image.Rect(b+w+i, b, b+w+i+1, b+h), src, image.Pt(r.Max.X-1, r.Min.Y))
	}

	// Corners
	if b > 0 {
		fill(m, image.Rect(0, 0, b, b), At(src, r.Min.X, r.Min.Y))
		fill(m, image.Rect(b+w, 0, w+b<<1, b), At(src, r.Max.X-1, r.Min.Y))
		fill(m, image.Rect(0, b+h, b, h+b<<1), At(src, r.Min.X, r.Max.Y-1))
		fill(m, image.Rect(b+w, b+h, w+b<<1, h+b<<1), At(src, r.Max.X-1, r.Max.Y-1))
	}

	return m
}
