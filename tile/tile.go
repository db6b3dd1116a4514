/*
Package tile implements the geometry and padding of square tiles cut from a
texture sheet.

A sheet is split into a regular grid of tiles, each of which is copied into a
larger cell surrounded by a border that repeats the tile's outermost pixels.
When a renderer filters a texture slightly outside a tile's true bounds it
then samples the tile's own edge color rather than its neighbour's.
*/
package tile

import (
	"image"
	"image/color"
)

const (
	// DefaultSize is the width and height of a tile in pixels
	DefaultSize = 16
	// DefaultBorder is the width of the padding on each side of a tile
	DefaultBorder = 1
)

// Transparent is the color substituted for any pixel that cannot be read.
var Transparent = color.NRGBA{0, 0, 0, 0}

// At returns the color of the pixel at (x, y) in m. A point outside the
// bounds of m, or an image that returns no color, reads as Transparent.
func At(m image.Image, x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return Transparent
	}
	c := m.At(x, y)
	if c == nil {
		return Transparent
	}
	return c
}

// Grid describes how a source image is divided into tiles and where each
// padded tile lands in the destination image.
type Grid struct {
	// Cols and Rows are the number of whole tiles across and down
	Cols, Rows int
	// Size is the tile width and height, Border the padding on each side
	Size, Border int

	src image.Rectangle
}

// NewGrid returns the grid of whole tiles of the given size that fit within
// the source bounds b. Any pixels to the right or below the last whole tile
// are not part of the grid.
func NewGrid(b image.Rectangle, size, border int) Grid {
	g := Grid{
		Size:   size,
		Border: border,
		src:    b,
	}
	if size > 0 {
		g.Cols = b.Dx() / size
		g.Rows = b.Dy() / size
	}
	return g
}

// Len returns the number of tiles in the grid.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// Cell returns the width and height of a padded tile.
func (g Grid) Cell() int {
	return g.Size + g.Border<<1
}

// Point returns the grid coordinate of the i'th tile in row-major order.
func (g Grid) Point(i int) image.Point {
	return image.Pt(i%g.Cols, i/g.Cols)
}

// Source returns the rectangle in the source image covered by tile (tx, ty).
func (g Grid) Source(tx, ty int) image.Rectangle {
	p := g.src.Min.Add(image.Pt(tx*g.Size, ty*g.Size))
	return image.Rectangle{p, p.Add(image.Pt(g.Size, g.Size))}
}

// Dest returns the rectangle in the destination image occupied by the
// padded tile (tx, ty).
func (g Grid) Dest(tx, ty int) image.Rectangle {
	c := g.Cell()
	return image.Rect(tx*c, ty*c, tx*c+c, ty*c+c)
}

// Bounds returns the bounds of the destination image.
func (g Grid) Bounds() image.Rectangle {
	c := g.Cell()
	return image.Rect(0, 0, g.Cols*c, g.Rows*c)
}

// Remainder returns the number of source pixel columns and rows that fall
// outside the grid.
func (g Grid) Remainder() (int, int) {
	if g.Size <= 0 {
		return g.src.Dx(), g.src.Dy()
	}
	return g.src.Dx() % g.Size, g.src.Dy() % g.Size
}
