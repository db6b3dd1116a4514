package texatlas

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/bodgit/texatlas/format"
	"github.com/bodgit/texatlas/tile"
)

// Atlases wider or taller than this are refused rather than allocated
const maxAtlasSize = 1 << 16

func (b *Builder) grid(r image.Rectangle) tile.Grid {
	return tile.NewGrid(r, b.config.TileSize, b.config.Border)
}

// Build pads every whole tile in src and returns the resulting atlas. Any
// partial tiles along the right and bottom edges are ignored unless the
// Builder is in strict mode, in which case ErrTruncated is returned.
func (b *Builder) Build(ctx context.Context, src image.Image) (*image.NRGBA, error) {
	g := b.grid(src.Bounds())
	if g.Len() == 0 {
		return nil, fmt.Errorf("%w: %dx%d image, %dx%d tiles", ErrNoTiles, src.Bounds().Dx(), src.Bounds().Dy(), g.Size, g.Size)
	}

	if dx, dy := g.Remainder(); dx != 0 || dy != 0 {
		if b.config.Strict {
			return nil, fmt.Errorf("%w: %d columns and %d rows of pixels left over", ErrTruncated, dx, dy)
		}
		b.logger.Printf("Ignoring %d columns and %d rows of pixels beyond the last whole tile\n", dx, dy)
	}

	if r := g.Bounds(); r.Dx() > maxAtlasSize || r.Dy() > maxAtlasSize {
		return nil, fmt.Errorf("%w: %dx%d pixel atlas is larger than %d pixels per side", ErrInvalidConfig, r.Dx(), r.Dy(), maxAtlasSize)
	}

	b.logger.Printf("Padding %dx%d tiles of %dx%d pixels with a %d pixel border\n", g.Cols, g.Rows, g.Size, g.Size, g.Border)

	dst := image.NewNRGBA(g.Bounds())
	if err := b.padTiles(ctx, g, src, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

func (b *Builder) decode(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer f.Close()

	m, name, err := format.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, file, err)
	}
	b.logger.Printf("Decoded %dx%d %s image from %s\n", m.Bounds().Dx(), m.Bounds().Dy(), name, file)

	return m, nil
}

// BuildFile reads the source image in, builds the atlas and writes it to
// out. The output format is chosen from the extension of out. Nothing is
// written unless the whole atlas is built and encoded successfully.
func (b *Builder) BuildFile(ctx context.Context, in, out string) error {
	src, err := b.decode(in)
	if err != nil {
		return err
	}

	dst, err := b.Build(ctx, src)
	if err != nil {
		return err
	}

	var m image.Image = dst
	if b.config.Colors > 0 {
		m = format.Reduce(dst, b.config.Colors)
	}

	if err := format.WriteFile(out, m); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, out, err)
	}
	b.logger.Printf("Wrote %dx%d atlas to %s\n", dst.Bounds().Dx(), dst.Bounds().Dy(), out)

	return nil
}

// Inspect returns the tile grid that would be used to build an atlas from
// the image in file, decoding only the image header.
func (b *Builder) Inspect(file string) (tile.Grid, error) {
	f, err := os.Open(file)
	if err != nil {
		return tile.Grid{}, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer f.Close()

	c, _, err := format.DecodeConfig(f)
	if err != nil {
		return tile.Grid{}, fmt.Errorf("%w: %s: %w", ErrDecode, file, err)
	}

	return b.grid(image.Rect(0, 0, c.Width, c.Height)), nil
}
