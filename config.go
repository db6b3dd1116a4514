package texatlas

import (
	"fmt"
	"runtime"

	"github.com/bodgit/texatlas/format"
	"github.com/bodgit/texatlas/tile"
)

// Tile sizes and borders beyond this are rejected by Validate
const maxTileSize = 1 << 16

// Config controls how an atlas is built.
type Config struct {
	// TileSize is the width and height of each tile in the source image
	TileSize int
	// Border is the number of pixels of padding added to each side of a tile
	Border int
	// Workers is the number of tiles padded concurrently, zero means one
	// per CPU
	Workers int
	// Strict rejects source images that are not a whole number of tiles
	// rather than ignoring the partial tiles
	Strict bool
	// Colors, if non-zero, reduces the written atlas to a palette of no
	// more than this many colors
	Colors int
}

// DefaultConfig returns the configuration for 16 by 16 pixel tiles with a
// one pixel border.
func DefaultConfig() Config {
	return Config{
		TileSize: tile.DefaultSize,
		Border:   tile.DefaultBorder,
		Workers:  runtime.NumCPU(),
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.TileSize < 1 || c.TileSize > maxTileSize:
		return fmt.Errorf("%w: tile size %d is outside 1-%d", ErrInvalidConfig, c.TileSize, maxTileSize)
	case c.Border < 0 || c.Border > maxTileSize:
		return fmt.Errorf("%w: border %d is outside 0-%d", ErrInvalidConfig, c.Border, maxTileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: %d workers is negative", ErrInvalidConfig, c.Workers)
	case c.Colors != 0 && (c.Colors < 2 || c.Colors > format.MaxColors):
		return fmt.Errorf("%w: %d colors is outside 2-%d", ErrInvalidConfig, c.Colors, format.MaxColors)
	}
	return nil
}
