/*
Package texatlas is a library for building padded texture atlases from a sheet
of equally sized tiles.

Every tile is copied into its own cell in the atlas surrounded by a border
that repeats the tile's edge pixels, so that texture filtering just outside a
tile's bounds never picks up color from the neighbouring tile.
*/
package texatlas

import (
	"errors"
	"io"
	"log"
	"runtime"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation
	ErrInvalidConfig = errors.New("texatlas: invalid configuration")
	// ErrSourceNotFound is returned when the source image cannot be opened
	ErrSourceNotFound = errors.New("texatlas: source image not found")
	// ErrDecode is returned when the source image cannot be decoded
	ErrDecode = errors.New("texatlas: cannot decode source image")
	// ErrEncode is returned when the atlas cannot be encoded or written
	ErrEncode = errors.New("texatlas: cannot write atlas")
	// ErrNoTiles is returned when the source image is smaller than a tile
	ErrNoTiles = errors.New("texatlas: source image contains no whole tiles")
	// ErrTruncated is returned in strict mode when the source image
	// dimensions are not a multiple of the tile size
	ErrTruncated = errors.New("texatlas: source image is not a whole number of tiles")
)

// Builder builds texture atlases.
type Builder struct {
	config Config
	logger *log.Logger
}

// New returns a Builder using the provided configuration. Progress is
// written to logger, which may be nil.
func New(config Config, logger *log.Logger) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}

	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Builder{
		config: config,
		logger: logger,
	}, nil
}

// Config returns the configuration used by the Builder.
func (b *Builder) Config() Config {
	return b.config
}
