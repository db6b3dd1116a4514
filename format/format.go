/*
Package format reads and writes the image files used as texture sheets and
atlases.

Source images may be PNG, GIF, JPEG, BMP, TIFF or WebP. Atlases are written
as PNG, BMP, TIFF or GIF depending on the file extension; lossy formats are
refused as they would blur the duplicated tile borders.
*/
package format

import (
	"errors"
	"image"
	_ "image/jpeg" // register decoder
	"io"

	_ "golang.org/x/image/webp" // register decoder
)

// ErrUnsupported is returned when asked to encode to a format that cannot
// represent the atlas exactly.
var ErrUnsupported = errors.New("format: unsupported output format")

// Decode decodes an image in any registered format. The string returned is
// the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeConfig decodes the color model and dimensions of an image without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}
