package format

import (
	"bufio"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes m to w in the format implied by the extension of name.
// Unknown or missing extensions are written as PNG.
func Encode(w io.Writer, m image.Image, name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".webp":
		return ErrUnsupported
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	case ".gif":
		pm, ok := m.(*image.Paletted)
		if !ok || len(pm.Palette) > MaxColors {
			pm = Reduce(m, MaxColors)
		}
		return gif.Encode(w, pm, nil)
	default:
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, m)
	}
}

// WriteFile encodes m and writes it to the named file. The image is written
// to a temporary file alongside and only renamed into place once it has been
// completely written, so a failure never leaves a partial file behind.
func WriteFile(name string, m image.Image) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	w := bufio.NewWriter(f)
	if err = Encode(w, m, name); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	err = os.Rename(f.Name(), name)
	return err
}
