package texatlas

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bodgit/texatlas/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	blue = color.NRGBA{0x00, 0x00, 0xff, 0xff}
)

func solid(m *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, c)
		}
	}
}

func noise(r image.Rectangle) *image.NRGBA {
	m := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, color.NRGBA{uint8(x*31 + y), uint8(y*17 + x), uint8(x * y), uint8(0x40 + x*3 + y*5)})
		}
	}
	return m
}

func writePNG(t *testing.T, name string, m image.Image) {
	t.Helper()

	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
}

func readPNG(t *testing.T, name string) image.Image {
	t.Helper()

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)

	return m
}

func newBuilder(t *testing.T, c Config) *Builder {
	t.Helper()

	b, err := New(c, nil)
	require.NoError(t, err)

	return b
}

func TestNew(t *testing.T) {
	b, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), b.Config())

	// Zero workers means one per CPU
	b, err = New(Config{TileSize: 16, Border: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), b.Config().Workers)

	_, err = New(Config{TileSize: 16, Border: 1 << 30}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuildRedBlue(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	solid(src, image.Rect(0, 0, 16, 16), red)
	solid(src, image.Rect(16, 0, 32, 16), blue)

	m, err := newBuilder(t, DefaultConfig()).Build(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 36, 18), m.Bounds())

	for y := 0; y < 18; y++ {
		for x := 0; x < 36; x++ {
			want := red
			if x >= 18 {
				want = blue
			}
			if !assert.Equal(t, want, m.NRGBAAt(x, y), "pixel (%d, %d)", x, y) {
				return
			}
		}
	}
}

func TestBuildLayout(t *testing.T) {
	tables := []struct {
		name   string
		bounds image.Rectangle
		config Config
	}{
		{"default", image.Rect(0, 0, 64, 48), Config{TileSize: 16, Border: 1, Workers: 4}},
		{"single worker", image.Rect(0, 0, 64, 48), Config{TileSize: 16, Border: 1, Workers: 1}},
		{"no border", image.Rect(0, 0, 32, 32), Config{TileSize: 8, Border: 0, Workers: 2}},
		{"wide border", image.Rect(0, 0, 24, 16), Config{TileSize: 8, Border: 2, Workers: 3}},
		{"offset origin", image.Rect(3, 5, 35, 37), Config{TileSize: 16, Border: 1, Workers: 2}},
		{"remainder", image.Rect(0, 0, 37, 21), Config{TileSize: 16, Border: 1, Workers: 2}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			src := noise(table.bounds)

			m, err := newBuilder(t, table.config).Build(context.Background(), src)
			require.NoError(t, err)

			g := tile.NewGrid(src.Bounds(), table.config.TileSize, table.config.Border)
			require.Equal(t, g.Bounds(), m.Bounds())

			for i := 0; i < g.Len(); i++ {
				p := g.Point(i)
				want := tile.Pad(src, g.Source(p.X, p.Y), g.Border)

				d := g.Dest(p.X, p.Y)
				for y := 0; y < g.Cell(); y++ {
					for x := 0; x < g.Cell(); x++ {
						if !assert.Equal(t, want.NRGBAAt(x, y), m.NRGBAAt(d.Min.X+x, d.Min.Y+y), "tile %v pixel (%d, %d)", p, x, y) {
							return
						}
					}
				}

				// Interior is the untouched tile
				s := g.Source(p.X, p.Y)
				for y := 0; y < g.Size; y++ {
					for x := 0; x < g.Size; x++ {
						assert.Equal(t, src.NRGBAAt(s.Min.X+x, s.Min.Y+y), m.NRGBAAt(d.Min.X+g.Border+x, d.Min.Y+g.Border+y))
					}
				}
			}
		})
	}
}

func TestBuildTruncated(t *testing.T) {
	src := noise(image.Rect(0, 0, 40, 20))

	buf := new(bytes.Buffer)
	b, err := New(DefaultConfig(), log.New(buf, "", 0))
	require.NoError(t, err)

	m, err := b.Build(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 36, 18), m.Bounds())
	assert.Contains(t, buf.String(), "Ignoring 8 columns and 4 rows")

	c := DefaultConfig()
	c.Strict = true
	_, err = newBuilder(t, c).Build(context.Background(), src)
	assert.ErrorIs(t, err, ErrTruncated)

	// A whole number of tiles is fine in strict mode
	_, err = newBuilder(t, c).Build(context.Background(), noise(image.Rect(0, 0, 32, 16)))
	assert.NoError(t, err)
}

func TestBuildNoTiles(t *testing.T) {
	_, err := newBuilder(t, DefaultConfig()).Build(context.Background(), noise(image.Rect(0, 0, 15, 64)))
	assert.ErrorIs(t, err, ErrNoTiles)
}

func TestBuildTooLarge(t *testing.T) {
	tables := []struct {
		name   string
		bounds image.Rectangle
		config Config
	}{
		{"wide", image.Rect(0, 0, 4, 1), Config{TileSize: 1, Border: 1 << 15, Workers: 1}},
		{"tall", image.Rect(0, 0, 1, 4), Config{TileSize: 1, Border: 1 << 15, Workers: 1}},
		{"many tiles", image.Rect(0, 0, 1<<16+1, 1), Config{TileSize: 1, Workers: 1}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := newBuilder(t, table.config).Build(context.Background(), noise(table.bounds))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newBuilder(t, DefaultConfig()).Build(ctx, noise(image.Rect(0, 0, 256, 256)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dev_textures.png")
	out := filepath.Join(dir, "textures.png")

	src := noise(image.Rect(0, 0, 48, 32))
	writePNG(t, in, src)

	b := newBuilder(t, DefaultConfig())
	require.NoError(t, b.BuildFile(context.Background(), in, out))

	want, err := b.Build(context.Background(), src)
	require.NoError(t, err)

	got := readPNG(t, out)
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			assert.Equal(t, want.NRGBAAt(x, y), color.NRGBAModel.Convert(got.At(x, y)))
		}
	}
}

func TestBuildFileIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dev_textures.png")
	writePNG(t, in, noise(image.Rect(0, 0, 64, 64)))

	b := newBuilder(t, DefaultConfig())

	var outputs [2][]byte
	for i := range outputs {
		out := filepath.Join(dir, "textures.png")
		require.NoError(t, b.BuildFile(context.Background(), in, out))

		var err error
		outputs[i], err = os.ReadFile(out)
		require.NoError(t, err)
	}

	assert.Equal(t, outputs[0], outputs[1])
}

func TestBuildFileColors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dev_textures.png")
	out := filepath.Join(dir, "textures.png")
	writePNG(t, in, noise(image.Rect(0, 0, 32, 32)))

	c := DefaultConfig()
	c.Colors = 16
	require.NoError(t, newBuilder(t, c).BuildFile(context.Background(), in, out))

	m := readPNG(t, out)
	pm, ok := m.(*image.Paletted)
	require.True(t, ok)
	assert.LessOrEqual(t, len(pm.Palette), 16)

	// Borders still match their edges after reduction
	g := tile.NewGrid(image.Rect(0, 0, 32, 32), 16, 1)
	for i := 0; i < g.Len(); i++ {
		d := g.Dest(g.Point(i).X, g.Point(i).Y)
		for j := 1; j <= 16; j++ {
			assert.Equal(t, pm.ColorIndexAt(d.Min.X+j, d.Min.Y+1), pm.ColorIndexAt(d.Min.X+j, d.Min.Y))
			assert.Equal(t, pm.ColorIndexAt(d.Min.X+1, d.Min.Y+j), pm.ColorIndexAt(d.Min.X, d.Min.Y+j))
		}
	}
}

func TestBuildFileErrors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not a png"), 0644))

	valid := filepath.Join(dir, "dev_textures.png")
	writePNG(t, valid, noise(image.Rect(0, 0, 16, 16)))

	tables := []struct {
		name    string
		in, out string
		err     error
	}{
		{"missing", filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"), ErrSourceNotFound},
		{"undecodable", garbage, filepath.Join(dir, "out.png"), ErrDecode},
		{"missing directory", valid, filepath.Join(dir, "missing", "out.png"), ErrEncode},
		{"lossy", valid, filepath.Join(dir, "out.jpg"), ErrEncode},
	}

	b := newBuilder(t, DefaultConfig())
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			err := b.BuildFile(context.Background(), table.in, table.out)
			assert.ErrorIs(t, err, table.err)

			_, err = os.Stat(table.out)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dev_textures.png")
	writePNG(t, in, noise(image.Rect(0, 0, 40, 36)))

	g, err := newBuilder(t, DefaultConfig()).Inspect(in)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Cols)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, image.Rect(0, 0, 36, 36), g.Bounds())

	dx, dy := g.Remainder()
	assert.Equal(t, 8, dx)
	assert.Equal(t, 4, dy)

	_, err = newBuilder(t, DefaultConfig()).Inspect(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}
