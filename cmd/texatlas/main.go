package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bodgit/texatlas"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	defaultInput  = "dev_textures.png"
	defaultOutput = "textures.png"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// Pick the config file loader from its extension, defaulting to YAML
func configSource(c *cli.Context) (altsrc.InputSourceContext, error) {
	switch strings.ToLower(filepath.Ext(c.String("config"))) {
	case ".toml":
		return altsrc.NewTomlSourceFromFlagFunc("config")(c)
	default:
		return altsrc.NewYamlSourceFromFlagFunc("config")(c)
	}
}

func newBuilder(c *cli.Context) (*texatlas.Builder, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}

	return texatlas.New(texatlas.Config{
		TileSize: c.Int("tile-size"),
		Border:   c.Int("border"),
		Workers:  c.Int("workers"),
		Strict:   c.Bool("strict"),
		Colors:   c.Int("colors"),
	}, logger)
}

func arg(c *cli.Context, n int, def string) string {
	if c.NArg() > n {
		return c.Args().Get(n)
	}
	return def
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "texatlas"
	app.Usage = "Padded texture atlas builder"
	app.Version = "1.0.0"

	flags := []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			EnvVars: []string{"TEXATLAS_CONFIG"},
			Usage:   "load option values from a YAML or TOML `FILE`",
		},
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "tile-size",
			EnvVars: []string{"TEXATLAS_TILE_SIZE"},
			Value:   texatlas.DefaultConfig().TileSize,
			Usage:   "width and height of each tile in pixels",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "border",
			EnvVars: []string{"TEXATLAS_BORDER"},
			Value:   texatlas.DefaultConfig().Border,
			Usage:   "pixels of padding added to each side of a tile",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"TEXATLAS_WORKERS"},
			Value:   runtime.NumCPU(),
			Usage:   "number of tiles padded concurrently",
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    "colors",
			EnvVars: []string{"TEXATLAS_COLORS"},
			Usage:   "reduce the atlas to at most this many colors, 0 to keep full color",
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    "strict",
			EnvVars: []string{"TEXATLAS_STRICT"},
			Usage:   "fail if the image is not a whole number of tiles",
		}),
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Flags = flags
	app.Before = altsrc.InitInputSourceWithContext(flags, configSource)

	app.Commands = []*cli.Command{
		{
			Name:        "build",
			Usage:       "Pad each tile and write the atlas",
			Description: fmt.Sprintf("INPUT defaults to %s and OUTPUT to %s", defaultInput, defaultOutput),
			ArgsUsage:   "[INPUT [OUTPUT]]",
			Action: func(c *cli.Context) error {
				b, err := newBuilder(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := b.BuildFile(c.Context, arg(c, 0, defaultInput), arg(c, 1, defaultOutput)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Show how an image divides into tiles",
			Description: fmt.Sprintf("INPUT defaults to %s", defaultInput),
			ArgsUsage:   "[INPUT]",
			Action: func(c *cli.Context) error {
				b, err := newBuilder(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				file := arg(c, 0, defaultInput)
				g, err := b.Inspect(file)
				if err != nil {
					return cli.Exit(err, 1)
				}

				dx, dy := g.Remainder()
				fmt.Fprintf(c.App.Writer, "%s: %dx%d tiles of %dx%d pixels\n", file, g.Cols, g.Rows, g.Size, g.Size)
				fmt.Fprintf(c.App.Writer, "atlas: %dx%d pixels, %dx%d per tile\n", g.Bounds().Dx(), g.Bounds().Dy(), g.Cell(), g.Cell())
				if dx != 0 || dy != 0 {
					fmt.Fprintf(c.App.Writer, "ignored: %d columns, %d rows\n", dx, dy)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
