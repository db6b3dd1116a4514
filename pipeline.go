package texatlas

import (
	"context"
	"image"
	"image/draw"
	"sync"

	"github.com/bodgit/texatlas/tile"
)

func (b *Builder) findTiles(ctx context.Context, g tile.Grid) (<-chan image.Point, <-chan error, error) {
	out := make(chan image.Point)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 0; i < g.Len(); i++ {
			select {
			case out <- g.Point(i):
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

// Each tile lands in its own rectangle of dst so workers never overlap
func (b *Builder) tileWorker(ctx context.Context, g tile.Grid, src image.Image, dst draw.Image, in <-chan image.Point) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for p := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			m := tile.Pad(src, g.Source(p.X, p.Y), g.Border)
			draw.Draw(dst, g.Dest(p.X, p.Y), m, image.Point{}, draw.Src)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (b *Builder) padTiles(ctx context.Context, g tile.Grid, src image.Image, dst draw.Image) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	tiles, errc, err := b.findTiles(ctx, g)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < b.config.Workers; i++ {
		errc, err := b.tileWorker(ctx, g, src, dst, tiles)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
