package atlas

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/gogpu/textc/glyphset"
)

// Baker rasterizes glyph identities and packs them into an atlas.
type Baker struct {
	ras Rasterizer

	// Padding is the pixel border kept around each glyph's ink when
	// cropping and when insetting UVs.
	Padding int

	// Workers bounds concurrent rasterization; zero means GOMAXPROCS.
	Workers int
}

// NewBaker returns a baker with the standard 2px padding.
func NewBaker(ras Rasterizer) *Baker {
	return &Baker{ras: ras, Padding: 2}
}

// Bake rasterizes every identity once and packs the results. Entries
// come back in input order regardless of rasterization concurrency or
// packing order.
func (b *Baker) Bake(ids []glyphset.Entry) (*Atlas, error) {
	bitmaps, err := b.rasterizeAll(ids)
	if err != nil {
		return nil, err
	}

	sizes := make([]image.Point, len(bitmaps))
	for i, bm := range bitmaps {
		sizes[i] = bm.Ink.Size()
	}
	pos, canvas, err := Pack(sizes)
	if err != nil {
		return nil, err
	}

	atlas := &Atlas{
		Image:   image.NewNRGBA(image.Rect(0, 0, canvas, canvas)),
		Entries: make([]Entry, len(ids)),
		Size:    canvas,
	}
	pad := float32(b.Padding)
	edge := float32(canvas)
	for i, bm := range bitmaps {
		b.blit(atlas.Image, bm, pos[i])
		w := float32(sizes[i].X)
		h := float32(sizes[i].Y)
		atlas.Entries[i] = Entry{
			UID: ids[i].UID,
			U0:  (float32(pos[i].X) + pad) / edge,
			V0:  (float32(pos[i].Y) + pad) / edge,
			U1:  (float32(pos[i].X) + w - pad) / edge,
			V1:  (float32(pos[i].Y) + h - pad) / edge,
		}
	}
	return atlas, nil
}

// rasterizeAll fans rasterization out over a bounded worker pool and
// keeps results in input order. The first error wins; remaining work is
// finished and discarded.
func (b *Baker) rasterizeAll(ids []glyphset.Entry) ([]*Bitmap, error) {
	bitmaps := make([]*Bitmap, len(ids))
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				bm, err := b.ras.Rasterize(ids[i].Face, ids[i].GID)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("atlas: glyph %s/%d: %w", ids[i].Face, ids[i].GID, err)
					}
					mu.Unlock()
					continue
				}
				bitmaps[i] = bm
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return bitmaps, nil
}

// blit copies the bitmap's ink region to the canvas position.
func (b *Baker) blit(dst *image.NRGBA, bm *Bitmap, at image.Point) {
	for y := bm.Ink.Min.Y; y < bm.Ink.Max.Y; y++ {
		srcOff := (y*bm.Size + bm.Ink.Min.X) * 4
		dstOff := dst.PixOffset(at.X, at.Y+y-bm.Ink.Min.Y)
		copy(dst.Pix[dstOff:dstOff+bm.Ink.Dx()*4], bm.Pix[srcOff:srcOff+bm.Ink.Dx()*4])
	}
}
