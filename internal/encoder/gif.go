package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"sync"
)

// GIF encodes requests in-process using the standard library GIF writer.
// Frames are palettized concurrently on a worker pool sized by the request's
// Workers hint, then written out in order.
type GIF struct{}

// NewGIF constructs the in-process encoder.
func NewGIF() *GIF {
	return &GIF{}
}

// Encode palettizes every frame and assembles the animated GIF.
func (e *GIF) Encode(ctx context.Context, req Request) (*Result, error) {
	if len(req.Images) == 0 {
		return nil, errors.New("no frames supplied")
	}
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimensions %dx%d", req.Width, req.Height)
	}
	if req.Interval <= 0 {
		return nil, fmt.Errorf("invalid frame interval %v", req.Interval)
	}

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(req.Images) {
		workers = len(req.Images)
	}

	canvas := image.Rect(0, 0, req.Width, req.Height)
	frames := make([]*image.Paletted, len(req.Images))
	errs := make([]error, len(req.Images))

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					continue
				}
				frames[idx], errs[idx] = palettize(req.Images[idx], canvas)
			}
		}()
	}
	for idx := range req.Images {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for idx, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", idx, err)
		}
	}

	// GIF delays are in hundredths of a second.
	delay := int(math.Round(req.Interval * 100))
	if delay < 1 {
		delay = 1
	}
	delays := make([]int, len(frames))
	for i := range delays {
		delays[i] = delay
	}

	anim := &gif.GIF{
		Image:           frames,
		Delay:           delays,
		LoopCount:       0,
		Config:          image.Config{Width: req.Width, Height: req.Height},
		BackgroundIndex: 0,
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("write gif: %w", err)
	}
	return &Result{GIF: buf.Bytes()}, nil
}

func palettize(raster []byte, canvas image.Rectangle) (*image.Paletted, error) {
	src, err := png.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	frame := image.NewPaletted(canvas, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, canvas, src, src.Bounds().Min)
	return frame, nil
}

var _ Encoder = (*GIF)(nil)
