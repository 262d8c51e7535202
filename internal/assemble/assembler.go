package assemble

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"gifforge/internal/encoder"
	"gifforge/internal/frames"
	"gifforge/internal/logging"
	"gifforge/internal/services"
)

// MinFrames is the smallest collection that can be assembled.
const MinFrames = 2

// GIF is one assembled artifact. It is replaced wholesale on each new
// assembly and discarded on back-navigation.
type GIF struct {
	Data       []byte
	Width      int
	Height     int
	FrameCount int
	DelayMS    int
}

// Assembler drives the GIF encoder for the current frame collection. It
// performs no retries; a failed attempt surfaces directly to the caller.
type Assembler struct {
	encoder encoder.Encoder
	workers int
	logger  *slog.Logger
}

// New constructs an Assembler. workers is the parallelism hint forwarded to
// the encoder on every request.
func New(enc encoder.Encoder, workers int, logger *slog.Logger) *Assembler {
	if workers < 1 {
		workers = 1
	}
	return &Assembler{
		encoder: enc,
		workers: workers,
		logger:  logging.WithComponent(logger, "assembler"),
	}
}

// Assemble encodes the ordered frames into one animated GIF displaying each
// frame for delayMS milliseconds.
//
// The output canvas takes the first frame's dimensions; later frames are not
// re-validated against it since the normalizer already bounded every frame.
func (a *Assembler) Assemble(ctx context.Context, list []frames.Frame, delayMS int) (*GIF, error) {
	if len(list) < MinFrames {
		return nil, services.Wrap(services.ErrInsufficientFrames, "assembler", "assemble",
			fmt.Sprintf("need %d frames, have %d", MinFrames, len(list)), nil)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(list[0].PNG))
	if err != nil {
		return nil, services.Wrap(services.ErrDimensionProbe, "assembler", "probe first frame",
			list[0].SourceName, err)
	}

	images := make([][]byte, len(list))
	for i, frame := range list {
		images[i] = frame.PNG
	}

	req := encoder.Request{
		Images:   images,
		Interval: float64(delayMS) / 1000.0,
		Workers:  a.workers,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}

	a.logger.Info("assembly started",
		logging.Int("frames", len(list)),
		logging.Int("delay_ms", delayMS),
		logging.Int("width", req.Width),
		logging.Int("height", req.Height),
	)
	start := time.Now()

	result, err := a.encoder.Encode(ctx, req)
	if err != nil {
		a.logger.Error("assembly failed", logging.Error(err))
		return nil, services.Wrap(services.ErrEncode, "", "", "", err)
	}

	a.logger.Info("assembly finished",
		logging.Int("bytes", len(result.GIF)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return &GIF{
		Data:       result.GIF,
		Width:      req.Width,
		Height:     req.Height,
		FrameCount: len(list),
		DelayMS:    delayMS,
	}, nil
}
