package encoder

import "context"

// Request describes one encoding job. Images are self-describing rasters
// (PNG blobs) in animation order; Interval is the display time per frame in
// seconds; Workers is a parallelism hint the encoder may ignore; Width and
// Height are the output canvas dimensions.
type Request struct {
	Images   [][]byte
	Interval float64
	Workers  int
	Width    int
	Height   int
}

// Result carries the encoded animated GIF.
type Result struct {
	GIF []byte
}

// Encoder produces one animated GIF per request. Implementations deliver
// exactly one response: a result or an error, never both.
type Encoder interface {
	Encode(ctx context.Context, req Request) (*Result, error)
}
