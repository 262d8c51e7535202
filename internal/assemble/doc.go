// Package assemble orchestrates GIF assembly: it validates the frame count,
// probes the first frame for output dimensions, converts the display interval
// to the encoder's unit, and interprets the encoder's single response into a
// result or a classified error. The encoder itself is a black box behind the
// encoder.Encoder interface.
package assemble
