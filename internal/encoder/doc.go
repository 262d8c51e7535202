// Package encoder defines the GIF encoding boundary and its in-process
// implementation.
//
// The assembler treats the Encoder interface as a black box: it hands over
// ordered frame rasters, a per-frame interval in seconds, a worker hint, and
// canvas dimensions, and receives either an encoded GIF or an error. Tests
// substitute fakes at this seam.
package encoder
