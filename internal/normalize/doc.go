// Package normalize turns arbitrary user-supplied images into canonical GIF
// frame candidates.
//
// Every source is decoded (PNG, JPEG, WEBP, or GIF), bounded to a maximum
// dimension on both axes preserving aspect ratio, and re-encoded as PNG.
// Normalization of a batch fans out per file and fans in preserving input
// order with all-or-nothing failure semantics, so one corrupt file never
// yields a partially appended batch.
package normalize
