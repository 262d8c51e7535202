package frames

import "time"

// Frame is one normalized still image contributing to the animated output.
// Frames are immutable after creation; edits replace the frame instead.
type Frame struct {
	ID         string
	Position   int
	SourceName string
	Width      int
	Height     int
	PNG        []byte
	CreatedAt  time.Time
}

// Session captures the mutable per-session knobs stored alongside frames.
type Session struct {
	Title     string
	DelayMS   int
	UpdatedAt time.Time
}
