package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRead marks a source file that could not be read at all.
	ErrRead = errors.New("read error")
	// ErrDecode marks content that could not be parsed as an image.
	ErrDecode = errors.New("decode error")
	// ErrReencode marks a decoded frame that could not be written back as PNG.
	ErrReencode = errors.New("reencode error")
	// ErrInsufficientFrames marks an assembly attempt with fewer than two frames.
	ErrInsufficientFrames = errors.New("insufficient frames")
	// ErrDimensionProbe marks a first frame that could not be decoded for sizing.
	ErrDimensionProbe = errors.New("dimension probe error")
	// ErrEncode marks a failure reported by the GIF encoder.
	ErrEncode = errors.New("encode error")
	// ErrValidation marks rejected user input.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	switch {
	case detail == "" && err != nil:
		return fmt.Errorf("%w: %w", marker, err)
	case detail == "":
		return marker
	case err != nil:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	default:
		return fmt.Errorf("%w: %s", marker, detail)
	}
}

// UserMessage reduces an error chain to the single line shown to the user.
// Encoder messages are surfaced verbatim; everything else gets a short
// classification prefix.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case errors.Is(err, ErrInsufficientFrames):
		return "at least 2 frames are required to create a GIF"
	case errors.Is(err, ErrEncode):
		return strings.TrimSpace(strings.TrimPrefix(msg, ErrEncode.Error()+": "))
	default:
		return msg
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	return strings.Join(parts, ": ")
}
