package services_test

import (
	"errors"
	"strings"
	"testing"

	"gifforge/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrDecode, "normalizer", "decode", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"normalizer", "decode", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerFallsBackToValidation(t *testing.T) {
	err := services.Wrap(nil, "session", "", "bad input", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation fallback, got %v", err)
	}
}

func TestUserMessageInsufficientFrames(t *testing.T) {
	err := services.Wrap(services.ErrInsufficientFrames, "assembler", "assemble", "need 2, have 1", nil)
	if got := services.UserMessage(err); got != "at least 2 frames are required to create a GIF" {
		t.Fatalf("unexpected user message %q", got)
	}
}

func TestUserMessageSurfacesEncoderTextVerbatim(t *testing.T) {
	err := services.Wrap(services.ErrEncode, "", "", "", errors.New("oom"))
	got := services.UserMessage(err)
	if !strings.Contains(got, "oom") {
		t.Fatalf("expected encoder message to survive, got %q", got)
	}
	if strings.Contains(got, services.ErrEncode.Error()) {
		t.Fatalf("expected marker prefix to be stripped, got %q", got)
	}
}

func TestReencodeIsDistinctFromDecode(t *testing.T) {
	err := services.Wrap(services.ErrReencode, "normalizer", "encode png", "frame.png", errors.New("short write"))
	if !errors.Is(err, services.ErrReencode) {
		t.Fatalf("expected reencode marker, got %v", err)
	}
	if errors.Is(err, services.ErrDecode) {
		t.Fatalf("reencode failure must not classify as decode, got %v", err)
	}
}

func TestUserMessageNil(t *testing.T) {
	if got := services.UserMessage(nil); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}
