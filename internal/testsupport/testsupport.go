// Package testsupport provides shared helpers for package tests: temp-dir
// configs, opened frame stores, and tiny generated images.
package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gifforge/internal/config"
	"gifforge/internal/frames"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}

// MustOpenStore opens a frame store for the test config and closes it on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *frames.Store {
	t.Helper()

	store, err := frames.Open(cfg)
	if err != nil {
		t.Fatalf("open frame store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// PNGBytes returns a solid-color PNG of the given size.
func PNGBytes(t testing.TB, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// WritePNG writes a solid-color PNG file under dir and returns its path.
func WritePNG(t testing.TB, dir, name string, width, height int, c color.Color) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, PNGBytes(t, width, height, c), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
