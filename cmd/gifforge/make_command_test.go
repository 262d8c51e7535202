package main

import (
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"gifforge/internal/testsupport"
)

func TestMakeWritesGIF(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "one.png", 6, 4, color.White)
	b := testsupport.WritePNG(t, dir, "two.png", 6, 4, color.Black)
	target := filepath.Join(dir, "out.gif")

	out, _, err := runCLI(t, configPath, "make", a, b, "--delay", "120", "--output", target)
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	requireContains(t, out, "Wrote "+target)
	requireContains(t, out, "2 frames, 6x4, 120 ms/frame")

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if len(decoded.Image) != 2 {
		t.Errorf("frames = %d, want 2", len(decoded.Image))
	}
	if decoded.Delay[0] != 12 {
		t.Errorf("delay = %d hundredths, want 12", decoded.Delay[0])
	}
	if decoded.LoopCount != 0 {
		t.Errorf("loop count = %d, want 0", decoded.LoopCount)
	}
}

func TestMakeDropsNonImageFiles(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "one.png", 4, 4, color.White)
	b := testsupport.WritePNG(t, dir, "two.png", 4, 4, color.Black)
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	target := filepath.Join(dir, "out.gif")

	out, _, err := runCLI(t, configPath, "make", a, notes, b, "--output", target)
	if err != nil {
		t.Fatalf("make with stray text file: %v", err)
	}
	requireContains(t, out, "Skipping 1 non-image file(s)")
	requireContains(t, out, "2 frames")
}

func TestMakeFailsWhenFilteringLeavesTooFew(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "one.png", 4, 4, color.White)
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	_, _, err := runCLI(t, configPath, "make", a, notes)
	if err == nil {
		t.Fatal("expected make to fail with one usable image")
	}
	requireContains(t, err.Error(), "need at least 2 image files")
}

func TestMakeRequiresTwoImages(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "only.png", 4, 4, color.White)

	if _, _, err := runCLI(t, configPath, "make", a); err == nil {
		t.Fatal("expected make with one image to fail")
	}
}

func TestMakeRejectsDelayOutOfBounds(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "one.png", 4, 4, color.White)
	b := testsupport.WritePNG(t, dir, "two.png", 4, 4, color.Black)

	if _, _, err := runCLI(t, configPath, "make", a, b, "--delay", "9000"); err == nil {
		t.Fatal("expected out-of-range delay to fail")
	}
}

func TestExportAssemblesCollection(t *testing.T) {
	configPath := setupCLITestEnv(t)
	dir := t.TempDir()
	a := testsupport.WritePNG(t, dir, "one.png", 4, 4, color.White)
	b := testsupport.WritePNG(t, dir, "two.png", 4, 4, color.Black)

	if _, _, err := runCLI(t, configPath, "frames", "add", a, b); err != nil {
		t.Fatalf("frames add: %v", err)
	}

	target := filepath.Join(dir, "collection.gif")
	out, _, err := runCLI(t, configPath, "export", "--output", target)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Wrote "+target)

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected artifact at %s: %v", target, err)
	}
}

func TestExportWithEmptyCollectionFails(t *testing.T) {
	configPath := setupCLITestEnv(t)

	_, _, err := runCLI(t, configPath, "export")
	if err == nil {
		t.Fatal("expected export of empty collection to fail")
	}
	requireContains(t, err.Error(), "at least 2 frames")
}
