package frames_test

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"gifforge/internal/config"
	"gifforge/internal/frames"
	"gifforge/internal/normalize"
	"gifforge/internal/services"
	"gifforge/internal/testsupport"
)

func batchOf(t *testing.T, names ...string) []normalize.Image {
	t.Helper()
	batch := make([]normalize.Image, 0, len(names))
	for _, name := range names {
		batch = append(batch, normalize.Image{
			PNG:        testsupport.PNGBytes(t, 4, 4, color.White),
			Width:      4,
			Height:     4,
			SourceName: name,
		})
	}
	return batch
}

func TestAppendPreservesBatchOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	appended, err := store.Append(ctx, batchOf(t, "a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if len(appended) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(appended))
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	wantNames := []string{"a.png", "b.png", "c.png"}
	for i, frame := range listed {
		if frame.SourceName != wantNames[i] {
			t.Fatalf("position %d: expected %q, got %q", i, wantNames[i], frame.SourceName)
		}
		if frame.Position != i {
			t.Fatalf("position %d: stored position %d", i, frame.Position)
		}
	}
}

func TestAppendSecondBatchGoesAfterFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.Append(ctx, batchOf(t, "a.png", "b.png")); err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	if _, err := store.Append(ctx, batchOf(t, "c.png")); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 3 || listed[2].SourceName != "c.png" || listed[2].Position != 2 {
		t.Fatalf("unexpected collection: %+v", listed)
	}
}

func TestAppendAssignsUniqueIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	appended, err := store.Append(ctx, batchOf(t, "a.png", "b.png", "c.png", "d.png"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	seen := map[string]struct{}{}
	for _, frame := range appended {
		if frame.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if _, dup := seen[frame.ID]; dup {
			t.Fatalf("duplicate id %s", frame.ID)
		}
		seen[frame.ID] = struct{}{}
	}
}

func TestRemoveRenumbersPositions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	appended, err := store.Append(ctx, batchOf(t, "a.png", "b.png", "c.png"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if err := store.Remove(ctx, appended[1].ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(listed))
	}
	if listed[0].SourceName != "a.png" || listed[0].Position != 0 {
		t.Fatalf("unexpected first frame %+v", listed[0])
	}
	if listed[1].SourceName != "c.png" || listed[1].Position != 1 {
		t.Fatalf("expected dense renumbering, got %+v", listed[1])
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.Append(ctx, batchOf(t, "a.png", "b.png")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("expected idempotent remove, got %v", err)
	}
	size, err := store.Size(ctx)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != 2 {
		t.Fatalf("collection changed: size %d", size)
	}
}

func TestClearResetsSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.Append(ctx, batchOf(t, "sunset_beach.png")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.SetDelay(ctx, 500); err != nil {
		t.Fatalf("SetDelay failed: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	size, err := store.Size(ctx)
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected empty collection, got %d", size)
	}
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess.Title != "" || sess.DelayMS != cfg.Output.DelayMS {
		t.Fatalf("session not reset: %+v", sess)
	}
}

func TestFirstBatchNamesSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.Append(ctx, batchOf(t, "sunset_beach.png", "other.png")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess.Title != "Sunset Beach" {
		t.Fatalf("unexpected title %q", sess.Title)
	}
}

func TestSetDelayBounds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.SetDelay(ctx, 100); err != nil {
		t.Fatalf("SetDelay(100) failed: %v", err)
	}
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if sess.DelayMS != 100 {
		t.Fatalf("delay not persisted: %d", sess.DelayMS)
	}

	for _, bad := range []int{0, config.MinDelayMS - 1, config.MaxDelayMS + 1} {
		if err := store.SetDelay(ctx, bad); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("SetDelay(%d): expected validation error, got %v", bad, err)
		}
	}
}

func TestSecondOpenIsRejectedWhileLocked(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := frames.Open(cfg); !errors.Is(err, frames.ErrWorkspaceLocked) {
		t.Fatalf("expected workspace lock error, got %v", err)
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"/tmp/sunset_beach.png", "Sunset Beach"},
		{"my-cat.01.jpg", "My Cat 01"},
		{"", "Untitled"},
		{"___.png", "Untitled"},
	}
	for _, tc := range cases {
		if got := frames.DeriveTitle(tc.input); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
