package studio

import (
	"errors"
	"testing"

	"gifforge/internal/assemble"
	"gifforge/internal/config"
	"gifforge/internal/frames"
	"gifforge/internal/logging"
	"gifforge/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel() Model {
	cfg := config.Default()
	return New(&cfg, nil, nil, nil, nil, logging.NewNop())
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelStartsCapturing(t *testing.T) {
	m := newTestModel()
	if m.state.Phase != session.PhaseCapturing {
		t.Errorf("phase = %s, want capturing", m.state.Phase)
	}
	if m.state.DelayMS != config.Default().Output.DelayMS {
		t.Errorf("delay = %d", m.state.DelayMS)
	}
}

func TestCollectionLoaded(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(collectionLoadedMsg{
		Frames: []frames.Frame{
			{ID: "a", Position: 0, SourceName: "cat.png"},
			{ID: "b", Position: 1, SourceName: "dog.png"},
		},
		Session: frames.Session{Title: "Cat", DelayMS: 150},
	})
	model := updated.(Model)

	if model.state.FrameCount != 2 {
		t.Errorf("frame count = %d, want 2", model.state.FrameCount)
	}
	if model.state.Title != "Cat" {
		t.Errorf("title = %q", model.state.Title)
	}
	if model.state.DelayMS != 150 {
		t.Errorf("delay = %d, want 150", model.state.DelayMS)
	}
}

func TestBatchAppended(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(batchAppendedMsg{
		Appended: []frames.Frame{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Title:    "Sunset",
	})
	model := updated.(Model)

	if model.state.FrameCount != 3 {
		t.Errorf("frame count = %d, want 3", model.state.FrameCount)
	}
	if model.state.Title != "Sunset" {
		t.Errorf("title = %q", model.state.Title)
	}
	if len(model.frames) != 3 {
		t.Errorf("frames = %d, want 3", len(model.frames))
	}
}

func TestBatchFailedKeepsCollection(t *testing.T) {
	m := newTestModel()
	m.frames = []frames.Frame{{ID: "a"}}
	m.state.FrameCount = 1

	updated, _ := m.Update(batchFailedMsg{Err: errors.New("decode failed")})
	model := updated.(Model)

	if model.state.FrameCount != 1 {
		t.Errorf("frame count = %d, want 1", model.state.FrameCount)
	}
	if model.state.ErrorMessage == "" {
		t.Error("expected inline error message")
	}
	if model.state.Phase != session.PhaseCapturing {
		t.Errorf("phase = %s, want capturing", model.state.Phase)
	}
}

func TestFrameRemovedClampsSelection(t *testing.T) {
	m := newTestModel()
	m.frames = []frames.Frame{{ID: "a"}, {ID: "b"}}
	m.state.FrameCount = 2
	m.selected = 1

	updated, _ := m.Update(frameRemovedMsg{ID: "b"})
	model := updated.(Model)

	if len(model.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(model.frames))
	}
	if model.frames[0].ID != "a" {
		t.Errorf("kept frame = %q, want a", model.frames[0].ID)
	}
	if model.selected != 0 {
		t.Errorf("selected = %d, want 0", model.selected)
	}
}

func TestAssemblyRequiresTwoFrames(t *testing.T) {
	m := newTestModel()
	m.frames = []frames.Frame{{ID: "a"}}
	m.state.FrameCount = 1

	updated, cmd := m.Update(keyMsg("g"))
	model := updated.(Model)

	if cmd != nil {
		t.Error("expected no assembly command with one frame")
	}
	if model.state.Phase != session.PhaseCapturing {
		t.Errorf("phase = %s, want capturing", model.state.Phase)
	}
	if model.state.ErrorMessage == "" {
		t.Error("expected inline error message")
	}
}

func TestAssemblyRoundTrip(t *testing.T) {
	m := newTestModel()
	m.frames = []frames.Frame{{ID: "a"}, {ID: "b"}}
	m.state.FrameCount = 2

	updated, cmd := m.Update(keyMsg("g"))
	model := updated.(Model)

	if cmd == nil {
		t.Fatal("expected assembly command")
	}
	if model.state.Phase != session.PhaseProcessing {
		t.Fatalf("phase = %s, want processing", model.state.Phase)
	}

	artifact := &assemble.GIF{FrameCount: 2, Width: 10, Height: 10, DelayMS: 200}
	updated, _ = model.Update(assemblyDoneMsg{Artifact: artifact})
	model = updated.(Model)

	if model.state.Phase != session.PhaseAnimating {
		t.Errorf("phase = %s, want animating", model.state.Phase)
	}
	if model.state.Result != artifact {
		t.Error("result not stored")
	}
}

func TestAssemblyFailureReturnsToCapturing(t *testing.T) {
	m := newTestModel()
	m.frames = []frames.Frame{{ID: "a"}, {ID: "b"}}
	m.state.FrameCount = 2
	m.state.Phase = session.PhaseProcessing

	updated, _ := m.Update(assemblyFailedMsg{Err: errors.New("encoder exploded")})
	model := updated.(Model)

	if model.state.Phase != session.PhaseCapturing {
		t.Errorf("phase = %s, want capturing", model.state.Phase)
	}
	if model.state.FrameCount != 2 {
		t.Errorf("frame count = %d, want 2", model.state.FrameCount)
	}
	if model.state.ErrorMessage == "" {
		t.Error("expected inline error message")
	}
}

func TestProcessingIgnoresCaptureKeys(t *testing.T) {
	m := newTestModel()
	m.state.Phase = session.PhaseProcessing
	m.state.FrameCount = 2

	updated, cmd := m.Update(keyMsg("a"))
	model := updated.(Model)

	if cmd != nil {
		t.Error("expected no command while processing")
	}
	if model.typing {
		t.Error("typing mode should not start while processing")
	}
}

func TestBackFromAnimating(t *testing.T) {
	m := newTestModel()
	m.state.Phase = session.PhaseAnimating
	m.state.Result = &assemble.GIF{FrameCount: 2}
	m.state.FrameCount = 2

	updated, _ := m.Update(keyMsg("b"))
	model := updated.(Model)

	if model.state.Phase != session.PhaseCapturing {
		t.Errorf("phase = %s, want capturing", model.state.Phase)
	}
	if model.state.Result != nil {
		t.Error("result should be dropped on back")
	}
	if model.state.FrameCount != 2 {
		t.Errorf("frame count = %d, want 2", model.state.FrameCount)
	}
}

func TestExportCooldownBlocksRepeat(t *testing.T) {
	m := newTestModel()
	m.state.Phase = session.PhaseAnimating
	m.state.Result = &assemble.GIF{FrameCount: 2}

	updated, cmd := m.Update(exportDoneMsg{Path: "/tmp/anh_dong.gif"})
	model := updated.(Model)
	if cmd == nil {
		t.Fatal("expected cooldown tick command")
	}
	if !model.exportCooling {
		t.Fatal("expected cooldown flag set")
	}

	updated, cmd = model.Update(keyMsg("e"))
	model = updated.(Model)
	if cmd != nil {
		t.Error("expected export blocked during cooldown")
	}

	updated, _ = model.Update(exportCooldownClearedMsg{})
	model = updated.(Model)
	if model.exportCooling {
		t.Error("cooldown should be cleared")
	}
}

func TestDelayKeysStayInBounds(t *testing.T) {
	m := newTestModel()
	m.state.DelayMS = config.MinDelayMS

	updated, _ := m.Update(keyMsg("-"))
	model := updated.(Model)
	if model.state.DelayMS != config.MinDelayMS {
		t.Errorf("delay = %d, want %d", model.state.DelayMS, config.MinDelayMS)
	}

	model.state.DelayMS = config.MaxDelayMS
	updated, _ = model.Update(keyMsg("+"))
	model = updated.(Model)
	if model.state.DelayMS != config.MaxDelayMS {
		t.Errorf("delay = %d, want %d", model.state.DelayMS, config.MaxDelayMS)
	}
}

func TestPathInputDropsNonImageFiles(t *testing.T) {
	m := newTestModel()
	m.typing = true
	m.input = "cat.png notes.txt"

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	if cmd == nil {
		t.Fatal("expected an append command for the remaining image")
	}
	if model.notice != "skipped 1 non-image file(s)" {
		t.Errorf("notice = %q", model.notice)
	}
	if model.state.ErrorMessage != "" {
		t.Errorf("unexpected error %q", model.state.ErrorMessage)
	}
}

func TestPathInputAllNonImageAppendsNothing(t *testing.T) {
	m := newTestModel()
	m.typing = true
	m.input = "notes.txt readme.md"

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	if cmd != nil {
		t.Fatal("expected no command when every path is filtered")
	}
	if model.state.FrameCount != 0 {
		t.Errorf("frame count = %d, want 0", model.state.FrameCount)
	}
	if model.notice != "skipped 2 non-image file(s)" {
		t.Errorf("notice = %q", model.notice)
	}
}

func TestPathInputMode(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyMsg("a"))
	model := updated.(Model)
	if !model.typing {
		t.Fatal("expected typing mode")
	}

	for _, r := range "cat.png" {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		model = updated.(Model)
	}
	if model.input != "cat.png" {
		t.Errorf("input = %q", model.input)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model = updated.(Model)
	if model.typing {
		t.Error("esc should cancel typing mode")
	}
	if model.input != "" {
		t.Errorf("input = %q, want empty", model.input)
	}
}
