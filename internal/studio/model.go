// Package studio is the interactive terminal UI for building a GIF: add
// frames, reorder-free pruning, tune the frame delay, assemble, and export.
// All state transitions flow through the session reducer; the model only
// translates key presses into events and runs side effects as commands.
package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gifforge/internal/assemble"
	"gifforge/internal/config"
	"gifforge/internal/export"
	"gifforge/internal/frames"
	"gifforge/internal/logging"
	"gifforge/internal/normalize"
	"gifforge/internal/services"
	"gifforge/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// delayStep is how far one +/- key press moves the frame delay.
const delayStep = 10

// Model is the root bubbletea model. Session semantics live in the reducer;
// the model carries the frame list, selection, and input state around it.
type Model struct {
	cfg        *config.Config
	store      *frames.Store
	normalizer *normalize.Normalizer
	assembler  *assemble.Assembler
	exporter   *export.Exporter
	logger     *slog.Logger

	state  session.State
	frames []frames.Frame

	selected int
	typing   bool
	input    string

	exportCooling bool
	notice        string

	width  int
	height int
}

// New builds the model around an open store and the pipeline services.
func New(cfg *config.Config, store *frames.Store, normalizer *normalize.Normalizer, assembler *assemble.Assembler, exporter *export.Exporter, logger *slog.Logger) Model {
	return Model{
		cfg:        cfg,
		store:      store,
		normalizer: normalizer,
		assembler:  assembler,
		exporter:   exporter,
		logger:     logging.WithComponent(logger, "studio"),
		state:      session.NewState(cfg.Output.DelayMS),
	}
}

// Init loads whatever collection the workspace already holds.
func (m Model) Init() tea.Cmd {
	return loadCollectionCmd(m.store)
}

func loadCollectionCmd(store *frames.Store) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		list, err := store.List(ctx)
		if err != nil {
			return storeErrorMsg{Err: err}
		}
		sess, err := store.Session(ctx)
		if err != nil {
			return storeErrorMsg{Err: err}
		}
		return collectionLoadedMsg{Frames: list, Session: sess}
	}
}

func addFramesCmd(store *frames.Store, normalizer *normalize.Normalizer, paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		images, err := normalizer.NormalizeFiles(ctx, paths)
		if err != nil {
			return batchFailedMsg{Err: err}
		}
		appended, err := store.Append(ctx, images)
		if err != nil {
			return batchFailedMsg{Err: err}
		}
		sess, err := store.Session(ctx)
		if err != nil {
			return storeErrorMsg{Err: err}
		}
		return batchAppendedMsg{Appended: appended, Title: sess.Title}
	}
}

func removeFrameCmd(store *frames.Store, id string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Remove(context.Background(), id); err != nil {
			return storeErrorMsg{Err: err}
		}
		return frameRemovedMsg{ID: id}
	}
}

func setDelayCmd(store *frames.Store, delayMS int) tea.Cmd {
	return func() tea.Msg {
		if err := store.SetDelay(context.Background(), delayMS); err != nil {
			return storeErrorMsg{Err: err}
		}
		return nil
	}
}

func assembleCmd(assembler *assemble.Assembler, list []frames.Frame, delayMS int) tea.Cmd {
	return func() tea.Msg {
		artifact, err := assembler.Assemble(context.Background(), list, delayMS)
		if err != nil {
			return assemblyFailedMsg{Err: err}
		}
		return assemblyDoneMsg{Artifact: artifact}
	}
}

func exportCmd(exporter *export.Exporter, artifact *assemble.GIF) tea.Cmd {
	return func() tea.Msg {
		path, err := exporter.Export(artifact)
		if err != nil {
			return exportFailedMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

func exportCooldownCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return exportCooldownClearedMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case collectionLoadedMsg:
		m.frames = msg.Frames
		m.state.FrameCount = len(msg.Frames)
		m.state.Title = msg.Session.Title
		if msg.Session.DelayMS > 0 {
			m.state.DelayMS = msg.Session.DelayMS
		}
		m.clampSelection()
		return m, nil

	case batchAppendedMsg:
		m.frames = append(m.frames, msg.Appended...)
		m.dispatch(session.FramesAppended{Count: len(msg.Appended), Title: msg.Title})
		m.notice = fmt.Sprintf("added %d frame(s)", len(msg.Appended))
		return m, nil

	case batchFailedMsg:
		m.dispatch(session.BatchFailed{Message: services.UserMessage(msg.Err)})
		return m, nil

	case frameRemovedMsg:
		kept := m.frames[:0]
		for _, f := range m.frames {
			if f.ID != msg.ID {
				kept = append(kept, f)
			}
		}
		m.frames = kept
		m.dispatch(session.FrameRemoved{})
		m.clampSelection()
		return m, nil

	case assemblyDoneMsg:
		m.dispatch(session.AssemblySucceeded{Result: msg.Artifact})
		return m, nil

	case assemblyFailedMsg:
		m.dispatch(session.AssemblyFailed{Message: services.UserMessage(msg.Err)})
		return m, nil

	case exportDoneMsg:
		m.notice = "saved " + msg.Path
		m.exportCooling = true
		return m, exportCooldownCmd(2 * time.Second)

	case exportFailedMsg:
		m.state.ErrorMessage = services.UserMessage(msg.Err)
		return m, nil

	case exportCooldownClearedMsg:
		m.exportCooling = false
		return m, nil

	case storeErrorMsg:
		m.state.ErrorMessage = services.UserMessage(msg.Err)
		return m, nil
	}

	return m, nil
}

// dispatch runs an event through the reducer. A rejected event is a phase
// mismatch caused by a stale key press, so it is dropped rather than shown.
func (m *Model) dispatch(ev session.Event) {
	next, err := session.Apply(m.state, ev)
	if err != nil {
		m.logger.Debug("event rejected", logging.Error(err))
		return
	}
	m.state = next
	if m.state.ErrorMessage != "" {
		m.notice = ""
	}
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.frames) {
		m.selected = len(m.frames) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// handleKey processes key presses, gated by the current phase.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.state.Phase {
	case session.PhaseCapturing:
		return m.handleCapturingKey(msg)
	case session.PhaseAnimating, session.PhaseError:
		return m.handleAnimatingKey(msg)
	}

	// Processing accepts nothing but quit.
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.typing = false
		paths := strings.Fields(m.input)
		m.input = ""
		// Non-image selections are dropped by declared type, not errors.
		images := normalize.FilterImagePaths(paths)
		if skipped := len(paths) - len(images); skipped > 0 {
			m.notice = fmt.Sprintf("skipped %d non-image file(s)", skipped)
		}
		if len(images) == 0 {
			return m, nil
		}
		return m, addFramesCmd(m.store, m.normalizer, images)

	case tea.KeyEsc:
		m.typing = false
		m.input = ""
		return m, nil

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case tea.KeyRunes:
		m.input += string(msg.Runes)
		return m, nil

	case tea.KeySpace:
		m.input += " "
		return m, nil
	}
	return m, nil
}

func (m Model) handleCapturingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		m.typing = true
		m.input = ""
		m.notice = ""
		return m, nil

	case "j", "down":
		if m.selected < len(m.frames)-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "x":
		if m.selected < len(m.frames) {
			return m, removeFrameCmd(m.store, m.frames[m.selected].ID)
		}
		return m, nil

	case "+", "=":
		delay := m.state.DelayMS + delayStep
		if delay > config.MaxDelayMS {
			delay = config.MaxDelayMS
		}
		m.dispatch(session.DelayChanged{DelayMS: delay})
		return m, setDelayCmd(m.store, delay)

	case "-":
		delay := m.state.DelayMS - delayStep
		if delay < config.MinDelayMS {
			delay = config.MinDelayMS
		}
		m.dispatch(session.DelayChanged{DelayMS: delay})
		return m, setDelayCmd(m.store, delay)

	case "g", "enter":
		m.dispatch(session.AssemblyRequested{})
		if m.state.Phase != session.PhaseProcessing {
			return m, nil
		}
		return m, assembleCmd(m.assembler, m.frames, m.state.DelayMS)
	}

	return m, nil
}

func (m Model) handleAnimatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		m.dispatch(session.BackRequested{})
		return m, nil

	case "e":
		if m.state.Result == nil {
			return m, nil
		}
		if m.exportCooling {
			m.notice = "export cooling down"
			return m, nil
		}
		return m, exportCmd(m.exporter, m.state.Result)
	}

	return m, nil
}

// View renders the full TUI.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, "")

	switch m.state.Phase {
	case session.PhaseProcessing:
		sections = append(sections, busyStyle.Render("assembling GIF..."))
	case session.PhaseAnimating:
		sections = append(sections, m.renderResult())
	default:
		sections = append(sections, m.renderFrameList())
	}

	if m.typing {
		sections = append(sections, "", "paths> "+m.input+"_")
	}

	if m.state.ErrorMessage != "" {
		sections = append(sections, "", errorStyle.Render(m.state.ErrorMessage))
	} else if m.notice != "" {
		sections = append(sections, "", noticeStyle.Render(m.notice))
	}

	sections = append(sections, "", m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := m.state.Title
	if title == "" {
		title = "untitled"
	}
	phase := phaseStyle.Render(string(m.state.Phase))
	if m.state.Phase == session.PhaseProcessing {
		phase = busyStyle.Render(string(m.state.Phase))
	}
	meta := dimStyle.Render(fmt.Sprintf("%d frames, %d ms/frame", m.state.FrameCount, m.state.DelayMS))
	return titleStyle.Render("GIFFORGE") + "  " + title + "  " + phase + "  " + meta
}

func (m Model) renderFrameList() string {
	if len(m.frames) == 0 {
		return dimStyle.Render("no frames yet. press a to add images.")
	}
	var b strings.Builder
	for i, f := range m.frames {
		line := fmt.Sprintf("%3d  %s  %dx%d", f.Position+1, f.SourceName, f.Width, f.Height)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(m.frames)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderResult() string {
	r := m.state.Result
	if r == nil {
		return dimStyle.Render("no result")
	}
	return fmt.Sprintf("GIF ready: %d frames, %dx%d, %d ms/frame, %d bytes",
		r.FrameCount, r.Width, r.Height, r.DelayMS, len(r.Data))
}

func (m Model) renderFooter() string {
	type binding struct{ key, desc string }
	var bindings []binding
	switch m.state.Phase {
	case session.PhaseCapturing:
		bindings = []binding{
			{"a", "add"}, {"j/k", "select"}, {"x", "remove"},
			{"+/-", "delay"}, {"g", "make gif"}, {"q", "quit"},
		}
	case session.PhaseProcessing:
		bindings = []binding{{"q", "quit"}}
	default:
		bindings = []binding{{"e", "export"}, {"b", "back"}, {"q", "quit"}}
	}
	parts := make([]string, 0, len(bindings))
	for _, bd := range bindings {
		parts = append(parts, footerKeyStyle.Render(bd.key)+" "+footerDescStyle.Render(bd.desc))
	}
	return strings.Join(parts, "  ")
}
