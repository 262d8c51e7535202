package session

import (
	"fmt"

	"gifforge/internal/assemble"
	"gifforge/internal/services"
)

// Phase is the top-level mode of an editing session.
type Phase string

const (
	PhaseCapturing  Phase = "capturing"
	PhaseProcessing Phase = "processing"
	PhaseAnimating  Phase = "animating"
	PhaseError      Phase = "error"
)

// State is the composed session state: phase, collection size, timing, the
// last assembled artifact, and the inline error message. It is a value; Apply
// returns a new State rather than mutating shared data.
type State struct {
	Phase        Phase
	FrameCount   int
	DelayMS      int
	Title        string
	ErrorMessage string
	Result       *assemble.GIF
}

// NewState returns the initial Capturing state.
func NewState(delayMS int) State {
	return State{Phase: PhaseCapturing, DelayMS: delayMS}
}

// Event is one user or pipeline occurrence driving the session.
type Event interface{ isEvent() }

// FramesAppended reports a batch successfully normalized and appended.
type FramesAppended struct {
	Count int
	Title string
}

// BatchFailed reports an upload batch rejected as a whole; the collection is
// unchanged and capture continues.
type BatchFailed struct{ Message string }

// FrameRemoved reports one frame removed from the collection.
type FrameRemoved struct{}

// DelayChanged reports a new per-frame display interval.
type DelayChanged struct{ DelayMS int }

// AssemblyRequested triggers encoding of the current collection.
type AssemblyRequested struct{}

// AssemblySucceeded delivers the encoder's artifact.
type AssemblySucceeded struct{ Result *assemble.GIF }

// AssemblyFailed delivers the encoder's failure message.
type AssemblyFailed struct{ Message string }

// BackRequested navigates from the result (or error) view back to capture.
type BackRequested struct{}

// Reset discards the whole session: frames, result, and error.
type Reset struct{}

func (FramesAppended) isEvent()    {}
func (BatchFailed) isEvent()       {}
func (FrameRemoved) isEvent()      {}
func (DelayChanged) isEvent()      {}
func (AssemblyRequested) isEvent() {}
func (AssemblySucceeded) isEvent() {}
func (AssemblyFailed) isEvent()    {}
func (BackRequested) isEvent()     {}
func (Reset) isEvent()             {}

// Apply computes the next state for an event. Events that are not permitted
// in the current phase return an error and leave the state unchanged.
//
// A failed assembly routes back to Capturing with an inline error message so
// the user keeps their frames; the Error phase remains recoverable via
// BackRequested but is never entered by the default flow.
func Apply(s State, event Event) (State, error) {
	switch ev := event.(type) {
	case FramesAppended:
		if s.Phase != PhaseCapturing {
			return s, transitionError(s.Phase, "append frames")
		}
		s.FrameCount += ev.Count
		if s.Title == "" {
			s.Title = ev.Title
		}
		s.ErrorMessage = ""
		return s, nil

	case BatchFailed:
		if s.Phase != PhaseCapturing {
			return s, transitionError(s.Phase, "report batch failure")
		}
		s.ErrorMessage = ev.Message
		return s, nil

	case FrameRemoved:
		if s.Phase != PhaseCapturing {
			return s, transitionError(s.Phase, "remove frame")
		}
		if s.FrameCount > 0 {
			s.FrameCount--
		}
		return s, nil

	case DelayChanged:
		if s.Phase != PhaseCapturing {
			return s, transitionError(s.Phase, "adjust delay")
		}
		s.DelayMS = ev.DelayMS
		return s, nil

	case AssemblyRequested:
		if s.Phase != PhaseCapturing {
			return s, transitionError(s.Phase, "request assembly")
		}
		if s.FrameCount < assemble.MinFrames {
			s.ErrorMessage = fmt.Sprintf("at least %d frames are required to create a GIF", assemble.MinFrames)
			return s, nil
		}
		s.Phase = PhaseProcessing
		s.ErrorMessage = ""
		return s, nil

	case AssemblySucceeded:
		if s.Phase != PhaseProcessing {
			return s, transitionError(s.Phase, "finish assembly")
		}
		s.Phase = PhaseAnimating
		s.Result = ev.Result
		s.ErrorMessage = ""
		return s, nil

	case AssemblyFailed:
		if s.Phase != PhaseProcessing {
			return s, transitionError(s.Phase, "fail assembly")
		}
		s.Phase = PhaseCapturing
		s.Result = nil
		s.ErrorMessage = ev.Message
		return s, nil

	case BackRequested:
		switch s.Phase {
		case PhaseAnimating, PhaseError:
			s.Phase = PhaseCapturing
			s.Result = nil
			s.ErrorMessage = ""
			return s, nil
		default:
			return s, transitionError(s.Phase, "navigate back")
		}

	case Reset:
		return State{Phase: PhaseCapturing, DelayMS: s.DelayMS}, nil

	default:
		return s, services.Wrap(services.ErrValidation, "session", "apply",
			fmt.Sprintf("unknown event %T", event), nil)
	}
}

func transitionError(phase Phase, action string) error {
	return services.Wrap(services.ErrValidation, "session", action,
		fmt.Sprintf("not permitted in phase %s", phase), nil)
}
