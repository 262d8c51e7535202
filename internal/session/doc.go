// Package session models the editing session as a pure state machine.
//
// The session moves through Capturing, Processing, and Animating; every
// failure routes back to a recoverable state without discarding the frame
// collection. Apply is a reducer over (State, Event) so the CLI and studio
// share one source of truth for which operations each phase permits.
package session
