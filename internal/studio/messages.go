package studio

import (
	"gifforge/internal/assemble"
	"gifforge/internal/frames"
)

// collectionLoadedMsg delivers the persisted collection and session row.
type collectionLoadedMsg struct {
	Frames  []frames.Frame
	Session frames.Session
}

// batchAppendedMsg reports an upload batch appended in input order.
type batchAppendedMsg struct {
	Appended []frames.Frame
	Title    string
}

// batchFailedMsg reports a whole batch rejected; the collection is unchanged.
type batchFailedMsg struct {
	Err error
}

// frameRemovedMsg reports one frame removed from the store.
type frameRemovedMsg struct {
	ID string
}

// assemblyDoneMsg delivers the encoder's artifact.
type assemblyDoneMsg struct {
	Artifact *assemble.GIF
}

// assemblyFailedMsg delivers the encoder's failure.
type assemblyFailedMsg struct {
	Err error
}

// exportDoneMsg reports a written artifact.
type exportDoneMsg struct {
	Path string
}

// exportFailedMsg reports a failed or debounced export.
type exportFailedMsg struct {
	Err error
}

// exportCooldownClearedMsg re-enables the export key.
type exportCooldownClearedMsg struct{}

// storeErrorMsg reports a workspace store failure.
type storeErrorMsg struct {
	Err error
}
