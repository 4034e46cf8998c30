package pipeline

import "errors"

// Common errors returned by the pipeline package
var (
	// ErrSessionAborted is returned when any stage of a generation session
	// fails after validation. The whole session unwinds: no partial
	// document is produced or persisted, and the wrapped cause identifies
	// the failing stage.
	ErrSessionAborted = errors.New("generation session aborted")
)
