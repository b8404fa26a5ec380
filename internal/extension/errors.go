package extension

import "errors"

// Extension subsystem errors.
var (
	// ErrExtensionNotFound is returned when no extension matches a name
	// or file path.
	ErrExtensionNotFound = errors.New("extension not found")

	// ErrNotInitialized is returned when an operation requires a
	// successfully initialized extension.
	ErrNotInitialized = errors.New("extension not initialized")

	// ErrManagerNotInitialized is returned when the manager is used before
	// Init completes.
	ErrManagerNotInitialized = errors.New("extension manager not initialized")

	// ErrUnknownEvent is returned when dispatching an event name outside
	// the dispatch map.
	ErrUnknownEvent = errors.New("unknown event name")

	// ErrNoConstructor is returned when an extension file does not declare
	// a New constructor.
	ErrNoConstructor = errors.New("extension does not declare a New constructor")
)
