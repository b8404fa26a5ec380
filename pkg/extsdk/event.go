package extsdk

// Event is the mutable payload dispatched to extension event handlers.
// Handlers return a partial patch that is shallow-merged onto the running
// event; the out-of-band fields "blocked" and "allowed" act as control
// signals, not business data.
type Event map[string]any

// Control signal keys. Dispatch short-circuits when KeyBlocked is set;
// KeyAllowed marks an event pre-approved, which the host's approval flow
// honors outside this package.
const (
	KeyBlocked = "blocked"
	KeyAllowed = "allowed"
)

// Clone returns a shallow copy of the event. Dispatch always works on a
// clone so the caller's event is never mutated.
func (e Event) Clone() Event {
	if e == nil {
		return Event{}
	}
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge shallow-merges the patch onto the event. Patch fields overwrite
// same-named fields; fields absent from the patch are preserved.
func (e Event) Merge(patch Event) {
	for k, v := range patch {
		e[k] = v
	}
}

// Blocked reports whether a handler has set the blocked control signal.
func (e Event) Blocked() bool {
	b, ok := e[KeyBlocked].(bool)
	return ok && b
}

// SetBlocked sets the blocked control signal.
func (e Event) SetBlocked(v bool) {
	e[KeyBlocked] = v
}

// HandlerFunc is the uniform signature of every event handler method.
// A handler may return a partial patch (merged onto the running event),
// nil (no contribution), or an error (logged, treated as no contribution).
type HandlerFunc func(ev Event, ec Context) (Event, error)

// Event handler method names. Dispatch resolves the method of the same name
// on each initialized extension instance and skips extensions that do not
// declare it.
const (
	EventPromptStarted      = "OnPromptStarted"
	EventPromptCompleted    = "OnPromptCompleted"
	EventTaskCreated        = "OnTaskCreated"
	EventTaskCompleted      = "OnTaskCompleted"
	EventTaskAborted        = "OnTaskAborted"
	EventToolCallStarted    = "OnToolCallStarted"
	EventToolCallCompleted  = "OnToolCallCompleted"
	EventContextFileAdded   = "OnContextFileAdded"
	EventContextFileRemoved = "OnContextFileRemoved"
	EventMessageAdded       = "OnMessageAdded"
	EventTodoUpdated        = "OnTodoUpdated"
	EventModeChanged        = "OnModeChanged"
	EventSessionStarted     = "OnSessionStarted"
	EventSessionEnded       = "OnSessionEnded"
	EventSettingsChanged    = "OnSettingsChanged"
)

// EventNames returns the full dispatch map, in a stable order.
func EventNames() []string {
	return []string{
		EventPromptStarted,
		EventPromptCompleted,
		EventTaskCreated,
		EventTaskCompleted,
		EventTaskAborted,
		EventToolCallStarted,
		EventToolCallCompleted,
		EventContextFileAdded,
		EventContextFileRemoved,
		EventMessageAdded,
		EventTodoUpdated,
		EventModeChanged,
		EventSessionStarted,
		EventSessionEnded,
		EventSettingsChanged,
	}
}

// IsEventName reports whether name is part of the dispatch map.
func IsEventName(name string) bool {
	for _, n := range EventNames() {
		if n == name {
			return true
		}
	}
	return false
}
