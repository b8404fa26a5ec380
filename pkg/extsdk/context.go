package extsdk

import (
	"context"
	"errors"
)

// ErrNotAvailable is returned by Context capability gates that are not wired
// for the current call-site. It marks a missing capability, not a bug.
var ErrNotAvailable = errors.New("not available in this call context")

// Context is the capability-scoped facade handed to extension code. It is the
// only surface an extension may call into the host through. A fresh Context
// is built per extension/task/project combination; which capabilities work
// depends on what the call-site bound.
type Context interface {
	// Log writes a message through the host logger, prefixed with the
	// owning extension's name. Level is one of "debug", "info", "warn",
	// "error"; anything else defaults to info.
	Log(message, level string)

	// ProjectDir returns the bound project's base directory, or "" when no
	// project is bound.
	ProjectDir() string

	// TaskContext returns the wrapper over the currently bound task, or nil
	// when no task is bound.
	TaskContext() *TaskContext

	// ProjectContext returns the wrapper over the bound project, or
	// ErrNotAvailable when no project is bound.
	ProjectContext() (*ProjectContext, error)

	// AgentProfiles returns the host's agent profiles, or an empty slice if
	// the backing manager is not wired for this call-site.
	AgentProfiles() []AgentProfile

	// ModelConfigs returns the host's model configurations, or an empty
	// slice if the backing manager is not wired for this call-site.
	ModelConfigs() []ModelConfig

	// Setting resolves a dot-notation key ("editor.tabSize") against the
	// bound settings store. A missing path yields (nil, nil); an unbound
	// store yields ErrNotAvailable.
	Setting(key string) (any, error)

	// UpdateSettings merges a partial settings map into the bound store, or
	// returns ErrNotAvailable when no store is bound.
	UpdateSettings(partial map[string]any) error

	// CreateTask creates a new task in the bound project.
	CreateTask(ctx context.Context, prompt string) error

	// RunPrompt executes a prompt on the bound task.
	RunPrompt(ctx context.Context, prompt string) error

	// ShowNotification, ShowConfirm and ShowInput surface UI interactions
	// through the bound project. Each returns ErrNotAvailable when no
	// project is bound.
	ShowNotification(message string) error
	ShowConfirm(ctx context.Context, message string) (bool, error)
	ShowInput(ctx context.Context, prompt string) (string, error)
}
