// Package extsdk defines the public ABI between CodeForge and its extensions.
//
// An extension is a Go source file (or a directory with an extension.go entry
// file) interpreted at runtime. It declares a zero-argument constructor
// `func New() any` and implements any subset of the capability interfaces and
// event handler methods below. Nothing is mandatory; capabilities are
// discovered at call time.
package extsdk

import (
	"context"
)

// Metadata identifies an extension. Name is the sole identity key in the
// registry; registering twice with the same name overwrites the prior entry.
type Metadata struct {
	Name         string   `yaml:"name" json:"name"`
	Version      string   `yaml:"version" json:"version"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author       string   `yaml:"author,omitempty" json:"author,omitempty"`
	Capabilities []string `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`
}

// ExecuteFunc is the signature for tool execution. The context carries the
// effective cancellation signal for the call; extensions are expected to
// observe it cooperatively.
type ExecuteFunc func(ctx context.Context, input map[string]any, ec Context) (string, error)

// Tool is a declarative tool definition contributed by an extension.
// Name must be kebab-case (^[a-z][a-z0-9_-]*$). The schema describes the
// accepted input shape; Execute runs the tool.
type Tool struct {
	Name        string
	Description string
	Schema      InputSchema
	Execute     ExecuteFunc
}

// Argument describes one positional argument of a command.
type Argument struct {
	Name        string
	Description string
	Required    bool
}

// CommandFunc is the signature for command execution.
type CommandFunc func(ctx context.Context, args []string, ec Context) error

// Command is a user-invocable command contributed by an extension.
type Command struct {
	Name        string
	Description string
	Arguments   []Argument
	Execute     CommandFunc
}

// Agent is an agent profile contributed by an extension. ID and Name are
// required. ProjectDir scopes the agent to one project; when empty and the
// owning extension is project-scoped, the extension's project dir is
// inherited at collection time.
type Agent struct {
	ID           string
	Name         string
	Description  string
	SystemPrompt string
	ProjectDir   string
}

// Mode is a chat/editing mode contributed by an extension. Name and Label are
// required; Description and Icon are optional.
type Mode struct {
	Name        string
	Label       string
	Description string
	Icon        string
}

// AgentProfile is a host-side agent profile visible to extensions.
// ToolApprovals maps composite tool ids (<extension>-<tool>) to an approval
// setting; ApprovalNever excludes the tool from toolsets built for the
// profile.
type AgentProfile struct {
	ID            string
	Name          string
	Description   string
	ToolApprovals map[string]string
}

// Tool approval settings understood by toolset construction.
const (
	ApprovalAlways = "always"
	ApprovalAsk    = "ask"
	ApprovalNever  = "never"
)

// ModelConfig is a host-side model configuration visible to extensions.
type ModelConfig struct {
	ID       string
	Provider string
	Model    string
	BaseURL  string
}

// Initializer is implemented by extensions that need setup on load.
// OnLoad failure leaves the extension registered but uninitialized; it is
// excluded from dispatch and collection until reloaded.
type Initializer interface {
	OnLoad(ec Context) error
}

// Disposer is implemented by extensions that need teardown on unload.
type Disposer interface {
	OnUnload(ec Context) error
}

// ToolProvider is implemented by extensions that contribute tools.
type ToolProvider interface {
	GetTools(ec Context) ([]Tool, error)
}

// CommandProvider is implemented by extensions that contribute commands.
type CommandProvider interface {
	GetCommands(ec Context) ([]Command, error)
}

// AgentProvider is implemented by extensions that contribute agents.
type AgentProvider interface {
	GetAgents(ec Context) ([]Agent, error)
}

// ModeProvider is implemented by extensions that contribute modes.
type ModeProvider interface {
	GetModes(ec Context) ([]Mode, error)
}

// ProfileObserver is notified when an agent profile changes on the host side.
type ProfileObserver interface {
	OnAgentProfileUpdated(profile AgentProfile, ec Context) error
}
