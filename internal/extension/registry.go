package extension

import (
	"sync"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// Registry is the in-memory index of loaded extensions and their
// contributed tools, commands, agents and modes. It is a pure data
// structure: no I/O beyond logging, thread-safe, insertion-ordered so
// dispatch stays deterministic.
type Registry struct {
	mu sync.RWMutex

	extensions map[string]*LoadedExtension
	order      []string // extension names in registration order

	tools    map[string]RegisteredTool    // keyed by CompositeID
	commands map[string]RegisteredCommand // keyed by CompositeID
	agents   map[string]RegisteredAgent   // keyed by CompositeID
	modes    map[string]RegisteredMode    // keyed by CompositeID

	logger *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger falls back to a no-op.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		extensions: make(map[string]*LoadedExtension),
		tools:      make(map[string]RegisteredTool),
		commands:   make(map[string]RegisteredCommand),
		agents:     make(map[string]RegisteredAgent),
		modes:      make(map[string]RegisteredMode),
		logger:     logger,
	}
}

// Register inserts an extension, keyed by metadata name. Registering a name
// that already exists overwrites the prior entry in place, keeping its
// position in dispatch order. New entries start uninitialized.
func (r *Registry) Register(instance any, metadata extsdk.Metadata, filePath, projectDir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extensions[metadata.Name]; exists {
		r.logger.Debug("overwriting registered extension",
			zap.String("extension", metadata.Name),
			zap.String("file", filePath))
	} else {
		r.order = append(r.order, metadata.Name)
	}

	r.extensions[metadata.Name] = &LoadedExtension{
		Instance:   instance,
		Metadata:   metadata,
		FilePath:   filePath,
		ProjectDir: projectDir,
	}
}

// SetInitialized flips the initialized flag for a named extension. Unknown
// names are a logged no-op.
func (r *Registry) SetInitialized(name string, initialized bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ext, ok := r.extensions[name]
	if !ok {
		r.logger.Warn("SetInitialized for unknown extension", zap.String("extension", name))
		return
	}
	ext.Initialized = initialized
}

// Get returns the extension registered under name, or nil.
func (r *Registry) Get(name string) *LoadedExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.extensions[name]
}

// GetByPath returns the extension loaded from filePath, or nil.
func (r *Registry) GetByPath(filePath string) *LoadedExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if ext := r.extensions[name]; ext != nil && ext.FilePath == filePath {
			return ext
		}
	}
	return nil
}

// GetExtensions returns extensions in registration order. With a projectDir
// filter it returns global extensions plus those scoped to exactly that
// directory; with an empty filter it returns everything.
func (r *Registry) GetExtensions(projectDir string) []*LoadedExtension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*LoadedExtension, 0, len(r.order))
	for _, name := range r.order {
		ext := r.extensions[name]
		if ext == nil {
			continue
		}
		if projectDir != "" && !ext.Global() && ext.ProjectDir != projectDir {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// Unregister removes an extension and cascades removal of every tool,
// command, agent and mode it contributed. Reports whether an entry existed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.extensions[name]; !ok {
		return false
	}
	delete(r.extensions, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	for id, t := range r.tools {
		if t.ExtensionName == name {
			delete(r.tools, id)
		}
	}
	for id, c := range r.commands {
		if c.ExtensionName == name {
			delete(r.commands, id)
		}
	}
	for id, a := range r.agents {
		if a.ExtensionName == name {
			delete(r.agents, id)
		}
	}
	for id, m := range r.modes {
		if m.ExtensionName == name {
			delete(r.modes, id)
		}
	}

	r.logger.Debug("unregistered extension", zap.String("extension", name))
	return true
}

// Clear empties the registry entirely. Used on full re-init.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extensions = make(map[string]*LoadedExtension)
	r.order = nil
	r.tools = make(map[string]RegisteredTool)
	r.commands = make(map[string]RegisteredCommand)
	r.agents = make(map[string]RegisteredAgent)
	r.modes = make(map[string]RegisteredMode)
}

// Count returns the number of registered extensions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extensions)
}

// RegisterTool indexes a tool under its composite id. Last registration
// wins on key collision within one extension.
func (r *Registry) RegisterTool(extensionName string, tool extsdk.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[CompositeID(extensionName, tool.Name)] = RegisteredTool{ExtensionName: extensionName, Tool: tool}
}

// GetTools returns every registered tool.
func (r *Registry) GetTools() []RegisteredTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegisteredTool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

// GetToolsByExtension returns the tools contributed by one extension.
func (r *Registry) GetToolsByExtension(extensionName string) []RegisteredTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []RegisteredTool
	for _, t := range r.tools {
		if t.ExtensionName == extensionName {
			out = append(out, t)
		}
	}
	return out
}

// GetToolByName looks a tool up by its own name across extensions. Global
// uniqueness is assumed at lookup time; with a collision the result is the
// first match found.
func (r *Registry) GetToolByName(name string) (RegisteredTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tools {
		if t.Tool.Name == name {
			return t, true
		}
	}
	return RegisteredTool{}, false
}

// ClearTools drops every registered tool.
func (r *Registry) ClearTools() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]RegisteredTool)
}

// RegisterCommand indexes a command under its composite id.
func (r *Registry) RegisterCommand(extensionName string, command extsdk.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[CompositeID(extensionName, command.Name)] = RegisteredCommand{ExtensionName: extensionName, Command: command}
}

// GetCommands returns every registered command.
func (r *Registry) GetCommands() []RegisteredCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegisteredCommand, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, c)
	}
	return out
}

// GetCommandsByExtension returns the commands contributed by one extension.
func (r *Registry) GetCommandsByExtension(extensionName string) []RegisteredCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []RegisteredCommand
	for _, c := range r.commands {
		if c.ExtensionName == extensionName {
			out = append(out, c)
		}
	}
	return out
}

// GetCommandByName looks a command up by its own name across extensions.
func (r *Registry) GetCommandByName(name string) (RegisteredCommand, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.commands {
		if c.Command.Name == name {
			return c, true
		}
	}
	return RegisteredCommand{}, false
}

// ClearCommands drops every registered command.
func (r *Registry) ClearCommands() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = make(map[string]RegisteredCommand)
}

// RegisterAgent indexes an agent under its composite id.
func (r *Registry) RegisterAgent(extensionName string, agent extsdk.Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[CompositeID(extensionName, agent.ID)] = RegisteredAgent{ExtensionName: extensionName, Agent: agent}
}

// GetAgents returns every registered agent.
func (r *Registry) GetAgents() []RegisteredAgent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegisteredAgent, 0, len(r.agents))
	for _, a := range r.agents {
		out = append(out, a)
	}
	return out
}

// GetAgentsByExtension returns the agents contributed by one extension.
func (r *Registry) GetAgentsByExtension(extensionName string) []RegisteredAgent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []RegisteredAgent
	for _, a := range r.agents {
		if a.ExtensionName == extensionName {
			out = append(out, a)
		}
	}
	return out
}

// GetAgentByID looks an agent up by its own id across extensions.
func (r *Registry) GetAgentByID(id string) (RegisteredAgent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.agents {
		if a.Agent.ID == id {
			return a, true
		}
	}
	return RegisteredAgent{}, false
}

// ClearAgents drops every registered agent.
func (r *Registry) ClearAgents() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = make(map[string]RegisteredAgent)
}

// RegisterMode indexes a mode under its composite id.
func (r *Registry) RegisterMode(extensionName string, mode extsdk.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes[CompositeID(extensionName, mode.Name)] = RegisteredMode{ExtensionName: extensionName, Mode: mode}
}

// GetModes returns every registered mode.
func (r *Registry) GetModes() []RegisteredMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RegisteredMode, 0, len(r.modes))
	for _, m := range r.modes {
		out = append(out, m)
	}
	return out
}

// GetModesByExtension returns the modes contributed by one extension.
func (r *Registry) GetModesByExtension(extensionName string) []RegisteredMode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []RegisteredMode
	for _, m := range r.modes {
		if m.ExtensionName == extensionName {
			out = append(out, m)
		}
	}
	return out
}

// GetModeByName looks a mode up by its own name across extensions.
func (r *Registry) GetModeByName(name string) (RegisteredMode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.modes {
		if m.Mode.Name == name {
			return m, true
		}
	}
	return RegisteredMode{}, false
}

// ClearModes drops every registered mode.
func (r *Registry) ClearModes() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = make(map[string]RegisteredMode)
}
