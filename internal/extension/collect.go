package extension

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// nameRe is the identifier contract for tool and command names: lowercase
// start, then lowercase alphanumerics, hyphens or underscores.
var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// CollectTools gathers and validates tool contributions from every
// initialized extension (optionally filtered to a project), registers the
// valid ones, and returns them. Per-extension and per-item failures are
// logged and dropped; siblings proceed.
func (m *Manager) CollectTools(project extsdk.ProjectHost) []RegisteredTool {
	var collected []RegisteredTool

	m.forEachProvider(project, "GetTools", func(ext *LoadedExtension, ec extsdk.Context) (int, error) {
		provider, ok := ext.Instance.(extsdk.ToolProvider)
		if !ok {
			return -1, nil
		}
		tools, err := provider.GetTools(ec)
		if err != nil {
			return 0, err
		}
		for _, tool := range tools {
			if errs := ValidateTool(tool); len(errs) > 0 {
				m.logValidation(ext.Metadata.Name, "tool", tool.Name, errs)
				continue
			}
			m.registry.RegisterTool(ext.Metadata.Name, tool)
			collected = append(collected, RegisteredTool{ExtensionName: ext.Metadata.Name, Tool: tool})
		}
		return len(tools), nil
	})

	return collected
}

// CollectCommands gathers and validates command contributions.
func (m *Manager) CollectCommands(project extsdk.ProjectHost) []RegisteredCommand {
	var collected []RegisteredCommand

	m.forEachProvider(project, "GetCommands", func(ext *LoadedExtension, ec extsdk.Context) (int, error) {
		provider, ok := ext.Instance.(extsdk.CommandProvider)
		if !ok {
			return -1, nil
		}
		commands, err := provider.GetCommands(ec)
		if err != nil {
			return 0, err
		}
		for _, command := range commands {
			if errs := ValidateCommand(command); len(errs) > 0 {
				m.logValidation(ext.Metadata.Name, "command", command.Name, errs)
				continue
			}
			m.registry.RegisterCommand(ext.Metadata.Name, command)
			collected = append(collected, RegisteredCommand{ExtensionName: ext.Metadata.Name, Command: command})
		}
		return len(commands), nil
	})

	return collected
}

// CollectAgents gathers and validates agent contributions. An agent from a
// project-scoped extension inherits the extension's project dir when it
// declares none of its own.
func (m *Manager) CollectAgents(project extsdk.ProjectHost) []RegisteredAgent {
	var collected []RegisteredAgent

	m.forEachProvider(project, "GetAgents", func(ext *LoadedExtension, ec extsdk.Context) (int, error) {
		provider, ok := ext.Instance.(extsdk.AgentProvider)
		if !ok {
			return -1, nil
		}
		agents, err := provider.GetAgents(ec)
		if err != nil {
			return 0, err
		}
		for _, agent := range agents {
			if errs := ValidateAgent(agent); len(errs) > 0 {
				m.logValidation(ext.Metadata.Name, "agent", agent.ID, errs)
				continue
			}
			if agent.ProjectDir == "" && !ext.Global() {
				agent.ProjectDir = ext.ProjectDir
			}
			m.registry.RegisterAgent(ext.Metadata.Name, agent)
			collected = append(collected, RegisteredAgent{ExtensionName: ext.Metadata.Name, Agent: agent})
		}
		return len(agents), nil
	})

	return collected
}

// CollectModes gathers and validates mode contributions.
func (m *Manager) CollectModes(project extsdk.ProjectHost) []RegisteredMode {
	var collected []RegisteredMode

	m.forEachProvider(project, "GetModes", func(ext *LoadedExtension, ec extsdk.Context) (int, error) {
		provider, ok := ext.Instance.(extsdk.ModeProvider)
		if !ok {
			return -1, nil
		}
		modes, err := provider.GetModes(ec)
		if err != nil {
			return 0, err
		}
		for _, mode := range modes {
			if errs := ValidateMode(mode); len(errs) > 0 {
				m.logValidation(ext.Metadata.Name, "mode", mode.Name, errs)
				continue
			}
			m.registry.RegisterMode(ext.Metadata.Name, mode)
			collected = append(collected, RegisteredMode{ExtensionName: ext.Metadata.Name, Mode: mode})
		}
		return len(modes), nil
	})

	return collected
}

// forEachProvider runs one collection step per initialized extension,
// isolating extension-level failures. The step returns -1 when the
// extension lacks the relevant provider method.
func (m *Manager) forEachProvider(project extsdk.ProjectHost, what string, step func(*LoadedExtension, extsdk.Context) (int, error)) {
	projectDir := ""
	if project != nil {
		projectDir = project.Dir()
	}

	for _, ext := range m.registry.GetExtensions(projectDir) {
		if !ext.Initialized {
			continue
		}
		ec := m.builder.Build(ext.Metadata.Name, project, nil)

		count, err := m.callProvider(ext, ec, step)
		if err != nil {
			m.logger.Error("extension provider failed, dropping its contribution",
				zap.String("extension", ext.Metadata.Name),
				zap.String("provider", what),
				zap.Error(err))
			continue
		}
		if count >= 0 {
			m.logger.Debug("collected extension contribution",
				zap.String("extension", ext.Metadata.Name),
				zap.String("provider", what),
				zap.Int("items", count))
		}
	}
}

// callProvider isolates panics in extension provider code.
func (m *Manager) callProvider(ext *LoadedExtension, ec extsdk.Context, step func(*LoadedExtension, extsdk.Context) (int, error)) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count = 0
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return step(ext, ec)
}

func (m *Manager) logValidation(extensionName, kind, itemName string, errs []error) {
	m.logger.Warn("dropping invalid extension "+kind,
		zap.String("extension", extensionName),
		zap.String(kind, itemName),
		zap.Error(errors.Join(errs...)))
}

// ValidateName checks a tool or command name against the identifier
// contract, naming the offending value and giving valid examples.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("invalid name %q: must start with a lowercase letter and contain only lowercase letters, digits, hyphens and underscores (valid examples: %q, %q)",
			name, "run-linter", "read_file")
	}
	return nil
}

// ValidateTool returns every problem with a tool definition, not just the
// first one.
func ValidateTool(tool extsdk.Tool) []error {
	var errs []error
	if err := ValidateName(tool.Name); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(tool.Description) == "" {
		errs = append(errs, fmt.Errorf("tool %q: description must be a non-empty string", tool.Name))
	}
	if tool.Schema.IsZero() {
		errs = append(errs, fmt.Errorf("tool %q: input schema must describe the accepted parameters", tool.Name))
	}
	if tool.Execute == nil {
		errs = append(errs, fmt.Errorf("tool %q: execute must be callable", tool.Name))
	}
	return errs
}

// ValidateCommand returns every problem with a command definition.
func ValidateCommand(command extsdk.Command) []error {
	var errs []error
	if err := ValidateName(command.Name); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(command.Description) == "" {
		errs = append(errs, fmt.Errorf("command %q: description must be a non-empty string", command.Name))
	}
	if command.Execute == nil {
		errs = append(errs, fmt.Errorf("command %q: execute must be callable", command.Name))
	}
	for i, arg := range command.Arguments {
		if strings.TrimSpace(arg.Name) == "" {
			errs = append(errs, fmt.Errorf("command %q: argument %d has no name", command.Name, i))
		}
	}
	return errs
}

// ValidateAgent returns every problem with an agent definition.
func ValidateAgent(agent extsdk.Agent) []error {
	var errs []error
	if strings.TrimSpace(agent.ID) == "" {
		errs = append(errs, errors.New("agent id must be a non-empty string"))
	}
	if strings.TrimSpace(agent.Name) == "" {
		errs = append(errs, fmt.Errorf("agent %q: name must be a non-empty string", agent.ID))
	}
	return errs
}

// ValidateMode returns every problem with a mode definition.
func ValidateMode(mode extsdk.Mode) []error {
	var errs []error
	if strings.TrimSpace(mode.Name) == "" {
		errs = append(errs, errors.New("mode name must be a non-empty string"))
	}
	if strings.TrimSpace(mode.Label) == "" {
		errs = append(errs, fmt.Errorf("mode %q: label must be a non-empty string", mode.Name))
	}
	return errs
}
