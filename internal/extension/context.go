package extension

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// extContext is the concrete extsdk.Context handed to extension code. One is
// built fresh per extension/task/project combination; it never outlives the
// call it was built for.
type extContext struct {
	extensionName string
	project       extsdk.ProjectHost
	task          extsdk.TaskHost
	hosts         Hosts
	logger        *zap.Logger
}

var _ extsdk.Context = (*extContext)(nil)

// contextBuilder produces extension contexts bound to the manager's host
// collaborators. Project and task vary per call-site.
type contextBuilder struct {
	hosts  Hosts
	logger *zap.Logger
}

func newContextBuilder(hosts Hosts, logger *zap.Logger) *contextBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contextBuilder{hosts: hosts, logger: logger}
}

// Build constructs a context for one extension call. project and task may be
// nil; the matching capabilities are then gated off.
func (b *contextBuilder) Build(extensionName string, project extsdk.ProjectHost, task extsdk.TaskHost) *extContext {
	return &extContext{
		extensionName: extensionName,
		project:       project,
		task:          task,
		hosts:         b.hosts,
		logger:        b.logger,
	}
}

func (c *extContext) Log(message, level string) {
	msg := fmt.Sprintf("[Extension:%s] %s", c.extensionName, message)
	switch level {
	case "debug":
		c.logger.Debug(msg)
	case "warn":
		c.logger.Warn(msg)
	case "error":
		c.logger.Error(msg)
	default:
		c.logger.Info(msg)
	}
}

func (c *extContext) ProjectDir() string {
	if c.project == nil {
		return ""
	}
	return c.project.Dir()
}

func (c *extContext) TaskContext() *extsdk.TaskContext {
	return extsdk.NewTaskContext(c.task)
}

func (c *extContext) ProjectContext() (*extsdk.ProjectContext, error) {
	if c.project == nil {
		return nil, fmt.Errorf("project context: %w", extsdk.ErrNotAvailable)
	}
	return extsdk.NewProjectContext(c.project), nil
}

func (c *extContext) AgentProfiles() []extsdk.AgentProfile {
	if c.hosts.Profiles == nil {
		c.logger.Warn("agent profiles requested but no provider wired",
			zap.String("extension", c.extensionName))
		return []extsdk.AgentProfile{}
	}
	profiles, err := c.hosts.Profiles.AgentProfiles()
	if err != nil {
		c.logger.Error("agent profile provider failed",
			zap.String("extension", c.extensionName), zap.Error(err))
		return []extsdk.AgentProfile{}
	}
	return profiles
}

func (c *extContext) ModelConfigs() []extsdk.ModelConfig {
	if c.hosts.Models == nil {
		c.logger.Warn("model configs requested but no provider wired",
			zap.String("extension", c.extensionName))
		return []extsdk.ModelConfig{}
	}
	configs, err := c.hosts.Models.ModelConfigs()
	if err != nil {
		c.logger.Error("model config provider failed",
			zap.String("extension", c.extensionName), zap.Error(err))
		return []extsdk.ModelConfig{}
	}
	return configs
}

func (c *extContext) Setting(key string) (any, error) {
	if c.hosts.Settings == nil {
		return nil, fmt.Errorf("settings: %w", extsdk.ErrNotAvailable)
	}
	value, ok := c.hosts.Settings.Get(key)
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (c *extContext) UpdateSettings(partial map[string]any) error {
	if c.hosts.Settings == nil {
		return fmt.Errorf("settings: %w", extsdk.ErrNotAvailable)
	}
	return c.hosts.Settings.Update(partial)
}

func (c *extContext) CreateTask(ctx context.Context, prompt string) error {
	if c.project == nil {
		return fmt.Errorf("create task: %w", extsdk.ErrNotAvailable)
	}
	_, err := c.project.CreateTask(ctx, prompt)
	return err
}

func (c *extContext) RunPrompt(ctx context.Context, prompt string) error {
	if c.task == nil {
		return fmt.Errorf("run prompt: %w", extsdk.ErrNotAvailable)
	}
	return c.task.RunPrompt(ctx, prompt)
}

func (c *extContext) ShowNotification(message string) error {
	if c.project == nil {
		return fmt.Errorf("show notification: %w", extsdk.ErrNotAvailable)
	}
	return c.project.ShowNotification(message)
}

func (c *extContext) ShowConfirm(ctx context.Context, message string) (bool, error) {
	if c.project == nil {
		return false, fmt.Errorf("show confirm: %w", extsdk.ErrNotAvailable)
	}
	return c.project.ShowConfirm(ctx, message)
}

func (c *extContext) ShowInput(ctx context.Context, prompt string) (string, error) {
	if c.project == nil {
		return "", fmt.Errorf("show input: %w", extsdk.ErrNotAvailable)
	}
	return c.project.ShowInput(ctx, prompt)
}
