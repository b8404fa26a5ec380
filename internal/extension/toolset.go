package extension

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// ToolInvoker is the callable the agent loop receives for one toolset
// entry. It always returns a result string; execution failures come back
// as an "Error: <message>" string rather than an error value, so the
// agent loop never has to handle a crashed tool.
type ToolInvoker func(ctx context.Context, input map[string]any) string

// ToolsetEntry is one invocable tool in an agent toolset. The toolset map
// is keyed by the entry's composite id.
type ToolsetEntry struct {
	ID            string
	ExtensionName string
	Description   string
	Schema        extsdk.InputSchema
	Invoke        ToolInvoker
}

// CreateToolset builds the invocable tool map for one agent run from all
// registered tools, keyed by composite id. Tools whose approval setting in
// the profile is "never" are excluded up front; this gate is separate from
// the per-call approval flow the task host runs.
//
// The abort context, when non-nil, takes precedence over the per-call
// context for every invocation in the set.
func (m *Manager) CreateToolset(abort context.Context, project extsdk.ProjectHost, task extsdk.TaskHost, profile *extsdk.AgentProfile) map[string]ToolsetEntry {
	toolset := make(map[string]ToolsetEntry)

	for _, rt := range m.registry.GetTools() {
		id := CompositeID(rt.ExtensionName, rt.Tool.Name)
		if profile != nil && profile.ToolApprovals[id] == extsdk.ApprovalNever {
			m.logger.Debug("tool excluded by profile approval",
				zap.String("tool", id),
				zap.String("profile", profile.ID))
			continue
		}

		toolset[id] = ToolsetEntry{
			ID:            id,
			ExtensionName: rt.ExtensionName,
			Description:   rt.Tool.Description,
			Schema:        rt.Tool.Schema,
			Invoke:        m.wrapTool(abort, id, rt, project, task),
		}
	}

	m.logger.Debug("built extension toolset", zap.Int("tools", len(toolset)))
	return toolset
}

// wrapTool closes over one registered tool and produces the isolated
// invoker: input is validated against the tool's schema, the extension
// gets a fresh call context bound to the task and project, and any error
// or panic from the tool becomes a result string.
func (m *Manager) wrapTool(abort context.Context, id string, rt RegisteredTool, project extsdk.ProjectHost, task extsdk.TaskHost) ToolInvoker {
	return func(callCtx context.Context, input map[string]any) (result string) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("extension tool panicked",
					zap.String("extension", rt.ExtensionName),
					zap.String("tool", id),
					zap.Any("panic", r))
				result = fmt.Sprintf("Error: tool panicked: %v", r)
			}
		}()

		if errs := rt.Tool.Schema.Validate(input); len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, err := range errs {
				msgs[i] = err.Error()
			}
			m.logger.Warn("extension tool rejected input",
				zap.String("extension", rt.ExtensionName),
				zap.String("tool", id),
				zap.Strings("problems", msgs))
			return "Error: invalid input: " + strings.Join(msgs, "; ")
		}

		ctx := effectiveContext(abort, callCtx)
		ec := m.builder.Build(rt.ExtensionName, project, task)

		out, err := rt.Tool.Execute(ctx, input, ec)
		if err != nil {
			m.logger.Error("extension tool failed",
				zap.String("extension", rt.ExtensionName),
				zap.String("tool", id),
				zap.Error(err))
			return "Error: " + err.Error()
		}
		return out
	}
}

// effectiveContext resolves which context governs a tool call: the
// toolset-wide abort context wins over the per-call one.
func effectiveContext(abort, call context.Context) context.Context {
	if abort != nil {
		return abort
	}
	if call != nil {
		return call
	}
	return context.Background()
}
