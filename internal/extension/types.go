// Package extension implements CodeForge's extension dispatch and
// registration subsystem: the registry of loaded extensions, the yaegi-based
// source loader, the per-call capability context, and the manager that
// orchestrates discovery, hot reload, collection, toolset construction and
// event dispatch.
package extension

import (
	"codeforge/pkg/extsdk"
)

// LoadedExtension is one extension tracked by the registry.
//
// Instance is capability-polymorphic: it may implement any subset of the
// extsdk interfaces and event handler methods. For extensions loaded from
// source it is the loader's adapter over the interpreted constructor
// result; tests register native instances directly. Initialized flips true
// once OnLoad
// succeeds (or immediately when the instance has no OnLoad); only
// initialized extensions receive dispatched events or have their
// contributions collected. An empty ProjectDir marks a global extension,
// visible in every project.
type LoadedExtension struct {
	Instance    any
	Metadata    extsdk.Metadata
	FilePath    string
	Initialized bool
	ProjectDir  string
}

// Global reports whether the extension is shared across all projects.
func (e *LoadedExtension) Global() bool {
	return e.ProjectDir == ""
}

// RegisteredTool pairs a tool with the extension that contributed it.
type RegisteredTool struct {
	ExtensionName string
	Tool          extsdk.Tool
}

// RegisteredCommand pairs a command with the extension that contributed it.
type RegisteredCommand struct {
	ExtensionName string
	Command       extsdk.Command
}

// RegisteredAgent pairs an agent with the extension that contributed it.
type RegisteredAgent struct {
	ExtensionName string
	Agent         extsdk.Agent
}

// RegisteredMode pairs a mode with the extension that contributed it.
type RegisteredMode struct {
	ExtensionName string
	Mode          extsdk.Mode
}

// CompositeID builds the registry key for an extension-contributed item.
// Namespacing by extension keeps same-named items from different extensions
// apart (two extensions may both register a "bash" tool).
func CompositeID(extensionName, itemName string) string {
	return extensionName + "-" + itemName
}
