package extension

import (
	"codeforge/pkg/extsdk"
)

// SettingsStore is the host's settings surface. Keys use dot notation
// ("editor.tabSize"); Get reports presence rather than erroring on a
// missing path.
type SettingsStore interface {
	Get(key string) (any, bool)
	Update(partial map[string]any) error
}

// AgentProfileProvider supplies the host's agent profiles to extension
// contexts.
type AgentProfileProvider interface {
	AgentProfiles() ([]extsdk.AgentProfile, error)
}

// ModelConfigProvider supplies the host's model configurations to extension
// contexts.
type ModelConfigProvider interface {
	ModelConfigs() ([]extsdk.ModelConfig, error)
}

// Hosts bundles the host-side collaborators the manager wires into every
// extension context it builds. Any field may be nil; the corresponding
// context capability then degrades per the Context contract (empty results
// for providers, ErrNotAvailable for gates).
type Hosts struct {
	Settings SettingsStore
	Profiles AgentProfileProvider
	Models   ModelConfigProvider
}
