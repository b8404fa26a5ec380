package extension

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"codeforge/pkg/extsdk"
)

// DefaultProjectDirName is the project-local extensions directory, relative
// to the project root.
const DefaultProjectDirName = ".forge/extensions"

// DefaultDebounce is the quiet period the hot-reload watcher waits for
// before reloading a changed directory.
const DefaultDebounce = time.Second

// Options configures a Manager.
type Options struct {
	// GlobalDir is the global extensions directory, created if absent.
	GlobalDir string

	// ProjectDirName is the per-project extensions directory relative to
	// the project root. Defaults to DefaultProjectDirName.
	ProjectDirName string

	// Debounce is the watcher quiet period. Defaults to DefaultDebounce.
	Debounce time.Duration

	// Hosts are the host-side collaborators wired into extension contexts.
	Hosts Hosts

	// Logger receives subsystem logs. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Stats counts manager activity since the last Init.
type Stats struct {
	Loaded            int
	LoadFailures      int
	Initialized       int
	InitFailures      int
	Reloads           int
	Dispatches        int
	BlockedDispatches int
}

// Manager orchestrates the extension lifecycle: directory discovery,
// load/init/dispose, hot reload, collection, toolset construction and event
// dispatch. Hosts are expected to serialize calls into the manager; its
// internal locking protects registry bookkeeping, not overlapping Init and
// dispatch cycles.
type Manager struct {
	mu sync.Mutex

	opts     Options
	registry *Registry
	loader   *Loader
	builder  *contextBuilder
	watcher  *Watcher
	logger   *zap.Logger

	initialized bool
	projects    map[string]extsdk.ProjectHost // project dir -> host, for watched projects
	stats       Stats
}

// NewManager creates a manager. Call Init before use.
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ProjectDirName == "" {
		opts.ProjectDirName = DefaultProjectDirName
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	logger := opts.Logger.Named("extensions")
	return &Manager{
		opts:     opts,
		registry: NewRegistry(logger),
		loader:   NewLoader(logger),
		builder:  newContextBuilder(opts.Hosts, logger),
		logger:   logger,
		projects: make(map[string]extsdk.ProjectHost),
	}
}

// Registry exposes the underlying registry. Intended for the host
// application and tests; extensions never see it.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Initialized reports whether Init has completed.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Stats returns a copy of the activity counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Init discovers and loads every extension under the global directory, then
// starts the hot-reload watcher. Failures in one extension are logged and
// never abort the batch. Re-entrant calls fully reset state.
func (m *Manager) Init(ctx context.Context) error {
	m.mu.Lock()
	if m.initialized {
		m.initialized = false
		if m.watcher != nil {
			m.watcher.Stop()
			m.watcher = nil
		}
	}
	m.stats = Stats{}
	m.projects = make(map[string]extsdk.ProjectHost)
	m.mu.Unlock()

	m.registry.Clear()

	if err := os.MkdirAll(m.opts.GlobalDir, 0o755); err != nil {
		return fmt.Errorf("create global extensions dir: %w", err)
	}

	m.loadDirectory(ctx, m.opts.GlobalDir, nil)

	watcher, err := NewWatcher(m.opts.Debounce, m.logger, func(dir string) {
		m.reloadDirectory(context.Background(), dir)
	})
	if err != nil {
		return fmt.Errorf("start extension watcher: %w", err)
	}
	if err := watcher.Watch(m.opts.GlobalDir); err != nil {
		m.logger.Warn("failed to watch global extensions dir",
			zap.String("dir", m.opts.GlobalDir), zap.Error(err))
	}

	m.mu.Lock()
	m.watcher = watcher
	m.initialized = true
	loaded, failed := m.stats.Loaded, m.stats.LoadFailures
	m.mu.Unlock()

	m.logger.Info("extension manager initialized",
		zap.String("dir", m.opts.GlobalDir),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed))
	return nil
}

// ReloadProjectExtensions unloads and reloads every extension under the
// given project's extensions directory and begins watching it for changes.
func (m *Manager) ReloadProjectExtensions(ctx context.Context, project extsdk.ProjectHost) error {
	if !m.Initialized() {
		return ErrManagerNotInitialized
	}

	dir := filepath.Join(project.Dir(), m.opts.ProjectDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project extensions dir: %w", err)
	}

	m.mu.Lock()
	_, watched := m.projects[dir]
	m.projects[dir] = project
	watcher := m.watcher
	m.mu.Unlock()

	m.unloadDirectory(dir)
	m.loadDirectory(ctx, dir, project)

	if !watched && watcher != nil {
		if err := watcher.Watch(dir); err != nil {
			m.logger.Warn("failed to watch project extensions dir",
				zap.String("dir", dir), zap.Error(err))
		}
	}
	return nil
}

// Dispose stops the watchers and unloads every initialized extension.
// A manager that never initialized is a no-op.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return
	}
	watcher := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if watcher != nil {
		watcher.Stop()
	}

	for _, ext := range m.registry.GetExtensions("") {
		if !ext.Initialized {
			continue
		}
		m.callOnUnload(ext)
	}

	m.mu.Lock()
	m.initialized = false
	m.mu.Unlock()

	m.logger.Info("extension manager disposed")
}

// UnloadExtension finds an extension by file path, best-effort calls its
// OnUnload, and removes it from the registry regardless of unload success.
func (m *Manager) UnloadExtension(filePath string) error {
	ext := m.registry.GetByPath(filePath)
	if ext == nil {
		return fmt.Errorf("%w: %s", ErrExtensionNotFound, filePath)
	}

	if ext.Initialized {
		m.callOnUnload(ext)
	}
	m.registry.Unregister(ext.Metadata.Name)
	return nil
}

// NotifyAgentProfileUpdated informs every initialized ProfileObserver
// extension that a host agent profile changed. Observer errors are logged
// and isolated.
func (m *Manager) NotifyAgentProfileUpdated(profile extsdk.AgentProfile, project extsdk.ProjectHost) {
	projectDir := ""
	if project != nil {
		projectDir = project.Dir()
	}
	for _, ext := range m.registry.GetExtensions(projectDir) {
		if !ext.Initialized {
			continue
		}
		observer, ok := ext.Instance.(extsdk.ProfileObserver)
		if !ok {
			continue
		}
		ec := m.builder.Build(ext.Metadata.Name, project, nil)
		if err := observer.OnAgentProfileUpdated(profile, ec); err != nil {
			m.logger.Error("profile observer failed",
				zap.String("extension", ext.Metadata.Name), zap.Error(err))
		}
	}
}

// loadDirectory discovers and loads every extension unit under dir.
// project is nil for the global directory.
func (m *Manager) loadDirectory(ctx context.Context, dir string, project extsdk.ProjectHost) {
	files, err := DiscoverExtensionFiles(dir)
	if err != nil {
		m.logger.Error("extension discovery failed",
			zap.String("dir", dir), zap.Error(err))
		return
	}

	projectDir := ""
	if project != nil {
		projectDir = project.Dir()
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			m.logger.Warn("extension loading cancelled", zap.String("dir", dir))
			return
		default:
		}

		result := m.loader.Load(file)
		if result == nil {
			m.mu.Lock()
			m.stats.LoadFailures++
			m.mu.Unlock()
			continue
		}

		m.registry.Register(result.Instance, result.Metadata, file, projectDir)
		m.mu.Lock()
		m.stats.Loaded++
		m.mu.Unlock()

		loaded := m.registry.Get(result.Metadata.Name)
		if err := m.InitializeExtension(loaded, project); err != nil {
			m.logger.Error("extension initialization failed",
				zap.String("extension", result.Metadata.Name),
				zap.String("file", file),
				zap.Error(err))
			m.mu.Lock()
			m.stats.InitFailures++
			m.mu.Unlock()
			continue
		}
		m.mu.Lock()
		m.stats.Initialized++
		m.mu.Unlock()
	}
}

// InitializeExtension runs the extension's OnLoad if it has one and marks
// it initialized on success. An instance without OnLoad is initialized
// immediately. OnLoad failure is returned to the caller; the extension
// stays uninitialized and excluded from dispatch and collection until
// reloaded.
func (m *Manager) InitializeExtension(loaded *LoadedExtension, project extsdk.ProjectHost) error {
	name := loaded.Metadata.Name

	initializer, ok := loaded.Instance.(extsdk.Initializer)
	if !ok {
		m.registry.SetInitialized(name, true)
		return nil
	}

	ec := m.builder.Build(name, project, nil)
	if err := initializer.OnLoad(ec); err != nil {
		return fmt.Errorf("OnLoad for %q: %w", name, err)
	}
	m.registry.SetInitialized(name, true)
	return nil
}

// unloadDirectory unloads every extension whose file path is under dir.
func (m *Manager) unloadDirectory(dir string) {
	prefix := dir + string(os.PathSeparator)
	for _, ext := range m.registry.GetExtensions("") {
		if ext.FilePath != dir && !strings.HasPrefix(ext.FilePath, prefix) {
			continue
		}
		if err := m.UnloadExtension(ext.FilePath); err != nil {
			m.logger.Warn("unload during reload failed",
				zap.String("file", ext.FilePath), zap.Error(err))
		}
	}
}

// reloadDirectory is the watcher callback: drop everything loaded from dir,
// then rediscover it.
func (m *Manager) reloadDirectory(ctx context.Context, dir string) {
	m.mu.Lock()
	project := m.projects[dir]
	m.stats.Reloads++
	m.mu.Unlock()

	m.logger.Info("reloading extensions", zap.String("dir", dir))
	m.unloadDirectory(dir)
	m.loadDirectory(ctx, dir, project)
}

// callOnUnload best-effort invokes OnUnload. Errors are logged and never
// block removal or remaining unloads.
func (m *Manager) callOnUnload(ext *LoadedExtension) {
	disposer, ok := ext.Instance.(extsdk.Disposer)
	if !ok {
		return
	}
	project := m.projectFor(ext)
	ec := m.builder.Build(ext.Metadata.Name, project, nil)
	if err := disposer.OnUnload(ec); err != nil {
		m.logger.Error("OnUnload failed",
			zap.String("extension", ext.Metadata.Name), zap.Error(err))
	}
}

// projectFor resolves the watched project host owning a project-scoped
// extension, or nil for global extensions.
func (m *Manager) projectFor(ext *LoadedExtension) extsdk.ProjectHost {
	if ext.Global() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, project := range m.projects {
		if project.Dir() == ext.ProjectDir {
			return project
		}
	}
	return nil
}

// DiscoverExtensionFiles inspects the immediate entries of dir (not
// recursively). Regular .go files are extension units; subdirectories
// contribute their extension.go entry file, falling back to main.go, and
// are skipped when they contain neither.
func DiscoverExtensionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			for _, candidate := range []string{entryFilePrimary, entryFileFallback} {
				path := filepath.Join(dir, name, candidate)
				if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
					files = append(files, path)
					break
				}
			}
			continue
		}

		if entry.Type().IsRegular() && strings.HasSuffix(name, ".go") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}
