// Package settings provides the host settings store extensions read and
// update through their call context. Keys use dot notation
// ("editor.tabsize"); values persist to a yaml file between runs.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Store is a viper-backed settings store. A Store with an empty path is
// purely in-memory, which tests and one-off tooling use.
type Store struct {
	mu     sync.RWMutex
	v      *viper.Viper
	path   string
	logger *zap.Logger
}

// NewStore opens the settings file at path, creating an empty store when
// the file does not exist yet.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read settings %s: %w", path, err)
			}
			logger.Debug("no settings file yet", zap.String("path", path))
		}
	}

	return &Store{v: v, path: path, logger: logger.Named("settings")}, nil
}

// Get reads one setting by dot-notation key, reporting whether it is set.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// Update applies a partial settings map. Keys may be dotted paths or plain
// top-level names; each one replaces the value at its path, leaving sibling
// settings untouched. The result is written back to disk.
func (s *Store) Update(partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range partial {
		s.v.Set(key, value)
	}
	return s.save()
}

// All returns every setting as a nested map.
func (s *Store) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.AllSettings()
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	s.logger.Debug("settings saved", zap.String("path", s.path))
	return nil
}
