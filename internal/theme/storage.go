package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type preferences struct {
	Theme Theme `yaml:"theme"`
}

// FileStorage keeps the preference in a small YAML file.
type FileStorage struct {
	Path string
}

func (f FileStorage) Load() (Theme, bool, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", f.Path, err)
	}

	var prefs preferences
	if err := yaml.Unmarshal(b, &prefs); err != nil {
		return "", false, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	if prefs.Theme == "" {
		return "", false, nil
	}
	t, err := Parse(string(prefs.Theme))
	if err != nil {
		return "", false, err
	}
	return t, true, nil
}

func (f FileStorage) Save(t Theme) error {
	b, err := yaml.Marshal(preferences{Theme: t})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(f.Path), err)
	}
	return os.WriteFile(f.Path, b, 0o644)
}

type MemoryStorage struct {
	mu    sync.Mutex
	theme Theme
	saves int
}

func (m *MemoryStorage) Load() (Theme, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme, m.theme != "", nil
}

func (m *MemoryStorage) Save(t Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	m.saves++
	return nil
}

func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
