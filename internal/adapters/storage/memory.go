package storage

import (
	"context"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-coursesite/pkg/interfaces"
	artifacts "github.com/goliatone/go-coursesite/pkg/storage"
)

// MemoryProvider keeps artifacts in memory. It backs tests and previews.
type MemoryProvider struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemory returns an empty MemoryProvider.
func NewMemory() *MemoryProvider {
	return &MemoryProvider{
		files: map[string][]byte{},
		dirs:  map[string]struct{}{},
	}
}

func (m *MemoryProvider) Capabilities() artifacts.Capabilities {
	return artifacts.Capabilities{Metadata: map[string]any{"driver": "memory"}}
}

func (m *MemoryProvider) Query(_ context.Context, query string, args ...any) (interfaces.Rows, error) {
	if query != artifacts.OpRead || len(args) == 0 {
		return nil, nil
	}
	key := memoryKey(args[0])
	m.mu.RLock()
	data, ok := m.files[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &fileRows{data: slices.Clone(data)}, nil
}

func (m *MemoryProvider) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	if err := ctx.Err(); err != nil {
		return emptyResult{}, err
	}
	if len(args) == 0 {
		return emptyResult{}, fmt.Errorf("%s requires path", query)
	}
	key := memoryKey(args[0])

	m.mu.Lock()
	defer m.mu.Unlock()

	switch query {
	case artifacts.OpEnsureDir:
		m.dirs[key] = struct{}{}
	case artifacts.OpWrite:
		if len(args) < 2 {
			return emptyResult{}, fmt.Errorf("write requires path and reader")
		}
		reader, ok := args[1].(io.Reader)
		if !ok || reader == nil {
			return emptyResult{}, fmt.Errorf("write expects io.Reader content")
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return emptyResult{}, err
		}
		m.files[key] = data
		return emptyResult{affected: int64(len(data))}, nil
	case artifacts.OpRemove:
		for name := range m.files {
			if key == "" || name == key || strings.HasPrefix(name, key+"/") {
				delete(m.files, name)
			}
		}
		for name := range m.dirs {
			if key == "" || name == key || strings.HasPrefix(name, key+"/") {
				delete(m.dirs, name)
			}
		}
	}
	return emptyResult{}, nil
}

// File returns the stored content for name.
func (m *MemoryProvider) File(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[memoryKey(name)]
	return data, ok
}

// Files returns a copy of every stored artifact keyed by path.
func (m *MemoryProvider) Files() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.files)
}

// Paths lists stored artifact paths in sorted order.
func (m *MemoryProvider) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.files))
}

func memoryKey(arg any) string {
	raw, _ := arg.(string)
	return strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(raw)), "/")
}
