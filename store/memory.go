package store

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// Memory is a Store backed by a map.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]string
	writes map[string]int
}

func NewMemory(docs map[string]string) *Memory {
	m := &Memory{docs: map[string]string{}, writes: map[string]int{}}
	for k, v := range docs {
		m.docs[k] = v
	}
	return m
}

func (m *Memory) Exists(_ context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[path]
	return ok, nil
}

func (m *Memory) Load(_ context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[path]
	if !ok {
		return "", fmt.Errorf("could not read %q: %w", path, fs.ErrNotExist)
	}
	return d, nil
}

func (m *Memory) Save(_ context.Context, path, doc string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = doc
	m.writes[path]++
	return nil
}

// Writes returns the number of saves made to path.
func (m *Memory) Writes(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[path]
}

// Overlay reads through to a base Store and keeps all saves in memory,
// so that a sequence of dry runs sees its own earlier results.
type Overlay struct {
	base Store
	mem  *Memory
}

func NewOverlay(base Store) *Overlay {
	return &Overlay{base: base, mem: NewMemory(nil)}
}

func (o *Overlay) Exists(ctx context.Context, path string) (bool, error) {
	if ok, _ := o.mem.Exists(ctx, path); ok {
		return true, nil
	}
	return o.base.Exists(ctx, path)
}

func (o *Overlay) Load(ctx context.Context, path string) (string, error) {
	if ok, _ := o.mem.Exists(ctx, path); ok {
		return o.mem.Load(ctx, path)
	}
	return o.base.Load(ctx, path)
}

func (o *Overlay) Save(ctx context.Context, path, doc string) error {
	return o.mem.Save(ctx, path, doc)
}
