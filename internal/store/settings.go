// Package store holds the gateway's process-local session state: user
// settings, the mock file tree, and desktop window layouts. Everything is a
// guarded in-memory map with last-write-wins semantics; nothing survives a
// restart.
package store

import "sync"

// Settings is a flat key/value store for user preferences.
type Settings struct {
	mu   sync.RWMutex
	data map[string]any
}

func NewSettings() *Settings {
	return &Settings{data: make(map[string]any)}
}

// All returns a copy of the settings map.
func (s *Settings) All() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

func (s *Settings) Set(key string, value any) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}
