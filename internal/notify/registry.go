package notify

import (
	"errors"
	"sync"
)

// ErrDuplicateID is returned by Add when a connection with the same id is
// already registered. Unreachable while ids are random uuids, but checked
// anyway.
var ErrDuplicateID = errors.New("connection id already registered")

// Registry holds the set of live connections. The mutex guards only the map;
// it is never held across a network send.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

func (r *Registry) Add(c *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[c.ID]; ok {
		return ErrDuplicateID
	}
	r.conns[c.ID] = c
	return nil
}

// Remove deletes the connection if present. Absence is not an error, since
// disconnect cleanup may race with explicit removal.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

func (r *Registry) Find(id string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Snapshot returns a copied slice safe to iterate while other goroutines
// add or remove connections.
func (r *Registry) Snapshot() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Connection, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
