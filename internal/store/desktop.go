package store

import "sync"

// WindowState mirrors one open window of the simulated desktop.
type WindowState struct {
	ID          string `json:"id"`
	AppID       string `json:"app_id"`
	Title       string `json:"title"`
	IsOpen      bool   `json:"is_open"`
	IsMinimized bool   `json:"is_minimized"`
	IsMaximized bool   `json:"is_maximized"`
	ZIndex      int    `json:"z_index"`
	Position    Point  `json:"position"`
	Size        Extent `json:"size"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Extent struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Desktop keeps the last saved window layout per user.
type Desktop struct {
	mu     sync.RWMutex
	states map[string][]WindowState
}

func NewDesktop() *Desktop {
	return &Desktop{states: make(map[string][]WindowState)}
}

// Get returns the saved layout for userID, or an empty layout for unknown
// users.
func (d *Desktop) Get(userID string) []WindowState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if ws, ok := d.states[userID]; ok {
		return append([]WindowState(nil), ws...)
	}
	return []WindowState{}
}

func (d *Desktop) Save(userID string, windows []WindowState) {
	d.mu.Lock()
	d.states[userID] = append([]WindowState(nil), windows...)
	d.mu.Unlock()
}
