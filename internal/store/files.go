package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileItem is one node of the mock file tree shown by the desktop's explorer.
type FileItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"` // folder | drive | file
	Size         *string `json:"size,omitempty"`
	DateModified string  `json:"date_modified"`
	ParentID     *string `json:"parent_id,omitempty"`
}

// Files is the mock file storage, seeded with the "This PC" tree.
type Files struct {
	mu    sync.RWMutex
	items []FileItem
}

func NewFiles() *Files {
	root := "root"
	free := "800 GB free"
	return &Files{items: []FileItem{
		{ID: "root", Name: "This PC", Type: "folder"},
		{ID: "c_drive", Name: "Local Disk (C:)", Type: "drive", Size: &free, ParentID: &root},
	}}
}

// List returns the items directly under parentID.
func (f *Files) List(parentID string) []FileItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := []FileItem{}
	for _, it := range f.items {
		if it.ParentID != nil && *it.ParentID == parentID {
			out = append(out, it)
		}
	}
	return out
}

// Add records an uploaded file under parentID and returns the new item.
func (f *Files) Add(filename string, size int, parentID string) FileItem {
	sz := fmt.Sprintf("%d bytes", size)
	item := FileItem{
		ID:           uuid.NewString(),
		Name:         filename,
		Type:         "file",
		Size:         &sz,
		DateModified: time.Now().Format(time.RFC3339),
		ParentID:     &parentID,
	}
	f.mu.Lock()
	f.items = append(f.items, item)
	f.mu.Unlock()
	return item
}

// Delete removes the item with the given id. Idempotent.
func (f *Files) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
}
