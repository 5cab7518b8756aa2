package usecase

import "sync"

// OverlayStore holds the open/closed flag of a view's modal overlay.
type OverlayStore struct {
	mu     sync.RWMutex
	isOpen bool
}

func NewOverlayStore() *OverlayStore {
	return &OverlayStore{}
}

func (o *OverlayStore) Open() {
	o.mu.Lock()
	o.isOpen = true
	o.mu.Unlock()
}

func (o *OverlayStore) Close() {
	o.mu.Lock()
	o.isOpen = false
	o.mu.Unlock()
}

func (o *OverlayStore) IsOpen() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.isOpen
}
