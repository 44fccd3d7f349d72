package session

import "sync"

// TitleBoard holds the page title the reminder wants the shopper's tab to
// show. Clients poll it.
type TitleBoard struct {
	mu    sync.RWMutex
	title string
}

func (b *TitleBoard) SetTitle(title string) {
	b.mu.Lock()
	b.title = title
	b.mu.Unlock()
}

func (b *TitleBoard) Title() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.title
}
