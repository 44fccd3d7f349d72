package cart

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Kind string

const (
	KindAdded             Kind = "added"
	KindInsufficientStock Kind = "insufficient_stock"
	KindOutOfStock        Kind = "out_of_stock"
	KindRemoved           Kind = "removed"
	KindCleared           Kind = "cleared"
	KindStockCeiling      Kind = "stock_ceiling"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notice)
}

// NoticeQueue buffers notices until they are drained.
type NoticeQueue struct {
	mu      sync.Mutex
	notices []Notice
}

func (q *NoticeQueue) Notify(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notices = append(q.notices, n)
}

// Drain returns the buffered notices in order and empties the queue.
func (q *NoticeQueue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.notices
	q.notices = nil
	if out == nil {
		return []Notice{}
	}
	return out
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
