package cart

import (
	"sync"
	"time"
)

const DefaultReminderInterval = 5 * time.Second

type TitleSink interface {
	SetTitle(title string)
}

// Reminder flashes a "come back" title while the cart has items and the
// shopper's page is hidden. It alternates between the notice and the normal
// title every interval and restores the normal title when the page becomes
// visible again, the cart empties, or the reminder is closed.
type Reminder struct {
	sink     TitleSink
	title    string
	notice   string
	interval time.Duration

	mu     sync.Mutex
	hidden bool
	count  int
	closed bool
	stop   chan struct{}
	done   chan struct{}
}

func NewReminder(sink TitleSink, title, notice string, interval time.Duration) *Reminder {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &Reminder{
		sink:     sink,
		title:    title,
		notice:   notice,
		interval: interval,
		count:    -1,
	}
}

func (r *Reminder) SetHidden(hidden bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = hidden
	r.reschedule()
}

// Update tells the reminder the current item count.
func (r *Reminder) Update(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if count == r.count {
		return
	}
	r.count = count
	r.reschedule()
}

// Active reports whether the flashing ticker is running.
func (r *Reminder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Reminder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.cancel()
	r.closed = true
	r.sink.SetTitle(r.title)
}

// reschedule must be called with mu held.
func (r *Reminder) reschedule() {
	r.cancel()
	if r.closed {
		return
	}
	if !r.hidden || r.count <= 0 {
		r.sink.SetTitle(r.title)
		return
	}

	r.sink.SetTitle(r.notice)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.flash(r.stop, r.done)
}

func (r *Reminder) flash(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	showNotice := false
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if showNotice {
				r.sink.SetTitle(r.notice)
			} else {
				r.sink.SetTitle(r.title)
			}
			showNotice = !showNotice
		}
	}
}

// cancel stops the ticker goroutine and waits for it to exit. The goroutine
// never takes mu, so waiting here cannot deadlock.
func (r *Reminder) cancel() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop = nil
	r.done = nil
}
