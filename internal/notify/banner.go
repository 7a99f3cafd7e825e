package notify

import (
	"sync"
	"time"
)

// DefaultBannerDuration is how long a banner stays up without a tap.
const DefaultBannerDuration = 4 * time.Second

// Presenter renders banners. Calls come from watcher goroutines and timers.
type Presenter interface {
	Haptic()
	Show(Item)
	Clear()
}

// Banner shows at most one item at a time and clears it after a fixed
// duration or on tap.
type Banner struct {
	presenter Presenter
	ttl       time.Duration

	mu      sync.Mutex
	current *Item
	gen     uint64
	timer   *time.Timer
	closed  bool
}

// NewBanner returns a banner; ttl <= 0 selects DefaultBannerDuration.
func NewBanner(p Presenter, ttl time.Duration) *Banner {
	if ttl <= 0 {
		ttl = DefaultBannerDuration
	}
	return &Banner{presenter: p, ttl: ttl}
}

// Show replaces whatever is visible with it and restarts the timer.
func (b *Banner) Show(it Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.stopTimer()
	b.gen++
	gen := b.gen
	b.current = &it
	b.presenter.Haptic()
	b.presenter.Show(it)
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(gen) })
}

// Tap clears the banner and returns the item to navigate to.
func (b *Banner) Tap() (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Item{}, false
	}
	it := *b.current
	b.clearLocked()
	return it, true
}

// Dismiss clears the banner without navigating.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != nil {
		b.clearLocked()
	}
}

func (b *Banner) Current() (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Item{}, false
	}
	return *b.current, true
}

// Close stops the timer; later calls to Show are ignored.
func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.stopTimer()
	b.current = nil
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// A newer banner owns its own timer.
	if gen != b.gen || b.current == nil || b.closed {
		return
	}
	b.clearLocked()
}

func (b *Banner) clearLocked() {
	b.stopTimer()
	b.gen++
	b.current = nil
	b.presenter.Clear()
}

func (b *Banner) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
