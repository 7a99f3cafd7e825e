// Package notify detects items that changed since the viewer last looked and
// turns the newest one into a transient banner.
package notify

import (
	"sync"
	"time"
)

// TargetKind says what tapping a banner opens.
type TargetKind string

const (
	TargetConversation TargetKind = "conversation"
	TargetHireOffer    TargetKind = "hireOffer"
)

// Target identifies the detail a notification points at.
type Target struct {
	Kind           TargetKind `json:"kind"`
	ConversationID string     `json:"conversationId,omitempty"`
	HireID         string     `json:"hireId,omitempty"`
	CounterpartUID string     `json:"counterpartUid,omitempty"`
}

// Item is one candidate in a snapshot.
type Item struct {
	Key       string    `json:"key"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Target    Target    `json:"target"`
}

// Engine holds the seen-state of a single subscription. A new subscription
// needs a new Engine.
type Engine struct {
	viewer  string
	focused func(Item) bool

	mu           sync.Mutex
	seeded       bool
	seen         map[string]time.Time
	lastNotified string
	lastAt       time.Time
}

// NewEngine returns an engine for viewer. focused may be nil.
func NewEngine(viewer string, focused func(Item) bool) *Engine {
	if focused == nil {
		focused = func(Item) bool { return false }
	}
	return &Engine{
		viewer:  viewer,
		focused: focused,
		seen:    make(map[string]time.Time),
	}
}

// Observe feeds one snapshot and returns the item to notify about, if any.
// The first snapshot only seeds the seen-state.
func (e *Engine) Observe(items []Item) (Item, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.seeded {
		for _, it := range items {
			e.record(it)
		}
		e.seeded = true
		return Item{}, false
	}

	var winner Item
	found := false
	for _, it := range items {
		prev, known := e.seen[it.Key]
		advanced := !known || it.Timestamp.After(prev)
		e.record(it)
		if !advanced || it.Actor == e.viewer || e.focused(it) {
			continue
		}
		if !found || it.Timestamp.After(winner.Timestamp) {
			winner = it
			found = true
		}
	}
	// The latch is per event: a newer event on the same key fires again.
	if !found || (winner.Key == e.lastNotified && !winner.Timestamp.After(e.lastAt)) {
		return Item{}, false
	}
	e.lastNotified = winner.Key
	e.lastAt = winner.Timestamp
	return winner, true
}

// record never moves a key backwards.
func (e *Engine) record(it Item) {
	if prev, ok := e.seen[it.Key]; ok && !it.Timestamp.After(prev) {
		return
	}
	e.seen[it.Key] = it.Timestamp
}

// LastNotified returns the key of the last emitted item.
func (e *Engine) LastNotified() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastNotified
}
