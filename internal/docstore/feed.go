package docstore

import (
	"strconv"
	"strings"
	"sync"
)

// Feed delivers snapshots for one subscription on its own goroutine.
// Snapshots pushed faster than the callback consumes them are coalesced:
// only the most recent pending one is delivered, so order is preserved and
// the latest state is never lost.
type Feed struct {
	onSnapshot SnapshotFunc
	onError    ErrorFunc

	mu         sync.Mutex
	pending    *Snapshot
	pendingErr error
	lastSig    string
	closed     bool

	wake chan struct{}
	done chan struct{}
	stop chan struct{}
	once sync.Once
}

// NewFeed starts the delivery goroutine.
func NewFeed(onSnapshot SnapshotFunc, onError ErrorFunc) *Feed {
	f := &Feed{
		onSnapshot: onSnapshot,
		onError:    onError,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		stop:       make(chan struct{}),
	}
	go f.run()
	return f
}

// Push queues snap unless it has the same documents and versions as the last
// snapshot queued. It never blocks.
func (f *Feed) Push(snap Snapshot) {
	sig := signature(snap.Documents)
	f.mu.Lock()
	if f.closed || (f.lastSig != "" && sig == f.lastSig) {
		f.mu.Unlock()
		return
	}
	f.lastSig = sig
	f.pending = &snap
	f.mu.Unlock()
	f.signal()
}

// Fail delivers err to the error callback and ends the feed.
func (f *Feed) Fail(err error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.pendingErr = err
	f.mu.Unlock()
	f.signal()
}

// Close stops delivery. A callback already running finishes; none start afterwards.
func (f *Feed) Close() {
	f.once.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.pending = nil
		f.mu.Unlock()
		close(f.stop)
	})
}

// Done is closed once the delivery goroutine exits.
func (f *Feed) Done() <-chan struct{} {
	return f.done
}

func (f *Feed) signal() {
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

func (f *Feed) run() {
	defer close(f.done)
	for {
		select {
		case <-f.stop:
			return
		case <-f.wake:
		}

		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		snap, err := f.pending, f.pendingErr
		f.pending, f.pendingErr = nil, nil
		f.mu.Unlock()

		if snap != nil && f.onSnapshot != nil {
			f.onSnapshot(*snap)
		}
		if err != nil {
			if f.onError != nil && !f.isClosed() {
				f.onError(err)
			}
			f.Close()
			return
		}
	}
}

func (f *Feed) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func signature(docs []*Document) string {
	var b strings.Builder
	b.WriteString("n=")
	b.WriteString(strconv.Itoa(len(docs)))
	for _, d := range docs {
		b.WriteByte('|')
		b.WriteString(d.ID)
		b.WriteByte('@')
		b.WriteString(strconv.FormatInt(d.Version, 10))
	}
	return b.String()
}
