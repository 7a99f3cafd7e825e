package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/docstore/memory"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/notify"
	"gig-coordinator/internal/ownership"
	"gig-coordinator/internal/services"
	"gig-coordinator/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func item(key, actor string, sec int) notify.Item {
	return notify.Item{Key: key, Actor: actor, Timestamp: at(sec)}
}

func TestEngine_FirstSnapshotSeeds(t *testing.T) {
	e := notify.NewEngine("me", nil)

	_, ok := e.Observe([]notify.Item{item("a", "x", 1), item("b", "y", 2)})
	assert.False(t, ok, "initial load must not notify")

	// Unchanged re-delivery.
	_, ok = e.Observe([]notify.Item{item("a", "x", 1), item("b", "y", 2)})
	assert.False(t, ok)
}

func TestEngine_Rules(t *testing.T) {
	tests := []struct {
		name     string
		focused  func(notify.Item) bool
		next     []notify.Item
		wantKey  string
		wantFire bool
	}{
		{
			name:     "advanced item from someone else",
			next:     []notify.Item{item("a", "x", 5)},
			wantKey:  "a",
			wantFire: true,
		},
		{
			name: "same timestamp is not an advance",
			next: []notify.Item{item("a", "x", 1)},
		},
		{
			name: "older timestamp is ignored",
			next: []notify.Item{item("a", "x", 0)},
		},
		{
			name: "own activity never notifies",
			next: []notify.Item{item("a", "me", 5)},
		},
		{
			name:    "focused item is suppressed",
			focused: func(it notify.Item) bool { return it.Key == "a" },
			next:    []notify.Item{item("a", "x", 5)},
		},
		{
			name:     "newest candidate wins",
			next:     []notify.Item{item("a", "x", 5), item("b", "y", 9), item("c", "z", 7)},
			wantKey:  "b",
			wantFire: true,
		},
		{
			name:     "item first seen after seeding counts as new",
			next:     []notify.Item{item("a", "x", 1), item("new", "z", 0)},
			wantKey:  "new",
			wantFire: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := notify.NewEngine("me", tt.focused)
			e.Observe([]notify.Item{item("a", "x", 1), item("b", "y", 2), item("c", "z", 3)})

			got, ok := e.Observe(tt.next)
			assert.Equal(t, tt.wantFire, ok)
			assert.Equal(t, tt.wantKey, got.Key)
		})
	}
}

func TestEngine_FocusedUpdateStillMarksSeen(t *testing.T) {
	focused := true
	e := notify.NewEngine("me", func(notify.Item) bool { return focused })
	e.Observe([]notify.Item{item("a", "x", 1)})

	_, ok := e.Observe([]notify.Item{item("a", "x", 5)})
	require.False(t, ok)

	// Leaving the screen does not resurrect what was already seen.
	focused = false
	_, ok = e.Observe([]notify.Item{item("a", "x", 5)})
	assert.False(t, ok)
}

func TestEngine_LastNotifiedLatch(t *testing.T) {
	e := notify.NewEngine("me", nil)
	e.Observe(nil)

	got, ok := e.Observe([]notify.Item{item("a", "x", 1)})
	require.True(t, ok)
	assert.Equal(t, "a", got.Key)

	// Re-delivering the same event does not fire again.
	_, ok = e.Observe([]notify.Item{item("a", "x", 1)})
	assert.False(t, ok)

	// A newer event on the same key does.
	got, ok = e.Observe([]notify.Item{item("a", "x", 2)})
	require.True(t, ok)
	assert.Equal(t, "a", got.Key)

	got, ok = e.Observe([]notify.Item{item("a", "x", 2), item("b", "y", 3)})
	require.True(t, ok)
	assert.Equal(t, "b", got.Key)
	assert.Equal(t, "b", e.LastNotified())

	_, ok = e.Observe([]notify.Item{item("a", "x", 4), item("b", "y", 3)})
	assert.True(t, ok)
}

func TestFocus(t *testing.T) {
	f := notify.NewFocus()
	msg := notify.Item{Target: notify.Target{ConversationID: "E_W"}}
	other := notify.Item{Target: notify.Target{ConversationID: "E_Z"}}

	assert.False(t, f.Messages(msg))
	assert.False(t, f.Offers(msg))

	f.Set(notify.ScreenConversationList, "")
	assert.True(t, f.Messages(msg))
	assert.False(t, f.Offers(msg))

	f.Set(notify.ScreenConversation, "E_W")
	assert.True(t, f.Messages(msg))
	assert.True(t, f.Offers(msg))
	assert.False(t, f.Messages(other))

	f.Set(notify.ScreenProposals, "E_W")
	screen, conv := f.Current()
	assert.Equal(t, notify.ScreenProposals, screen)
	assert.Empty(t, conv)
	assert.True(t, f.Offers(other))
	assert.False(t, f.Messages(other))

	assert.Equal(t, notify.ScreenOther, notify.ParseScreen("settings"))
	assert.Equal(t, notify.ScreenConversation, notify.ParseScreen("conversation"))
}

// recorder is a Presenter that keeps every call.
type recorder struct {
	mu      sync.Mutex
	haptics int
	shown   []notify.Item
	clears  int
}

func (r *recorder) Haptic() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.haptics++
}

func (r *recorder) Show(it notify.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, it)
}

func (r *recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recorder) counts() (int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.haptics, len(r.shown), r.clears
}

func (r *recorder) keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, it := range r.shown {
		out = append(out, it.Key)
	}
	return out
}

func TestBanner_AutoDismiss(t *testing.T) {
	rec := &recorder{}
	b := notify.NewBanner(rec, 20*time.Millisecond)
	defer b.Close()

	b.Show(item("a", "x", 1))
	haptics, shown, _ := rec.counts()
	assert.Equal(t, 1, haptics)
	assert.Equal(t, 1, shown)

	require.Eventually(t, func() bool {
		_, ok := b.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	_, _, clears := rec.counts()
	assert.Equal(t, 1, clears)
}

func TestBanner_TapClearsImmediately(t *testing.T) {
	rec := &recorder{}
	b := notify.NewBanner(rec, time.Hour)
	defer b.Close()

	b.Show(item("a", "x", 1))
	got, ok := b.Tap()
	require.True(t, ok)
	assert.Equal(t, "a", got.Key)
	_, _, clears := rec.counts()
	assert.Equal(t, 1, clears)

	_, ok = b.Tap()
	assert.False(t, ok)
}

func TestBanner_ReplacementKeepsNewestTimer(t *testing.T) {
	rec := &recorder{}
	b := notify.NewBanner(rec, 40*time.Millisecond)
	defer b.Close()

	b.Show(item("a", "x", 1))
	time.Sleep(25 * time.Millisecond)
	b.Show(item("b", "x", 2))
	time.Sleep(25 * time.Millisecond)

	// The first timer would have fired by now; b must still be up.
	cur, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Key)

	b.Close()
	b.Show(item("c", "x", 3))
	_, ok = b.Current()
	assert.False(t, ok)
}

// fakeSource lets a test push snapshots by hand.
type fakeSource struct {
	mu       sync.Mutex
	onChange func([]notify.Item)
	subs     int
	unsubs   int
}

type fakeSub struct{ src *fakeSource }

func (s fakeSub) Unsubscribe() {
	s.src.mu.Lock()
	defer s.src.mu.Unlock()
	s.src.unsubs++
	s.src.onChange = nil
}

func (f *fakeSource) source(_ context.Context, onChange func([]notify.Item), _ func(error)) (docstore.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs++
	f.onChange = onChange
	return fakeSub{src: f}, nil
}

func (f *fakeSource) push(items ...notify.Item) {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(items)
	}
}

func TestWatcher_RestartReseeds(t *testing.T) {
	src := &fakeSource{}
	var emitted []string
	w := notify.NewWatcher("test", "me", src.source, nil, func(it notify.Item) {
		emitted = append(emitted, it.Key)
	}, nil)

	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.Running())
	src.push(item("a", "x", 1))
	src.push(item("a", "x", 2))
	assert.Equal(t, []string{"a"}, emitted)

	w.Stop()
	assert.False(t, w.Running())
	src.push(item("a", "x", 3))
	assert.Equal(t, []string{"a"}, emitted)

	// The new subscription seeds again and forgets the latch.
	require.NoError(t, w.Start(context.Background()))
	src.push(item("a", "x", 3))
	src.push(item("a", "x", 4))
	assert.Equal(t, []string{"a", "a"}, emitted)
	assert.Equal(t, 2, src.subs)
	assert.Equal(t, 1, src.unsubs)
	w.Stop()
}

func TestMessageItems(t *testing.T) {
	last := at(10)
	convs := []models.Conversation{
		{ID: "E_W", EmployerUID: "E", WorkerUID: "W", LastMessage: "hi", LastSenderID: "E", LastMessageAt: &last},
		{ID: "E_Z", EmployerUID: "E", WorkerUID: "Z"},
	}
	items := notify.MessageItems("E", convs)
	require.Len(t, items, 1)
	assert.Equal(t, "W", items[0].Key)
	assert.Equal(t, "E", items[0].Actor)
	assert.Equal(t, last, items[0].Timestamp)
	assert.Equal(t, "E_W", items[0].Target.ConversationID)
}

type sessionEnv struct {
	ctx   context.Context
	jobs  services.JobService
	apps  services.JobApplicationService
	hires services.HireService
	chat  services.ChatService
}

func setupSession(t *testing.T) *sessionEnv {
	t.Helper()
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })
	resolver := ownership.NewResolver()
	return &sessionEnv{
		ctx:   context.Background(),
		jobs:  services.NewJobService(store),
		apps:  services.NewJobApplicationService(store, resolver),
		hires: services.NewHireService(store, resolver, nil),
		chat:  services.NewChatService(store),
	}
}

func TestSession_OfferAndMessageBanners(t *testing.T) {
	env := setupSession(t)
	job, err := env.jobs.CreateJob(env.ctx, &dto.CreateJobRequest{
		Title: "Kitchen porter", Date: "2024-05-04", StartTime: "08:00", EndTime: "14:00",
		LocationText: "Mill Lane 2", HourlyPay: 18, EmployerID: "E",
	})
	require.NoError(t, err)
	_, err = env.apps.ApplyToJob(env.ctx, &dto.ApplyToJobRequest{JobID: job.ID, ApplicantUID: "W"})
	require.NoError(t, err)

	rec := &recorder{}
	session := notify.NewSession(env.chat, env.hires, "W", rec, notify.SessionConfig{BannerDuration: time.Hour}, nil)
	require.NoError(t, session.Start(env.ctx))
	defer session.Close()
	// Let both watchers seed on empty snapshots.
	time.Sleep(50 * time.Millisecond)

	hire, err := env.hires.ProposeHire(env.ctx, &dto.ProposeHireRequest{JobID: job.ID, EmployerID: "E", WorkerID: "W"})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		keys := rec.keys()
		return len(keys) == 1 && keys[0] == hire.ID
	}, time.Second, 5*time.Millisecond)

	tapped, ok := session.Banner.Tap()
	require.True(t, ok)
	assert.Equal(t, notify.TargetHireOffer, tapped.Target.Kind)
	assert.Equal(t, "Kitchen porter", tapped.Body)

	conv, err := env.chat.EnsureConversation(env.ctx, &dto.EnsureConversationRequest{EmployerUID: "E", WorkerUID: "W", RequesterID: "E"})
	require.NoError(t, err)
	_, err = env.chat.AppendMessage(env.ctx, &dto.AppendMessageRequest{ConversationID: conv.ID, SenderID: "E", Text: "Welcome aboard"})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		keys := rec.keys()
		return len(keys) == 2 && keys[1] == "E"
	}, time.Second, 5*time.Millisecond)

	// Replies from the viewer and messages in the open thread stay quiet.
	session.Focus.Set(notify.ScreenConversation, conv.ID)
	_, err = env.chat.AppendMessage(env.ctx, &dto.AppendMessageRequest{ConversationID: conv.ID, SenderID: "W", Text: "Thanks"})
	require.NoError(t, err)
	_, err = env.chat.AppendMessage(env.ctx, &dto.AppendMessageRequest{ConversationID: conv.ID, SenderID: "E", Text: "See you at eight"})
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, rec.keys(), 2)
}

func TestSession_RepeatMessagesFromSameSenderEachNotify(t *testing.T) {
	env := setupSession(t)
	rec := &recorder{}
	session := notify.NewSession(env.chat, env.hires, "W", rec, notify.SessionConfig{BannerDuration: time.Hour}, nil)
	require.NoError(t, session.Start(env.ctx))
	defer session.Close()
	time.Sleep(50 * time.Millisecond)

	conv, err := env.chat.EnsureConversation(env.ctx, &dto.EnsureConversationRequest{EmployerUID: "E", WorkerUID: "W", RequesterID: "E"})
	require.NoError(t, err)

	_, err = env.chat.AppendMessage(env.ctx, &dto.AppendMessageRequest{ConversationID: conv.ID, SenderID: "E", Text: "Are you free Friday?"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.keys()) == 1 }, time.Second, 5*time.Millisecond)

	session.Banner.Dismiss()
	_, err = env.chat.AppendMessage(env.ctx, &dto.AppendMessageRequest{ConversationID: conv.ID, SenderID: "E", Text: "Shift moved to 9"})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		keys := rec.keys()
		return len(keys) == 2 && keys[1] == "E"
	}, time.Second, 5*time.Millisecond)
}
