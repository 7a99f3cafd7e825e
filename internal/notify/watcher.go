package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/services"
)

// Source opens a live query and reports every snapshot as items.
type Source func(ctx context.Context, onChange func([]Item), onError func(error)) (docstore.Subscription, error)

// Watcher runs an Engine over a Source. The seen-state lives only between
// Start and Stop.
type Watcher struct {
	name    string
	viewer  string
	source  Source
	focused func(Item) bool
	emit    func(Item)
	logger  *slog.Logger

	mu     sync.Mutex
	sub    docstore.Subscription
	engine *Engine
}

// NewWatcher wires source to emit through a fresh Engine on every Start.
func NewWatcher(name, viewer string, source Source, focused func(Item) bool, emit func(Item), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		name:    name,
		viewer:  viewer,
		source:  source,
		focused: focused,
		emit:    emit,
		logger:  logger.With("watcher", name),
	}
}

// Start subscribes, replacing any earlier subscription and its seen-state.
func (w *Watcher) Start(ctx context.Context) error {
	w.Stop()

	engine := NewEngine(w.viewer, w.focused)
	sub, err := w.source(ctx, func(items []Item) {
		if it, ok := engine.Observe(items); ok {
			w.logger.Debug("notifying", slog.String("key", it.Key))
			w.emit(it)
		}
	}, func(err error) {
		w.logger.Error("subscription failed", slog.String("error", err.Error()))
	})
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.sub = sub
	w.engine = engine
	return nil
}

// Stop unsubscribes and discards the seen-state.
func (w *Watcher) Stop() {
	w.mu.Lock()
	sub := w.sub
	w.sub = nil
	w.engine = nil
	w.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Running reports whether Start succeeded and Stop has not been called since.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sub != nil
}

// MessageItems turns grouped conversations into message candidates keyed by
// counterpart. Conversations without messages are skipped.
func MessageItems(viewer string, convs []models.Conversation) []Item {
	out := make([]Item, 0, len(convs))
	for _, c := range convs {
		if c.LastMessageAt == nil {
			continue
		}
		counterpart := c.Counterpart(viewer)
		out = append(out, Item{
			Key:       counterpart,
			Actor:     c.LastSenderID,
			Timestamp: *c.LastMessageAt,
			Title:     "New message",
			Body:      c.LastMessage,
			Target: Target{
				Kind:           TargetConversation,
				ConversationID: c.ID,
				CounterpartUID: counterpart,
			},
		})
	}
	return out
}

// OfferItems turns proposed hires into offer candidates keyed by hire id.
func OfferItems(hires []models.Hire) []Item {
	out := make([]Item, 0, len(hires))
	for _, h := range hires {
		out = append(out, Item{
			Key:       h.ID,
			Actor:     h.EmployerUID,
			Timestamp: h.CreatedAt,
			Title:     "New hire offer",
			Body:      h.JobSnapshot.Title,
			Target: Target{
				Kind:           TargetHireOffer,
				ConversationID: h.ChatID,
				HireID:         h.ID,
				CounterpartUID: h.EmployerUID,
			},
		})
	}
	return out
}

// MessageSource streams viewer's grouped conversations.
func MessageSource(chat services.ChatService, viewer string) Source {
	return func(ctx context.Context, onChange func([]Item), onError func(error)) (docstore.Subscription, error) {
		return chat.SubscribeConversations(ctx, viewer, func(convs []models.Conversation) {
			onChange(MessageItems(viewer, convs))
		}, onError)
	}
}

// OfferSource streams the hires proposed to worker.
func OfferSource(hires services.HireService, worker string) Source {
	return func(ctx context.Context, onChange func([]Item), onError func(error)) (docstore.Subscription, error) {
		return hires.SubscribeProposals(ctx, worker, func(list []models.Hire) {
			onChange(OfferItems(list))
		}, onError)
	}
}

// Session runs both watchers for one viewer against a shared banner.
type Session struct {
	Focus  *Focus
	Banner *Banner

	watchers []*Watcher
}

// NewSession builds the message and offer watchers for viewer.
func NewSession(chat services.ChatService, hires services.HireService, viewer string, presenter Presenter, cfg SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	focus := NewFocus()
	banner := NewBanner(presenter, cfg.BannerDuration)
	logger = logger.With("viewer", viewer)
	return &Session{
		Focus:  focus,
		Banner: banner,
		watchers: []*Watcher{
			NewWatcher("messages", viewer, MessageSource(chat, viewer), focus.Messages, banner.Show, logger),
			NewWatcher("offers", viewer, OfferSource(hires, viewer), focus.Offers, banner.Show, logger),
		},
	}
}

// SessionConfig tunes a Session.
type SessionConfig struct {
	BannerDuration time.Duration
}

// Start starts every watcher; on failure the ones already started are stopped.
func (s *Session) Start(ctx context.Context) error {
	var errs []error
	for _, w := range s.watchers {
		if err := w.Start(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.Stop()
		return err
	}
	return nil
}

// Stop ends both subscriptions and clears the banner. A later Start re-seeds.
func (s *Session) Stop() {
	for _, w := range s.watchers {
		w.Stop()
	}
	s.Banner.Dismiss()
}

// Close stops the session for good.
func (s *Session) Close() {
	s.Stop()
	s.Banner.Close()
}
