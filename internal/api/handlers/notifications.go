package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/notify"
	"gig-coordinator/internal/services"

	"github.com/gin-gonic/gin"
)

// OwnershipWatcher starts the owner self-heal for actor while a client is connected.
type OwnershipWatcher func(ctx context.Context, actor string) (docstore.Subscription, error)

// NotificationHandler streams banners over server-sent events.
type NotificationHandler struct {
	base
	chat           services.ChatService
	hires          services.HireService
	bannerDuration time.Duration
	heartbeat      time.Duration
	watchOwnership OwnershipWatcher
}

func NewNotificationHandler(chat services.ChatService, hires services.HireService, bannerDuration time.Duration, watchOwnership OwnershipWatcher, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		base:           newBase(nil, logger, "notifications-handler"),
		chat:           chat,
		hires:          hires,
		bannerDuration: bannerDuration,
		heartbeat:      15 * time.Second,
		watchOwnership: watchOwnership,
	}
}

type sseEvent struct {
	name string
	data any
}

// ssePresenter forwards banner calls to the stream loop. It never blocks a
// watcher: if the client falls behind, events are dropped.
type ssePresenter struct {
	events chan sseEvent
	logger *slog.Logger
}

func (p *ssePresenter) send(ev sseEvent) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("dropping notification event, client is slow", slog.String("event", ev.name))
	}
}

func (p *ssePresenter) Haptic() { p.send(sseEvent{name: "haptic", data: gin.H{}}) }
func (p *ssePresenter) Show(it notify.Item) { p.send(sseEvent{name: "banner", data: it}) }
func (p *ssePresenter) Clear() { p.send(sseEvent{name: "clear", data: gin.H{}}) }

// Stream godoc
// @Summary      Stream notification banners
// @Description  Server-sent events: ready, haptic, banner, clear and ping. screen is one of other, conversations, conversation, proposals.
// @Tags         notifications
// @Produce      text/event-stream
// @Param        screen        query  string  false  "Screen the client is showing"
// @Param        conversation  query  string  false  "Open conversation ID when screen=conversation"
// @Success      200 {object}  notify.Item "banner event payload"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /notifications/stream [get]
// @Security     BearerAuth
//
// The query describes what the client is showing; reconnect with new values
// when the screen changes. Each connection seeds fresh seen-state.
func (h *NotificationHandler) Stream(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	log := h.logger.With(slog.String("user_id", uid))

	presenter := &ssePresenter{events: make(chan sseEvent, 32), logger: log}
	session := notify.NewSession(h.chat, h.hires, uid, presenter, notify.SessionConfig{BannerDuration: h.bannerDuration}, log)
	session.Focus.Set(notify.ParseScreen(c.Query("screen")), c.Query("conversation"))
	if err := session.Start(ctx); err != nil {
		respondError(c, log, err, "start notifications")
		return
	}
	defer session.Close()

	if h.watchOwnership != nil {
		sub, err := h.watchOwnership(ctx, uid)
		if err != nil {
			log.Warn("ownership watch not started", slog.String("error", err.Error()))
		} else {
			defer sub.Unsubscribe()
		}
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("ready", gin.H{"userId": uid})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-presenter.events:
			c.SSEvent(ev.name, ev.data)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	log.Debug("notification stream closed")
}
