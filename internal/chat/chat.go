// Package chat holds the pure rules over conversation records: canonical ids,
// unread state and grouping by counterpart.
package chat

import (
	"sort"
	"time"

	"gig-coordinator/internal/models"
)

// ConversationID is derived from the ordered (employer, worker) pair.
func ConversationID(employerUID, workerUID string) string {
	return employerUID + "_" + workerUID
}

// IsUnread reports whether conv has a message from someone other than viewer
// that arrived after viewer last opened the thread.
func IsUnread(conv *models.Conversation, viewer string) bool {
	if conv.LastMessageAt == nil {
		return false
	}
	if conv.LastSenderID == viewer {
		return false
	}
	role, ok := conv.RoleOf(viewer)
	if !ok {
		return false
	}
	opened := conv.LastOpenedAt(role)
	return opened == nil || opened.Before(*conv.LastMessageAt)
}

func lastMessageAt(c *models.Conversation) time.Time {
	if c.LastMessageAt == nil {
		return time.Time{}
	}
	return *c.LastMessageAt
}

// GroupByCounterpart keeps one conversation per counterpart: the one with the
// latest message, ties going to the smallest id. The result is ordered most
// recent first. Duplicates stay in storage.
func GroupByCounterpart(viewer string, convs []models.Conversation) []models.Conversation {
	best := map[string]int{}
	for i := range convs {
		c := &convs[i]
		key := c.Counterpart(viewer)
		j, ok := best[key]
		if !ok || preferred(c, &convs[j]) {
			best[key] = i
		}
	}

	out := make([]models.Conversation, 0, len(best))
	for _, i := range best {
		out = append(out, convs[i])
	}
	sort.Slice(out, func(i, j int) bool {
		return preferred(&out[i], &out[j])
	})
	return out
}

func preferred(a, b *models.Conversation) bool {
	at, bt := lastMessageAt(a), lastMessageAt(b)
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ID < b.ID
}
