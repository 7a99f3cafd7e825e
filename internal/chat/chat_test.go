package chat_test

import (
	"testing"
	"time"

	"gig-coordinator/internal/chat"
	"gig-coordinator/internal/models"

	"github.com/stretchr/testify/assert"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestConversationID(t *testing.T) {
	assert.Equal(t, "e1_w1", chat.ConversationID("e1", "w1"))
	assert.NotEqual(t, chat.ConversationID("a", "b"), chat.ConversationID("b", "a"))
}

func TestIsUnread(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tests := []struct {
		name   string
		conv   models.Conversation
		viewer string
		want   bool
	}{
		{
			name:   "no messages",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w"},
			viewer: "w",
			want:   false,
		},
		{
			name:   "own message",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "w", LastMessageAt: ptrTime(t2)},
			viewer: "w",
			want:   false,
		},
		{
			name:   "never opened",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "e", LastMessageAt: ptrTime(t2)},
			viewer: "w",
			want:   true,
		},
		{
			name:   "opened before message",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "e", LastMessageAt: ptrTime(t2), WorkerLastOpenedAt: ptrTime(t1)},
			viewer: "w",
			want:   true,
		},
		{
			name:   "opened at message time",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "e", LastMessageAt: ptrTime(t2), WorkerLastOpenedAt: ptrTime(t2)},
			viewer: "w",
			want:   false,
		},
		{
			name:   "other role's stamp does not count",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "w", LastMessageAt: ptrTime(t2), WorkerLastOpenedAt: ptrTime(t2)},
			viewer: "e",
			want:   true,
		},
		{
			name:   "non participant",
			conv:   models.Conversation{EmployerUID: "e", WorkerUID: "w", LastSenderID: "e", LastMessageAt: ptrTime(t2)},
			viewer: "x",
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chat.IsUnread(&tt.conv, tt.viewer))
		})
	}
}

func TestGroupByCounterpart(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	convs := []models.Conversation{
		{ID: "legacy-b", EmployerUID: "e", WorkerUID: "w", JobID: "j1", LastMessageAt: ptrTime(t1)},
		{ID: "e_w", EmployerUID: "e", WorkerUID: "w", LastMessageAt: ptrTime(t1.Add(time.Hour))},
		{ID: "legacy-a", EmployerUID: "e", WorkerUID: "w", JobID: "j2"},
		{ID: "e2_w", EmployerUID: "e2", WorkerUID: "w", LastMessageAt: ptrTime(t1)},
		{ID: "e3_w-z", EmployerUID: "e3", WorkerUID: "w", LastMessageAt: ptrTime(t1.Add(2 * time.Hour))},
		{ID: "e3_w-a", EmployerUID: "e3", WorkerUID: "w", LastMessageAt: ptrTime(t1.Add(2 * time.Hour))},
	}

	got := chat.GroupByCounterpart("w", convs)
	ids := []string{}
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"e3_w-a", "e_w", "e2_w"}, ids)

	// Counterpart sets match and representatives have the greatest timestamp.
	seen := map[string]bool{}
	for _, c := range got {
		cp := c.Counterpart("w")
		assert.False(t, seen[cp], "counterpart %s appears twice", cp)
		seen[cp] = true
	}
	assert.Len(t, seen, 3)
	assert.Len(t, convs, 6, "input must not be modified")
}

func TestGroupByCounterpart_Empty(t *testing.T) {
	assert.Empty(t, chat.GroupByCounterpart("w", nil))
}
