package documents

import (
	"context"
	"log/slog"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

// ConversationRepo implements storage.ConversationRepository.
type ConversationRepo struct {
	base
}

func NewConversationRepo(store docstore.Store, logger *slog.Logger) *ConversationRepo {
	return &ConversationRepo{base: newBase(store, logger)}
}

func (r *ConversationRepo) WithTx(tx docstore.Tx) storage.ConversationRepository {
	return &ConversationRepo{base: r.base.withTx(tx)}
}

var _ storage.ConversationRepository = (*ConversationRepo)(nil)

func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.get(ctx, storage.CollectionConversations, id, &conv); err != nil {
		return nil, err
	}
	conv.ID = id
	return &conv, nil
}

func (r *ConversationRepo) Create(ctx context.Context, conv *models.Conversation) error {
	return r.set(ctx, storage.CollectionConversations, conv.ID, conv)
}

// UpdateLastMessage refreshes the denormalized summary fields.
func (r *ConversationRepo) UpdateLastMessage(ctx context.Context, id string, msg *models.Message) error {
	return r.update(ctx, storage.CollectionConversations, id, map[string]any{
		"lastMessage":   msg.Text,
		"lastSenderId":  msg.SenderID,
		"lastMessageAt": msg.CreatedAt,
	})
}

func (r *ConversationRepo) MarkOpened(ctx context.Context, id string, role models.Role, at time.Time) error {
	return r.update(ctx, storage.CollectionConversations, id, map[string]any{
		models.LastOpenedField(role): at,
	})
}

func (r *ConversationRepo) ByParticipant(role models.Role, uid string) docstore.Query {
	field := "workerUid"
	if role == models.RoleEmployer {
		field = "employerUid"
	}
	return docstore.NewQuery(storage.CollectionConversations).Where(field, uid)
}

// ListForParticipant merges the employer-side and worker-side queries.
func (r *ConversationRepo) ListForParticipant(ctx context.Context, uid string) ([]models.Conversation, error) {
	var all []*docstore.Document
	for _, role := range []models.Role{models.RoleEmployer, models.RoleWorker} {
		docs, err := r.list(ctx, r.ByParticipant(role, uid))
		if err != nil {
			return nil, err
		}
		all = append(all, docs...)
	}
	return DecodeConversations(r.logger, all), nil
}

// DecodeConversations decodes conversation documents, dropping duplicates by id.
func DecodeConversations(logger *slog.Logger, docs []*docstore.Document) []models.Conversation {
	if logger == nil {
		logger = slog.Default()
	}
	seen := make(map[string]bool, len(docs))
	unique := make([]*docstore.Document, 0, len(docs))
	for _, d := range docs {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		unique = append(unique, d)
	}
	return decodeAll(logger, unique, func(c *models.Conversation, id string) { c.ID = id })
}
