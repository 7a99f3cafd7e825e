package documents

import (
	"context"
	"log/slog"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

// MessageRepo implements storage.MessageRepository.
type MessageRepo struct {
	base
}

func NewMessageRepo(store docstore.Store, logger *slog.Logger) *MessageRepo {
	return &MessageRepo{base: newBase(store, logger)}
}

func (r *MessageRepo) WithTx(tx docstore.Tx) storage.MessageRepository {
	return &MessageRepo{base: r.base.withTx(tx)}
}

var _ storage.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, msg *models.Message) error {
	return r.set(ctx, storage.CollectionMessages, msg.ID, msg)
}

// ListByConversation returns messages oldest first.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	q := docstore.NewQuery(storage.CollectionMessages).
		Where("chatId", conversationID).
		OrderByField("createdAt", false)
	docs, err := r.list(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, docs, func(m *models.Message, id string) { m.ID = id }), nil
}
