package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gig-coordinator/internal/chat"
	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/storage/documents"
	"gig-coordinator/internal/transport/dto"

	"github.com/google/uuid"
)

type chatService struct {
	store    docstore.Store
	convRepo storage.ConversationRepository
	msgRepo  storage.MessageRepository
	opts     options
}

// NewChatService creates the chat store.
func NewChatService(store docstore.Store, opts ...Option) ChatService {
	o := buildOptions("chat", opts)
	return &chatService{
		store:    store,
		convRepo: documents.NewConversationRepo(store, o.logger),
		msgRepo:  documents.NewMessageRepo(store, o.logger),
		opts:     o,
	}
}

// EnsureConversation returns the canonical thread for the pair, creating it if needed.
func (s *chatService) EnsureConversation(ctx context.Context, req *dto.EnsureConversationRequest) (*models.Conversation, error) {
	log := s.opts.logger
	if err := requireCaller(req.RequesterID); err != nil {
		return nil, err
	}
	if req.EmployerUID == "" || req.WorkerUID == "" {
		return nil, fmt.Errorf("%w: both participants are required", ErrValidation)
	}
	if req.EmployerUID == req.WorkerUID {
		return nil, fmt.Errorf("%w: participants must differ", ErrValidation)
	}
	if req.RequesterID != req.EmployerUID && req.RequesterID != req.WorkerUID {
		return nil, fmt.Errorf("%w: caller is not a participant", ErrUnauthorized)
	}

	id := chat.ConversationID(req.EmployerUID, req.WorkerUID)
	var conv *models.Conversation
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		txConvRepo := s.convRepo.WithTx(tx)
		existing, err := txConvRepo.GetByID(ctx, id)
		if err == nil {
			conv = existing
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return mapRepoError(log, err, "fetching conversation")
		}
		conv = &models.Conversation{
			ID:          id,
			EmployerUID: req.EmployerUID,
			WorkerUID:   req.WorkerUID,
			JobID:       req.JobID,
			CreatedAt:   s.opts.now(),
		}
		if err := txConvRepo.Create(ctx, conv); err != nil {
			return mapRepoError(log, err, "creating conversation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// GetConversation returns the conversation if viewer takes part in it.
func (s *chatService) GetConversation(ctx context.Context, conversationID, viewerID string) (*models.Conversation, error) {
	if err := requireCaller(viewerID); err != nil {
		return nil, err
	}
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, fmt.Sprintf("fetching conversation %s", conversationID))
	}
	if _, ok := conv.RoleOf(viewerID); !ok {
		return nil, fmt.Errorf("%w: not a participant", ErrUnauthorized)
	}
	return conv, nil
}

// AppendMessage stores the message and then refreshes the conversation
// summary. The two writes are independent; the summary is last-writer-wins.
func (s *chatService) AppendMessage(ctx context.Context, req *dto.AppendMessageRequest) (*models.Message, error) {
	log := s.opts.logger
	if models.IsBlank(req.Text) {
		return nil, fmt.Errorf("%w: message text is empty", ErrValidation)
	}
	if _, err := s.GetConversation(ctx, req.ConversationID, req.SenderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		ChatID:    req.ConversationID,
		SenderID:  req.SenderID,
		Text:      req.Text,
		CreatedAt: s.opts.now(),
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, mapRepoError(log, err, "creating message")
	}
	if err := s.convRepo.UpdateLastMessage(ctx, req.ConversationID, msg); err != nil {
		return nil, mapRepoError(log, err, "updating conversation summary")
	}

	log.Debug("Message appended",
		slog.String("conversation_id", msg.ChatID),
		slog.String("message_id", msg.ID),
	)
	return msg, nil
}

// MarkOpened stamps the role's last-opened time with the current time.
func (s *chatService) MarkOpened(ctx context.Context, req *dto.MarkOpenedRequest) error {
	if !req.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if err := s.convRepo.MarkOpened(ctx, req.ConversationID, req.Role, s.opts.now()); err != nil {
		return mapRepoError(s.opts.logger, err, fmt.Sprintf("marking conversation %s opened", req.ConversationID))
	}
	return nil
}

func (s *chatService) ListMessages(ctx context.Context, conversationID, viewerID string) ([]models.Message, error) {
	if _, err := s.GetConversation(ctx, conversationID, viewerID); err != nil {
		return nil, err
	}
	msgs, err := s.msgRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, "listing messages")
	}
	return msgs, nil
}

// ListConversations returns one summary per counterpart, most recent first.
func (s *chatService) ListConversations(ctx context.Context, viewerID string) ([]dto.ConversationSummary, error) {
	if err := requireCaller(viewerID); err != nil {
		return nil, err
	}
	convs, err := s.convRepo.ListForParticipant(ctx, viewerID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, "listing conversations")
	}
	grouped := chat.GroupByCounterpart(viewerID, convs)
	out := make([]dto.ConversationSummary, 0, len(grouped))
	for i := range grouped {
		out = append(out, Summarize(&grouped[i], viewerID))
	}
	return out, nil
}

// Summarize renders a conversation from viewer's point of view.
func Summarize(conv *models.Conversation, viewerID string) dto.ConversationSummary {
	role, _ := conv.RoleOf(viewerID)
	return dto.ConversationSummary{
		ID:             conv.ID,
		CounterpartUID: conv.Counterpart(viewerID),
		Role:           role,
		LastMessage:    conv.LastMessage,
		LastSenderID:   conv.LastSenderID,
		LastMessageAt:  conv.LastMessageAt,
		Unread:         chat.IsUnread(conv, viewerID),
	}
}

// SubscribeConversations streams the viewer's grouped conversations. The
// employer-side and worker-side queries are merged; nothing is emitted until
// both have reported.
func (s *chatService) SubscribeConversations(ctx context.Context, viewerID string, onChange func([]models.Conversation), onError func(error)) (docstore.Subscription, error) {
	if err := requireCaller(viewerID); err != nil {
		return nil, err
	}
	roles := []models.Role{models.RoleEmployer, models.RoleWorker}
	merge := &conversationMerge{
		viewer:   viewerID,
		logger:   s.opts.logger,
		latest:   make([][]*docstore.Document, len(roles)),
		received: make([]bool, len(roles)),
		onChange: onChange,
	}

	var subs multiSubscription
	for i, role := range roles {
		sub, err := docstore.SubscribeWithFallback(ctx, s.store, s.convRepo.ByParticipant(role, viewerID), func(snap docstore.Snapshot) {
			merge.update(i, snap.Documents)
		}, onError, s.opts.logger)
		if err != nil {
			subs.Unsubscribe()
			return nil, fmt.Errorf("subscribing to %s conversations: %w", role, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

type conversationMerge struct {
	viewer   string
	logger   *slog.Logger
	onChange func([]models.Conversation)

	mu       sync.Mutex
	latest   [][]*docstore.Document
	received []bool
}

func (m *conversationMerge) update(i int, docs []*docstore.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[i] = docs
	m.received[i] = true
	for _, ok := range m.received {
		if !ok {
			return
		}
	}
	var all []*docstore.Document
	for _, d := range m.latest {
		all = append(all, d...)
	}
	m.onChange(chat.GroupByCounterpart(m.viewer, documents.DecodeConversations(m.logger, all)))
}

type multiSubscription []docstore.Subscription

func (m multiSubscription) Unsubscribe() {
	for _, s := range m {
		s.Unsubscribe()
	}
}
