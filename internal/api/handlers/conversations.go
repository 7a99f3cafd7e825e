package handlers

import (
	"log/slog"
	"net/http"

	"gig-coordinator/internal/services"
	"gig-coordinator/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ConversationHandler exposes the chat store.
type ConversationHandler struct {
	base
	service services.ChatService
}

func NewConversationHandler(service services.ChatService, validate *validator.Validate, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{base: newBase(validate, logger, "conversations-handler"), service: service}
}

// EnsureConversation godoc
// @Summary      Open a conversation
// @Description  Returns the canonical conversation for an employer and worker pair, creating it if missing. The caller must be one of the two.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        conversation body      dto.EnsureConversationRequest true  "Participants"
// @Success      200 {object}  dto.ConversationSummary
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not a participant"
// @Router       /conversations [post]
// @Security     BearerAuth
func (h *ConversationHandler) EnsureConversation(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	var req dto.EnsureConversationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.RequesterID = uid

	conv, err := h.service.EnsureConversation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "open conversation")
		return
	}
	c.JSON(http.StatusOK, services.Summarize(conv, uid))
}

// ListConversations godoc
// @Summary      List conversations
// @Description  Returns one row per counterpart, newest message first.
// @Tags         conversations
// @Produce      json
// @Success      200 {array}   dto.ConversationSummary
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /conversations [get]
// @Security     BearerAuth
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	summaries, err := h.service.ListConversations(c.Request.Context(), uid)
	if err != nil {
		respondError(c, h.logger, err, "list conversations")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// ListMessages godoc
// @Summary      List messages
// @Tags         conversations
// @Produce      json
// @Param        id  path      string  true  "Conversation ID"
// @Success      200 {array}   models.Message
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not a participant"
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Router       /conversations/{id}/messages [get]
// @Security     BearerAuth
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	msgs, err := h.service.ListMessages(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondError(c, h.logger, err, "list messages")
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// AppendMessage godoc
// @Summary      Send a message
// @Description  Appends a message and updates the conversation summary. Sends are rate limited per user.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Conversation ID"
// @Param        message  body      dto.AppendMessageRequest  true  "Message text"
// @Success      201 {object}  models.Message
// @Failure      400 {object}  map[string]string "Blank message"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not a participant"
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Failure      429 {object}  map[string]string "Too many requests"
// @Router       /conversations/{id}/messages [post]
// @Security     BearerAuth
func (h *ConversationHandler) AppendMessage(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	var req dto.AppendMessageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.ConversationID = c.Param("id")
	req.SenderID = uid

	msg, err := h.service.AppendMessage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "send message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkOpened godoc
// @Summary      Mark a conversation opened
// @Description  Stamps the caller's last-opened time, clearing the unread flag.
// @Tags         conversations
// @Param        id  path  string  true  "Conversation ID"
// @Success      204
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Caller is not a participant"
// @Failure      404 {object}  map[string]string "Conversation not found"
// @Router       /conversations/{id}/opened [patch]
// @Security     BearerAuth
func (h *ConversationHandler) MarkOpened(c *gin.Context) {
	uid, ok := h.caller(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	conv, err := h.service.GetConversation(ctx, c.Param("id"), uid)
	if err != nil {
		respondError(c, h.logger, err, "mark conversation opened")
		return
	}
	role, _ := conv.RoleOf(uid)
	if err := h.service.MarkOpened(ctx, &dto.MarkOpenedRequest{ConversationID: conv.ID, Role: role}); err != nil {
		respondError(c, h.logger, err, "mark conversation opened")
		return
	}
	c.Status(http.StatusNoContent)
}
