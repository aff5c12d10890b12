package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/chat"
	"github.com/kdduha/chiliguard/internal/models"
	"github.com/kdduha/chiliguard/internal/state"
)

// ChatService runs the assistant conversation about the current diagnosis.
type ChatService struct {
	logger    *zap.Logger
	store     *state.Store
	responder chat.Responder
	now       func() time.Time
}

func NewChatService(logger *zap.Logger, store *state.Store, responder chat.Responder) *ChatService {
	return &ChatService{
		logger:    logger,
		store:     store,
		responder: responder,
		now:       time.Now,
	}
}

// Open greets the user once per conversation and returns the messages.
func (c *ChatService) Open(ctx context.Context) ([]models.ChatMessage, error) {
	result := c.store.Result()
	if result == nil {
		return nil, ErrNoDiagnosis
	}
	c.store.AppendIfEmpty(models.NewChatMessage(models.RoleAssistant, chat.Welcome(*result), c.now()))
	return c.store.Messages(), nil
}

// Ask records the question, waits for the responder and records its reply.
// Only one question may be pending at a time.
func (c *ChatService) Ask(ctx context.Context, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	result := c.store.Result()
	if result == nil {
		return nil, ErrNoDiagnosis
	}
	if !c.store.TryBeginTyping() {
		return nil, ErrAssistantBusy
	}
	defer c.store.SetTyping(false)

	c.store.AppendMessage(models.NewChatMessage(models.RoleUser, text, c.now()))

	reply, err := c.responder.Reply(ctx, text, *result)
	if err != nil {
		c.logger.Warn("Assistant reply failed", zap.Error(err))
		return nil, err
	}

	msg := models.NewChatMessage(models.RoleAssistant, reply, c.now())
	c.store.AppendMessage(msg)
	return &msg, nil
}

func (c *ChatService) Messages() []models.ChatMessage {
	return c.store.Messages()
}

func (c *ChatService) Clear() {
	c.store.ClearChat()
}
