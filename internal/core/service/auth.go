package service

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, chatID int64) bool
}

// ChatAuthorizer admits chats on the configured allowlist. An empty allowlist admits every chat.
// A refused chat is told how to get access once, later refusals are only logged.
type ChatAuthorizer struct {
	allowed map[int64]struct{}
	contact string
	sender  port.TextSender

	mutex  sync.Mutex
	warned map[int64]struct{}
}

// NewAuthorizer reads telegram.allowed_chat_ids and telegram.admin_username.
func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var ids []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed chat IDs: %w", err)
	}

	return NewChatAuthorizer(sender, ids, viper.GetString("telegram.admin_username")), nil
}

func NewChatAuthorizer(sender port.TextSender, ids []int64, contact string) *ChatAuthorizer {
	allowed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	if len(allowed) == 0 {
		log.Warn().Msg("no allowed chat IDs configured, every chat may run commands")
	}

	return &ChatAuthorizer{
		allowed: allowed,
		contact: contact,
		sender:  sender,
		warned:  make(map[int64]struct{}),
	}
}

func (a *ChatAuthorizer) IsAuthorized(ctx context.Context, chatID int64) bool {
	if len(a.allowed) == 0 {
		return true
	}

	if _, ok := a.allowed[chatID]; ok {
		return true
	}

	a.mutex.Lock()
	_, seen := a.warned[chatID]
	a.warned[chatID] = struct{}{}
	a.mutex.Unlock()

	l := log.With().Int64("chatId", chatID).Logger()
	if seen {
		l.Debug().Msg("rejecting unauthorized chat again")
		return false
	}

	l.Info().Msg("rejecting unauthorized chat")

	_, err := a.sender.SendMessageReply(ctx, &domain.Message{ChatID: chatID}, a.refusal(chatID))
	if err != nil {
		l.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}

func (a *ChatAuthorizer) refusal(chatID int64) string {
	if a.contact == "" {
		return fmt.Sprintf("Commands are not enabled in this chat (ID %d).", chatID)
	}

	return fmt.Sprintf("Commands are not enabled in this chat. Ask @%s to allow chat ID %d.", a.contact, chatID)
}
