package service

import (
	"cmdbot/internal/core/domain"
	"context"
	"sync"
)

// recordingSender keeps every reply text and the chat it went to.
type recordingSender struct {
	mutex   sync.Mutex
	err     error
	replies []string
	chats   []int64
}

func (r *recordingSender) SendMessageReply(_ context.Context, message *domain.Message, text string) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.replies = append(r.replies, text)
	r.chats = append(r.chats, message.ChatID)
	return len(r.replies), r.err
}

func (r *recordingSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (r *recordingSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	return err
}
