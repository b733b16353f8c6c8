package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"cmdbot/internal/core/service"
	"context"
	"fmt"
)

type UsageModel struct {
	ChatID int64
	Used   int
	Limit  int
}

// Usage reports how many commands the chat has run today.
type Usage struct {
	tracker service.Tracker
}

func NewUsage(tracker service.Tracker) *Usage {
	return &Usage{tracker: tracker}
}

func (u *Usage) Command(message *domain.Message) *interpreter.Command[UsageModel] {
	chatID := message.ChatID

	return interpreter.New[UsageModel]("/usage",
		interpreter.ActionFunc[UsageModel](func(_ context.Context, model *UsageModel) error {
			model.ChatID = chatID
			model.Used = u.tracker.GetUsed(chatID)
			model.Limit = u.tracker.GetLimit()
			return nil
		}),
		interpreter.WithSynopsis("Show how many commands this chat used today"))
}

const usageMessage = "Commands used today within ChatID %d: %d"

func (u *Usage) Reply(model *UsageModel) string {
	reply := fmt.Sprintf(usageMessage, model.ChatID, model.Used)
	if model.Limit > 0 {
		reply += fmt.Sprintf(" of %d", model.Limit)
	}

	return reply + "."
}
