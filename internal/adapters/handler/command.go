package handler

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"cmdbot/internal/core/service"
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	authorizer      service.Authorizer
	tracker         service.Tracker
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, authorizer service.Authorizer, tracker service.Tracker,
	timeout time.Duration) *Command {
	return &Command{
		commandRegistry: commandRegistry,
		authorizer:      authorizer,
		tracker:         tracker,
		timeout:         timeout,
	}
}

// Handle is a bot.HandlerFunc. It dispatches a message to the registered command and responds
// asynchronously, so the update loop never waits for a command to finish.
func (c *Command) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Int64("updateId", update.ID).Msg("update without message")
		return
	}

	text := update.Message.Text
	if text == "" {
		text = update.Message.Caption
	}

	log.Debug().Str("message", text).Msg("received command")

	cmd, text := domain.NormalizeCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Str("command", cmd).Msg("no handler for command")
		return
	}

	chatID := update.Message.Chat.ID
	if c.authorizer != nil && !c.authorizer.IsAuthorized(ctx, chatID) {
		return
	}

	if c.tracker != nil && !c.tracker.Track(ctx, chatID) {
		log.Info().Int64("chatId", chatID).Str("command", cmd).Msg("daily limit reached")
		return
	}

	message := &domain.Message{
		ID:       update.Message.ID,
		ChatID:   chatID,
		Text:     text,
		Username: getUserNameOrFirstName(update.Message.From),
	}

	go func() {
		err := commandHandler.Respond(ctx, c.timeout, message)
		if err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

func getUserNameOrFirstName(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
