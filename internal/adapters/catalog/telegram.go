package catalog

import (
	"cmdbot/internal/core/domain"
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	maxCommandLength     = 32
	maxDescriptionLength = 256
)

// CommandSetter is the part of the Telegram API the advertiser needs. *bot.Bot implements it.
type CommandSetter interface {
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// TelegramAdvertiser fills the bot's command menu in Telegram clients.
type TelegramAdvertiser struct {
	setter CommandSetter
}

func NewTelegramAdvertiser(setter CommandSetter) *TelegramAdvertiser {
	return &TelegramAdvertiser{setter: setter}
}

func (a *TelegramAdvertiser) Advertise(ctx context.Context, commands []domain.CommandInfo) error {
	botCommands := make([]models.BotCommand, 0, len(commands))

	for _, info := range commands {
		name := strings.ToLower(strings.TrimPrefix(info.Name, "/"))
		if !validCommandName(name) {
			log.Warn().Str("command", info.Name).Msg("command cannot be advertised on telegram, skipping")
			continue
		}

		description := strings.TrimSpace(info.Help)
		if description == "" {
			description = name
		}

		botCommands = append(botCommands, models.BotCommand{
			Command:     name,
			Description: truncate(description, maxDescriptionLength),
		})
	}

	ok, err := a.setter.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: botCommands})
	if err != nil {
		return fmt.Errorf("set telegram commands: %w", err)
	}
	if !ok {
		return fmt.Errorf("telegram rejected %d commands", len(botCommands))
	}

	return nil
}

func validCommandName(name string) bool {
	if name == "" || len(name) > maxCommandLength {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}

	return true
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit])
}
