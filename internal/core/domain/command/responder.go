package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"cmdbot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// Definition describes a chat command built on the interpreter.
type Definition[M any] interface {
	// Command builds a fresh interpreter for one message. Actions may capture the message, the model
	// is never shared between messages.
	Command(message *domain.Message) *interpreter.Command[M]
	// Reply renders the model of a successful execution for the chat.
	Reply(model *M) string
}

// Responder adapts a Definition to port.Command.
type Responder[M any] struct {
	definition Definition[M]
	textSender port.TextSender
	command    string
	help       string
}

func NewResponder[M any](definition Definition[M], textSender port.TextSender) *Responder[M] {
	probe := definition.Command(&domain.Message{})

	return &Responder[M]{
		definition: definition,
		textSender: textSender,
		command:    probe.Name(),
		help:       probe.Synopsis(),
	}
}

func (r *Responder[M]) GetCommand() string {
	return r.command
}

func (r *Responder[M]) GetHelp() string {
	return r.help
}

func (r *Responder[M]) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	var requestID string
	if id, err := uuid.NewV4(); err == nil {
		requestID = id.String()
	}

	l := log.With().
		Str("requestId", requestID).
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", r.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	go r.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	result, err := r.definition.Command(message).Execute(ctx, message.Text)
	if err != nil {
		if isInputError(err) {
			l.Debug().Err(err).Msg("rejected input")
			_ = r.textSender.NotifyAndReturnError(ctx, err, message)
			return nil
		}

		l.Error().Err(err).Msg("command failed")
		return r.textSender.NotifyAndReturnError(ctx, fmt.Errorf("%s failed: %w", r.command, err), message)
	}

	reply := result.Help
	if !result.HelpRequested {
		reply = r.definition.Reply(result.Model)
	}

	_, err = r.textSender.SendMessageReply(ctx, message, reply)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return nil
}

func isInputError(err error) bool {
	var perr *interpreter.ParseError
	var verr *interpreter.ValidationError

	return errors.As(err, &perr) || errors.As(err, &verr)
}
