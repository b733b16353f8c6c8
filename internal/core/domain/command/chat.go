package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"cmdbot/internal/core/port"
	"context"
	"fmt"
	"strings"
)

type ChatModel struct {
	Model    domain.Model
	Prompt   string
	Response domain.ModelResponse
}

// Chat sends the whole text after /chat to a language model. A #keyword picks one of the configured
// models.
type Chat struct {
	textGenerator port.TextGenerator
	models        []domain.Model
}

func NewChat(textGenerator port.TextGenerator, models []domain.Model) (*Chat, error) {
	if len(models) == 0 {
		return nil, domain.ErrNoModels
	}

	return &Chat{textGenerator: textGenerator, models: models}, nil
}

type chatAction struct {
	chat     *Chat
	username string
}

func (h *Chat) Command(message *domain.Message) *interpreter.Command[ChatModel] {
	c := interpreter.New[ChatModel]("/chat", &chatAction{chat: h, username: message.Username},
		interpreter.WithSynopsis("Talk to a language model, add #keyword to pick a model (see /models)"))

	c.AddParameter(interpreter.NewParameter("prompt", h.parsePrompt,
		interpreter.WholeInput(),
		interpreter.WithHeader("everything after /chat"),
		interpreter.WithDetail("the text sent to the model, a #keyword anywhere selects the model")))

	return c
}

func (h *Chat) parsePrompt(model *ChatModel, value string) error {
	if strings.TrimSpace(value) == "" {
		return interpreter.NewParseError("please input a prompt")
	}

	m, prompt, err := domain.FindModelByKeyword(h.models, value)
	if err != nil {
		return err
	}

	if prompt == "" {
		return interpreter.NewParseError("please input a prompt")
	}

	model.Model = m
	model.Prompt = prompt

	return nil
}

func (a *chatAction) Run(ctx context.Context, model *ChatModel) error {
	prompt := model.Prompt
	if a.username != "" {
		prompt = a.username + ": " + prompt
	}

	response, err := a.chat.textGenerator.GenerateFromPrompt(ctx, []domain.Prompt{{
		Author: domain.User,
		Model:  model.Model,
		Prompt: prompt,
	}})
	if err != nil {
		return fmt.Errorf("failed to generate reply: %w", err)
	}

	model.Response = response

	return nil
}

func (h *Chat) Reply(model *ChatModel) string {
	return model.Response.Response
}
