package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"context"
	"fmt"
	"strings"
)

type ModelsModel struct {
	Keyword string
	Models  []domain.Model
}

// Models lists the language models /chat can use.
type Models struct {
	models []domain.Model
}

func NewModels(models []domain.Model) *Models {
	return &Models{models: models}
}

func (m *Models) Command(_ *domain.Message) *interpreter.Command[ModelsModel] {
	c := interpreter.New[ModelsModel]("/models", interpreter.ActionFunc[ModelsModel](m.run),
		interpreter.WithSynopsis("List the models available to /chat"))

	c.AddParameter(interpreter.NewParameter("keyword", func(model *ModelsModel, value string) error {
		keyword, err := interpreter.RequireText("keyword", value)
		if err != nil {
			return err
		}

		model.Keyword = strings.TrimPrefix(keyword, "#")
		return nil
	}, interpreter.WithHeader("show a single model"), interpreter.WithDetail("keyword of the model, with or without #")))

	return c
}

func (m *Models) run(_ context.Context, model *ModelsModel) error {
	if model.Keyword == "" {
		model.Models = m.models
		return nil
	}

	for _, candidate := range m.models {
		if strings.EqualFold(candidate.Keyword, model.Keyword) {
			model.Models = []domain.Model{candidate}
			return nil
		}
	}

	return interpreter.NewParseError("no model with keyword %q", model.Keyword)
}

func (m *Models) Reply(model *ModelsModel) string {
	sb := &strings.Builder{}

	sb.WriteString("You can choose the model you want to talk to by adding a #keyword to your /chat " +
		"prompt. Here's a list of currently active models:\n\n")

	for _, candidate := range model.Models {
		fmt.Fprintf(sb, "Model: %s, Keyword: %s\n", candidate.Identifier, candidate.Keyword)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
