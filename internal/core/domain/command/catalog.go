package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"cmdbot/internal/core/port"
	"context"
	"errors"
	"fmt"
	"strings"
)

type CatalogModel struct {
	Name    string
	Entries []domain.CommandInfo
}

// Catalog answers from the published command catalog: every command, or a single one by name.
type Catalog struct {
	catalog port.CommandCatalog
}

func NewCatalog(catalog port.CommandCatalog) *Catalog {
	return &Catalog{catalog: catalog}
}

func (c *Catalog) Command(_ *domain.Message) *interpreter.Command[CatalogModel] {
	cmd := interpreter.New[CatalogModel]("/commands", interpreter.ActionFunc[CatalogModel](c.run),
		interpreter.WithSynopsis("List the commands this bot understands"))

	cmd.AddParameter(interpreter.NewParameter("name", func(model *CatalogModel, value string) error {
		name, err := interpreter.RequireText("name", value)
		if err != nil {
			return err
		}

		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}

		model.Name = strings.ToLower(name)
		return nil
	}, interpreter.WithHeader("show a single command"), interpreter.WithDetail("command name, with or without /")))

	return cmd
}

func (c *Catalog) run(ctx context.Context, model *CatalogModel) error {
	if model.Name == "" {
		entries, err := c.catalog.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list commands: %w", err)
		}

		model.Entries = entries
		return nil
	}

	entry, err := c.catalog.Lookup(ctx, model.Name)
	if errors.Is(err, domain.ErrCommandNotFound) {
		return interpreter.NewParseError("unknown command %q", model.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", model.Name, err)
	}

	model.Entries = []domain.CommandInfo{entry}
	return nil
}

func (c *Catalog) Reply(model *CatalogModel) string {
	if len(model.Entries) == 0 {
		return "no commands published"
	}

	lines := make([]string, len(model.Entries))
	for i, entry := range model.Entries {
		lines[i] = fmt.Sprintf("%s - %s", entry.Name, entry.Help)
	}

	return strings.Join(lines, "\n")
}
