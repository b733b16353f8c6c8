package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, domain.ErrRegistryNotInitialized
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, command)
	}

	return handler, nil
}

func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func (r *Registry) Describe() []domain.CommandInfo {
	names := r.ListCommands()

	infos := make([]domain.CommandInfo, len(names))
	for i, name := range names {
		infos[i] = domain.CommandInfo{Name: name, Help: r.commands[name].GetHelp()}
	}

	return infos
}
