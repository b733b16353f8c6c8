package service

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// PublishCommands makes the catalog mirror the registry: registered commands are stored, entries of
// commands no longer registered are removed. The resulting catalog content is then advertised on the
// chat platform.
func PublishCommands(ctx context.Context, registry port.CommandRegistry, catalog port.CommandCatalog,
	advertiser port.CommandAdvertiser) error {
	registered := make(map[string]struct{})

	for _, info := range registry.Describe() {
		err := catalog.Publish(ctx, info)
		if err != nil {
			return fmt.Errorf("failed to publish %s: %w", info.Name, err)
		}
		registered[info.Name] = struct{}{}
	}

	stored, err := catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list published commands: %w", err)
	}

	published := make([]domain.CommandInfo, 0, len(stored))
	for _, info := range stored {
		if _, ok := registered[info.Name]; ok {
			published = append(published, info)
			continue
		}

		log.Info().Str("command", info.Name).Msg("removing unregistered command from catalog")
		err = catalog.Delete(ctx, info.Name)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", info.Name, err)
		}
	}

	if advertiser == nil {
		log.Debug().Int("commands", len(published)).Msg("no advertiser configured, skipping")
		return nil
	}

	err = advertiser.Advertise(ctx, published)
	if err != nil {
		return fmt.Errorf("failed to advertise commands: %w", err)
	}

	log.Info().Int("commands", len(published)).Msg("published commands")

	return nil
}
