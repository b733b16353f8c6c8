package port

import (
	"cmdbot/internal/core/domain"
	"context"
	"time"
)

type Command interface {
	// Respond processes a given message within a specified timeout and responds to the originating context.
	Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
	// GetHelp returns the one-line synopsis advertised for the command.
	GetHelp() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
	// Describe returns name and help of every registered command, sorted by name.
	Describe() []domain.CommandInfo
}

type CommandCatalog interface {
	// Publish stores the name and help of a command, replacing an existing entry with the same name.
	Publish(ctx context.Context, info domain.CommandInfo) error
	// Lookup returns the entry stored under name, or domain.ErrCommandNotFound.
	Lookup(ctx context.Context, name string) (domain.CommandInfo, error)
	// List returns all entries sorted by name.
	List(ctx context.Context) ([]domain.CommandInfo, error)
	// Delete removes the entry stored under name. Deleting a missing entry is not an error.
	Delete(ctx context.Context, name string) error
}

type CommandAdvertiser interface {
	// Advertise announces the given commands to the chat platform's command menu.
	Advertise(ctx context.Context, commands []domain.CommandInfo) error
}
