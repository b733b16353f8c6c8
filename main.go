package main

import (
	"cmdbot/internal/adapters/catalog"
	"cmdbot/internal/adapters/generator"
	"cmdbot/internal/adapters/handler"
	"cmdbot/internal/adapters/sender"
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/domain/command"
	"cmdbot/internal/core/port"
	"cmdbot/internal/core/service"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "cmdbot",
	Short:         "Chat bot that interprets command text into typed commands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var execCmd = &cobra.Command{
	Use:   "exec <text...>",
	Short: "Run one command line locally and print the reply",
	Example: `  cmdbot exec /meeting from 2015-12-01T09:00 to 2015-12-01T10:30 title standup
  cmdbot exec /meeting help from`,
	Args: cobra.MinimumNArgs(1),
	RunE: execute,
}

var commandsCmd = &cobra.Command{
	Use:   "commands [name]",
	Short: "List the published command catalog, or show one command",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listCommands,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.toml)")
	rootCmd.AddCommand(serveCmd, execCmd, commandsCmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal().Err(err).Msg("cmdbot failed")
	}
}

func loadConfig() error {
	viper.SetDefault("handler.timeout", "2m")
	viper.SetDefault("catalog.path", "cmdbot.db")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("could not read config file: %w", err)
		}
		log.Warn().Msg("no config file found, using defaults")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	return nil
}

func handlerTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout for handler in config: %w", err)
	}

	return timeout, nil
}

// buildRegistry registers every chat command. /chat and /models are left out when no models are
// configured.
func buildRegistry(s port.TextSender, tracker service.Tracker, store port.CommandCatalog) (*command.Registry, error) {
	var chatModels []domain.Model

	err := viper.UnmarshalKey("chat.models", &chatModels)
	if err != nil {
		return nil, fmt.Errorf("invalid chat models in config: %w", err)
	}

	commandRegistry := &command.Registry{}

	commandRegistry.Register(command.NewResponder[command.MeetingModel](command.NewMeeting(), s))
	commandRegistry.Register(command.NewResponder[command.CatalogModel](command.NewCatalog(store), s))
	commandRegistry.Register(command.NewResponder[command.UsageModel](command.NewUsage(tracker), s))
	commandRegistry.Register(command.NewResponder[command.DebugModel](command.NewDebug(), s))

	orGenerator := generator.NewOpenRouter(viper.GetString("openrouter.api_key"),
		viper.GetString("chat.system_prompt"))

	chat, err := command.NewChat(orGenerator, chatModels)
	if errors.Is(err, domain.ErrNoModels) {
		log.Warn().Msg("no chat models configured, /chat and /models are disabled")
		return commandRegistry, nil
	}
	if err != nil {
		return nil, err
	}

	commandRegistry.Register(command.NewResponder[command.ChatModel](chat, s))
	commandRegistry.Register(command.NewResponder[command.ModelsModel](command.NewModels(chatModels), s))

	return commandRegistry, nil
}

func serve(cmd *cobra.Command, _ []string) error {
	log.Info().Msg("starting cmdbot...")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	timeout, err := handlerTimeout()
	if err != nil {
		return err
	}

	b, err := bot.New(viper.GetString("telegram.bot_token"), bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	s := sender.NewTelegram(b)

	store, err := catalog.Open(viper.GetString("catalog.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		return err
	}

	tracker := service.NewUsageTracker(ctx, s)

	commandRegistry, err := buildRegistry(s, tracker, store)
	if err != nil {
		return err
	}

	err = service.PublishCommands(ctx, commandRegistry, store, catalog.NewTelegramAdvertiser(b))
	if err != nil {
		log.Error().Err(err).Msg("failed to publish commands")
	}

	commandHandler := handler.NewCommand(commandRegistry, authorizer, tracker, timeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)

	return nil
}

func execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	text := strings.Join(args, " ")

	timeout, err := handlerTimeout()
	if err != nil {
		return err
	}

	s := sender.NewConsole(cmd.OutOrStdout())

	store, err := catalog.Open(viper.GetString("catalog.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	commandRegistry, err := buildRegistry(s, service.NewUsageTracker(ctx, s), store)
	if err != nil {
		return err
	}

	// without advertiser, the catalog is only refreshed
	err = service.PublishCommands(ctx, commandRegistry, store, nil)
	if err != nil {
		return err
	}

	return runLine(ctx, commandRegistry, timeout, text, os.Getenv("USER"))
}

// runLine dispatches one command line the way the Telegram handler does and waits for the reply.
func runLine(ctx context.Context, commandRegistry port.CommandRegistry, timeout time.Duration,
	text, username string) error {
	cmd, text := domain.NormalizeCommand(text)

	commandHandler, err := commandRegistry.Get(cmd)
	if err != nil {
		return fmt.Errorf("%w, known commands: %s", err, strings.Join(commandRegistry.ListCommands(), ", "))
	}

	return commandHandler.Respond(ctx, timeout, &domain.Message{
		Text:     text,
		Username: username,
	})
}

func listCommands(cmd *cobra.Command, args []string) error {
	store, err := catalog.Open(viper.GetString("catalog.path"))
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []domain.CommandInfo

	if len(args) == 1 {
		name := strings.ToLower(args[0])
		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}

		entry, err := store.Lookup(cmd.Context(), name)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	} else {
		entries, err = store.List(cmd.Context())
		if err != nil {
			return err
		}
	}

	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Name, entry.Help)
	}

	return nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
