package main

import (
	"bangerbot/internal/adapters/converter"
	"bangerbot/internal/adapters/extractor"
	"bangerbot/internal/adapters/file"
	"bangerbot/internal/adapters/handler"
	"bangerbot/internal/adapters/recognizer"
	"bangerbot/internal/adapters/sender"
	"bangerbot/internal/adapters/storage"
	"bangerbot/internal/core/domain/command"
	"bangerbot/internal/core/service"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	log.Info().Msg("starting bangerbot...")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	filesDir := viper.GetString("files.dir")
	if err := os.MkdirAll(filesDir, 0o750); err != nil {
		return fmt.Errorf("could not create files directory: %w", err)
	}

	tokens := storage.NewTokenStore(viper.GetString("gdrive.client_secrets"), viper.GetString("gdrive.token"))
	tokenSource, err := tokens.TokenSource(ctx)
	if err != nil {
		return fmt.Errorf("could not load google drive credentials: %w", err)
	}

	drive, err := storage.NewDrive(ctx, viper.GetString("gdrive.root_folder_id"), option.WithTokenSource(tokenSource))
	if err != nil {
		return err
	}

	ffmpeg, err := converter.NewFFmpegConverter(viper.GetString("ffmpeg.binary"))
	if err != nil {
		return err
	}

	selectionTTL := viper.GetDuration("selection.ttl")
	if selectionTTL <= 0 {
		return fmt.Errorf("invalid selection.ttl in config: %q", viper.GetString("selection.ttl"))
	}

	b, err := bot.New(viper.GetString("telegram.bot_token"), bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	s := sender.NewTelegram(b)

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		return err
	}

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewStart(s, "/start"))
	commandRegistry.Register(command.NewHelp(s, "/help"))

	workflow := service.NewLinkWorkflow(
		extractor.NewYTDLP(viper.GetString("ytdlp.binary"), filesDir),
		file.NewID3Tagger(),
		drive,
		s,
	)

	router := service.NewActionRouter(
		service.NewSelectionStore(ctx, selectionTTL),
		s,
		recognizer.NewShazam(ffmpeg,
			viper.GetString("shazam.endpoint"),
			viper.GetString("shazam.host"),
			viper.GetString("shazam.api_key")),
		drive,
		s,
		s,
		filesDir,
	)

	handler.Register(b,
		handler.NewCommand(commandRegistry),
		handler.NewLink(workflow),
		handler.NewAudio(router),
		handler.Authorize(authorizer, s),
	)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)

	return nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
