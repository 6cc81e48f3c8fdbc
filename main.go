package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	var configFile string

	root := &cobra.Command{
		Use:           "bangerbot",
		Short:         "Telegram bot that uploads shared music to Google Drive",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(configFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.toml)")
	root.AddCommand(newServeCmd(), newAuthCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("bangerbot failed")
	}
}

func loadConfig(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("files.dir", "files")
	viper.SetDefault("selection.ttl", "1h")
	viper.SetDefault("gdrive.client_secrets", "auth/client_secrets.json")
	viper.SetDefault("gdrive.token", "auth/token.json")
	viper.SetDefault("gdrive.auth_port", 8080)
	viper.SetDefault("shazam.endpoint", "https://shazam.p.rapidapi.com/songs/v2/detect")
	viper.SetDefault("shazam.host", "shazam.p.rapidapi.com")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		return err
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
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	return nil
}
