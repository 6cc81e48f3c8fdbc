package main

import (
	"bangerbot/internal/adapters/storage"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize the bot to use your Google Drive and store the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			tokens := storage.NewTokenStore(viper.GetString("gdrive.client_secrets"), viper.GetString("gdrive.token"))

			err := tokens.Authorize(ctx, viper.GetInt("gdrive.auth_port"), func(url string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Open this link in your browser to authorize Google Drive access:\n\n%s\n\n", url)
			})
			if err != nil {
				return err
			}

			log.Info().Str("path", viper.GetString("gdrive.token")).Msg("google drive token saved")
			return nil
		},
	}
}
