package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/config"
	"github.com/selfcare/selfcare/internal/platform/rest"
	"github.com/selfcare/selfcare/internal/platform/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "selfcare",
		Short: "Personal health tracking client",
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(medicationsCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(remindCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles what every command needs: config, logger, token store and
// the shared REST client.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	tokens *session.Store
	rest   *rest.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	tokens := session.NewStore(cfg.TokenFile)
	if tok, err := tokens.Token(); err == nil && session.Expired(tok, time.Now()) {
		logger.Warn().Msg("saved token looks expired; log in again if calls fail")
	}

	return &app{
		cfg:    cfg,
		log:    logger,
		tokens: tokens,
		rest:   rest.New(cfg.APIURL, cfg.HTTPTimeout, logger, tokens),
	}, nil
}
