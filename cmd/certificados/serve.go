package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Juangranados89/certificados-app/internal/api"
	"github.com/Juangranados89/certificados-app/internal/config"
	"github.com/Juangranados89/certificados-app/internal/jobs"
	"github.com/Juangranados89/certificados-app/internal/ocr"
	"github.com/Juangranados89/certificados-app/internal/pipeline"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("version", Version).Msg("Starting certificados service")

	startVips()
	defer stopVips()

	texts, err := ocr.NewService(ocr.ServiceConfig{
		Enabled:   cfg.OCR.Enabled,
		Languages: cfg.OCR.Languages,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OCR")
	}
	defer texts.Close()

	store := jobs.NewStore()
	runner := jobs.NewRunner(store, pipeline.NewProcessor(texts))
	server := api.NewServer(cfg, store, runner)

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Listening")
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
