package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/placesapi/placesapi/internal/config"
	"github.com/placesapi/placesapi/internal/database"
	"github.com/placesapi/placesapi/internal/handler"
	"github.com/placesapi/placesapi/internal/logger"
	"github.com/placesapi/placesapi/internal/repository"
	"github.com/placesapi/placesapi/internal/router"
	"github.com/placesapi/placesapi/internal/server"
	"github.com/placesapi/placesapi/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const DefaultContextTimeout = 30

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "placesapi",
		Short:         "CRUD and full-text search API for places",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var skipMigrations bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(skipMigrations)
		},
	}
	serve.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply database migrations on startup")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}

	root.AddCommand(serve, migrate)
	return root
}

func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		// No configured logger yet.
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Error().Err(err).Msg("failed to load config")
		return nil, nil, log, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}

func runMigrate() error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return err
	}
	return nil
}

func runServe(skipMigrations bool) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if !skipMigrations {
		migrateCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
		err := database.Migrate(migrateCtx, &log, cfg)
		cancel()
		if err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var startErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case startErr = <-serveErr:
		if startErr != nil {
			log.Error().Err(startErr).Msg("failed to start server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return startErr
}
