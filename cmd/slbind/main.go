// main is the entry point of the slbind service.
// It initializes the configuration, logger, binding store, status API client,
// and starts the HTTP server that receives bot command callbacks.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scpsl-tools/slbind/internal/auth"
	"github.com/scpsl-tools/slbind/internal/command"
	"github.com/scpsl-tools/slbind/internal/config"
	"github.com/scpsl-tools/slbind/internal/dispatch"
	"github.com/scpsl-tools/slbind/internal/logger"
	"github.com/scpsl-tools/slbind/internal/metrics"
	"github.com/scpsl-tools/slbind/internal/scpsl"
	"github.com/scpsl-tools/slbind/internal/server"
	"github.com/scpsl-tools/slbind/internal/storage"
)

func main() {
	cfg := config.Parse()

	logger.Setup(cfg.Logger)
	log.Info().Msg("Starting slbind service...")

	metrics.Register()

	// Binding storage
	store, err := storage.New(cfg.Bindings.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize binding store")
	}

	// Status API pipeline
	client := scpsl.NewClient(cfg.API.URL, cfg.API.Timeout)
	dispatcher := dispatch.New(store, client)

	// Command handlers
	admins := auth.New(cfg.Auth.Admins)
	router := command.NewRouter()
	router.Register(command.NewBindHandler(store, admins))
	router.Register(command.NewQueryHandler(dispatcher))

	// Init server
	srvHandler := server.New(router, cfg)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srvHandler.Run(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
