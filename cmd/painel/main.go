package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/repositoriorpg/painel/internal/api"
	"github.com/repositoriorpg/painel/internal/config"
	"github.com/repositoriorpg/painel/internal/session"
	"github.com/repositoriorpg/painel/internal/web"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("painel encerrado com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	apiClient, err := api.New(cfg.APIURL, cfg.APITimeout)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	var store session.Store
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis parse: %w", err)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		store = session.NewRedisStore(redisClient)
		log.Info().Msg("sessões no Redis")
	} else {
		store = session.NewMemoryStore()
		log.Info().Msg("sessões em memória")
	}

	sessoes := session.NewManager(store, cfg.SessionTTL, cfg.CookieSecure)

	handler, err := web.NewRouter(cfg, apiClient, sessoes)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("painel ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
