package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/uniscore/uniscore/internal/cache"
	httpapi "github.com/uniscore/uniscore/internal/interfaces/http"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, cfg, err := buildEngine(ctx, cmd.Flags())
	if err != nil {
		return err
	}

	var resultCache cache.ResultCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		resultCache = cache.NewRedis(client, cfg.Redis.TTL())
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis result cache enabled")
	} else {
		resultCache = cache.NewMemory(cfg.Redis.TTL())
	}

	server := httpapi.NewServer(eng, resultCache, cfg.Server)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
