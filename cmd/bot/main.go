package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jivebot/internal/config"
	"jivebot/internal/discord"
	"jivebot/internal/logging"
	"jivebot/internal/storage"
	"jivebot/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	log.Info().Msgf("starting %s", version.String())

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := discord.NewBot(cfg, store, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("bot error")
		}
		cancel()
	}

	log.Info().Msg("bot exited cleanly")
}
