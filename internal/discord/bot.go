// Package discord wires the gateway session to the command dispatcher.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"jivebot/internal/command"
	"jivebot/internal/config"
	"jivebot/internal/music"
	"jivebot/internal/session"
	"jivebot/internal/standby"
	"jivebot/internal/storage"
	"jivebot/internal/voice"
)

// Bot is the Discord gateway adapter.
type Bot struct {
	cfg   *config.Config
	store *storage.Storage
	log   zerolog.Logger

	dg         *discordgo.Session
	voice      *voice.Manager
	dispatcher *command.Dispatcher
}

// NewBot returns an unstarted Bot.
func NewBot(cfg *config.Config, store *storage.Storage, log zerolog.Logger) *Bot {
	return &Bot{
		cfg:   cfg,
		store: store,
		log:   log.With().Str("component", "discord").Logger(),
	}
}

// Run opens the gateway session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildVoiceStates

	b.voice = voice.NewManager(dg, b.log)
	b.dispatcher = command.NewDispatcher(
		ctx,
		b.cfg.CommandPrefix,
		b.cfg.ReplyTimeout,
		command.NewRegistry(command.Defaults()...),
		command.Deps{
			Reply:    NewResponder(dg),
			Standby:  standby.New(),
			Voice:    voiceAdapter{m: b.voice},
			Tracks:   session.NewRegistry(),
			Resolver: music.NewResolver(),
			Store:    b.store,
			Log:      b.log,
		},
	)

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, draining command tasks")
	b.dispatcher.Wait()
	b.voice.Shutdown()
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Str("prefix", b.cfg.CommandPrefix).
		Msg("bot is ready")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	b.dispatcher.HandleMessage(m)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info().Str("guild", g.ID).Str("name", g.Name).Msg("guild available")
}
