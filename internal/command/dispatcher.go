package command

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"jivebot/internal/music"
	"jivebot/internal/session"
	"jivebot/internal/standby"
)

// Recorder persists one command invocation for history. Best effort.
type Recorder interface {
	RecordCommand(guildID, channelID, userID, username, command string) error
}

// Deps bundles the collaborators handed to every command task.
type Deps struct {
	Reply    Responder
	Standby  *standby.Standby
	Voice    Voice
	Tracks   *session.Registry
	Resolver music.Resolver
	Store    Recorder // optional
	Log      zerolog.Logger
}

// Dispatcher consumes gateway messages sequentially and spawns one goroutine
// per recognized command. It never blocks on command work itself.
type Dispatcher struct {
	base         context.Context
	prefix       string
	replyTimeout time.Duration
	registry     *Registry
	deps         Deps

	wg sync.WaitGroup
}

// NewDispatcher returns a Dispatcher for the given prefix. Each command task
// gets a context derived from ctx with a replyTimeout deadline, so shutdown
// cancels suspended follow-up waits and pending replies.
func NewDispatcher(ctx context.Context, prefix string, replyTimeout time.Duration, registry *Registry, deps Deps) *Dispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dispatcher{
		base:         ctx,
		prefix:       prefix,
		replyTimeout: replyTimeout,
		registry:     registry,
		deps:         deps,
	}
}

// HandleMessage processes one MessageCreate event. The message is offered to
// the standby table first, whether or not it is a command, so pending
// follow-up waits stay current. Recognized commands run in their own
// goroutine and HandleMessage returns immediately.
func (d *Dispatcher) HandleMessage(m *discordgo.MessageCreate) {
	d.deps.Standby.Process(m)

	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" || !strings.HasPrefix(m.Content, d.prefix) {
		return
	}

	token := m.Content
	if i := strings.IndexAny(token, " \t\n"); i >= 0 {
		token = token[:i]
	}
	name := strings.TrimPrefix(token, d.prefix)

	cmd, ok := d.registry.Get(name)
	if !ok {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run(cmd, m.Message)
	}()
}

// Wait blocks until all in-flight command tasks finish. Used by tests and
// shutdown to drain background work deterministically.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(cmd Command, msg *discordgo.Message) {
	ctx, cancel := context.WithTimeout(d.base, d.replyTimeout)
	defer cancel()

	log := d.deps.Log.With().
		Str("command", cmd.Name()).
		Str("guild", msg.GuildID).
		Str("channel", msg.ChannelID).
		Logger()

	log.Debug().Str("user", msg.Author.ID).Msg("running command")

	c := &Context{
		Ctx:      ctx,
		Msg:      msg,
		Reply:    d.deps.Reply,
		Standby:  d.deps.Standby,
		Voice:    d.deps.Voice,
		Tracks:   d.deps.Tracks,
		Resolver: d.deps.Resolver,
		Log:      log,
	}

	// Failures terminate this task only; nothing is surfaced to chat here.
	if err := cmd.Run(c); err != nil {
		log.Error().Err(err).Msg("command failed")
	}

	if d.deps.Store != nil {
		if err := d.deps.Store.RecordCommand(msg.GuildID, msg.ChannelID, msg.Author.ID, msg.Author.Username, cmd.Name()); err != nil {
			log.Warn().Err(err).Msg("failed to record command history")
		}
	}
}
