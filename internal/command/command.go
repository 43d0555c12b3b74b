// Package command classifies prefix-triggered chat messages and runs each
// recognized command in its own goroutine, so a command that waits on a
// follow-up reply never stalls event consumption or other guilds.
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"jivebot/internal/music"
	"jivebot/internal/session"
	"jivebot/internal/standby"
	"jivebot/internal/voice"
)

// Responder sends a plain-text reply into a channel. ctx bounds the send,
// including any rate-limit wait.
type Responder interface {
	Send(ctx context.Context, channelID, content string) error
}

// Awaiter suspends until a message in channelID passes fn, or ctx ends.
type Awaiter interface {
	WaitForMessage(ctx context.Context, channelID string, fn standby.Filter) (*discordgo.MessageCreate, error)
}

// VoiceSession controls playback inside one guild's voice connection.
type VoiceSession interface {
	Play(t *music.Track) *voice.TrackHandle
	Stop() error
}

// Voice manages per-guild voice sessions.
type Voice interface {
	Join(guildID, channelID string) (VoiceSession, error)
	Leave(guildID string) error
	Get(guildID string) (VoiceSession, bool)
}

// Context carries everything one command invocation needs. It lives for the
// duration of a single command task.
type Context struct {
	Ctx      context.Context
	Msg      *discordgo.Message
	Reply    Responder
	Standby  Awaiter
	Voice    Voice
	Tracks   *session.Registry
	Resolver music.Resolver
	Log      zerolog.Logger
}

// Command is one chat-triggered command.
type Command interface {
	Name() string
	Description() string
	Run(c *Context) error
}

// sameAuthor matches the next message from the user who started the command.
func sameAuthor(userID string) standby.Filter {
	return func(m *discordgo.MessageCreate) bool {
		return m.Author != nil && m.Author.ID == userID
	}
}
