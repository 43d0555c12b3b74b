package command

import (
	"fmt"
	"strings"
)

// Play asks for an audio URL, resolves it and starts playback in the guild's
// current voice session, if one exists.
type Play struct{}

func (Play) Name() string        { return "play" }
func (Play) Description() string { return "Play audio from a URL" }

func (Play) Run(c *Context) error {
	if err := c.Reply.Send(c.Ctx, c.Msg.ChannelID, "What's the URL of the audio to play?"); err != nil {
		return fmt.Errorf("send play prompt: %w", err)
	}

	reply, err := c.Standby.WaitForMessage(c.Ctx, c.Msg.ChannelID, sameAuthor(c.Msg.Author.ID))
	if err != nil {
		return fmt.Errorf("wait for URL: %w", err)
	}

	track, err := c.Resolver.Resolve(c.Ctx, strings.TrimSpace(reply.Content))
	if err != nil {
		return c.Reply.Send(c.Ctx, c.Msg.ChannelID, fmt.Sprintf("Failed to resolve that: %v", err))
	}

	content := fmt.Sprintf("Playing **%q** by **%q**", track.DisplayTitle(), track.DisplayArtist())
	if err := c.Reply.Send(c.Ctx, c.Msg.ChannelID, content); err != nil {
		return fmt.Errorf("send playing reply: %w", err)
	}

	// Not joined to a voice channel in this guild: nothing to start.
	sess, ok := c.Voice.Get(c.Msg.GuildID)
	if !ok {
		return nil
	}

	c.Tracks.Set(c.Msg.GuildID, sess.Play(track))
	return nil
}
