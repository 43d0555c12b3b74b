package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Join asks for a voice channel ID and connects the bot to it.
type Join struct{}

func (Join) Name() string        { return "join" }
func (Join) Description() string { return "Join a voice channel by ID" }

func (Join) Run(c *Context) error {
	if err := c.Reply.Send(c.Ctx, c.Msg.ChannelID, "What's the channel ID you want me to join?"); err != nil {
		return fmt.Errorf("send join prompt: %w", err)
	}

	reply, err := c.Standby.WaitForMessage(c.Ctx, c.Msg.ChannelID, sameAuthor(c.Msg.Author.ID))
	if err != nil {
		return fmt.Errorf("wait for channel ID: %w", err)
	}

	channelID, err := strconv.ParseUint(strings.TrimSpace(reply.Content), 10, 64)
	if err != nil {
		return fmt.Errorf("parse channel ID: %w", err)
	}
	target := strconv.FormatUint(channelID, 10)

	if _, err := c.Voice.Join(c.Msg.GuildID, target); err != nil {
		return c.Reply.Send(c.Ctx, c.Msg.ChannelID, fmt.Sprintf("Failed to join <#%s>! Why: %v", target, err))
	}

	return c.Reply.Send(c.Ctx, c.Msg.ChannelID, fmt.Sprintf("Joined <#%s>!", target))
}
