package command

import "fmt"

// Leave disconnects the bot from the guild's voice channel.
type Leave struct{}

func (Leave) Name() string        { return "leave" }
func (Leave) Description() string { return "Leave the current voice channel" }

func (Leave) Run(c *Context) error {
	if err := c.Voice.Leave(c.Msg.GuildID); err != nil {
		return fmt.Errorf("leave voice session: %w", err)
	}

	// The handle is dead once the session is gone; drop it.
	c.Tracks.Remove(c.Msg.GuildID)

	return c.Reply.Send(c.Ctx, c.Msg.ChannelID, "Left the channel")
}
