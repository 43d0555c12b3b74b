package command

import "fmt"

// Stop ends the current track, if any. The reply is unconditional: stopping
// an idle or unjoined guild is not an error the user needs to hear about.
type Stop struct{}

func (Stop) Name() string        { return "stop" }
func (Stop) Description() string { return "Stop the current track" }

func (Stop) Run(c *Context) error {
	if sess, ok := c.Voice.Get(c.Msg.GuildID); ok {
		_ = sess.Stop()
	}

	if err := c.Reply.Send(c.Ctx, c.Msg.ChannelID, "Stopped the track"); err != nil {
		return fmt.Errorf("send stop reply: %w", err)
	}
	return nil
}
