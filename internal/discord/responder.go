package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Responder sends plain-text messages, throttled so reply bursts from
// concurrent command tasks stay inside Discord's REST rate limits.
type Responder struct {
	dg      *discordgo.Session
	limiter *rate.Limiter
}

// NewResponder wraps the given session.
func NewResponder(dg *discordgo.Session) *Responder {
	return &Responder{
		dg:      dg,
		limiter: rate.NewLimiter(rate.Limit(5), 5), // 5 msg/s, matching Discord's per-channel cap
	}
}

// Send posts content to channelID. ctx bounds the rate-limit wait, so a
// saturated limiter cannot stall a command task past its deadline.
func (r *Responder) Send(ctx context.Context, channelID, content string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	if _, err := r.dg.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
