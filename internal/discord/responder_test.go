package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestResponderSendHonorsContext(t *testing.T) {
	dg, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	r := NewResponder(dg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A dead context aborts at the rate limiter, before any REST call.
	err = r.Send(ctx, "c1", "hello")
	require.ErrorIs(t, err, context.Canceled)
}
