package voice

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"jivebot/internal/music"
)

// Session is one active voice connection in a guild. At most one track plays
// at a time; starting a new one interrupts the current one.
type Session struct {
	guildID string
	vc      *discordgo.VoiceConnection
	log     zerolog.Logger

	mu      sync.Mutex
	current *TrackHandle
}

// Play interrupts any running track and starts streaming t, returning the
// handle for the new track. Playback errors are logged, not returned; the
// handle's Done channel closes when the stream goroutine exits.
func (s *Session) Play(t *music.Track) *TrackHandle {
	h := NewTrackHandle(t)

	s.mu.Lock()
	if s.current != nil {
		s.current.Stop()
	}
	s.current = h
	s.mu.Unlock()

	go s.stream(h)
	return h
}

// Stop ends the current track. Returns ErrNoTrackPlaying when idle.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoTrackPlaying
	}
	s.current.Stop()
	s.current = nil
	return nil
}

func (s *Session) stream(h *TrackHandle) {
	defer h.markDone()

	// The decoder lives as long as this track, not the invoking command.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-h.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	defer func() {
		s.mu.Lock()
		if s.current == h {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	pcm, cleanup, err := h.track.OpenPCM(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("guild", s.guildID).Msg("failed to open audio stream")
		return
	}
	defer cleanup()

	if err := streamToDiscord(pcm, h.stop, s.vc); err != nil {
		s.log.Warn().Err(err).Str("guild", s.guildID).Msg("playback ended with error")
	}
}
