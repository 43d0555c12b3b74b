// Package voice manages per-guild voice sessions and audio playback over
// Discord voice connections.
package voice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

var (
	// ErrNotConnected is returned by Leave when the guild has no session.
	ErrNotConnected = errors.New("not connected to a voice channel in this guild")
	// ErrNoTrackPlaying is returned by Session.Stop when nothing plays.
	ErrNoTrackPlaying = errors.New("no track is currently playing")
)

// Manager owns one Session per guild.
type Manager struct {
	dg  *discordgo.Session
	log zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session // guildID -> session
}

// NewManager returns a Manager bound to the given Discord session.
func NewManager(dg *discordgo.Session, log zerolog.Logger) *Manager {
	return &Manager{
		dg:       dg,
		log:      log.With().Str("component", "voice").Logger(),
		sessions: make(map[string]*Session),
	}
}

// Join connects to the given voice channel. An existing session for the
// guild is stopped and replaced.
func (m *Manager) Join(guildID, channelID string) (*Session, error) {
	vc, err := m.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("join voice channel %s: %w", channelID, err)
	}

	s := &Session{
		guildID: guildID,
		vc:      vc,
		log:     m.log,
	}

	m.mu.Lock()
	old := m.sessions[guildID]
	m.sessions[guildID] = s
	m.mu.Unlock()

	if old != nil {
		_ = old.Stop()
	}

	m.log.Info().Str("guild", guildID).Str("channel", channelID).Msg("joined voice channel")
	return s, nil
}

// Leave stops playback and disconnects the guild's session.
func (m *Manager) Leave(guildID string) error {
	m.mu.Lock()
	s, ok := m.sessions[guildID]
	if ok {
		delete(m.sessions, guildID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotConnected
	}

	_ = s.Stop()
	if err := s.vc.Disconnect(); err != nil {
		return fmt.Errorf("disconnect voice channel: %w", err)
	}

	m.log.Info().Str("guild", guildID).Msg("left voice channel")
	return nil
}

// Get returns the guild's session, if connected.
func (m *Manager) Get(guildID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[guildID]
	return s, ok
}

// Shutdown disconnects every guild. Used on process exit.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		_ = s.Stop()
		_ = s.vc.Disconnect()
	}
}
