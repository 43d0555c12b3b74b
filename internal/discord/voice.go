package discord

import (
	"jivebot/internal/command"
	"jivebot/internal/voice"
)

// voiceAdapter exposes the voice manager through the command layer's
// interfaces, so command handlers never depend on the concrete manager.
type voiceAdapter struct {
	m *voice.Manager
}

func (a voiceAdapter) Join(guildID, channelID string) (command.VoiceSession, error) {
	s, err := a.m.Join(guildID, channelID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a voiceAdapter) Leave(guildID string) error {
	return a.m.Leave(guildID)
}

func (a voiceAdapter) Get(guildID string) (command.VoiceSession, bool) {
	s, ok := a.m.Get(guildID)
	if !ok {
		return nil, false
	}
	return s, true
}
