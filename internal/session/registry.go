// Package session keeps the per-guild record of the currently playing track.
package session

import (
	"sync"

	"jivebot/internal/voice"
)

// Registry maps a guild to its current track handle. At most one handle per
// guild; Set replaces unconditionally (last writer wins). The lock guards
// single map operations only and is never held across blocking calls.
type Registry struct {
	mu     sync.RWMutex
	tracks map[string]*voice.TrackHandle
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tracks: make(map[string]*voice.TrackHandle)}
}

// Set records h as the guild's current track, replacing any previous handle.
func (r *Registry) Set(guildID string, h *voice.TrackHandle) {
	r.mu.Lock()
	r.tracks[guildID] = h
	r.mu.Unlock()
}

// Get returns the guild's current track handle.
func (r *Registry) Get(guildID string) (*voice.TrackHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tracks[guildID]
	return h, ok
}

// Remove evicts the guild's entry, if any.
func (r *Registry) Remove(guildID string) {
	r.mu.Lock()
	delete(r.tracks, guildID)
	r.mu.Unlock()
}

// Len reports how many guilds currently have a track recorded.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tracks)
}
