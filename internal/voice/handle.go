package voice

import (
	"sync"

	"jivebot/internal/music"
)

// TrackHandle controls one in-progress track. It is a control reference
// only; the session owns the playback goroutine and voice connection.
type TrackHandle struct {
	track    *music.Track
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	doneOnce sync.Once
}

// NewTrackHandle returns a handle for the given track.
func NewTrackHandle(t *music.Track) *TrackHandle {
	return &TrackHandle{
		track: t,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Track returns the track this handle controls.
func (h *TrackHandle) Track() *music.Track { return h.track }

// Stop requests playback to end. Safe to call more than once.
func (h *TrackHandle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Done is closed when the playback goroutine has finished.
func (h *TrackHandle) Done() <-chan struct{} { return h.done }

func (h *TrackHandle) markDone() {
	h.doneOnce.Do(func() { close(h.done) })
}
