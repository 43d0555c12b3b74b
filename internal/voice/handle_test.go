package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jivebot/internal/music"
)

func TestTrackHandleStopIsIdempotent(t *testing.T) {
	h := NewTrackHandle(&music.Track{Title: "t"})

	select {
	case <-h.stop:
		t.Fatal("stop channel closed before Stop was called")
	default:
	}

	h.Stop()
	h.Stop() // second call must not panic

	select {
	case <-h.stop:
	default:
		t.Fatal("stop channel not closed after Stop")
	}
}

func TestTrackHandleDone(t *testing.T) {
	h := NewTrackHandle(&music.Track{})

	select {
	case <-h.Done():
		t.Fatal("done closed before playback finished")
	default:
	}

	h.markDone()
	h.markDone() // idempotent

	select {
	case <-h.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestTrackHandleExposesTrack(t *testing.T) {
	tr := &music.Track{Title: "Song"}
	h := NewTrackHandle(tr)
	assert.Same(t, tr, h.Track())
}
