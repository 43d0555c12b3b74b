package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jivebot/internal/music"
	"jivebot/internal/voice"
)

func handle() *voice.TrackHandle {
	return voice.NewTrackHandle(&music.Track{Title: "t"})
}

func TestSetGetRemove(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("g1")
	assert.False(t, ok)

	h := handle()
	r.Set("g1", h)

	got, ok := r.Get("g1")
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.Equal(t, 1, r.Len())

	r.Remove("g1")
	_, ok = r.Get("g1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	// Removing an absent guild is a no-op.
	r.Remove("g1")
}

func TestSetReplacesPreviousHandle(t *testing.T) {
	r := NewRegistry()

	first := handle()
	second := handle()
	r.Set("g1", first)
	r.Set("g1", second)

	got, ok := r.Get("g1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Len())
}

func TestGuildsAreIndependent(t *testing.T) {
	r := NewRegistry()

	h1, h2 := handle(), handle()
	r.Set("g1", h1)
	r.Set("g2", h2)

	got1, _ := r.Get("g1")
	got2, _ := r.Get("g2")
	assert.Same(t, h1, got1)
	assert.Same(t, h2, got2)

	r.Remove("g1")
	_, ok := r.Get("g2")
	assert.True(t, ok)
}

func TestConcurrentSetsLeaveExactlyOneHandle(t *testing.T) {
	r := NewRegistry()

	const writers = 32
	handles := make([]*voice.TrackHandle, writers)
	for i := range handles {
		handles[i] = handle()
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Set("g1", handles[i])
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, r.Len())
	got, ok := r.Get("g1")
	require.True(t, ok)
	assert.Contains(t, handles, got)
}
