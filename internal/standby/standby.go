// Package standby correlates follow-up chat messages with commands that are
// waiting for them. A command registers a one-shot waiter on a channel; the
// gateway feeds every incoming message through Process, and the first message
// the waiter's filter accepts is handed over.
package standby

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Filter reports whether a message satisfies a waiter.
type Filter func(*discordgo.MessageCreate) bool

type waiter struct {
	filter Filter
	ch     chan *discordgo.MessageCreate
}

// Standby tracks pending waiters per text channel. Safe for concurrent use.
type Standby struct {
	mu      sync.Mutex
	waiters map[string][]*waiter // channelID -> pending waiters
}

// New returns an empty Standby.
func New() *Standby {
	return &Standby{waiters: make(map[string][]*waiter)}
}

// Process offers a message to every pending waiter on its channel. Each
// waiter is one-shot: the first accepted message removes it. Messages that
// match no waiter are dropped.
func (s *Standby) Process(m *discordgo.MessageCreate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.waiters[m.ChannelID]
	if len(pending) == 0 {
		return
	}

	remaining := pending[:0]
	for _, w := range pending {
		if w.filter(m) {
			// Buffered; never blocks even if the waiter already gave up.
			w.ch <- m
			continue
		}
		remaining = append(remaining, w)
	}

	if len(remaining) == 0 {
		delete(s.waiters, m.ChannelID)
	} else {
		s.waiters[m.ChannelID] = remaining
	}
}

// WaitForMessage blocks until a message in channelID passes fn, or until ctx
// is done. The waiter is removed either way.
func (s *Standby) WaitForMessage(ctx context.Context, channelID string, fn Filter) (*discordgo.MessageCreate, error) {
	w := &waiter{filter: fn, ch: make(chan *discordgo.MessageCreate, 1)}

	s.mu.Lock()
	s.waiters[channelID] = append(s.waiters[channelID], w)
	s.mu.Unlock()

	select {
	case m := <-w.ch:
		return m, nil
	case <-ctx.Done():
		s.remove(channelID, w)
		// A match may have slipped in between ctx firing and removal.
		select {
		case m := <-w.ch:
			return m, nil
		default:
		}
		return nil, ctx.Err()
	}
}

func (s *Standby) remove(channelID string, target *waiter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.waiters[channelID]
	for i, w := range pending {
		if w == target {
			pending = append(pending[:i], pending[i+1:]...)
			break
		}
	}
	if len(pending) == 0 {
		delete(s.waiters, channelID)
	} else {
		s.waiters[channelID] = pending
	}
}
