package command

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"jivebot/internal/music"
	"jivebot/internal/session"
	"jivebot/internal/standby"
	"jivebot/internal/voice"
)

type fakeReply struct {
	mu   sync.Mutex
	sent []string
	ctxs []context.Context
	err  error
}

func (f *fakeReply) Send(ctx context.Context, channelID, content string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.sent = append(f.sent, content)
	f.ctxs = append(f.ctxs, ctx)
	f.mu.Unlock()
	return nil
}

func (f *fakeReply) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeReply) contexts() []context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]context.Context(nil), f.ctxs...)
}

type fakeSession struct {
	mu      sync.Mutex
	played  []*music.Track
	stops   int
	stopErr error
}

func (f *fakeSession) Play(t *music.Track) *voice.TrackHandle {
	f.mu.Lock()
	f.played = append(f.played, t)
	f.mu.Unlock()
	return voice.NewTrackHandle(t)
}

func (f *fakeSession) Stop() error {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
	return f.stopErr
}

type fakeVoice struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	joined   []string // channel IDs passed to Join
	joinErr  error
	leaveErr error
	left     []string
}

func newFakeVoice() *fakeVoice {
	return &fakeVoice{sessions: make(map[string]*fakeSession)}
}

func (f *fakeVoice) Join(guildID, channelID string) (VoiceSession, error) {
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &fakeSession{}
	f.sessions[guildID] = s
	f.joined = append(f.joined, channelID)
	return s, nil
}

func (f *fakeVoice) Leave(guildID string) error {
	if f.leaveErr != nil {
		return f.leaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, guildID)
	f.left = append(f.left, guildID)
	return nil
}

func (f *fakeVoice) Get(guildID string) (VoiceSession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[guildID]
	if !ok {
		return nil, false
	}
	return s, true
}

// session returns the fake session for assertions.
func (f *fakeVoice) session(guildID string) *fakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[guildID]
}

type fakeResolver struct {
	mu     sync.Mutex
	track  *music.Track
	err    error
	inputs []string
}

func (f *fakeResolver) Resolve(ctx context.Context, input string) (*music.Track, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []string
}

func (f *fakeRecorder) RecordCommand(guildID, channelID, userID, username, command string) error {
	f.mu.Lock()
	f.records = append(f.records, command)
	f.mu.Unlock()
	return nil
}

type fixture struct {
	dispatcher *Dispatcher
	standby    *standby.Standby
	reply      *fakeReply
	voice      *fakeVoice
	resolver   *fakeResolver
	tracks     *session.Registry
}

func newFixture(t *testing.T, opts ...func(*Deps)) *fixture {
	t.Helper()

	f := &fixture{
		standby:  standby.New(),
		reply:    &fakeReply{},
		voice:    newFakeVoice(),
		resolver: &fakeResolver{track: &music.Track{Title: "Song", Artist: "Artist", StreamURL: "https://example.com/track"}},
		tracks:   session.NewRegistry(),
	}

	deps := Deps{
		Reply:    f.reply,
		Standby:  f.standby,
		Voice:    f.voice,
		Tracks:   f.tracks,
		Resolver: f.resolver,
		Log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	f.dispatcher = NewDispatcher(context.Background(), "j/", 2*time.Second, NewRegistry(Defaults()...), deps)
	return f
}

func msg(guildID, channelID, userID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		GuildID:   guildID,
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: userID, Username: "user-" + userID},
	}}
}

// dispatch runs trigger and blocks until every in-flight task finishes,
// feeding the follow-up messages repeatedly until the command's waiter
// consumes one (waiters are one-shot, so extra deliveries are harmless).
func (f *fixture) dispatch(t *testing.T, trigger *discordgo.MessageCreate, followUps ...*discordgo.MessageCreate) {
	t.Helper()

	f.dispatcher.HandleMessage(trigger)

	done := make(chan struct{})
	go func() {
		f.dispatcher.Wait()
		close(done)
	}()

	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)

	for {
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("command tasks did not finish")
		case <-ticker.C:
			for _, m := range followUps {
				f.standby.Process(m)
			}
		}
	}
}
