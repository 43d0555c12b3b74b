// Package music resolves user-supplied audio inputs into playable tracks.
package music

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

const (
	channels   = 2
	sampleRate = 48000
)

// UnknownField substitutes a missing title or artist in user-facing text.
const UnknownField = "<UNKNOWN>"

// Track is one resolved audio source. StreamURL points at demuxable media;
// Title and Artist may be empty when the source carries no metadata.
type Track struct {
	Title     string
	Artist    string
	StreamURL string
}

// DisplayTitle returns the title, or the unknown placeholder.
func (t *Track) DisplayTitle() string {
	if t.Title == "" {
		return UnknownField
	}
	return t.Title
}

// DisplayArtist returns the artist, or the unknown placeholder.
func (t *Track) DisplayArtist() string {
	if t.Artist == "" {
		return UnknownField
	}
	return t.Artist
}

// OpenPCM starts an ffmpeg process decoding the track into s16le 48kHz
// stereo PCM and returns its stdout. The cleanup func kills the process;
// cancelling ctx does the same.
func (t *Track) OpenPCM(ctx context.Context) (io.ReadCloser, func(), error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", t.StreamURL,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-vn",
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("ffmpeg start: %w", err)
	}

	cleanup := func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}

	return reader, cleanup, nil
}
