package music

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	youtube "github.com/kkdai/youtube/v2"
)

// ErrNotAURL is returned when the input cannot be parsed as an http(s) URL.
var ErrNotAURL = errors.New("input is not a valid http(s) URL")

// Resolver turns raw user input into a Track.
type Resolver interface {
	Resolve(ctx context.Context, input string) (*Track, error)
}

// URLResolver resolves YouTube links through the YouTube API client and
// passes any other http(s) URL straight through for ffmpeg to demux.
type URLResolver struct {
	yt *youtube.Client
}

// NewResolver returns a ready URLResolver.
func NewResolver() *URLResolver {
	return &URLResolver{
		yt: &youtube.Client{
			HTTPClient: &http.Client{Timeout: 30 * time.Second},
		},
	}
}

// Resolve implements Resolver.
func (r *URLResolver) Resolve(ctx context.Context, input string) (*Track, error) {
	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrNotAURL
	}

	if isYouTubeHost(u.Host) {
		return r.resolveYouTube(ctx, input)
	}

	// Direct link: no metadata to extract, ffmpeg figures out the container.
	return &Track{StreamURL: input}, nil
}

func (r *URLResolver) resolveYouTube(ctx context.Context, link string) (*Track, error) {
	video, err := r.yt.GetVideoContext(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetch video info: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, errors.New("no audio formats available for video")
	}

	streamURL, err := r.yt.GetStreamURLContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("resolve stream URL: %w", err)
	}

	return &Track{
		Title:     video.Title,
		Artist:    video.Author,
		StreamURL: streamURL,
	}, nil
}

func isYouTubeHost(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}
