package voice

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/bwmarrin/discordgo"
	"layeh.com/gopus"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// streamToDiscord reads s16le PCM from pcm, encodes 20ms Opus frames and
// pushes them to the voice connection until EOF or stop.
func streamToDiscord(pcm io.Reader, stop <-chan struct{}, vc *discordgo.VoiceConnection) error {
	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("create opus encoder: %w", err)
	}

	_ = vc.Speaking(true)
	defer func() { _ = vc.Speaking(false) }()

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if _, err := io.ReadFull(pcm, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("read pcm: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		frame, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode opus frame: %w", err)
		}

		select {
		case <-stop:
			return nil
		case vc.OpusSend <- frame:
		}
	}
}
