package audio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavPCMFormat = 1 // uncompressed pcm_s16le, the format the backends accept
)

// WAV encodes the clip as an uncompressed 16-bit PCM WAV file, the exact
// format handed to the transcription backend.
func (c Clip) WAV() ([]byte, error) {
	var buf seekBuffer
	enc := wav.NewEncoder(&buf, c.Rate, wavBitDepth, c.Channels, wavPCMFormat)

	err := enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: c.Channels,
			SampleRate:  c.Rate,
		},
		Data:           c.Samples,
		SourceBitDepth: wavBitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}

	return buf.data, nil
}

// FromWAV decodes a PCM WAV file into a Clip.
func FromWAV(data []byte) (Clip, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("decode wav: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 || buf.Format.SampleRate == 0 {
		return Clip{}, fmt.Errorf("decode wav: missing format header")
	}

	return Clip{
		Rate:     buf.Format.SampleRate,
		Channels: buf.Format.NumChannels,
		Samples:  buf.Data,
	}, nil
}

// seekBuffer is an in-memory io.WriteSeeker. The wav encoder seeks back to
// patch chunk sizes after writing the samples.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		b.data = append(b.data, make([]byte, need-len(b.data))...)
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = b.pos + int(offset)
	case io.SeekEnd:
		next = len(b.data) + int(offset)
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("seek: negative position %d", next)
	}
	b.pos = next
	return int64(next), nil
}
