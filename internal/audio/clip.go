// Package audio models decoded audio and splits oversized recordings into
// bounded-duration segments for transcription.
package audio

import "time"

// Clip is a decoded audio stream: interleaved 16-bit PCM samples plus the
// format needed to interpret them. Clips are value types; splitting never
// copies or mutates the underlying samples.
type Clip struct {
	Rate     int   // samples per second, per channel
	Channels int   // interleaved channel count
	Samples  []int // 16-bit PCM values, interleaved
}

// Frames returns the number of sample frames (one sample per channel).
func (c Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the play time of the clip.
func (c Clip) Duration() time.Duration {
	if c.Rate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.Rate)
}

// Split partitions a clip into consecutive segments of chunkDuration, the
// last truncated to the remaining length. Clips no longer than maxDuration
// pass through as a single segment. Boundaries are frame-accurate:
// concatenating the segments in order reconstructs the clip exactly, with
// no gap or overlap.
func Split(c Clip, maxDuration, chunkDuration time.Duration) []Clip {
	if c.Duration() <= maxDuration || chunkDuration <= 0 {
		return []Clip{c}
	}

	framesPerChunk := int(int64(c.Rate) * int64(chunkDuration) / int64(time.Second))
	if framesPerChunk <= 0 {
		return []Clip{c}
	}

	var segments []Clip
	for start := 0; start < c.Frames(); start += framesPerChunk {
		end := min(start+framesPerChunk, c.Frames())
		segments = append(segments, Clip{
			Rate:     c.Rate,
			Channels: c.Channels,
			Samples:  c.Samples[start*c.Channels : end*c.Channels],
		})
	}
	return segments
}
