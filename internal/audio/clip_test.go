package audio

import (
	"testing"
	"time"
)

func makeClip(frames, rate, channels int) Clip {
	samples := make([]int, frames*channels)
	for i := range samples {
		samples[i] = i % 32768
	}
	return Clip{Rate: rate, Channels: channels, Samples: samples}
}

func TestSplitPassthroughUnderThreshold(t *testing.T) {
	c := makeClip(16000*30, 16000, 1) // 30s

	segments := Split(c, 60*time.Second, 120*time.Second)
	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0].Frames() != c.Frames() {
		t.Errorf("passthrough segment has %d frames, want %d", segments[0].Frames(), c.Frames())
	}
}

func TestSplitReconstruction(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		rate     int
		channels int
		chunk    time.Duration
		want     int // segment count
	}{
		{"even split mono", 16000 * 240, 16000, 1, 120 * time.Second, 2},
		{"short tail mono", 16000*240 + 100, 16000, 1, 120 * time.Second, 3},
		{"stereo", 8000 * 300, 8000, 2, 120 * time.Second, 3},
		{"single sample tail", 16000*120 + 1, 16000, 1, 120 * time.Second, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := makeClip(tt.frames, tt.rate, tt.channels)
			segments := Split(c, 60*time.Second, tt.chunk)

			if len(segments) != tt.want {
				t.Fatalf("len(segments) = %d, want %d", len(segments), tt.want)
			}

			// Sum of durations equals the original.
			var total time.Duration
			var frames int
			for i, s := range segments {
				total += s.Duration()
				frames += s.Frames()
				if i < len(segments)-1 && s.Duration() != tt.chunk {
					t.Errorf("segment %d duration = %s, want %s", i, s.Duration(), tt.chunk)
				}
			}
			if total != c.Duration() {
				t.Errorf("total duration = %s, want %s", total, c.Duration())
			}
			if frames != c.Frames() {
				t.Errorf("total frames = %d, want %d", frames, c.Frames())
			}

			// Concatenating samples in order reproduces the stream exactly.
			pos := 0
			for i, s := range segments {
				for j, v := range s.Samples {
					if v != c.Samples[pos] {
						t.Fatalf("segment %d sample %d = %d, want %d", i, j, v, c.Samples[pos])
					}
					pos++
				}
			}
			if pos != len(c.Samples) {
				t.Errorf("reassembled %d samples, want %d", pos, len(c.Samples))
			}
		})
	}
}

func TestWAVRoundTrip(t *testing.T) {
	c := makeClip(1600, 16000, 1)

	data, err := c.WAV()
	if err != nil {
		t.Fatalf("WAV() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("WAV() returned empty data")
	}

	got, err := FromWAV(data)
	if err != nil {
		t.Fatalf("FromWAV() error = %v", err)
	}
	if got.Rate != c.Rate || got.Channels != c.Channels {
		t.Errorf("format = %d/%d, want %d/%d", got.Rate, got.Channels, c.Rate, c.Channels)
	}
	if len(got.Samples) != len(c.Samples) {
		t.Fatalf("len(samples) = %d, want %d", len(got.Samples), len(c.Samples))
	}
	for i := range got.Samples {
		if got.Samples[i] != c.Samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, got.Samples[i], c.Samples[i])
		}
	}
}

func TestDuration(t *testing.T) {
	c := makeClip(16000*90, 16000, 1)
	if got := c.Duration(); got != 90*time.Second {
		t.Errorf("Duration() = %s, want 90s", got)
	}

	var zero Clip
	if got := zero.Duration(); got != 0 {
		t.Errorf("zero clip Duration() = %s, want 0", got)
	}
}
