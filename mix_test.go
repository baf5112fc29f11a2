// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/pcm"
)

func quiet() []mixer.Option {
	return []mixer.Option{mixer.WithLogger(slog.New(slog.DiscardHandler))}
}

func repeat(v int16, n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func streamOf(t testing.TB, r io.Reader, rate, channels int) audio.Stream {
	t.Helper()
	s, err := audio.NewByteStream(r, rate, channels, pcm.PCM16)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func pcm16Stream(t testing.TB, rate, channels int, samples []int16) audio.Stream {
	t.Helper()
	b := make([]byte, 2*len(samples))
	pcm.PutInt16s(b, samples)
	return streamOf(t, bytes.NewReader(b), rate, channels)
}

func TestMixToInt16_SingleStream(t *testing.T) {
	t.Parallel()

	stereo := make([]int16, 0, 20)
	for range 10 {
		stereo = append(stereo, 1000, -1000)
	}
	in := []Input{{Stream: pcm16Stream(t, 8000, 2, stereo), Volume: 1}}
	cfg := Config{SampleRate: 8000, ChannelMask: pcm.ChannelStereo, Period: 4, MixerOptions: quiet()}

	got, err := MixToInt16(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("MixToInt16() error = %v", err)
	}
	if len(got) != 3*4*2 {
		t.Fatalf("len = %d, want %d (three padded periods)", len(got), 3*4*2)
	}
	for i, v := range got {
		want := int16(0)
		if i < len(stereo) {
			want = stereo[i]
		}
		if v != want {
			t.Errorf("sample[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestMixToInt16_StreamsOfDifferentLength(t *testing.T) {
	t.Parallel()

	in := []Input{
		{Stream: pcm16Stream(t, 8000, 1, repeat(1000, 10)), Volume: 1},
		{Stream: pcm16Stream(t, 8000, 1, repeat(500, 6)), Volume: 0.5},
	}
	cfg := Config{SampleRate: 8000, ChannelMask: pcm.ChannelStereo, Period: 4, MixerOptions: quiet()}

	got, err := MixToInt16(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("MixToInt16() error = %v", err)
	}
	if len(got) != 12*2 {
		t.Fatalf("len = %d, want %d", len(got), 12*2)
	}
	for frame := range 12 {
		want := int16(0)
		switch {
		case frame < 6:
			want = 1250
		case frame < 10:
			want = 1000
		}
		l, r := got[2*frame], got[2*frame+1]
		if l != want || r != want {
			t.Errorf("frame %d = (%d, %d), want (%d, %d)", frame, l, r, want, want)
		}
	}
}

func TestMixToInt16_FadeIn(t *testing.T) {
	t.Parallel()

	in := []Input{{Stream: pcm16Stream(t, 8000, 1, repeat(1000, 7)), Volume: 1, FadeIn: true}}
	cfg := Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4, MixerOptions: quiet()}

	got, err := MixToInt16(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("MixToInt16() error = %v", err)
	}
	want := []int16{0, 250, 500, 750, 1000, 1000, 1000, 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestMixToInt16_Resamples(t *testing.T) {
	t.Parallel()

	in := []Input{{Stream: pcm16Stream(t, 16000, 1, repeat(1000, 1600)), Volume: 1}}
	cfg := Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 80, MixerOptions: quiet()}

	got, err := MixToInt16(context.Background(), in, cfg)
	if err != nil {
		t.Fatalf("MixToInt16() error = %v", err)
	}
	if len(got) < 800 || len(got) > 800+2*80 {
		t.Fatalf("len = %d, want about 800 frames", len(got))
	}
	for _, i := range []int{200, 400, 600} {
		if d := int(got[i]) - 1000; d < -1 || d > 1 {
			t.Errorf("sample[%d] = %d, want 1000", i, got[i])
		}
	}
}

type failAfter struct {
	data []byte
	err  error
}

func (f *failAfter) Read(p []byte) (int, error) {
	if len(f.data) == 0 {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestMix_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	diskOnFire := errors.New("disk on fire")
	sinkFull := errors.New("sink full")

	tests := []struct {
		name   string
		ctx    context.Context
		inputs func(t *testing.T) []Input
		cfg    Config
		sink   func([]int16) error
		want   error
	}{
		{
			name:   "no inputs",
			ctx:    context.Background(),
			inputs: func(*testing.T) []Input { return nil },
			cfg:    Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4},
			want:   ErrNoInputs,
		},
		{
			name: "no output channels",
			ctx:  context.Background(),
			inputs: func(t *testing.T) []Input {
				return []Input{{Stream: pcm16Stream(t, 8000, 1, repeat(1, 4)), Volume: 1}}
			},
			cfg:  Config{SampleRate: 8000, ChannelMask: pcm.ChannelNone, Period: 4},
			want: ErrInvalidOutput,
		},
		{
			name: "zero period",
			ctx:  context.Background(),
			inputs: func(t *testing.T) []Input {
				return []Input{{Stream: pcm16Stream(t, 8000, 1, repeat(1, 4)), Volume: 1}}
			},
			cfg:  Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono},
			want: mixer.ErrInvalidConfig,
		},
		{
			name: "stream error",
			ctx:  context.Background(),
			inputs: func(t *testing.T) []Input {
				r := &failAfter{data: make([]byte, 8), err: diskOnFire}
				return []Input{{Stream: streamOf(t, r, 8000, 1), Volume: 1}}
			},
			cfg:  Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4},
			want: diskOnFire,
		},
		{
			name: "sink error",
			ctx:  context.Background(),
			inputs: func(t *testing.T) []Input {
				return []Input{{Stream: pcm16Stream(t, 8000, 1, repeat(1, 40)), Volume: 1}}
			},
			cfg:  Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4},
			sink: func([]int16) error { return sinkFull },
			want: sinkFull,
		},
		{
			name: "canceled",
			ctx:  canceled,
			inputs: func(t *testing.T) []Input {
				return []Input{{Stream: pcm16Stream(t, 8000, 1, repeat(1, 40)), Volume: 1}}
			},
			cfg:  Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4},
			want: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.cfg.MixerOptions = quiet()
			sink := tt.sink
			if sink == nil {
				sink = func([]int16) error { return nil }
			}
			err := Mix(tt.ctx, tt.inputs(t), tt.cfg, sink)
			if !errors.Is(err, tt.want) {
				t.Errorf("Mix() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMix_StreamErrorIsInputFailure(t *testing.T) {
	t.Parallel()

	r := &failAfter{err: errors.New("bad sector")}
	in := []Input{{Stream: streamOf(t, r, 8000, 1), Volume: 1}}
	cfg := Config{SampleRate: 8000, ChannelMask: pcm.ChannelMono, Period: 4, MixerOptions: quiet()}

	if _, err := MixToInt16(context.Background(), in, cfg); !errors.Is(err, ErrInputFailed) {
		t.Errorf("MixToInt16() error = %v, want %v", err, ErrInputFailed)
	}
}

func BenchmarkMixToInt16(b *testing.B) {
	one := repeat(1000, 48000*2)
	two := repeat(-500, 44100*2)
	cfg := Config{SampleRate: 48000, ChannelMask: pcm.ChannelStereo, Period: 480, MixerOptions: quiet()}

	b.ReportAllocs()
	for b.Loop() {
		in := []Input{
			{Stream: pcm16Stream(b, 48000, 2, one), Volume: 1},
			{Stream: pcm16Stream(b, 44100, 2, two), Volume: 0.5},
		}
		if _, err := MixToInt16(context.Background(), in, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
