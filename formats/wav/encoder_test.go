// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/pcm"
)

func encodeFile(t *testing.T, rate, channels int, periods ...[]int16) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc, err := NewEncoder(f, rate, channels)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	for _, p := range periods {
		if err := enc.Write(p); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	periods := [][]int16{{1, -1, 2, -2}, {300, -300}, {32767, -32768}}
	data := encodeFile(t, 22050, 2, periods...)

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.ChannelMask() != pcm.ChannelStereo || src.Format() != pcm.PCM16 {
		t.Errorf("decoded %d Hz %v %v, want 22050 Hz stereo pcm16", src.SampleRate(), src.ChannelMask(), src.Format())
	}

	var want []int16
	for _, p := range periods {
		want = append(want, p...)
	}
	if got := drain(t, src, 2); !bytes.Equal(got, pcm16(want...)) {
		t.Errorf("samples = %v, want %v", got, pcm16(want...))
	}
}

func TestEncoder_EmptyFileIsValid(t *testing.T) {
	t.Parallel()

	data := encodeFile(t, 8000, 1)
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("header = %q, want RIFF/WAVE", data[:12])
	}
	if !bytes.Contains(data, []byte("data")) {
		t.Error("empty file has no data chunk")
	}
}

func TestEncoder_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := NewEncoder(nil, 8000, 0); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("NewEncoder(0 channels) error = %v, want %v", err, ErrInvalidChannelCount)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc, err := NewEncoder(f, 8000, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Write([]int16{1, 2, 3}); !errors.Is(err, ErrInvalidChannelCount) {
		t.Errorf("Write(3 samples, stereo) error = %v, want %v", err, ErrInvalidChannelCount)
	}
}
