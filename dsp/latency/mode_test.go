package latency

import (
	"math"
	"testing"
)

func TestModeBudgets(t *testing.T) {
	cases := []struct {
		mode       Mode
		sampleRate float64
		want       uint32
	}{
		{ZeroLatency, 48000, 0},
		{ZeroLatency, 96000, 0},
		{LowLatency, 48000, 48},
		{LowLatency, 44100, 44},
		{LowLatency, 96000, 96},
		{Normal, 48000, 240},
		{Normal, 44100, 221},
		{Normal, 96000, 480},
		{HighQuality, 48000, 960},
		{HighQuality, 44100, 882},
		{HighQuality, 96000, 1920},
		{CustomMode(123), 48000, 123},
		{CustomMode(123), 96000, 123},
	}

	for _, tc := range cases {
		if got := tc.mode.MaxLatency(tc.sampleRate); got != tc.want {
			t.Fatalf("%s @ %v Hz: got %d want %d", tc.mode, tc.sampleRate, got, tc.want)
		}
	}
}

func TestModeInvalidSampleRate(t *testing.T) {
	if got := Normal.MaxLatency(0); got != 0 {
		t.Fatalf("Normal @ 0 Hz: got %d want 0", got)
	}

	if got := HighQuality.MaxLatency(-48000); got != 0 {
		t.Fatalf("HighQuality @ -48 kHz: got %d want 0", got)
	}

	if got := Normal.MaxLatency(math.NaN()); got != 0 {
		t.Fatalf("Normal @ NaN Hz: got %d want 0", got)
	}

	if got := Normal.MaxLatency(math.Inf(1)); got != 0 {
		t.Fatalf("Normal @ +Inf Hz: got %d want 0", got)
	}
}

func TestModeString(t *testing.T) {
	cases := map[string]Mode{
		"zero-latency": ZeroLatency,
		"low-latency":  LowLatency,
		"normal":       Normal,
		"high-quality": HighQuality,
		"custom":       CustomMode(10),
	}

	for want, mode := range cases {
		if got := mode.String(); got != want {
			t.Fatalf("String: got %q want %q", got, want)
		}
	}
}
