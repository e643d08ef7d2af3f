package latency

import "math"

type modeKind int

const (
	modeZero modeKind = iota
	modeLow
	modeNormal
	modeHigh
	modeCustom
)

// Mode is a latency budget policy. It bounds how much compensation delay the
// Manager pre-allocates per node and path; exceeding the budget still works
// but is reported through the logger and reallocates buffers.
type Mode struct {
	kind          modeKind
	customSamples uint32
}

// Preset modes. The millisecond budgets follow common host defaults:
// zero for monitoring-only graphs, 1 ms for tracking, 5 ms for mixing,
// 20 ms for mastering chains with long lookahead.
var (
	ZeroLatency = Mode{kind: modeZero}
	LowLatency  = Mode{kind: modeLow}
	Normal      = Mode{kind: modeNormal}
	HighQuality = Mode{kind: modeHigh}
)

// CustomMode returns a mode with an explicit budget in samples,
// independent of the sample rate.
func CustomMode(maxSamples uint32) Mode {
	return Mode{kind: modeCustom, customSamples: maxSamples}
}

// MaxLatency returns the mode's compensation budget in samples at the given
// sample rate. Non-positive sample rates yield 0.
func (m Mode) MaxLatency(sampleRate float64) uint32 {
	switch m.kind {
	case modeLow:
		return msToSamples(1, sampleRate)
	case modeNormal:
		return msToSamples(5, sampleRate)
	case modeHigh:
		return msToSamples(20, sampleRate)
	case modeCustom:
		return m.customSamples
	default:
		return 0
	}
}

// String returns a short human-readable mode name.
func (m Mode) String() string {
	switch m.kind {
	case modeLow:
		return "low-latency"
	case modeNormal:
		return "normal"
	case modeHigh:
		return "high-quality"
	case modeCustom:
		return "custom"
	default:
		return "zero-latency"
	}
}

func msToSamples(ms, sampleRate float64) uint32 {
	if !validSampleRate(sampleRate) {
		return 0
	}

	return uint32(math.Round(ms * sampleRate / 1000.0))
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsNaN(sampleRate) && !math.IsInf(sampleRate, 0)
}
