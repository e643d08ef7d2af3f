package delay

import "fmt"

// MultiLine groups one delay line per channel and keeps them phase coherent:
// every delay change fans out to all channels identically. Channels of one
// node are never delayed independently.
type MultiLine struct {
	lines []*Line
}

// NewMulti returns a MultiLine with the given channel count. Every channel
// can serve delays in [0, maxDelay] and starts at 0.
func NewMulti(channels, maxDelay int, opts ...Option) (*MultiLine, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("delay: channel count must be > 0: %d", channels)
	}

	lines := make([]*Line, channels)

	for i := range lines {
		line, err := New(maxDelay, opts...)
		if err != nil {
			return nil, err
		}

		lines[i] = line
	}

	return &MultiLine{lines: lines}, nil
}

// Channels returns the channel count.
func (m *MultiLine) Channels() int {
	return len(m.lines)
}

// Delay returns the current delay in samples, identical on all channels.
func (m *MultiLine) Delay() int {
	return m.lines[0].Delay()
}

// MaxDelay returns the largest delay servable without growing.
func (m *MultiLine) MaxDelay() int {
	return m.lines[0].MaxDelay()
}

// SetDelay retunes every channel to the same delay.
// See Line.SetDelay for the growth and fade semantics.
func (m *MultiLine) SetDelay(samples int) {
	for _, line := range m.lines {
		line.SetDelay(samples)
	}
}

// Clear zero-fills every channel.
func (m *MultiLine) Clear() {
	for _, line := range m.lines {
		line.Clear()
	}
}

// ProcessChannel processes one channel's block in place.
// The channel index must be in [0, Channels()).
func (m *MultiLine) ProcessChannel(ch int, buf []float64) {
	m.lines[ch].ProcessBlock(buf)
}

// ProcessBlock processes the given channel blocks in lock-step. Extra
// channels beyond the line's channel count are ignored.
func (m *MultiLine) ProcessBlock(channels ...[]float64) {
	n := len(channels)
	if n > len(m.lines) {
		n = len(m.lines)
	}

	for i := 0; i < n; i++ {
		m.lines[i].ProcessBlock(channels[i])
	}
}
