package delay

import "fmt"

// Line is a single-channel circular delay line with a fixed capacity and a
// retunable integer delay. Capacity is decided at construction; SetDelay
// beyond it reallocates and must therefore only happen on a control thread.
// All per-sample operations are O(1) and allocation-free.
type Line struct {
	buffer   []float64
	writePos int
	delay    int

	fadeLen   int
	fadeLeft  int
	fadeDelay int // delay being faded out
}

// New returns a delay line able to serve delays in [0, maxDelay].
// The delay starts at 0 (passthrough).
func New(maxDelay int, opts ...Option) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay: max delay must be >= 0: %d", maxDelay)
	}

	cfg := applyOptions(opts...)

	return &Line{
		buffer:  make([]float64, maxDelay+1),
		fadeLen: cfg.FadeLength,
	}, nil
}

// Len returns the internal buffer size.
func (l *Line) Len() int {
	return len(l.buffer)
}

// MaxDelay returns the largest delay the line can serve without growing.
func (l *Line) MaxDelay() int {
	return len(l.buffer) - 1
}

// Delay returns the current delay in samples.
func (l *Line) Delay() int {
	return l.delay
}

// SetDelay retunes the line to the given delay. Negative values clamp to 0.
// If the delay exceeds the allocated capacity the backing store is grown and
// cleared; that path allocates and must not run on the audio thread. Within
// capacity this is a plain field update, optionally crossfaded over the
// configured fade window.
func (l *Line) SetDelay(samples int) {
	if samples < 0 {
		samples = 0
	}

	if samples == l.delay {
		return
	}

	if samples > l.MaxDelay() {
		l.buffer = make([]float64, samples+1)
		l.writePos = 0
		l.delay = samples
		l.fadeLeft = 0

		return
	}

	if l.fadeLen > 0 {
		l.fadeDelay = l.delay
		l.fadeLeft = l.fadeLen
	}

	l.delay = samples
}

// Clear zero-fills the buffer and resets the write position.
// The configured delay is unchanged.
func (l *Line) Clear() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}

	l.writePos = 0
	l.fadeLeft = 0
}

// ProcessSample pushes one sample through the line. A zero delay is a true
// passthrough: the input is returned unchanged and the buffer is untouched.
func (l *Line) ProcessSample(in float64) float64 {
	if l.delay == 0 && l.fadeLeft == 0 {
		return in
	}

	out := l.readAt(l.delay, in)

	if l.fadeLeft > 0 {
		old := l.readAt(l.fadeDelay, in)
		t := float64(l.fadeLeft) / float64(l.fadeLen)
		out += (old - out) * t
		l.fadeLeft--
	}

	l.buffer[l.writePos] = in
	l.writePos++

	if l.writePos >= len(l.buffer) {
		l.writePos = 0
	}

	return out
}

// ProcessBlock applies ProcessSample in place, preserving state across
// block boundaries.
func (l *Line) ProcessBlock(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

// readAt returns the sample delayed by d, treating d == 0 as the current
// input. Callers advance the write position afterwards.
func (l *Line) readAt(d int, in float64) float64 {
	if d == 0 {
		return in
	}

	readPos := l.writePos - d
	if readPos < 0 {
		readPos += len(l.buffer)
	}

	return l.buffer[readPos]
}
