package latency

import (
	"math"

	"github.com/cwbudde/algo-pdc/dsp/delay"
)

// planEntry binds one node or path to its compensation target. The delay
// line pointer stays stable across plans unless the line had to grow, in
// which case the new plan references a freshly allocated replacement and the
// previous plan keeps serving the old, still valid one.
type planEntry struct {
	line  *delay.MultiLine
	delay int    // compensation to apply, guaranteed <= line.MaxDelay()
	total uint32 // pre-compensation latency of the node or path
}

// apply retunes the entry's line to the planned compensation. The plan
// builder guarantees the delay fits the allocated capacity, so this never
// grows and is safe on the audio thread.
func (e *planEntry) apply() {
	if e.line.Delay() != e.delay {
		e.line.SetDelay(e.delay)
	}
}

// Plan is one immutable compensation snapshot: the system-wide maximum
// latency plus, for every node and path, the delay that realigns it. Plans
// are built on the control thread and published with a single atomic store;
// readers always observe either the fully-old or the fully-new plan.
type Plan struct {
	maxLatency uint32
	sampleRate float64
	enabled    bool

	nodes map[NodeID]*planEntry
	paths map[PathID]*planEntry
}

func newPlan(sampleRate float64, enabled bool, nodes, paths int) *Plan {
	return &Plan{
		sampleRate: sampleRate,
		enabled:    enabled,
		nodes:      make(map[NodeID]*planEntry, nodes),
		paths:      make(map[PathID]*planEntry, paths),
	}
}

// MaxLatency returns the system-wide maximum latency in samples. Every
// compensated path's total plus its compensation equals this value.
func (p *Plan) MaxLatency() uint32 {
	return p.maxLatency
}

// MaxLatencyMs returns the maximum latency in milliseconds.
func (p *Plan) MaxLatencyMs() float64 {
	if p.sampleRate <= 0 {
		return 0
	}

	return float64(p.maxLatency) / p.sampleRate * 1000.0
}

// Enabled reports whether compensation was active when the plan was built.
func (p *Plan) Enabled() bool {
	return p.enabled
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}

	return a - b
}

func saturatingAdd(a, b uint32) uint32 {
	if s := a + b; s >= a {
		return s
	}

	return math.MaxUint32
}
