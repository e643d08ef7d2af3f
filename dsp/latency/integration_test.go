package latency_test

import (
	"testing"

	"github.com/cwbudde/algo-pdc/dsp/delay"
	"github.com/cwbudde/algo-pdc/dsp/latency"
	"github.com/cwbudde/algo-pdc/internal/testutil"
)

// simulatedPlugin models an insert with a fixed inherent latency: it delays
// its input like an FFT-based processor would.
type simulatedPlugin struct {
	line *delay.Line
}

func newSimulatedPlugin(t *testing.T, latencySamples int) *simulatedPlugin {
	t.Helper()

	line, err := delay.New(latencySamples)
	if err != nil {
		t.Fatal(err)
	}

	line.SetDelay(latencySamples)

	return &simulatedPlugin{line: line}
}

func (p *simulatedPlugin) process(buf []float64) {
	p.line.ProcessBlock(buf)
}

func impulseIndex(t *testing.T, buf []float64) int {
	t.Helper()

	for i, v := range buf {
		if v != 0 {
			return i
		}
	}

	t.Fatal("no impulse found in buffer")

	return -1
}

// Two parallel chains with different plugin latencies must deliver their
// impulses at the same output index once compensation is applied.
func TestParallelChainsAlign(t *testing.T) {
	m := latency.New(latency.WithSampleRate(48000))

	const (
		fastID latency.NodeID = 1
		slowID latency.NodeID = 2

		fastLatency = 2
		slowLatency = 9
	)

	fast := newSimulatedPlugin(t, fastLatency)
	slow := newSimulatedPlugin(t, slowLatency)

	m.RegisterNode(fastID)
	m.RegisterNode(slowID)
	m.ReportLatency(fastID, fastLatency)
	m.ReportLatency(slowID, slowLatency)

	fastBuf := testutil.Impulse(32, 0)
	slowBuf := testutil.Impulse(32, 0)

	fast.process(fastBuf)
	slow.process(slowBuf)

	m.ProcessMono(fastID, fastBuf)
	m.ProcessMono(slowID, slowBuf)

	fastAt := impulseIndex(t, fastBuf)
	slowAt := impulseIndex(t, slowBuf)

	if fastAt != slowAt {
		t.Fatalf("chains misaligned: fast impulse at %d, slow at %d", fastAt, slowAt)
	}

	if fastAt != slowLatency {
		t.Fatalf("aligned arrival: got %d want %d", fastAt, slowLatency)
	}

	if m.TotalLatency() != slowLatency {
		t.Fatalf("TotalLatency: got %d want %d", m.TotalLatency(), slowLatency)
	}
}

// A latency change mid-stream retunes the other chain on the next block.
func TestRealignAfterLatencyChange(t *testing.T) {
	m := latency.New()

	m.RegisterNode(1)
	m.RegisterNode(2)
	m.ReportLatency(1, 5)

	// Node 2 currently compensates by 5; raise node 2's own latency so the
	// roles flip.
	m.ReportLatency(2, 12)

	if comp, _ := m.NodeCompensation(1); comp != 7 {
		t.Fatalf("node 1 compensation: got %d want 7", comp)
	}

	if comp, _ := m.NodeCompensation(2); comp != 0 {
		t.Fatalf("node 2 compensation: got %d want 0", comp)
	}

	one := newSimulatedPlugin(t, 5)
	two := newSimulatedPlugin(t, 12)

	bufOne := testutil.Impulse(32, 0)
	bufTwo := testutil.Impulse(32, 0)

	one.process(bufOne)
	two.process(bufTwo)

	m.ProcessMono(1, bufOne)
	m.ProcessMono(2, bufTwo)

	if a, b := impulseIndex(t, bufOne), impulseIndex(t, bufTwo); a != b {
		t.Fatalf("chains misaligned after latency change: %d vs %d", a, b)
	}
}

// The monitoring path stays untouched while the main path is compensated.
func TestMonitoringScenario(t *testing.T) {
	m := latency.New(latency.WithMode(latency.HighQuality))

	const limiterID latency.NodeID = 1

	m.RegisterNode(limiterID)
	m.UpdateProcessor(limiterID, 0, 256)

	main := m.AddPath("main", limiterID)
	monitor := m.AddDirectPath("monitor")

	if m.TotalLatency() != 256 {
		t.Fatalf("TotalLatency: got %d want 256", m.TotalLatency())
	}

	if comp, _ := m.PathCompensation(main); comp != 0 {
		t.Fatalf("main compensation: got %d want 0", comp)
	}

	in := make([]float64, 128)
	for i := range in {
		in[i] = float64(i%7) * 0.1
	}

	monitorBuf := append([]float64(nil), in...)
	m.ProcessPathMono(monitor, monitorBuf)

	for i := range in {
		if monitorBuf[i] != in[i] {
			t.Fatalf("monitor sample %d altered: got %v want %v", i, monitorBuf[i], in[i])
		}
	}
}
