package latency

import (
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-pdc/dsp/delay"
)

type nodeState struct {
	latency Node
	line    *delay.MultiLine
}

type pathState struct {
	path Path
	line *delay.MultiLine
}

// Manager owns the latency bookkeeping and the compensation delay lines for
// one processing graph. Registration, latency reports, and configuration
// changes belong to a single control thread; every change rebuilds the
// compensation plan and publishes it atomically for the audio thread.
//
// A node that is not a member of any explicit path counts as its own
// single-node path, so a flat graph of bare inserts compensates correctly
// without any path setup.
type Manager struct {
	mu  sync.Mutex
	log logr.Logger

	sampleRate float64
	channels   int
	mode       Mode
	fadeLength int
	enabled    bool

	nodes    map[NodeID]*nodeState
	paths    map[PathID]*pathState
	nextPath PathID

	plan atomic.Pointer[Plan]
}

// New returns a Manager configured by the given options.
// Compensation starts enabled.
func New(opts ...Option) *Manager {
	cfg := applyOptions(opts...)

	m := &Manager{
		log:        cfg.Logger,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		mode:       cfg.Mode,
		fadeLength: cfg.FadeLength,
		enabled:    true,
		nodes:      make(map[NodeID]*nodeState),
		paths:      make(map[PathID]*pathState),
	}
	m.recalculateLocked()

	return m
}

// --- node registration and latency reporting ---

// RegisterNode adds a node with zero latency and a compensation delay line
// sized to the active mode budget. Registering an existing id is a no-op.
func (m *Manager) RegisterNode(id NodeID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[id]; ok {
		return
	}

	m.nodes[id] = &nodeState{
		latency: Node{ID: id},
		line:    m.newLineLocked(0),
	}
	m.recalculateLocked()
}

// UnregisterNode removes a node and its delay line and recomputes the plan.
// Returns false if the id was not registered.
func (m *Manager) UnregisterNode(id NodeID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes[id]; !ok {
		m.log.V(1).Info("unregister of unknown node", "node", id)
		return false
	}

	delete(m.nodes, id)
	m.recalculateLocked()

	return true
}

// ReportLatency sets a node's inherent latency in samples, as reported by
// the hosting layer. A report that does not change the value is a no-op.
// Returns false for unregistered ids.
func (m *Manager) ReportLatency(id NodeID, samples uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.nodes[id]
	if !ok {
		m.log.V(1).Info("latency report for unknown node", "node", id)
		return false
	}

	if ns.latency.Inherent == samples {
		return true
	}

	ns.latency.Inherent = samples
	m.recalculateLocked()

	return true
}

// UpdateProcessor sets a node's inherent and lookahead latency in one step.
// Returns false for unregistered ids.
func (m *Manager) UpdateProcessor(id NodeID, inherent, lookahead uint32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.nodes[id]
	if !ok {
		m.log.V(1).Info("processor update for unknown node", "node", id)
		return false
	}

	if ns.latency.Inherent == inherent && ns.latency.Lookahead == lookahead {
		return true
	}

	ns.latency.Inherent = inherent
	ns.latency.Lookahead = lookahead
	m.recalculateLocked()

	return true
}

// Latency returns a node's latency record.
func (m *Manager) Latency(id NodeID) (Node, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}

	return ns.latency, true
}

// --- path management ---

// AddPath groups nodes into a compensated signal path and returns its id.
// Node ids may be registered after the path is created; unknown members
// simply contribute zero latency until they appear.
func (m *Manager) AddPath(name string, nodes ...NodeID) PathID {
	return m.addPath(name, false, nodes)
}

// AddDirectPath adds a path that is excluded from compensation. Its output
// always carries zero added delay, even while sibling paths are delayed;
// direct-path audio therefore leads compensated paths by design of the
// monitoring use case.
func (m *Manager) AddDirectPath(name string, nodes ...NodeID) PathID {
	return m.addPath(name, true, nodes)
}

func (m *Manager) addPath(name string, direct bool, nodes []NodeID) PathID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPath++
	id := m.nextPath

	m.paths[id] = &pathState{
		path: Path{
			ID:     id,
			Name:   name,
			Nodes:  append([]NodeID(nil), nodes...),
			Direct: direct,
		},
		line: m.newLineLocked(0),
	}
	m.recalculateLocked()

	return id
}

// RemovePath removes a path and its delay line and recomputes the plan.
func (m *Manager) RemovePath(id PathID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.paths[id]; !ok {
		m.log.V(1).Info("remove of unknown path", "path", id)
		return false
	}

	delete(m.paths, id)
	m.recalculateLocked()

	return true
}

// Path returns a copy of the path record.
func (m *Manager) Path(id PathID) (Path, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ps, ok := m.paths[id]
	if !ok {
		return Path{}, false
	}

	p := ps.path
	p.Nodes = append([]NodeID(nil), ps.path.Nodes...)

	return p, true
}

// --- configuration ---

// SetEnabled switches compensation on or off. Disabling zeroes every
// compensation delay and reports zero total latency; re-enabling restores
// the alignment invariant from the retained latency records.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.enabled == enabled {
		return
	}

	m.enabled = enabled
	m.recalculateLocked()
}

// Enabled reports whether compensation is active.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.enabled
}

// SetSampleRate changes the session sample rate, resizes every delay line to
// the mode budget at the new rate, and recomputes the plan. Non-positive,
// NaN, and infinite rates are ignored.
func (m *Manager) SetSampleRate(sampleRate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !validSampleRate(sampleRate) {
		m.log.Info("ignoring invalid sample rate", "sampleRate", sampleRate)
		return
	}

	if sampleRate == m.sampleRate {
		return
	}

	m.sampleRate = sampleRate
	m.reconfigureLocked()
	m.recalculateLocked()
}

// SampleRate returns the session sample rate.
func (m *Manager) SampleRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sampleRate
}

// SetMode changes the latency budget mode, rebuilds every delay line to the
// new budget, and recomputes the plan.
func (m *Manager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mode == m.mode {
		return
	}

	m.mode = mode
	m.reconfigureLocked()
	m.recalculateLocked()
}

// Mode returns the active latency budget mode.
func (m *Manager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mode
}

// --- queries (plan-backed, audio-thread safe) ---

// TotalLatency returns the system-wide maximum latency in samples, i.e. the
// total latency every compensated path is aligned to. Zero while disabled.
func (m *Manager) TotalLatency() uint32 {
	return m.plan.Load().MaxLatency()
}

// TotalLatencyMs returns the system-wide maximum latency in milliseconds.
func (m *Manager) TotalLatencyMs() float64 {
	return m.plan.Load().MaxLatencyMs()
}

// NodeCompensation returns the compensation delay applied to a node that is
// compensated standalone. Nodes inside explicit paths report zero; their
// path carries the compensation.
func (m *Manager) NodeCompensation(id NodeID) (uint32, bool) {
	e := m.plan.Load().nodes[id]
	if e == nil {
		return 0, false
	}

	return uint32(e.delay), true
}

// PathCompensation returns the compensation delay applied to a path.
func (m *Manager) PathCompensation(id PathID) (uint32, bool) {
	e := m.plan.Load().paths[id]
	if e == nil {
		return 0, false
	}

	return uint32(e.delay), true
}

// PathTotal returns a path's pre-compensation latency in samples.
func (m *Manager) PathTotal(id PathID) (uint32, bool) {
	e := m.plan.Load().paths[id]
	if e == nil {
		return 0, false
	}

	return e.total, true
}

// CurrentPlan returns the published compensation snapshot. Capture it once
// per audio block and process every node and path through it so siblings in
// the block share one consistent system maximum.
func (m *Manager) CurrentPlan() *Plan {
	return m.plan.Load()
}

// --- plan recomputation (control thread, under mu) ---

// reconfigureLocked rebuilds every delay line at the current mode budget.
// Buffers are swapped, never resized in place; audio callers keep the lines
// referenced by the previously published plan until the next one lands.
func (m *Manager) reconfigureLocked() {
	budget := int(m.mode.MaxLatency(m.sampleRate))

	for _, ns := range m.nodes {
		ns.line = m.newLineLocked(budget)
	}

	for _, ps := range m.paths {
		ps.line = m.newLineLocked(budget)
	}
}

// recalculateLocked derives the system maximum and per-path compensation
// from the full set of nodes and paths and publishes the result as one new
// immutable plan. It never partially updates the previous plan.
func (m *Manager) recalculateLocked() {
	plan := newPlan(m.sampleRate, m.enabled, len(m.nodes), len(m.paths))

	inPath := make(map[NodeID]bool, len(m.nodes))
	totals := make(map[PathID]uint32, len(m.paths))

	for id, ps := range m.paths {
		var total uint32

		for _, nid := range ps.path.Nodes {
			ns, ok := m.nodes[nid]
			if !ok {
				m.log.V(1).Info("path references unregistered node", "path", id, "node", nid)
				continue
			}

			total = saturatingAdd(total, ns.latency.Total())
			inPath[nid] = true
		}

		totals[id] = total
	}

	var max uint32

	if m.enabled {
		for id, ps := range m.paths {
			if !ps.path.Direct && totals[id] > max {
				max = totals[id]
			}
		}

		for id, ns := range m.nodes {
			if !inPath[id] && ns.latency.Total() > max {
				max = ns.latency.Total()
			}
		}

		budget := m.mode.MaxLatency(m.sampleRate)
		if max > budget {
			m.log.Info("maximum latency exceeds mode budget",
				"mode", m.mode.String(), "maxLatency", max, "budget", budget)
		}
	}

	for id, ns := range m.nodes {
		total := ns.latency.Total()

		var comp uint32
		if m.enabled && !inPath[id] {
			comp = saturatingSub(max, total)
		}

		ns.line = m.ensureCapacityLocked(ns.line, comp)
		plan.nodes[id] = &planEntry{line: ns.line, delay: int(comp), total: total}
	}

	for id, ps := range m.paths {
		var comp uint32
		if m.enabled && !ps.path.Direct {
			comp = saturatingSub(max, totals[id])
		}

		ps.line = m.ensureCapacityLocked(ps.line, comp)
		plan.paths[id] = &planEntry{line: ps.line, delay: int(comp), total: totals[id]}
	}

	plan.maxLatency = max
	m.plan.Store(plan)
}

// ensureCapacityLocked returns a line able to serve the given compensation.
// An undersized line is replaced by a fresh, larger one; the audio thread
// keeps serving the old line and its previous, still valid delay until the
// new plan is published.
func (m *Manager) ensureCapacityLocked(line *delay.MultiLine, comp uint32) *delay.MultiLine {
	if int(comp) <= line.MaxDelay() {
		return line
	}

	return m.newLineLocked(int(comp))
}

func (m *Manager) newLineLocked(minCapacity int) *delay.MultiLine {
	capacity := int(m.mode.MaxLatency(m.sampleRate))
	if minCapacity > capacity {
		capacity = minCapacity
	}

	line, err := delay.NewMulti(m.channels, capacity, delay.WithFadeLength(m.fadeLength))
	if err != nil {
		// Channel count and capacity are validated by the option layer, so
		// construction cannot fail; guard anyway to keep the invariant loud.
		m.log.Error(err, "delay line construction failed", "channels", m.channels, "capacity", capacity)
		line, _ = delay.NewMulti(1, capacity)
	}

	return line
}
