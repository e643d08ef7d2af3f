package latency

// Block processing runs against one published Plan. A mixing layer that
// processes several nodes per audio block should capture CurrentPlan() once
// at the block boundary and call the Plan methods, so every sibling path in
// the block is compensated against the same system maximum. The Manager
// methods below are per-call conveniences that load the latest plan each
// time.
//
// All of these are audio-thread safe: no locks, no allocation, no error
// returns. Unknown ids are reported as false, which is expected during
// teardown races between the control thread and the audio callback.

// Process pushes one stereo block through a node's compensation delay using
// this snapshot's settings. Channels are delayed identically, in lock-step.
func (p *Plan) Process(id NodeID, left, right []float64) bool {
	return processEntry(p.nodes[id], left, right)
}

// ProcessMono pushes one mono block through a node's compensation delay.
func (p *Plan) ProcessMono(id NodeID, buf []float64) bool {
	return processEntry(p.nodes[id], buf, nil)
}

// ProcessPath pushes one stereo block through a path's compensation delay.
// Direct paths have zero compensation, so their blocks pass through
// bit-exact.
func (p *Plan) ProcessPath(id PathID, left, right []float64) bool {
	return processEntry(p.paths[id], left, right)
}

// ProcessPathMono pushes one mono block through a path's compensation delay.
func (p *Plan) ProcessPathMono(id PathID, buf []float64) bool {
	return processEntry(p.paths[id], buf, nil)
}

// Process pushes one stereo block through a node's compensation delay under
// the latest plan. See Plan.Process for block-coherent processing.
func (m *Manager) Process(id NodeID, left, right []float64) bool {
	return m.plan.Load().Process(id, left, right)
}

// ProcessMono pushes one mono block through a node's compensation delay
// under the latest plan.
func (m *Manager) ProcessMono(id NodeID, buf []float64) bool {
	return m.plan.Load().ProcessMono(id, buf)
}

// ProcessPath pushes one stereo block through a path's compensation delay
// under the latest plan.
func (m *Manager) ProcessPath(id PathID, left, right []float64) bool {
	return m.plan.Load().ProcessPath(id, left, right)
}

// ProcessPathMono pushes one mono block through a path's compensation delay
// under the latest plan.
func (m *Manager) ProcessPathMono(id PathID, buf []float64) bool {
	return m.plan.Load().ProcessPathMono(id, buf)
}

func processEntry(e *planEntry, first, second []float64) bool {
	if e == nil {
		return false
	}

	e.apply()
	e.line.ProcessChannel(0, first)

	if second != nil && e.line.Channels() > 1 {
		e.line.ProcessChannel(1, second)
	}

	return true
}
