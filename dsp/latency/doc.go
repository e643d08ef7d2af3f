// Package latency implements automatic delay compensation for multi-track
// processing graphs. It tracks the inherent and lookahead latency of every
// registered node, aggregates per-path totals, and retunes compensation
// delay lines so that all paths leave the graph time-aligned to the slowest
// one.
//
// Included components:
//   - Node: inherent + lookahead latency record for one processing node.
//   - Path: an ordered group of nodes forming one signal route; direct
//     paths are excluded from compensation for low-latency monitoring.
//   - Mode: latency budget presets (zero/low/normal/high-quality/custom)
//     used to pre-size compensation buffers.
//   - Plan: the immutable compensation snapshot published to the audio
//     thread.
//   - Manager: owns nodes, paths, and delay lines; recomputes the plan on
//     every structural or latency change.
//
// Concurrency model: all registration, reporting, and configuration calls
// belong to a single control thread and may allocate. The Process* methods
// and all queries are safe on the real-time audio thread: they never lock,
// block, or allocate. The Manager's Process* methods load the latest
// published Plan on every call; a mixer processing several nodes per block
// captures CurrentPlan once at the block boundary and uses the Plan's own
// Process* methods so the whole block sees one consistent snapshot.
package latency
