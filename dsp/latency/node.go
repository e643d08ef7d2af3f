package latency

// NodeID identifies a processing node (plugin, filter, lookahead stage)
// within one Manager.
type NodeID uint32

// PathID identifies a signal path within one Manager. IDs are handed out by
// the Manager's own allocator so that separate graphs stay fully isolated.
type PathID uint32

// Node records the latency contributions of one processing node.
type Node struct {
	ID        NodeID
	Inherent  uint32 // fixed algorithmic delay, e.g. an FFT block size
	Lookahead uint32 // intentionally configured forward buffering
}

// Total returns the node's combined latency in samples, saturating at the
// uint32 range instead of wrapping.
func (n Node) Total() uint32 {
	return saturatingAdd(n.Inherent, n.Lookahead)
}

// Path is an ordered group of nodes representing one signal route through
// the graph. A direct path is deliberately excluded from compensation: its
// output keeps zero added delay for live monitoring, at the cost of leading
// the compensated paths in time.
type Path struct {
	ID     PathID
	Name   string
	Nodes  []NodeID
	Direct bool
}
