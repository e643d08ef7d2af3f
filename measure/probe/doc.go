// Package probe measures the inherent latency of audio processors.
//
// Detect drives a unit impulse through a processor block by block and
// locates the response peak; CrossCorrelate recovers the lag between a
// reference and a processed signal via FFT cross-correlation, which is
// robust against processors that smear the impulse.
//
// These helpers run offline on a control thread and allocate freely; they
// feed the per-node latency reports consumed by dsp/latency, they are not
// part of the real-time path.
package probe
