package probe

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by latency detection.
var (
	ErrNoResponse    = errors.New("probe: processor produced no measurable response")
	ErrEmptySignal   = errors.New("probe: signal must not be empty")
	ErrLengthsDiffer = errors.New("probe: reference and response lengths must match")
)

// ProcessFunc processes one block in place, exactly like a hosted insert.
type ProcessFunc func(block []float64)

// silenceFloor is the absolute level below which a response peak is treated
// as numerical noise rather than signal.
const silenceFloor = 1e-12

// Detect measures a processor's inherent latency in samples by driving a
// unit impulse through it and locating the absolute peak of the response.
// The processor is fed blocks of the configured size until the configured
// maximum latency window has been observed.
func Detect(process ProcessFunc, opts ...Option) (int, error) {
	if process == nil {
		return 0, errors.New("probe: process function must not be nil")
	}

	cfg := applyOptions(opts...)

	blocks := (cfg.MaxLatency + cfg.BlockSize) / cfg.BlockSize
	response := make([]float64, 0, blocks*cfg.BlockSize)
	block := make([]float64, cfg.BlockSize)

	for i := 0; i < blocks; i++ {
		for j := range block {
			block[j] = 0
		}

		if i == 0 {
			block[0] = 1
		}

		process(block)
		response = append(response, block...)
	}

	peak, level := peakIndex(response)
	if level < silenceFloor {
		return 0, ErrNoResponse
	}

	return peak, nil
}

// CrossCorrelate returns the lag, in samples, at which the response best
// matches the reference. The result is the processor's latency when the
// response is the processed reference. Both signals must have the same
// length; lags are searched in [0, len(reference)).
func CrossCorrelate(reference, response []float64) (int, error) {
	if len(reference) == 0 || len(response) == 0 {
		return 0, ErrEmptySignal
	}

	if len(reference) != len(response) {
		return 0, ErrLengthsDiffer
	}

	fftSize := nextPowerOf2(2 * len(reference))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("probe: failed to create FFT plan: %w", err)
	}

	refTime := make([]complex128, fftSize)
	for i, v := range reference {
		refTime[i] = complex(v, 0)
	}

	refFreq := make([]complex128, fftSize)
	if err := plan.Forward(refFreq, refTime); err != nil {
		return 0, fmt.Errorf("probe: forward FFT failed: %w", err)
	}

	respTime := make([]complex128, fftSize)
	for i, v := range response {
		respTime[i] = complex(v, 0)
	}

	respFreq := make([]complex128, fftSize)
	if err := plan.Forward(respFreq, respTime); err != nil {
		return 0, fmt.Errorf("probe: forward FFT failed: %w", err)
	}

	// Cross-correlation is the inverse transform of conj(ref) * response.
	corrFreq := make([]complex128, fftSize)
	for i := range corrFreq {
		corrFreq[i] = cmplx.Conj(refFreq[i]) * respFreq[i]
	}

	corrTime := make([]complex128, fftSize)
	if err := plan.Inverse(corrTime, corrFreq); err != nil {
		return 0, fmt.Errorf("probe: inverse FFT failed: %w", err)
	}

	best := 0
	bestVal := math.Inf(-1)

	for lag := 0; lag < len(reference); lag++ {
		v := real(corrTime[lag])
		if v > bestVal {
			bestVal = v
			best = lag
		}
	}

	if math.Abs(bestVal) < silenceFloor {
		return 0, ErrNoResponse
	}

	return best, nil
}

func peakIndex(signal []float64) (int, float64) {
	peak := 0
	level := 0.0

	for i, v := range signal {
		if a := math.Abs(v); a > level {
			level = a
			peak = i
		}
	}

	return peak, level
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}

	return size
}
