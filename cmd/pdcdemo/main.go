// Command pdcdemo renders a two-path graph to a stereo WAV file: the left
// channel carries a click train through a lookahead-limited path with delay
// compensation applied, the right channel carries the same clicks through a
// zero-latency direct monitoring path. With compensation enabled the left
// channel lands exactly total-latency samples behind the right one, and the
// measured inter-channel lag is printed for verification.
//
// Usage:
//
//	pdcdemo [flags]
//
// Examples:
//
//	pdcdemo -out aligned.wav
//	pdcdemo -lookahead 512 -rate 44100 -out aligned.wav
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/cwbudde/algo-pdc/dsp/delay"
	"github.com/cwbudde/algo-pdc/dsp/latency"
	"github.com/cwbudde/algo-pdc/measure/probe"
)

const (
	blockSize   = 512
	numBlocks   = 64
	clickPeriod = 4800
	headroom    = 0.8
)

func main() {
	out := flag.String("out", "pdcdemo.wav", "output WAV file")
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	lookahead := flag.Int("lookahead", 256, "limiter lookahead in samples")
	flag.Parse()

	log := funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{})

	if err := run(*out, *rate, *lookahead, log.WithName("pdcdemo")); err != nil {
		fmt.Fprintf(os.Stderr, "pdcdemo: %v\n", err)
		os.Exit(1)
	}
}

func run(out string, rate, lookahead int, log logr.Logger) error {
	if rate <= 0 || lookahead < 0 {
		return fmt.Errorf("invalid rate %d or lookahead %d", rate, lookahead)
	}

	m := latency.New(
		latency.WithSampleRate(float64(rate)),
		latency.WithMode(latency.HighQuality),
	)

	const limiterID latency.NodeID = 1

	m.RegisterNode(limiterID)
	m.UpdateProcessor(limiterID, 0, uint32(lookahead))

	mainPath := m.AddPath("main", limiterID)
	monitor := m.AddDirectPath("monitor")

	// Stand-in for the limiter's delayed program path.
	limiter, err := delay.New(lookahead)
	if err != nil {
		return err
	}

	limiter.SetDelay(lookahead)

	total := numBlocks * blockSize
	mainOut := make([]float64, 0, total)
	monitorOut := make([]float64, 0, total)

	mainBlock := make([]float64, blockSize)
	monitorBlock := make([]float64, blockSize)

	for b := 0; b < numBlocks; b++ {
		for i := range mainBlock {
			v := 0.0
			if (b*blockSize+i)%clickPeriod == 0 {
				v = 1
			}

			mainBlock[i] = v
			monitorBlock[i] = v
		}

		limiter.ProcessBlock(mainBlock)

		plan := m.CurrentPlan()
		plan.ProcessPathMono(mainPath, mainBlock)
		plan.ProcessPathMono(monitor, monitorBlock)

		mainOut = append(mainOut, mainBlock...)
		monitorOut = append(monitorOut, monitorBlock...)
	}

	log.Info("graph rendered",
		"totalLatencySamples", m.TotalLatency(),
		"totalLatencyMs", m.TotalLatencyMs())

	// The direct path leads the compensated one by exactly the system
	// latency; cross-correlation recovers that lag from the audio itself.
	lag, err := probe.CrossCorrelate(monitorOut, mainOut)
	if err != nil {
		return err
	}

	log.Info("measured inter-channel lag", "samples", lag)

	if lag != int(m.TotalLatency()) {
		return fmt.Errorf("lag %d does not match reported latency %d", lag, m.TotalLatency())
	}

	return writeStereoWAV(out, rate, mainOut, monitorOut)
}

func writeStereoWAV(path string, rate int, left, right []float64) error {
	scaledL := make([]float64, len(left))
	scaledR := make([]float64, len(right))
	vecmath.ScaleBlock(scaledL, left, headroom)
	vecmath.ScaleBlock(scaledR, right, headroom)

	data := make([]int, 0, 2*len(scaledL))
	for i := range scaledL {
		data = append(data, int(scaledL[i]*32767), int(scaledR[i]*32767))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 2, 1)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return err
	}

	return enc.Close()
}
