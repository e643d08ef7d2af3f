// Command pdcinfo prints the compensation budgets of the pipeline latency
// modes at common (or user-given) sample rates.
//
// Usage:
//
//	pdcinfo [flags]
//
// Examples:
//
//	pdcinfo
//	pdcinfo -rates 44100,48000,192000
//	pdcinfo -custom 4096
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-pdc/dsp/latency"
)

func main() {
	ratesFlag := flag.String("rates", "44100,48000,96000", "comma-separated sample rates in Hz")
	customFlag := flag.Uint("custom", 0, "include a custom mode with the given budget in samples")
	flag.Parse()

	rates, err := parseRates(*ratesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdcinfo: %v\n", err)
		os.Exit(1)
	}

	modes := []latency.Mode{
		latency.ZeroLatency,
		latency.LowLatency,
		latency.Normal,
		latency.HighQuality,
	}
	if *customFlag > 0 {
		modes = append(modes, latency.CustomMode(uint32(*customFlag)))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprint(w, "mode")

	for _, rate := range rates {
		fmt.Fprintf(w, "\t%g Hz", rate)
	}

	fmt.Fprintln(w)

	for _, mode := range modes {
		fmt.Fprint(w, mode)

		for _, rate := range rates {
			samples := mode.MaxLatency(rate)
			ms := float64(samples) / rate * 1000.0
			fmt.Fprintf(w, "\t%d smp (%.2f ms)", samples, ms)
		}

		fmt.Fprintln(w)
	}

	w.Flush()
}

func parseRates(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	rates := make([]float64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rate, err := strconv.ParseFloat(part, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid sample rate %q", part)
		}

		rates = append(rates, rate)
	}

	if len(rates) == 0 {
		return nil, fmt.Errorf("no sample rates given")
	}

	return rates, nil
}
