package latency

import "github.com/go-logr/logr"

// Config defines Manager construction settings.
type Config struct {
	SampleRate float64
	Channels   int
	Mode       Mode
	FadeLength int
	Logger     logr.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: 48 kHz stereo, normal mode,
// immediate delay changes, discarded logs.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		Channels:   2,
		Mode:       Normal,
		FadeLength: 0,
		Logger:     logr.Discard(),
	}
}

// WithSampleRate sets the session sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if validSampleRate(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the channel count of every compensation delay line
// (1 for mono, 2 for stereo).
func WithChannels(channels int) Option {
	return func(cfg *Config) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithMode sets the initial latency budget mode.
func WithMode(mode Mode) Option {
	return func(cfg *Config) {
		cfg.Mode = mode
	}
}

// WithFadeLength makes compensation changes crossfade over n samples
// instead of switching instantly. See delay.WithFadeLength.
func WithFadeLength(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.FadeLength = n
		}
	}
}

// WithLogger sets the logger used for control-thread diagnostics.
// The audio path never logs.
func WithLogger(log logr.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = log
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
