package delay

// Config defines delay line construction settings.
type Config struct {
	FadeLength int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default delay line configuration: immediate,
// unfaded delay changes.
func DefaultConfig() Config {
	return Config{FadeLength: 0}
}

// WithFadeLength makes delay changes crossfade from the old to the new read
// position over n samples instead of switching instantly. A zero or negative
// n disables fading.
func WithFadeLength(n int) Option {
	return func(cfg *Config) {
		if n < 0 {
			n = 0
		}

		cfg.FadeLength = n
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
