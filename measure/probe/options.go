package probe

// Config defines detection settings.
type Config struct {
	BlockSize  int
	MaxLatency int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults: 512-sample blocks and a
// detection window of 48000 samples (one second at 48 kHz).
func DefaultConfig() Config {
	return Config{
		BlockSize:  512,
		MaxLatency: 48000,
	}
}

// WithBlockSize sets the block size used to drive the processor, matching
// how the host would call it.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithMaxLatency bounds the detection window in samples.
func WithMaxLatency(samples int) Option {
	return func(cfg *Config) {
		if samples > 0 {
			cfg.MaxLatency = samples
		}
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
