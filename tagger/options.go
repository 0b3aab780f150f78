package tagger

import (
	"log/slog"
	"runtime"
)

// Option configures a Tagger.
type Option func(*config)

type config struct {
	threshold float32
	poolSize  int
	maxSeqLen int
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		threshold: 0.5,
		poolSize:  runtime.NumCPU(),
		maxSeqLen: 512,
		logger:    slog.Default(),
	}
}

// WithThreshold sets the per-token confidence threshold below which a
// prediction is treated as O (default: 0.5).
func WithThreshold(t float32) Option {
	return func(c *config) {
		c.threshold = t
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithMaxSeqLen sets the model's maximum sequence length in tokens
// (default: 512). Longer documents are processed in overlapping chunks.
func WithMaxSeqLen(n int) Option {
	return func(c *config) {
		if n > chunkOverlap {
			c.maxSeqLen = n
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
