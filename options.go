package objstm

import "log/slog"

type readConfig struct {
	limits      Limits
	logger      *slog.Logger
	concurrency int
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits(), concurrency: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.concurrency < 1 {
		cfg.concurrency = 1
	}
	return cfg
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLogger routes decode diagnostics (count mismatches, dropped objects).
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

// WithConcurrency parses up to n index entries in parallel. The result does
// not depend on n.
func WithConcurrency(n int) ReadOption {
	return func(c *readConfig) { c.concurrency = n }
}

// Config holds the builder policy scalars.
type Config struct {
	MaxObjectsPerStream int
	CompressionLevel    int
}

// DefaultConfig returns 100 objects per stream at compression level 6.
func DefaultConfig() Config {
	return Config{MaxObjectsPerStream: 100, CompressionLevel: 6}
}

type buildConfig struct {
	Config
	filter Name
	logger *slog.Logger
}

type BuildOption func(*buildConfig)

func newBuildConfig(opts []BuildOption) (buildConfig, error) {
	cfg := buildConfig{Config: DefaultConfig(), filter: FilterFlate}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if err := validateBuildConfig(cfg); err != nil {
		return buildConfig{}, err
	}
	return cfg, nil
}

func WithConfig(c Config) BuildOption {
	return func(b *buildConfig) { b.Config = c }
}

func WithMaxObjects(n int) BuildOption {
	return func(b *buildConfig) { b.MaxObjectsPerStream = n }
}

// WithCompressionLevel sets the 0-9 effort. 0 stores the content raw.
func WithCompressionLevel(level int) BuildOption {
	return func(b *buildConfig) { b.CompressionLevel = level }
}

// WithFilter selects FilterFlate (the default) or FilterBrotli.
func WithFilter(f Name) BuildOption {
	return func(b *buildConfig) { b.filter = f }
}

func WithBuildLogger(l *slog.Logger) BuildOption {
	return func(b *buildConfig) { b.logger = l }
}
