package bruteforce

import (
	"log/slog"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bruteforce/metrics"
)

// DefaultItersPerStopCheck is the number of checks a worker performs between
// two reads of the stop signal unless configured otherwise.
const DefaultItersPerStopCheck = 512

// config holds search configuration assembled from options.
type config struct {
	// Threads defines the number of workers.
	// Zero means unset: the environment and then the CPU count are consulted.
	Threads uint

	// ItersPerStopCheck defines how many checks a worker performs before reading the stop signal.
	// Default: 512.
	ItersPerStopCheck uint

	// Env is consulted for EnvThreads when Threads is unset.
	// Default: OSEnv().
	Env Env

	// Logger receives run lifecycle and configuration warnings.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics provides instruments for run accounting.
	// Default: no-op.
	Metrics metrics.Provider
}

// settings is the immutable snapshot a single run executes with.
type settings struct {
	threads           int
	itersPerStopCheck int
}

func defaultConfig() config {
	return config{
		Threads:           0,
		ItersPerStopCheck: DefaultItersPerStopCheck,
		Env:               OSEnv(),
		Logger:            nil, // resolved lazily to slog.Default()
		Metrics:           metrics.NewNoopProvider(),
	}
}

// validateConfig checks invariants that options cannot enforce on their own.
func validateConfig(cfg *config) error {
	if cfg.ItersPerStopCheck == 0 || cfg.ItersPerStopCheck > math.MaxInt {
		return errorc.With(ErrInvalidConfig, errorc.String("", "iterations per stop check must be in [1, MaxInt]"))
	}
	if cfg.Threads > math.MaxInt {
		return errorc.With(ErrInvalidConfig, errorc.String("", "threads must be <= MaxInt"))
	}
	return nil
}

// Option configures a search run.
type Option func(*config) error

// WithThreads sets the number of workers (must be > 0).
func WithThreads(n uint) Option {
	return func(cfg *config) error {
		if n == 0 || n > math.MaxInt {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithThreads requires 0 < n <= MaxInt"))
		}
		cfg.Threads = n
		return nil
	}
}

// WithItersPerStopCheck sets the number of checks between two stop signal reads (must be > 0).
func WithItersPerStopCheck(n uint) Option {
	return func(cfg *config) error {
		if n == 0 || n > math.MaxInt {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithItersPerStopCheck requires 0 < n <= MaxInt"))
		}
		cfg.ItersPerStopCheck = n
		return nil
	}
}

// WithEnv replaces the environment the thread count falls back on.
func WithEnv(env Env) Option {
	return func(cfg *config) error {
		if env == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithEnv requires a non-nil Env"))
		}
		cfg.Env = env
		return nil
	}
}

// WithLogger sets the logger used for run lifecycle and configuration warnings.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics sets the metrics provider. A nil provider disables metrics.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			p = metrics.NewNoopProvider()
		}
		cfg.Metrics = p
		return nil
	}
}

func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &cfg, nil
}

// resolve takes the settings snapshot for one run.
// Thread count precedence: explicit value, then EnvThreads, then the logical CPU count.
func (cfg *config) resolve() settings {
	return settings{
		threads:           cfg.threads(),
		itersPerStopCheck: int(cfg.ItersPerStopCheck),
	}
}

func (cfg *config) threads() int {
	if cfg.Threads > 0 {
		return int(cfg.Threads)
	}
	if s, ok := cfg.Env.Lookup(EnvThreads); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		switch {
		case err != nil:
			cfg.Logger.Warn("failed to parse thread count from environment",
				"env", EnvThreads,
				"value", s,
				"error", err,
			)
		case n < 1:
			cfg.Logger.Warn("ignoring non-positive thread count from environment",
				"env", EnvThreads,
				"value", n,
			)
		default:
			return n
		}
	}
	return runtime.NumCPU()
}
