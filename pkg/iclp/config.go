package iclp

// Config holds the engine's tunables.
type Config struct {
	// IterationLimit bounds the number of narrowing operations a single
	// scheduler run performs before it starts checking whether the most
	// recent narrowing was "significant" (NarrowingThreshold) and, if not,
	// ending the round early — guaranteeing termination on non-convergent
	// fixed points without cutting off a genuinely converging round.
	IterationLimit int

	// PrecisionDigits is a number of significant decimal digits kept in
	// the configuration; no code in this package reads it (Interval.String
	// formats bounds with %g).
	PrecisionDigits int

	// NarrowingThreshold is the minimum relative width reduction (0..1)
	// a narrowing step must clear to count as "significant". Every real
	// narrowing always wakes watchers; this threshold only controls
	// whether the scheduler is allowed to end a round early once its
	// iteration budget is exhausted — it guards termination, not
	// propagation correctness.
	NarrowingThreshold float64

	// MaxDenominator is a size limit suitable for Rational.TooLarge and
	// FromFloat; the engine itself does not read it.
	MaxDenominator int64

	// Verbose sets the engine's logger to Debug level (Warn otherwise).
	Verbose bool
}

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() Config {
	return Config{
		IterationLimit:     3000,
		PrecisionDigits:    6,
		NarrowingThreshold: 0.10,
		MaxDenominator:     1 << 32,
		Verbose:            false,
	}
}

// Option mutates a Config, the functional-options pattern used throughout
// this package.
type Option func(*Config)

func WithIterationLimit(n int) Option {
	return func(c *Config) { c.IterationLimit = n }
}

func WithNarrowingThreshold(t float64) Option {
	return func(c *Config) { c.NarrowingThreshold = t }
}

func WithPrecisionDigits(d int) Option {
	return func(c *Config) { c.PrecisionDigits = d }
}

func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}
