package lazy

// Config configures the behavior of the Lazy DFA engine.
//
// The configuration allows tuning the trade-off between memory usage and
// performance. Larger caches avoid rebuilding states but consume more memory.
type Config struct {
	// MaxStates is the maximum number of DFA states kept in a Cache.
	// When the limit is reached the cache is cleared and the search
	// continues, rebuilding states on demand.
	//
	// Default: 10,000 states
	MaxStates int

	// MaxCacheClears is the number of times a single search may clear a
	// full cache before giving up with ErrCacheFull. The caller then falls
	// back to an NFA engine.
	//
	// Default: 5
	MaxCacheClears int

	// DeterminizationLimit is the maximum number of NFA states in a single
	// DFA state before giving up on determinization.
	//
	// Default: 1,000 NFA states
	DeterminizationLimit int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:            10_000,
		MaxCacheClears:       5,
		DeterminizationLimit: 1_000,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	switch {
	case c.MaxStates < 2:
		return configError("MaxStates", "must be >= 2")
	case c.MaxCacheClears < 0:
		return configError("MaxCacheClears", "must be >= 0")
	case c.DeterminizationLimit <= 0:
		return configError("DeterminizationLimit", "must be > 0")
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithMaxCacheClears returns a new config with the specified clear budget
func (c Config) WithMaxCacheClears(clears int) Config {
	c.MaxCacheClears = clears
	return c
}

// WithDeterminizationLimit returns a new config with the specified limit
func (c Config) WithDeterminizationLimit(limit int) Config {
	c.DeterminizationLimit = limit
	return c
}
