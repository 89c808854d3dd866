// Package metrics defines the instruments a search run records and ships
// in-memory, no-op and Prometheus backed providers.
package metrics

// Provider constructs named instruments. Asking twice for the same name returns
// the same instrument; options of later calls are ignored.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

type (
	// Counter counts events that only accumulate, such as checks performed.
	Counter interface{ Add(n int64) }

	// UpDownCounter tracks a level, such as the number of running workers.
	UpDownCounter interface{ Add(n int64) }

	// Histogram observes a distribution, such as run durations in seconds.
	Histogram interface{ Record(v float64) }
)

// InstrumentConfig is the metadata an instrument is created with.
// Providers may ignore any of it.
type InstrumentConfig struct {
	Description string
	Unit        string
	// Attributes are constant labels of the instrument. Keep cardinality bounded.
	Attributes map[string]string
}

// help returns the description, or name when none was given.
func (c InstrumentConfig) help(name string) string {
	if c.Description != "" {
		return c.Description
	}
	return name
}

// InstrumentOption sets one field of InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the unit, e.g. "1" or "seconds".
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes merges attrs into the instrument's constant labels. attrs is copied.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		for k, v := range attrs {
			if c.Attributes == nil {
				c.Attributes = make(map[string]string, len(attrs))
			}
			c.Attributes[k] = v
		}
	}
}

func applyOptions(opts []InstrumentOption) (cfg InstrumentConfig) {
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
