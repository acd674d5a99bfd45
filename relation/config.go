package relation

import "log"

// config holds the per-relation tuning this module exposes. It
// replaces the teacher's package-level mutable variables (GradeTables,
// FullTableInit, UpgradeThreshold, DowngradeThreshold in
// hamt32/hamt.go) with a functional-options struct: a single hamt32
// package only ever held one HAMT "shape" at a time, so package
// globals were workable there, but this module's Relation[T] is
// generic and many differently-shaped relations can be alive at once,
// so the equivalent knob has to live per-instance. See SPEC_FULL.md
// §5.3 / DESIGN.md for the full accounting of what carried over from
// GradeTables and what did not (the representation-switching itself
// has nothing to switch to once buckets are a fixed array).
type config struct {
	occupancyLogging bool
	logger           *log.Logger
}

func defaultConfig() config {
	return config{occupancyLogging: false, logger: log.Default()}
}

// Option configures a Relation at Create time.
type Option func(*config)

// WithOccupancyLogging turns on bucket-occupancy breadcrumbs (via the
// standard library log package, the teacher's own ambient logger --
// see hamt32_functional/hamt.go's init()). Add logs when it fills an
// empty bucket's inline slot and when it forks a child; single-tuple
// Remove logs when it clears a bucket. RemoveMatching and promotions
// of a child tuple into an inline slot log nothing. Off by default,
// since the teacher's own GradeTables-driven logging is opt-in noise.
func WithOccupancyLogging(enabled bool) Option {
	return func(c *config) { c.occupancyLogging = enabled }
}

// WithLogger overrides the *log.Logger occupancy breadcrumbs are
// written to. Defaults to log.Default(). A nil l is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func (c config) logOccupancy(format string, args ...interface{}) {
	if c.occupancyLogging {
		c.logger.Printf(format, args...)
	}
}
