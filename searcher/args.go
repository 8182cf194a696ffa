package searcher

import (
	"loveletter/experiments/metrics"
	"loveletter/meta"
	"loveletter/policy"
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(c *config)

// config holds the search arguments shared by every searcher. Each searcher
// reads only the ones it needs.
type config struct {
	iterations  int
	exploration float64
	trees       int
	samples     int
	goroutines  int
	rng         *rand.Rand
	rollout     policy.Policy
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(c *config) {
		if iterations > 0 {
			c.iterations = iterations
		}
	}
}

func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration > 0 {
			c.exploration = exploration
		}
	}
}

func WithTrees(trees int) Option {
	return func(c *config) {
		if trees > 0 {
			c.trees = trees
		}
	}
}

func WithSamples(samples int) Option {
	return func(c *config) {
		if samples > 0 {
			c.samples = samples
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRollout replaces the policy that finishes each simulation.
func WithRollout(rollout policy.Policy) Option {
	return func(c *config) {
		if rollout != nil {
			c.rollout = rollout
		}
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

func newConfig(rollout policy.Policy, options []Option) config {
	c := config{ // Default values
		iterations:  meta.ITERATIONS,
		exploration: meta.EXPLORATION,
		trees:       meta.TREES,
		samples:     meta.SAMPLES,
		goroutines:  meta.GO_ROUTINES,
		rollout:     rollout,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return c
}
