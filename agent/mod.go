package agent

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"
	"loveletter/searcher"

	"github.com/pkg/errors"
)

// Agent picks moves for whichever player is to move.
type Agent interface {
	Name() string
	// FindMove returns a move and performance metrics (if collected) from the search
	FindMove(state *game.State) (game.Move, metrics.SearchMetric)
}

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithms lists the names New accepts.
var Algorithms = []string{"ismcts", "smart-ismcts", "uct", "minimax", "rules", "random"}

// New builds the agent described by config with metrics collection on.
func New(config metrics.AgentConfig) (Agent, error) {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Trees > 0 {
		options = append(options, searcher.WithTrees(config.Trees))
	}
	if config.Samples > 0 {
		options = append(options, searcher.WithSamples(config.Samples))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	switch config.Algorithm {
	case "ismcts":
		return searcher.NewISMCTS(options...), nil
	case "smart-ismcts":
		return searcher.NewSmartISMCTS(options...), nil
	case "uct":
		return searcher.NewUCT(options...), nil
	case "minimax":
		return searcher.NewMinimax(options...), nil
	case "rules":
		return NewPolicyAgent("rules", policy.Rules, config.Seed), nil
	case "random":
		return NewPolicyAgent("random", policy.Random, config.Seed), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q (want one of %v)", config.Algorithm, Algorithms)
	}
}
