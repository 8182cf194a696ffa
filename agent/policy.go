package agent

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type policyAgent struct {
	name    string
	policy  policy.Policy
	rng     *rand.Rand
	metrics metrics.Collector
}

// NewPolicyAgent plays p directly without searching. A zero seed draws a
// random one.
func NewPolicyAgent(name string, p policy.Policy, seed uint64) Agent {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &policyAgent{
		name:    name,
		policy:  p,
		rng:     rand.New(rand.NewSource(seed)),
		metrics: metrics.NewCollector(),
	}
}

func (a *policyAgent) Name() string {
	return a.name
}

func (a *policyAgent) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	a.metrics.Start(a.name, 1)
	move := a.policy(policy.NewView(state), a.rng)
	a.metrics.SetShortcut(true)
	return move, a.metrics.Complete()
}
