package searcher

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ISMCTS builds one information-set tree per move, sampling a fresh
// determinization for every iteration.
type ISMCTS struct {
	config
	smart bool
}

// NewISMCTS returns the plain variant: determinizations ignore what the
// player has learned and both expansion and rollouts are uniformly random.
func NewISMCTS(options ...Option) *ISMCTS {
	return &ISMCTS{config: newConfig(policy.Random, options)}
}

// NewSmartISMCTS returns the knowledge-aware variant. It keeps confirmed
// cards in determinizations, plays obvious moves without searching and
// follows the heuristic policy for expansion and rollouts.
func NewSmartISMCTS(options ...Option) *ISMCTS {
	return &ISMCTS{config: newConfig(policy.Rules, options), smart: true}
}

func (m *ISMCTS) Name() string {
	if m.smart {
		return "smart-ismcts"
	}
	return "ismcts"
}

func (m *ISMCTS) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	m.metrics.Start(m.Name(), 1)
	player := state.ToMove()
	view := policy.NewView(state)
	moves := candidates(state)

	if len(moves) == 1 {
		m.metrics.SetShortcut(true)
		return policy.Complete(view, moves[0], m.rng), m.metrics.Complete()
	}
	if m.smart {
		if move, ok := policy.Shortcut(view); ok {
			m.metrics.SetShortcut(true)
			log.Debug().Msgf("%s plays %s without searching", player, move)
			return finish(view, move, m.rng), m.metrics.Complete()
		}
	}

	root := newNode(game.NoCard, nil, game.NoPlayer)
	t := m.tree(m.smart)
	for i := 0; i < m.iterations; i++ {
		t.iterate(root, state.CloneAndRandomize(player, m.smart, m.rng), moves, m.rng)
	}
	log.Trace().Msgf("%s tree for %s:%s", m.Name(), player, root.tree())

	best := root.mostVisited(moves)
	move := policy.Complete(view, best.move, m.rng)
	log.Debug().Msgf("%s picks %s after %d visits of %d", player, move, best.visits, m.iterations)
	return move, m.metrics.Complete()
}

// tree returns the settings one search tree runs with.
func (c *config) tree(smart bool) tree {
	return tree{
		exploration: c.exploration,
		smart:       smart,
		rollout:     c.rollout,
		metrics:     c.metrics,
	}
}

type tree struct {
	exploration float64
	smart       bool
	rollout     policy.Policy
	metrics     metrics.Collector
}

// iterate runs one selection, expansion, simulation and backpropagation pass
// from root. It consumes state, which must be a determinization of the root
// position; rootMoves restricts the moves tried at the root.
func (t tree) iterate(root *node, state *game.State, rootMoves []game.Card, rng *rand.Rand) {
	n := root
	legal := rootMoves

	// Selection
	for !state.RoundOver() && len(n.untriedMoves(legal)) == 0 {
		n = n.selectChild(legal, t.exploration)
		state.Play(t.move(state, n.move, rng))
		legal = distinct(state.Moves())
	}

	// Expansion
	if !state.RoundOver() {
		c := t.expand(state, n.untriedMoves(legal), rng)
		player := state.ToMove()
		state.Play(t.move(state, c, rng))
		n = n.addChild(c, player)
	}

	// Simulation
	if !state.RoundOver() {
		t.metrics.AddPlayout()
	}
	for !state.RoundOver() {
		state.Play(t.rollout(policy.NewView(state), rng))
	}

	// Backpropagation
	for ; n != nil; n = n.parent {
		n.update(state)
	}
	t.metrics.AddIteration()
}

// expand picks the untried card to add. The smart tree follows the policy
// when it suggests an untried card.
func (t tree) expand(state *game.State, untried []game.Card, rng *rand.Rand) game.Card {
	if t.smart {
		suggested := t.rollout(policy.NewView(state), rng).Card
		for _, c := range untried {
			if c == suggested {
				return c
			}
		}
	}
	return untried[rng.Intn(len(untried))]
}

// move turns a tree edge into a playable move. The plain tree leaves the
// victim and guess to be drawn when the move is played.
func (t tree) move(state *game.State, c game.Card, rng *rand.Rand) game.Move {
	if t.smart {
		return policy.Complete(policy.NewView(state), c, rng)
	}
	return game.Move{Card: c}
}
