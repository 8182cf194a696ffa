package searcher

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"
	"loveletter/utils"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// UCT is Determinized UCT: an ensemble of independent trees, each searching a
// single sampled determinization, that vote on the move.
type UCT struct {
	config
}

func NewUCT(options ...Option) *UCT {
	return &UCT{config: newConfig(policy.Rules, options)}
}

func (u *UCT) Name() string {
	return "uct"
}

func (u *UCT) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	u.metrics.Start(u.Name(), u.goroutines)
	player := state.ToMove()
	view := policy.NewView(state)
	moves := candidates(state)

	if len(moves) == 1 {
		u.metrics.SetShortcut(true)
		return policy.Complete(view, moves[0], u.rng), u.metrics.Complete()
	}
	if move, ok := policy.Shortcut(view); ok {
		u.metrics.SetShortcut(true)
		log.Debug().Msgf("%s plays %s without searching", player, move)
		return finish(view, move, u.rng), u.metrics.Complete()
	}

	iterations := max(1, u.iterations/u.trees)
	seeds := make([]uint64, u.trees)
	for i := range seeds {
		seeds[i] = u.rng.Uint64()
	}

	choices := make([]game.Card, u.trees)
	t := u.tree(true)
	var g errgroup.Group
	g.SetLimit(u.goroutines)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			determinization := state.CloneAndRandomize(player, true, rng)
			root := newNode(game.NoCard, nil, game.NoPlayer)
			for j := 0; j < iterations; j++ {
				t.iterate(root, determinization.Clone(), moves, rng)
			}
			best := root.mostVisited(moves)
			if best == nil {
				return errors.Errorf("tree %d expanded none of %v", i, moves)
			}
			choices[i] = best.move
			u.metrics.AddTree()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	votes := map[game.Card]int{}
	for _, c := range choices {
		votes[c]++
	}
	best, count := utils.Tally(votes, moves)
	move := policy.Complete(view, best, u.rng)
	log.Debug().Msgf("%s picks %s with %d of %d votes", player, move, count, u.trees)
	return move, u.metrics.Complete()
}
