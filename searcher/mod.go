package searcher

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"
	"loveletter/utils"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Searcher chooses a move for the player to move using only what that player
// knows. It never mutates state.
type Searcher interface {
	FindMove(state *game.State) (game.Move, metrics.SearchMetric)
}

// candidates returns the distinct moves considered at the root. The Princess
// is left out while any other card can be played. It panics when the player
// to move has nothing to play.
func candidates(state *game.State) []game.Card {
	moves := state.Moves()
	if len(moves) == 0 {
		panic(errors.Errorf("%s has no legal moves in round %d", state.ToMove(), state.Round()))
	}
	kinds := []game.Card{}
	for _, c := range distinct(moves) {
		if c != game.Princess {
			kinds = append(kinds, c)
		}
	}
	if len(kinds) == 0 {
		return []game.Card{game.Princess}
	}
	return kinds
}

func distinct(moves []game.Card) []game.Card {
	kinds := []game.Card{}
	for _, c := range moves {
		if utils.FindIndex(kinds, c) < 0 {
			kinds = append(kinds, c)
		}
	}
	return kinds
}

// finish resolves the Guard target of a chosen move from the player's
// knowledge, falling back to the policy.
func finish(view policy.View, move game.Move, rng *rand.Rand) game.Move {
	if move.Card == game.Guard && move.Victim == game.NoPlayer {
		return policy.Complete(view, game.Guard, rng)
	}
	return move
}
