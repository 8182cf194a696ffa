package searcher

import (
	"loveletter/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	t.Run("trees vote for the only live card", func(t *testing.T) {
		s := newState(t, highCards())

		move, metric := NewUCT(WithIterations(400), WithTrees(4), WithGoroutines(2), WithSeed(5), WithMetrics()).FindMove(s)

		require.Equal(t, game.Guard, move.Card)
		require.Equal(t, game.PlayerID(2), move.Victim)
		require.Equal(t, 4, metric.Trees)
		require.Equal(t, 400, metric.Iterations)
		require.Equal(t, 2, metric.Goroutines)
	})

	t.Run("same seed gives the same vote", func(t *testing.T) {
		s := newState(t, game.Setup{
			Players: 3,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Priest, game.Maid}, 2: {game.Guard}, 3: {game.Baron}},
		})

		first, _ := NewUCT(WithIterations(60), WithTrees(6), WithGoroutines(3), WithSeed(11)).FindMove(s)
		second, _ := NewUCT(WithIterations(60), WithTrees(6), WithGoroutines(1), WithSeed(11)).FindMove(s)

		require.Equal(t, first.Card, second.Card, "Trees own their random sources")
	})

	t.Run("shortcut skips the ensemble", func(t *testing.T) {
		s := newState(t, knownPriest())

		move, metric := NewUCT(WithMetrics()).FindMove(s)

		require.Equal(t, game.Move{Card: game.Guard, Victim: 2, Guess: game.Priest}, move)
		require.True(t, metric.Shortcut)
		require.Zero(t, metric.Trees)
	})

	t.Run("does not mutate the searched state", func(t *testing.T) {
		s := newState(t, highCards())
		before := s.Clone()

		NewUCT(WithIterations(100), WithTrees(5), WithSeed(1)).FindMove(s)

		require.Equal(t, before.String(), s.String())
		require.Equal(t, before.Deck(), s.Deck())
		require.Equal(t, before.Hand(2), s.Hand(2))
	})
}
