package searcher

import (
	"loveletter/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUntriedMoves(t *testing.T) {
	root := newNode(game.NoCard, nil, game.NoPlayer)
	root.addChild(game.Guard, 1)

	t.Run("skips expanded kinds", func(t *testing.T) {
		untried := root.untriedMoves([]game.Card{game.Guard, game.Maid})
		require.Equal(t, []game.Card{game.Maid}, untried)
	})

	t.Run("duplicate copies count once", func(t *testing.T) {
		untried := root.untriedMoves([]game.Card{game.Priest, game.Priest})
		require.Equal(t, []game.Card{game.Priest}, untried)
	})
}

func TestSelectChild(t *testing.T) {
	t.Run("prefers the better win rate", func(t *testing.T) {
		root := newNode(game.NoCard, nil, game.NoPlayer)
		guard := root.addChild(game.Guard, 1)
		maid := root.addChild(game.Maid, 1)
		guard.wins, guard.visits = 8, 10
		maid.wins, maid.visits = 2, 10

		selected := root.selectChild([]game.Card{game.Guard, game.Maid}, 0.7)

		require.Same(t, guard, selected)
	})

	t.Run("ignores children that are not legal", func(t *testing.T) {
		root := newNode(game.NoCard, nil, game.NoPlayer)
		guard := root.addChild(game.Guard, 1)
		maid := root.addChild(game.Maid, 1)
		guard.wins, guard.visits = 8, 10
		maid.wins, maid.visits = 2, 10

		selected := root.selectChild([]game.Card{game.Maid}, 0.7)

		require.Same(t, maid, selected)
		require.Equal(t, 1, guard.avails, "Unavailable child keeps its count")
		require.Equal(t, 2, maid.avails)
	})

	t.Run("explores rarely available children", func(t *testing.T) {
		root := newNode(game.NoCard, nil, game.NoPlayer)
		guard := root.addChild(game.Guard, 1)
		maid := root.addChild(game.Maid, 1)
		guard.wins, guard.visits, guard.avails = 5, 10, 1
		maid.wins, maid.visits, maid.avails = 4, 10, 1000

		selected := root.selectChild([]game.Card{game.Guard, game.Maid}, 0.7)

		require.Same(t, maid, selected)
	})

	t.Run("panics with no legal child", func(t *testing.T) {
		root := newNode(game.NoCard, nil, game.NoPlayer)
		root.addChild(game.Guard, 1).visits = 1

		require.Panics(t, func() {
			root.selectChild([]game.Card{game.King}, 0.7)
		})
	})
}

func TestMostVisited(t *testing.T) {
	root := newNode(game.NoCard, nil, game.NoPlayer)
	maid := root.addChild(game.Maid, 1)
	guard := root.addChild(game.Guard, 1)
	maid.visits, guard.visits = 5, 5

	t.Run("ties go to legal order", func(t *testing.T) {
		require.Same(t, guard, root.mostVisited([]game.Card{game.Guard, game.Maid}))
		require.Same(t, maid, root.mostVisited([]game.Card{game.Maid, game.Guard}))
	})

	t.Run("nil without expanded legal moves", func(t *testing.T) {
		require.Nil(t, root.mostVisited([]game.Card{game.King}))
	})
}

func TestUpdate(t *testing.T) {
	s, err := game.FromSetup(game.Setup{
		Players: 2,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Princess, game.Guard}, 2: {game.Priest}},
	}, game.WithSeed(1))
	require.NoError(t, err)
	s.Play(game.Move{Card: game.Princess})
	require.True(t, s.RoundOver())

	root := newNode(game.NoCard, nil, game.NoPlayer)
	mine := root.addChild(game.Princess, 1)
	for n := mine; n != nil; n = n.parent {
		n.update(s)
	}

	require.Equal(t, 1, root.visits)
	require.Zero(t, root.wins, "Root has no player to credit")
	require.Equal(t, 1, mine.visits)
	require.Zero(t, mine.wins, "Playing the Princess loses")
	require.Contains(t, root.tree(), "\n| [M:Princess W/V/A:    0/   1/   1]")
}
