package searcher

import (
	"loveletter/game"
	"loveletter/policy"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newState(t *testing.T, setup game.Setup) *game.State {
	t.Helper()
	s, err := game.FromSetup(setup, game.WithSeed(3))
	require.NoError(t, err)
	return s
}

// usedExcept marks every card as used apart from the listed ones.
func usedExcept(cards ...game.Card) game.CardCounts {
	var used game.CardCounts
	for _, c := range game.Cards {
		used[c] = c.MaxCount()
	}
	for _, c := range cards {
		used[c]--
	}
	return used
}

// knownPriest: player 1 has seen player 2's Priest.
func knownPriest() game.Setup {
	return game.Setup{
		Players: 2,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.King}, 2: {game.Priest}},
		Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Priest}},
	}
}

// lastGuard: player 2 must hold the King and the deck is empty, so a Guard
// wins the round and a Baron loses it.
func lastGuard() game.Setup {
	return game.Setup{
		Players: 2,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Baron, game.Guard}, 2: {game.King}},
		Deck:    []game.Card{},
		Used:    usedExcept(game.Baron, game.Guard, game.King),
	}
}

// highCards: every unseen card outranks the Guard player 1 would keep after
// a Baron, so only the Guard has a chance. Guard comes first so that trees
// which find no win at all still lean to it.
func highCards() game.Setup {
	return game.Setup{
		Players: 2,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Baron}, 2: {game.King}},
		Deck:    []game.Card{game.Countess},
		OutCard: game.Princess,
		Used:    usedExcept(game.Baron, game.Guard, game.King, game.Countess, game.Princess),
	}
}

func TestISMCTS(t *testing.T) {
	t.Run("smart search takes the known Priest", func(t *testing.T) {
		s := newState(t, knownPriest())

		move, metric := NewSmartISMCTS(WithIterations(50), WithSeed(1), WithMetrics()).FindMove(s)

		require.Equal(t, game.Move{Card: game.Guard, Victim: 2, Guess: game.Priest}, move)
		require.True(t, metric.Shortcut)

		s.Play(move)
		require.True(t, s.Players().Get(2).Lost, "Guard should eliminate the Priest holder")
	})

	t.Run("never plays the Princess next to the King", func(t *testing.T) {
		setup := game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Princess, game.King}, 2: {game.Priest}},
		}

		for _, searcher := range []Searcher{NewISMCTS(WithIterations(50), WithSeed(1)), NewSmartISMCTS(WithIterations(50), WithSeed(1))} {
			move, _ := searcher.FindMove(newState(t, setup))
			require.Equal(t, game.King, move.Card)
		}
	})

	t.Run("plain search finds the winning Guard", func(t *testing.T) {
		s := newState(t, lastGuard())

		move, metric := NewISMCTS(WithIterations(100), WithSeed(1), WithMetrics()).FindMove(s)

		require.Equal(t, game.Move{Card: game.Guard, Victim: 2, Guess: game.King}, move)
		require.Equal(t, 100, metric.Iterations)
		require.Zero(t, metric.Playouts, "Every simulation ends with the first move")
	})

	t.Run("smart search prefers the only live card", func(t *testing.T) {
		s := newState(t, highCards())

		move, metric := NewSmartISMCTS(WithIterations(300), WithSeed(2), WithMetrics()).FindMove(s)

		require.Equal(t, game.Guard, move.Card)
		require.Equal(t, game.PlayerID(2), move.Victim)
		require.False(t, metric.Shortcut)
		require.Equal(t, 300, metric.Iterations)
	})

	t.Run("does not mutate the searched state", func(t *testing.T) {
		s := newState(t, highCards())
		before := s.Clone()

		NewSmartISMCTS(WithIterations(100), WithSeed(1)).FindMove(s)

		require.Equal(t, before.String(), s.String())
		require.Equal(t, before.Deck(), s.Deck())
		require.Equal(t, before.Hand(2), s.Hand(2))
		require.Equal(t, before.OutCard(), s.OutCard())
	})

	t.Run("moves are always legal", func(t *testing.T) {
		for _, n := range []int{2, 3, 4} {
			s := game.NewState(n, game.WithSeed(uint64(n)))
			s.StartNewRound(game.NoPlayer)
			searcher := NewSmartISMCTS(WithIterations(30), WithSeed(uint64(n)))
			for !s.RoundOver() {
				move, _ := searcher.FindMove(s)
				require.NoError(t, s.Validate(move), "%s in %s", move, s)
				s.Play(move)
			}
		}
	})

	t.Run("panics once the round is over", func(t *testing.T) {
		s := newState(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Princess, game.Guard}, 2: {game.Priest}},
		})
		s.Play(game.Move{Card: game.Princess})

		require.Panics(t, func() {
			NewISMCTS(WithIterations(10)).FindMove(s)
		})
	})
}

func TestRollouts(t *testing.T) {
	t.Run("custom rollout policy is used", func(t *testing.T) {
		calls := 0
		counting := func(view policy.View, rng *rand.Rand) game.Move {
			calls++
			return policy.Random(view, rng)
		}
		s := newState(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
		})

		NewISMCTS(WithIterations(20), WithSeed(1), WithRollout(counting)).FindMove(s)

		require.Positive(t, calls)
	})
}
