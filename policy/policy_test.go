package policy

import (
	"loveletter/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func viewOf(t *testing.T, setup game.Setup) View {
	t.Helper()
	s, err := game.FromSetup(setup, game.WithSeed(1))
	require.NoError(t, err)
	return NewView(s)
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

func TestShortcut(t *testing.T) {
	t.Run("guard on a known card", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.King}, 2: {game.Priest}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Priest}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Move{Card: game.Guard, Victim: 2, Guess: game.Priest}, move)
	})

	t.Run("never the princess while the king is held", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Princess, game.King}, 2: {game.Priest}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Move{Card: game.King}, move, "Victim is left for the game to resolve")
	})

	t.Run("prince against a known princess", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Prince, game.King}, 2: {game.Princess}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Princess}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Move{Card: game.Prince, Victim: 2}, move)
	})

	t.Run("baron against a known lower card", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Baron, game.King}, 2: {game.Priest}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Priest}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Move{Card: game.Baron, Victim: 2}, move)
	})

	t.Run("endgame plays the minimum", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.King, game.Maid}, 2: {game.Guard}},
			Used:    usedExcept(game.King, game.Maid, game.Guard, game.Priest),
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Maid, move.Card)
	})

	t.Run("a pair plays either copy", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Priest, game.Priest}, 2: {game.Guard}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Priest, move.Card)
	})

	t.Run("single legal move", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Countess, game.King}, 2: {game.Guard}},
		})

		move, ok := Shortcut(view)

		require.True(t, ok)
		require.Equal(t, game.Countess, move.Card)
	})

	t.Run("no shortcut when the choice is open", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
		})

		_, ok := Shortcut(view)

		require.False(t, ok)
	})
}

func TestOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("priest before guard", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Priest}, 2: {game.Maid}},
		})

		move := Optimal(view, rng)

		require.Equal(t, game.Move{Card: game.Priest, Victim: 2}, move)
	})

	t.Run("baron with good odds", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Baron, game.Countess}, 2: {game.Maid}},
		})

		move := Optimal(view, rng)

		require.Equal(t, game.Baron, move.Card)
		require.Equal(t, game.PlayerID(2), move.Victim)
	})

	t.Run("no baron against an opponent known to beat the kept card", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Baron, game.Countess}, 2: {game.Princess}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Princess}},
		})

		require.Equal(t, game.Move{Card: game.Countess}, Optimal(view, rng))
		require.Equal(t, game.Countess, Rules(view, rng).Card)
	})

	t.Run("maid over guard early in the round", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
		})

		require.Equal(t, game.Move{Card: game.Maid}, Optimal(view, rng))
	})

	t.Run("guard over maid late in the round", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
			Deck:    []game.Card{game.Princess, game.King},
			Used:    usedExcept(game.Guard, game.Maid, game.Priest, game.Princess, game.King),
		})

		move := Optimal(view, rng)

		require.Equal(t, game.Guard, move.Card)
		require.Equal(t, game.PlayerID(2), move.Victim)
		require.NotEqual(t, game.Guard, move.Guess)
	})

	t.Run("watched card is given away", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Maid, game.Prince}, 2: {game.Priest}},
			Seen:    []game.Fact{{Observer: 2, Subject: 1, Card: game.Prince}},
		})

		require.Equal(t, game.Maid, Optimal(view, rng).Card, "Maid should shield a watched Prince")
	})

	t.Run("protected opponents", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players:   2,
			Hands:     map[game.PlayerID][]game.Card{1: {game.Guard, game.Priest}, 2: {game.Maid}},
			Protected: []game.PlayerID{2},
		})

		move := Optimal(view, rng)

		require.Equal(t, game.Move{Card: game.Priest}, move, "Nobody can be targeted")
	})

	t.Run("never the princess", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Princess, game.Baron}, 2: {game.Maid}},
		})

		require.Equal(t, game.Baron, Optimal(view, rng).Card)
	})
}

func TestTargets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("guess follows a discarded countess", func(t *testing.T) {
		var used game.CardCounts
		used[game.Countess] = 1
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
			Used:    used,
			Trick:   []game.Play{{Player: 2, Card: game.Countess}},
		})

		require.Equal(t, game.King, GuessFor(view, 2))
	})

	t.Run("known guards are not targeted", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 2,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Guard}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Guard}},
		})

		victim, _ := KnownTarget(view)
		require.Equal(t, game.NoPlayer, victim)
	})

	t.Run("priest looks at unknown hands first", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 3,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Priest, game.Maid}, 2: {game.Guard}, 3: {game.Baron}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Guard}},
		})

		for i := 0; i < 10; i++ {
			require.Equal(t, game.PlayerID(3), ChooseVictim(view, game.Priest, rng))
		}
	})

	t.Run("baron avoids opponents known to beat the kept card", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players: 3,
			Hands:   map[game.PlayerID][]game.Card{1: {game.Baron, game.Countess}, 2: {game.Princess}, 3: {game.Maid}},
			Seen:    []game.Fact{{Observer: 1, Subject: 2, Card: game.Princess}},
		})

		for i := 0; i < 10; i++ {
			require.Equal(t, game.PlayerID(3), ChooseVictim(view, game.Baron, rng))
		}
	})

	t.Run("protected and eliminated players are skipped", func(t *testing.T) {
		view := viewOf(t, game.Setup{
			Players:   4,
			Hands:     map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 3: {game.Baron}, 4: {game.Priest}},
			Used:      game.CardCounts{game.Guard: 1},
			Lost:      []game.PlayerID{2},
			Protected: []game.PlayerID{3},
		})

		for i := 0; i < 10; i++ {
			require.Equal(t, game.PlayerID(4), ChooseVictim(view, game.Guard, rng))
		}
	})
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	view := viewOf(t, game.Setup{
		Players: 3,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}, 3: {game.Baron}},
	})

	for i := 0; i < 50; i++ {
		move := Random(view, rng)
		require.Contains(t, view.Moves, move.Card)
		if move.Card == game.Guard {
			require.NotEqual(t, game.NoPlayer, move.Victim)
			require.NotEqual(t, game.Guard, move.Guess)
		} else {
			require.Equal(t, game.NoPlayer, move.Victim, "Maid takes no victim")
		}
	}
}
