package player

import (
	"bytes"
	"io"
	"loveletter/game"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	lines   []string
	prompts int
}

func (s *scriptedPrompter) Prompt(prompt string) (string, error) {
	s.prompts++
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newState(t *testing.T) *game.State {
	t.Helper()
	s, err := game.FromSetup(game.Setup{
		Players: 2,
		Hands:   map[game.PlayerID][]game.Card{1: {game.Guard, game.Maid}, 2: {game.Priest}},
	}, game.WithSeed(1))
	require.NoError(t, err)
	return s
}

func TestParseMove(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cases := map[string]game.Move{
			"Guard 2 Priest": {Card: game.Guard, Victim: 2, Guess: game.Priest},
			"1 p2 2":         {Card: game.Guard, Victim: 2, Guess: game.Priest},
			"king player3":   {Card: game.King, Victim: 3},
			"  countess ":    {Card: game.Countess},
		}
		for input, want := range cases {
			move, err := ParseMove(input)
			require.NoError(t, err, input)
			require.Equal(t, want, move, input)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]error{
			"":                     ErrSyntax,
			"guard x":              ErrSyntax,
			"guard 9":              ErrSyntax,
			"guard 2 priest extra": ErrSyntax,
			"dragon":               game.ErrUnknownCard,
			"9":                    game.ErrUnknownCard,
			"guard 2 wizard":       game.ErrUnknownCard,
		}
		for input, want := range cases {
			_, err := ParseMove(input)
			require.Equal(t, want, errors.Cause(err), input)
		}
	})
}

func TestHuman(t *testing.T) {
	t.Run("re-prompts until the move is legal", func(t *testing.T) {
		prompter := &scriptedPrompter{lines: []string{
			"",
			"help",
			"bogus",
			"guard",          // No victim
			"guard 2",        // No guess
			"guard 1 priest", // Self
			"guard 2 guard",
			"maid 2",
			"guard 2 priest",
		}}
		var out bytes.Buffer
		h := NewHumanFrom(prompter, &out)

		move, metric := h.FindMove(newState(t))

		require.Equal(t, game.Move{Card: game.Guard, Victim: 2, Guess: game.Priest}, move)
		require.Equal(t, 9, prompter.prompts)
		require.Equal(t, "human", metric.Algorithm)
		require.Contains(t, out.String(), "Invalid move")
		require.Contains(t, out.String(), "guard 2 priest | baron p3")
	})

	t.Run("maid needs nothing else", func(t *testing.T) {
		h := NewHumanFrom(&scriptedPrompter{lines: []string{"maid"}}, io.Discard)

		move, _ := h.FindMove(newState(t))

		require.Equal(t, game.Move{Card: game.Maid}, move)
	})

	t.Run("closing the prompt quits", func(t *testing.T) {
		h := NewHumanFrom(&scriptedPrompter{}, io.Discard)

		require.PanicsWithValue(t, ErrQuit, func() {
			h.FindMove(newState(t))
		})
	})
}
