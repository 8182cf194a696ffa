package player

import (
	"fmt"
	"io"
	"loveletter/experiments/metrics"
	"loveletter/game"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

var (
	ErrSyntax        = errors.New("expected: card [victim] [guess]")
	ErrMissingVictim = errors.New("name a victim")
	ErrMissingGuess  = errors.New("name a card to guess")
	// ErrQuit is raised as a panic when the human closes the prompt.
	ErrQuit = errors.New("human quit")
)

// Prompter reads a line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

var (
	promptColor = color.New(color.FgHiWhite)
	infoColor   = color.New(color.FgCyan)
	warnColor   = color.New(color.FgHiYellow)
)

// Human asks a person for moves on a console and re-prompts until the move
// is legal.
type Human struct {
	prompter Prompter
	out      io.Writer
	history  func(string)
}

// NewHuman prompts through a line editor, keeping accepted moves in its history.
func NewHuman(line *liner.State, out io.Writer) *Human {
	h := NewHumanFrom(line, out)
	h.history = line.AppendHistory
	return h
}

func NewHumanFrom(prompter Prompter, out io.Writer) *Human {
	return &Human{
		prompter: prompter,
		out:      out,
		history:  func(string) {},
	}
}

func (h *Human) Name() string {
	return "human"
}

func (h *Human) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	player := state.ToMove()
	h.describe(state)

	for {
		promptColor.Fprintf(h.out, "%s, your move: ", player)
		input, err := h.prompter.Prompt("")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				panic(ErrQuit)
			}
			panic(errors.Wrap(err, "failed to read move"))
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "help" || input == "?" {
			h.help()
			continue
		}

		move, err := ParseMove(input)
		if err == nil {
			err = check(state, move)
		}
		if err != nil {
			warnColor.Fprintf(h.out, "Invalid move: %v\n", err)
			continue
		}
		h.history(input)
		return move, metrics.SearchMetric{Algorithm: h.Name(), Duration: time.Since(start), Goroutines: 1}
	}
}

// check rejects moves the state would accept but a person should spell out.
func check(state *game.State, move game.Move) error {
	if err := state.Validate(move); err != nil {
		return err
	}
	victims := state.Players().Victims(state.ToMove())
	if move.Card.NeedsVictim() && move.Victim == game.NoPlayer && len(victims) > 0 {
		return errors.Wrapf(ErrMissingVictim, "%s targets one of %v", move.Card, victims)
	}
	if move.Card == game.Guard && move.Victim != game.NoPlayer && move.Guess == game.NoCard {
		return ErrMissingGuess
	}
	return nil
}

// ParseMove reads "card [victim] [guess]". Cards are names or values and
// victims are player numbers, optionally written as p2 or player2.
func ParseMove(input string) (game.Move, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 || len(fields) > 3 {
		return game.Move{}, errors.Wrapf(ErrSyntax, "got %q", input)
	}

	move := game.Move{}
	var err error
	if move.Card, err = parseCard(fields[0]); err != nil {
		return game.Move{}, err
	}
	if len(fields) > 1 {
		if move.Victim, err = parsePlayer(fields[1]); err != nil {
			return game.Move{}, err
		}
	}
	if len(fields) > 2 {
		if move.Guess, err = parseCard(fields[2]); err != nil {
			return game.Move{}, err
		}
	}
	return move, nil
}

func parseCard(field string) (game.Card, error) {
	if value, err := strconv.Atoi(field); err == nil {
		c := game.Card(value)
		if !c.Valid() {
			return game.NoCard, errors.Wrapf(game.ErrUnknownCard, "value %d", value)
		}
		return c, nil
	}
	return game.ParseCard(field)
}

func parsePlayer(field string) (game.PlayerID, error) {
	lower := strings.ToLower(field)
	lower = strings.TrimPrefix(lower, "player")
	lower = strings.TrimPrefix(lower, "p")
	id, err := strconv.Atoi(lower)
	if err != nil || id < 1 || id > game.MaxPlayers {
		return game.NoPlayer, errors.Wrapf(ErrSyntax, "unknown player %q", field)
	}
	return game.PlayerID(id), nil
}

func (h *Human) describe(state *game.State) {
	player := state.ToMove()
	k := state.Knowledge()
	infoColor.Fprintf(h.out, "%s | hand %s | %d cards left\n", state, state.Hand(player), state.CardsLeft())
	for _, fact := range k.Facts(player) {
		infoColor.Fprintf(h.out, "  you know %s holds %s\n", fact.Subject, fact.Card)
	}
	if victims := state.Players().Victims(player); len(victims) > 0 {
		infoColor.Fprintf(h.out, "  targets: %v\n", victims)
	} else {
		infoColor.Fprintln(h.out, "  no one can be targeted")
	}
}

func (h *Human) help() {
	fmt.Fprintln(h.out, "Enter a card, then a victim and a guess when the card needs them:")
	fmt.Fprintln(h.out, "  guard 2 priest | baron p3 | prince 1 | maid")
	fmt.Fprintln(h.out, "Cards may be given by value (1=Guard ... 8=Princess).")
}
