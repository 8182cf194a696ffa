package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrIllegalCard      = errors.New("card is not a legal move")
	ErrIneligibleVictim = errors.New("victim is not eligible")
	ErrGuardGuess       = errors.New("guard cannot be guessed")
	ErrUnexpectedGuess  = errors.New("only a guard takes a guess")
)

// Move is the intent of the player to move. A zero Victim or Guess means
// "unspecified" and is resolved when the move is played.
type Move struct {
	Card   Card
	Victim PlayerID
	Guess  Card
}

func (m Move) String() string {
	switch {
	case m.Victim != NoPlayer && m.Guess != NoCard:
		return fmt.Sprintf("%s->%s?%s", m.Card, m.Victim, m.Guess)
	case m.Victim != NoPlayer:
		return fmt.Sprintf("%s->%s", m.Card, m.Victim)
	default:
		return m.Card.String()
	}
}

// Play is one entry of the current trick.
type Play struct {
	Player PlayerID
	Card   Card
}

func (p Play) String() string {
	return fmt.Sprintf("%s:%s", p.Player, p.Card)
}
