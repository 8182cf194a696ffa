package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Card is a card kind. Cards are equal by kind and ordered by value.
type Card int

const (
	NoCard Card = iota
	Guard
	Priest
	Baron
	Maid
	Prince
	King
	Countess
	Princess
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 16

// Cards lists every card kind from lowest to highest value.
var Cards = []Card{Guard, Priest, Baron, Maid, Prince, King, Countess, Princess}

var ErrUnknownCard = errors.New("unknown card")

var cardNames = [...]string{
	NoCard:   "None",
	Guard:    "Guard",
	Priest:   "Priest",
	Baron:    "Baron",
	Maid:     "Maid",
	Prince:   "Prince",
	King:     "King",
	Countess: "Countess",
	Princess: "Princess",
}

var maxCounts = [...]int{
	NoCard:   0,
	Guard:    5,
	Priest:   2,
	Baron:    2,
	Maid:     2,
	Prince:   2,
	King:     1,
	Countess: 1,
	Princess: 1,
}

// Value returns the rank of the card (Guard=1 ... Princess=8).
func (c Card) Value() int {
	return int(c)
}

// MaxCount returns the number of copies of the card in a standard deck.
func (c Card) MaxCount() int {
	if !c.Valid() {
		return 0
	}
	return maxCounts[c]
}

// Valid reports whether c is one of the eight card kinds.
func (c Card) Valid() bool {
	return c >= Guard && c <= Princess
}

// NeedsVictim reports whether the card's effect targets another player.
func (c Card) NeedsVictim() bool {
	switch c {
	case King, Prince, Baron, Priest, Guard:
		return true
	default:
		return false
	}
}

func (c Card) String() string {
	if c < NoCard || int(c) >= len(cardNames) {
		return "Card(?)"
	}
	return cardNames[c]
}

// ParseCard parses a case-insensitive card name.
func ParseCard(name string) (Card, error) {
	name = strings.TrimSpace(name)
	for _, c := range Cards {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return NoCard, errors.Wrapf(ErrUnknownCard, "%q", name)
}

// StandardDeck returns the unshuffled 16-card deck.
func StandardDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, c := range Cards {
		for i := 0; i < c.MaxCount(); i++ {
			deck = append(deck, c)
		}
	}
	return deck
}

// CardCounts is a multiset of card kinds indexed by Card.
type CardCounts [Princess + 1]int

// Total returns the number of cards in the multiset.
func (cc CardCounts) Total() int {
	total := 0
	for _, c := range Cards {
		total += cc[c]
	}
	return total
}

// Remaining returns, for each kind, MaxCount minus the count in cc.
func (cc CardCounts) Remaining() CardCounts {
	var rest CardCounts
	for _, c := range Cards {
		rest[c] = c.MaxCount() - cc[c]
	}
	return rest
}
