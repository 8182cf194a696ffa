package game

import (
	"github.com/pkg/errors"
)

var ErrInvalidSetup = errors.New("invalid setup")

// Setup describes a position in the middle of a round. Players are seated
// 1..Players with ToMove leading; ToMove holds two cards, everyone else in
// the round holds one.
type Setup struct {
	Players int
	ToMove  PlayerID
	Hands   map[PlayerID][]Card

	// Deck in draw order. When nil, every card not held, used or set aside
	// is dealt into the deck in standard order.
	Deck    []Card
	OutCard Card
	Used    CardCounts

	Lost      []PlayerID
	Protected []PlayerID
	Seen      []Fact
	Trick     []Play
}

// FromSetup builds a state for the described position.
func FromSetup(setup Setup, options ...Option) (*State, error) {
	s := NewState(setup.Players, options...)
	s.round = 1
	s.trick = append([]Play{}, setup.Trick...)
	s.used = setup.Used
	s.outCard = setup.OutCard

	if setup.ToMove == NoPlayer {
		setup.ToMove = 1
	}
	s.players.Rotate(setup.ToMove)
	for _, id := range setup.Lost {
		if id == setup.ToMove {
			return nil, errors.Wrapf(ErrInvalidSetup, "%s cannot move once out of the round", id)
		}
		s.players.Kill(id)
	}
	for _, id := range setup.Protected {
		s.players.Get(id).Defence = true
	}

	for _, id := range s.players.IDs() {
		want := 1
		if id == setup.ToMove {
			want = 2
		}
		if s.players.Get(id).Lost {
			want = 0
		}
		cards := setup.Hands[id]
		if len(cards) != want {
			return nil, errors.Wrapf(ErrInvalidSetup, "%s must hold %d cards, got %d", id, want, len(cards))
		}
		s.hands[id] = NewHand(cards...)
	}

	if setup.Deck != nil {
		s.deck = append([]Card{}, setup.Deck...)
	} else {
		accounted := s.used
		if s.outCard != NoCard {
			accounted[s.outCard]++
		}
		for _, id := range s.players.LeftPlayers() {
			for _, c := range s.hands[id].Cards() {
				accounted[c]++
			}
		}
		remaining := accounted.Remaining()
		for _, c := range Cards {
			for i := 0; i < remaining[c]; i++ {
				s.deck = append(s.deck, c)
			}
		}
	}

	for _, fact := range setup.Seen {
		s.knowledge.See(fact.Observer, fact.Subject, fact.Card)
	}
	if err := s.checkConservation(); err != nil {
		return nil, err
	}

	// Seat the cursor right after the player to move
	s.toMove = s.players.Next()
	return s, nil
}

func (s *State) checkConservation() error {
	counts := s.used
	counts[s.outCard]++
	for _, c := range s.deck {
		counts[c]++
	}
	for _, id := range s.players.LeftPlayers() {
		for _, c := range s.hands[id].Cards() {
			counts[c]++
		}
	}
	for _, c := range Cards {
		if counts[c] != c.MaxCount() {
			return errors.Wrapf(ErrInvalidSetup, "%d copies of %s, want %d", counts[c], c, c.MaxCount())
		}
	}
	return nil
}
