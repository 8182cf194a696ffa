package policy

import (
	"loveletter/game"

	"golang.org/x/exp/rand"
)

// Policy picks a move for the player to move in a view. Searchers use one
// for expansion and rollouts.
type Policy func(view View, rng *rand.Rand) game.Move

// View is what the player to move knows when choosing a card.
type View struct {
	Player    game.PlayerID
	Moves     []game.Card
	Hand      game.Hand
	Used      game.CardCounts
	Players   game.Players
	Knowledge game.Knowledge
	CardsLeft int
	Unseen    int // Cards in the deck, set aside or in opponents' hands
	Trick     []game.Play
}

func NewView(s *game.State) View {
	player := s.ToMove()
	return View{
		Player:    player,
		Moves:     s.Moves(),
		Hand:      s.Hand(player),
		Used:      s.UsedCards(),
		Players:   s.Players(),
		Knowledge: s.Knowledge(),
		CardsLeft: s.CardsLeft(),
		Unseen:    s.Unseen(player),
		Trick:     s.Trick(),
	}
}

// remaining counts the copies of each kind the player has not seen.
func (v View) remaining() game.CardCounts {
	accounted := v.Used
	for _, c := range v.Hand.Cards() {
		accounted[c]++
	}
	return accounted.Remaining()
}

// victims lists players the player to move may target.
func (v View) victims() []game.PlayerID {
	return v.Players.Victims(v.Player)
}

// seen returns what the player knows about subject.
func (v View) seen(subject game.PlayerID) game.Card {
	return v.Knowledge.Seen(v.Player, subject)
}

// watched lists cards in the player's hand that opponents still in the round have confirmed.
func (v View) watched() []game.Card {
	return v.Knowledge.SeenBy(v.Player, v.Players.LeftPlayers())
}

func (v View) canPlay(c game.Card) bool {
	for _, move := range v.Moves {
		if move == c {
			return true
		}
	}
	return false
}

// sortedMoves returns the distinct legal cards from lowest to highest.
func (v View) sortedMoves() []game.Card {
	sorted := []game.Card{}
	for _, c := range game.Cards {
		if v.canPlay(c) {
			sorted = append(sorted, c)
		}
	}
	return sorted
}

func contains(cards []game.Card, c game.Card) bool {
	for _, card := range cards {
		if card == c {
			return true
		}
	}
	return false
}
