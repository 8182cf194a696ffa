package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Tokens of affection needed to win the match, indexed by player count.
var winThresholds = [MaxPlayers + 1]int{2: 7, 3: 5, 4: 4}

type Option func(s *State)

// WithFixedDecks deals round r from decks[(r-1) % len(decks)] without
// shuffling. The last card of a deck is set aside, the rest are drawn front first.
func WithFixedDecks(decks ...[]Card) Option {
	return func(s *State) {
		if len(decks) > 0 {
			s.decks = decks
		}
	}
}

func WithWinThreshold(tokens int) Option {
	return func(s *State) {
		if tokens > 0 {
			s.threshold = tokens
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// State is the full state of a match: the current round plus the score.
// Hands and knowledge are value arrays indexed by PlayerID so that Clone
// only needs to copy the slices explicitly.
type State struct {
	players   Players
	toMove    PlayerID
	deck      []Card
	outCard   Card
	hands     [MaxPlayers + 1]Hand
	used      CardCounts
	knowledge Knowledge
	trick     []Play
	tricks    [MaxPlayers + 1]int
	winners   []PlayerID // Round winners
	round     int
	roundOver bool
	gameOver  bool
	threshold int
	decks     [][]Card
	rng       *rand.Rand
}

// NewState creates a match for 2 to 4 players. Call StartNewRound to deal.
func NewState(numPlayers int, options ...Option) *State {
	if numPlayers < 2 || numPlayers > MaxPlayers {
		panic(fmt.Sprintf("unsupported number of players: %d", numPlayers))
	}
	s := &State{
		players:   NewPlayers(numPlayers),
		threshold: winThresholds[numPlayers],
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return s
}

// StartNewRound resets round-scoped fields, seats first to lead (or a random
// player when first is NoPlayer and decks are shuffled) and deals.
func (s *State) StartNewRound(first PlayerID) {
	s.round++
	s.roundOver = false
	s.winners = nil
	s.players.Reset()
	if first != NoPlayer {
		s.players.Rotate(first)
	} else if s.decks == nil {
		s.players.Shuffle(s.rng)
	}

	deck := s.dealDeck()
	s.outCard = deck[len(deck)-1]
	s.deck = deck[:len(deck)-1]
	s.hands = [MaxPlayers + 1]Hand{}
	s.used = CardCounts{}
	s.knowledge.Reset()
	s.trick = []Play{}

	for _, id := range s.players.IDs() {
		s.draw(id)
	}
	s.toMove = s.players.Next()
	s.draw(s.toMove)
}

func (s *State) dealDeck() []Card {
	if s.decks != nil {
		fixed := s.decks[(s.round-1)%len(s.decks)]
		deck := make([]Card, len(fixed))
		copy(deck, fixed)
		return deck
	}
	deck := StandardDeck()
	s.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func (s *State) draw(p PlayerID) {
	if len(s.deck) == 0 {
		panic(errors.Errorf("%s cannot draw from an empty deck", p))
	}
	s.hands[p].Add(s.deck[0])
	s.deck = s.deck[1:]
}

// Clone returns a deep copy. The copy shares the random source.
func (s *State) Clone() *State {
	clone := *s
	clone.players = s.players.Clone()
	clone.deck = append([]Card(nil), s.deck...)
	clone.trick = append([]Play(nil), s.trick...)
	clone.winners = append([]PlayerID(nil), s.winners...)
	return &clone
}

// Moves returns the cards the player to move may play.
func (s *State) Moves() []Card {
	if s.roundOver {
		return []Card{}
	}
	hand := s.hands[s.toMove]
	if hand.Contains(Countess) && (hand.Contains(King) || hand.Contains(Prince)) {
		return []Card{Countess}
	}
	return hand.Cards()
}

func (s *State) isMove(c Card) bool {
	for _, move := range s.Moves() {
		if move == c {
			return true
		}
	}
	return false
}

// Validate reports why move cannot be played by the player to move.
func (s *State) Validate(move Move) error {
	if s.roundOver {
		return errors.Wrap(ErrIllegalCard, "round is over")
	}
	if !s.isMove(move.Card) {
		return errors.Wrapf(ErrIllegalCard, "%s cannot play %s holding %s", s.toMove, move.Card, s.hands[s.toMove])
	}

	if move.Guess != NoCard {
		switch {
		case move.Card != Guard:
			return errors.Wrapf(ErrUnexpectedGuess, "%s guessing %s", move.Card, move.Guess)
		case move.Guess == Guard:
			return ErrGuardGuess
		case !move.Guess.Valid():
			return errors.Wrapf(ErrUnknownCard, "guess %d", int(move.Guess))
		}
	}

	if move.Victim == NoPlayer {
		return nil
	}
	if !move.Card.NeedsVictim() {
		return errors.Wrapf(ErrIneligibleVictim, "%s takes no victim", move.Card)
	}
	if move.Victim == s.toMove {
		if move.Card != Prince {
			return errors.Wrapf(ErrIneligibleVictim, "%s cannot target its own player", move.Card)
		}
		return nil
	}
	if s.players.index(move.Victim) < 0 {
		return errors.Wrapf(ErrIneligibleVictim, "unknown player %d", int(move.Victim))
	}
	victim := s.players.Get(move.Victim)
	if victim.Lost {
		return errors.Wrapf(ErrIneligibleVictim, "%s is out of the round", move.Victim)
	}
	if victim.Defence {
		return errors.Wrapf(ErrIneligibleVictim, "%s is protected by the Maid", move.Victim)
	}
	return nil
}

// Play applies move for the player to move and returns the resulting events.
// It panics on a move that fails Validate.
func (s *State) Play(move Move) []string {
	if err := s.Validate(move); err != nil {
		panic(errors.Wrapf(err, "invalid move %s", move))
	}
	actor := s.toMove

	s.players.Get(actor).Defence = false
	s.reconcile(actor, move.Card)
	move.Victim = s.resolveVictim(actor, move)

	s.hands[actor].Remove(move.Card)
	s.used[move.Card]++
	events := resolveEffect(s, actor, move)
	s.trick = append(s.trick, Play{Player: actor, Card: move.Card})

	if winners := s.roundWinners(); winners != nil {
		return append(events, s.finishRound(winners)...)
	}

	s.toMove = s.players.Next()
	s.draw(s.toMove)
	return events
}

// reconcile drops knowledge that goes stale once actor discards c.
func (s *State) reconcile(actor PlayerID, c Card) {
	hand := s.hands[actor]
	if c.MaxCount() == 1 {
		s.knowledge.ForgetCard(c)
	} else if hand.Other(c) != c {
		s.knowledge.ForgetHeld(actor, c)
	}
	// Wrong guesses describe the card held before the draw
	if hand.Held() == c && hand.Other(c) != c {
		s.knowledge.ClearWrongGuesses(actor)
	}
}

func (s *State) resolveVictim(actor PlayerID, move Move) PlayerID {
	if !move.Card.NeedsVictim() {
		return NoPlayer
	}
	if move.Victim != NoPlayer {
		return move.Victim
	}
	victims := s.players.Victims(actor)
	if len(victims) == 0 {
		if move.Card == Prince {
			return actor
		}
		return NoPlayer
	}
	return victims[s.rng.Intn(len(victims))]
}

// roundWinners returns nil while the round goes on.
func (s *State) roundWinners() []PlayerID {
	if s.players.Left() == 1 {
		return s.players.LeftPlayers()
	}
	if len(s.deck) > 0 {
		return nil
	}

	// Highest card wins, then the highest sum of played cards. Exact ties share the round.
	var winners []PlayerID
	bestCard, bestSum := NoCard, -1
	for _, id := range s.players.LeftPlayers() {
		card, sum := s.hands[id].Held(), s.playedSum(id)
		switch {
		case card > bestCard || (card == bestCard && sum > bestSum):
			winners = []PlayerID{id}
			bestCard, bestSum = card, sum
		case card == bestCard && sum == bestSum:
			winners = append(winners, id)
		}
	}
	return winners
}

func (s *State) playedSum(p PlayerID) int {
	sum := 0
	for _, play := range s.trick {
		if play.Player == p {
			sum += play.Card.Value()
		}
	}
	return sum
}

func (s *State) finishRound(winners []PlayerID) []string {
	events := []string{}
	for _, id := range winners {
		s.players.Get(id).WonRound = true
		s.tricks[id]++
		events = append(events, fmt.Sprintf("%s wins round %d", id, s.round))
		if s.tricks[id] >= s.threshold {
			s.gameOver = true
		}
	}
	s.winners = winners
	s.roundOver = true
	return events
}

// eliminate knocks p out of the round; the cards p held count as used.
func (s *State) eliminate(p PlayerID) {
	for _, c := range s.hands[p].Clear() {
		s.used[c]++
	}
	s.players.Kill(p)
	s.knowledge.ForgetSubject(p)
	s.knowledge.ClearWrongGuesses(p)
}

// Result is 1 if player won the round, 0 otherwise.
func (s *State) Result(player PlayerID) float64 {
	for _, id := range s.winners {
		if id == player {
			return 1
		}
	}
	return 0
}

// Winners returns the winners of the finished round.
func (s *State) Winners() []PlayerID {
	return append([]PlayerID(nil), s.winners...)
}

// GameWinner returns the player with the most tokens once the match is over,
// lowest ID first on ties, or NoPlayer while it goes on.
func (s *State) GameWinner() PlayerID {
	if !s.gameOver {
		return NoPlayer
	}
	winner := NoPlayer
	for id := PlayerID(1); int(id) <= s.players.Len(); id++ {
		if s.tricks[id] > s.tricks[winner] {
			winner = id
		}
	}
	return winner
}

func (s *State) ToMove() PlayerID           { return s.toMove }
func (s *State) Players() Players           { return s.players.Clone() }
func (s *State) NumPlayers() int            { return s.players.Len() }
func (s *State) Hand(p PlayerID) Hand       { return s.hands[p] }
func (s *State) Used(c Card) int            { return s.used[c] }
func (s *State) UsedCards() CardCounts      { return s.used }
func (s *State) CardsLeft() int             { return len(s.deck) }
func (s *State) OutCard() Card              { return s.outCard }
func (s *State) TricksTaken(p PlayerID) int { return s.tricks[p] }
func (s *State) Round() int                 { return s.round }
func (s *State) RoundOver() bool            { return s.roundOver }
func (s *State) GameOver() bool             { return s.gameOver }
func (s *State) WinThreshold() int          { return s.threshold }
func (s *State) Knowledge() Knowledge       { return s.knowledge }

func (s *State) Deck() []Card {
	return append([]Card(nil), s.deck...)
}

func (s *State) Trick() []Play {
	return append([]Play(nil), s.trick...)
}

// Unseen counts the cards player cannot account for: the deck, the out card
// and other players' hands.
func (s *State) Unseen(player PlayerID) int {
	return DeckSize - s.used.Total() - s.hands[player].Len()
}

func (s *State) String() string {
	plays := make([]string, len(s.trick))
	for i, play := range s.trick {
		plays[i] = play.String()
	}
	return fmt.Sprintf("Round %d | %s: %s | Trick: [%s]", s.round, s.toMove, s.hands[s.toMove], strings.Join(plays, ", "))
}
