package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// resolveEffect applies the played card. The card has already left the
// actor's hand and been counted as used; move.Victim is resolved.
func resolveEffect(s *State, actor PlayerID, move Move) []string {
	victim := move.Victim
	switch move.Card {
	case Princess:
		s.eliminate(actor)
		return []string{fmt.Sprintf("%s plays Princess and leaves the round", actor)}

	case Countess:
		return []string{fmt.Sprintf("%s plays Countess", actor)}

	case King:
		if victim == NoPlayer || victim == actor {
			return []string{fmt.Sprintf("%s plays King with no effect", actor)}
		}
		mine, theirs := s.hands[actor].Held(), s.hands[victim].Held()
		s.hands[actor] = NewHand(theirs)
		s.hands[victim] = NewHand(mine)
		s.knowledge.exchange(actor, victim, mine, theirs)
		return []string{fmt.Sprintf("%s plays King and swaps hands with %s", actor, victim)}

	case Prince:
		if victim == NoPlayer {
			victim = actor
		}
		return princeEffect(s, actor, victim)

	case Maid:
		s.players.Get(actor).Defence = true
		return []string{fmt.Sprintf("%s plays Maid and is protected until their next turn", actor)}

	case Baron:
		if victim == NoPlayer || victim == actor {
			return []string{fmt.Sprintf("%s plays Baron with no effect", actor)}
		}
		mine, theirs := s.hands[actor].Held(), s.hands[victim].Held()
		events := []string{fmt.Sprintf("%s plays Baron against %s", actor, victim)}
		switch {
		case mine > theirs:
			s.eliminate(victim)
			return append(events, fmt.Sprintf("%s knocks out %s via Baron", actor, victim))
		case mine < theirs:
			s.eliminate(actor)
			return append(events, fmt.Sprintf("%s knocks out %s via Baron", victim, actor))
		default:
			s.knowledge.See(actor, victim, theirs)
			s.knowledge.See(victim, actor, mine)
			return append(events, "Equal cards, nothing happens")
		}

	case Priest:
		if victim == NoPlayer || victim == actor {
			return []string{fmt.Sprintf("%s plays Priest with no effect", actor)}
		}
		s.knowledge.See(actor, victim, s.hands[victim].Held())
		return []string{fmt.Sprintf("%s plays Priest and looks at the hand of %s", actor, victim)}

	case Guard:
		if victim == NoPlayer || victim == actor {
			return []string{fmt.Sprintf("%s plays Guard with no effect", actor)}
		}
		guess := move.Guess
		if guess == NoCard {
			guess = s.inferGuess(actor, victim)
		}
		if s.hands[victim].Held() == guess {
			s.eliminate(victim)
			return []string{fmt.Sprintf("%s knocks out %s via Guard guessing %s", actor, victim, guess)}
		}
		s.knowledge.AddWrongGuess(victim, guess)
		return []string{fmt.Sprintf("%s plays Guard against %s and wrongly guesses %s", actor, victim, guess)}

	default:
		panic(errors.Wrapf(ErrUnknownCard, "cannot resolve %d", int(move.Card)))
	}
}

func princeEffect(s *State, actor, target PlayerID) []string {
	discarded := s.hands[target].Held()
	s.hands[target].Clear()
	s.used[discarded]++
	s.knowledge.ForgetSubject(target)
	s.knowledge.ClearWrongGuesses(target)

	events := []string{}
	if target == actor {
		events = append(events, fmt.Sprintf("%s plays Prince on themselves and discards %s", actor, discarded))
	} else {
		events = append(events, fmt.Sprintf("%s plays Prince and %s discards %s", actor, target, discarded))
	}

	if discarded == Princess {
		s.players.Kill(target)
		return append(events, fmt.Sprintf("%s discards the Princess and leaves the round", target))
	}

	// The card set aside at the start of the round becomes the last card.
	if len(s.deck) == 0 {
		if s.outCard == NoCard {
			panic(errors.Errorf("%s must draw but the deck and the out card are gone", target))
		}
		s.deck = append(s.deck, s.outCard)
		s.outCard = NoCard
	}
	s.draw(target)
	return events
}

func (s *State) inferGuess(actor, victim PlayerID) Card {
	return InferGuess(s.used, s.hands[actor], s.knowledge.WrongGuesses(victim), playedCountess(s.trick, victim))
}

func playedCountess(trick []Play, p PlayerID) bool {
	for _, play := range trick {
		if play.Player == p && play.Card == Countess {
			return true
		}
	}
	return false
}

// InferGuess picks the non-Guard card a Guard should name: King or Prince when
// the victim has discarded the Countess, otherwise the kind with the most
// copies not yet accounted for, the higher rank on ties.
func InferGuess(used CardCounts, hand Hand, wrong CardCounts, victimPlayedCountess bool) Card {
	accounted := used
	for _, c := range hand.Cards() {
		accounted[c]++
	}
	for _, c := range Cards {
		accounted[c] += wrong[c]
	}
	remaining := accounted.Remaining()

	if victimPlayedCountess {
		if remaining[King] > 0 {
			return King
		}
		if remaining[Prince] > 0 {
			return Prince
		}
	}

	best := NoCard
	for i := len(Cards) - 1; i >= 0; i-- {
		c := Cards[i]
		if c == Guard {
			continue
		}
		if best == NoCard || remaining[c] > remaining[best] {
			best = c
		}
	}
	return best
}
