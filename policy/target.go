package policy

import (
	"loveletter/game"

	"golang.org/x/exp/rand"
)

// KnownTarget returns an eligible opponent whose card the player has
// confirmed, and that card. Guards are skipped since they cannot be guessed.
func KnownTarget(view View) (game.PlayerID, game.Card) {
	for _, victim := range view.victims() {
		if c := view.seen(victim); c != game.NoCard && c != game.Guard {
			return victim, c
		}
	}
	return game.NoPlayer, game.NoCard
}

// GuessFor returns the card a Guard should name against victim.
func GuessFor(view View, victim game.PlayerID) game.Card {
	if c := view.seen(victim); c != game.NoCard && c != game.Guard {
		return c
	}
	countess := false
	for _, play := range view.Trick {
		if play.Player == victim && play.Card == game.Countess {
			countess = true
		}
	}
	return game.InferGuess(view.Used, view.Hand, view.Knowledge.WrongGuesses(victim), countess)
}

// ChooseVictim picks a target for c, preferring opponents whose card makes
// the play decisive. It returns NoPlayer when nobody can be targeted or c
// takes no victim.
func ChooseVictim(view View, c game.Card, rng *rand.Rand) game.PlayerID {
	if !c.NeedsVictim() {
		return game.NoPlayer
	}
	victims := view.victims()
	if len(victims) == 0 {
		return game.NoPlayer
	}

	kept := view.Hand.Other(c)
	for _, victim := range victims {
		known := view.seen(victim)
		if known == game.NoCard {
			continue
		}
		switch {
		case c == game.Guard && known != game.Guard:
			return victim
		case c == game.Baron && kept > known:
			return victim
		case c == game.Prince && known == game.Princess:
			return victim
		}
	}

	if c == game.Baron {
		if safe := baronVictims(view, kept); len(safe) > 0 {
			victims = safe
		}
	}

	// A Priest is wasted on a card already known
	if c == game.Priest {
		unknown := []game.PlayerID{}
		for _, victim := range victims {
			if view.seen(victim) == game.NoCard {
				unknown = append(unknown, victim)
			}
		}
		if len(unknown) > 0 {
			victims = unknown
		}
	}
	return victims[rng.Intn(len(victims))]
}

// Complete fills in the victim and guess of a card choice.
func Complete(view View, c game.Card, rng *rand.Rand) game.Move {
	move := game.Move{Card: c, Victim: ChooseVictim(view, c, rng)}
	if c == game.Guard && move.Victim != game.NoPlayer {
		move.Guess = GuessFor(view, move.Victim)
	}
	return move
}

// baronVictims lists eligible opponents not known to hold kept or better.
func baronVictims(view View, kept game.Card) []game.PlayerID {
	victims := []game.PlayerID{}
	for _, victim := range view.victims() {
		if known := view.seen(victim); known == game.NoCard || known < kept {
			victims = append(victims, victim)
		}
	}
	return victims
}
