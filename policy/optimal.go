package policy

import (
	"loveletter/game"
	"loveletter/meta"

	"golang.org/x/exp/rand"
)

// Optimal plays the heuristic ladder: forced and decisive moves first, then
// a Baron with good odds, cheap information and finally the lowest safe card.
func Optimal(view View, rng *rand.Rand) game.Move {
	if len(view.Moves) == 0 {
		panic("no legal moves")
	}
	if len(view.Moves) == 1 {
		return Complete(view, view.Moves[0], rng)
	}

	moves := view.sortedMoves()
	if len(moves) == 1 { // A pair
		return Complete(view, moves[0], rng)
	}
	if contains(moves, game.Princess) {
		return Complete(view, view.Hand.Other(game.Princess), rng)
	}
	low, high := moves[0], moves[1]
	remaining := view.remaining()
	watched := view.watched()
	guardsLeft := remaining[game.Guard] > 0

	if len(view.victims()) == 0 {
		return Complete(view, protectedOpponents(view, low, high, guardsLeft, watched), rng)
	}

	if victim, known := KnownTarget(view); victim != game.NoPlayer && view.canPlay(game.Guard) {
		return game.Move{Card: game.Guard, Victim: victim, Guess: known}
	}

	for _, victim := range view.victims() {
		known := view.seen(victim)
		if known == game.NoCard {
			continue
		}
		if view.canPlay(game.Baron) && view.Hand.Other(game.Baron) > known {
			return game.Move{Card: game.Baron, Victim: victim}
		}
		if known == game.Princess && view.canPlay(game.Prince) {
			return game.Move{Card: game.Prince, Victim: victim}
		}
	}

	if view.canPlay(game.Baron) {
		kept := view.Hand.Other(game.Baron)
		if len(baronVictims(view, kept)) == 0 {
			// Every opponent is known to match or beat the kept card
			if view.canPlay(kept) {
				return Complete(view, kept, rng)
			}
		} else if baronOdds(remaining, kept) >= meta.BARON_WIN_PROBABILITY {
			return Complete(view, game.Baron, rng)
		}
	}

	if low == game.Guard && high == game.Priest {
		return Complete(view, game.Priest, rng)
	}

	// A card an opponent has confirmed costs nothing to give away
	if contains(watched, low) && guardsLeft {
		return Complete(view, low, rng)
	}
	if contains(watched, high) && guardsLeft {
		if low == game.Maid {
			return Complete(view, game.Maid, rng)
		}
		return Complete(view, high, rng)
	}

	if low == game.Guard && high == game.Maid {
		if view.CardsLeft <= meta.MAID_GUARD_CARDS_LEFT {
			return Complete(view, game.Guard, rng)
		}
		return Complete(view, game.Maid, rng)
	}

	return Complete(view, low, rng)
}

// protectedOpponents picks a card when every opponent is behind a Maid.
func protectedOpponents(view View, low, high game.Card, guardsLeft bool, watched []game.Card) game.Card {
	switch {
	case low == game.Guard && high == game.Priest:
		if guardsLeft && view.CardsLeft <= 1 {
			return game.Guard
		}
		return game.Priest
	case low == game.Guard && high == game.Maid:
		if guardsLeft && contains(watched, game.Maid) {
			return game.Maid
		}
		if view.CardsLeft <= 1 {
			return game.Guard
		}
		return game.Maid
	case view.canPlay(game.Prince) && guardsLeft && contains(watched, game.Prince):
		return game.Prince
	case view.canPlay(game.King) && guardsLeft && contains(watched, game.King):
		return game.King
	default:
		return low
	}
}

// baronOdds is the share of unseen cards ranked below kept.
func baronOdds(remaining game.CardCounts, kept game.Card) float64 {
	total := remaining.Total()
	if total == 0 {
		return 0
	}
	lower := 0
	for _, c := range game.Cards {
		if c < kept {
			lower += remaining[c]
		}
	}
	return float64(lower) / float64(total)
}

// Random plays a uniformly random legal card against a random victim.
func Random(view View, rng *rand.Rand) game.Move {
	if len(view.Moves) == 0 {
		panic("no legal moves")
	}
	c := view.Moves[rng.Intn(len(view.Moves))]
	move := game.Move{Card: c}
	if victims := view.victims(); c.NeedsVictim() && len(victims) > 0 {
		move.Victim = victims[rng.Intn(len(victims))]
	}
	if c == game.Guard && move.Victim != game.NoPlayer {
		move.Guess = game.Cards[1+rng.Intn(len(game.Cards)-1)]
	}
	return move
}

// Rules plays the shortcut when there is one and the full ladder otherwise.
func Rules(view View, rng *rand.Rand) game.Move {
	if move, ok := Shortcut(view); ok {
		return move
	}
	return Optimal(view, rng)
}
