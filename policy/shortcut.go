package policy

import (
	"loveletter/game"
	"loveletter/meta"
)

// Shortcut returns an obvious move that needs no search. Fields it leaves at
// zero are resolved when the move is played.
func Shortcut(view View) (game.Move, bool) {
	if len(view.Moves) == 0 {
		return game.Move{}, false
	}
	if len(view.Moves) == 1 {
		return knownMove(view, view.Moves[0]), true
	}

	victim, known := KnownTarget(view)
	if view.canPlay(game.Guard) && victim != game.NoPlayer {
		return game.Move{Card: game.Guard, Victim: victim, Guess: known}, true
	}

	for _, victim := range view.victims() {
		known := view.seen(victim)
		if known == game.NoCard {
			continue
		}
		if view.canPlay(game.Baron) && view.Hand.Other(game.Baron) > known {
			return game.Move{Card: game.Baron, Victim: victim}, true
		}
		if known == game.Princess && view.canPlay(game.Prince) {
			return game.Move{Card: game.Prince, Victim: victim}, true
		}
	}

	if view.Unseen <= meta.ENDGAME_CARDS {
		return knownMove(view, view.Hand.Min()), true
	}

	if view.Hand.Contains(game.Princess) {
		return knownMove(view, view.Hand.Other(game.Princess)), true
	}

	for _, c := range view.Moves {
		if view.Hand.Count(c) == 2 {
			return knownMove(view, c), true
		}
	}

	return game.Move{}, false
}

// knownMove plays c against a confirmed target when there is one.
func knownMove(view View, c game.Card) game.Move {
	if c == game.Guard {
		victim, known := KnownTarget(view)
		return game.Move{Card: game.Guard, Victim: victim, Guess: known}
	}
	return game.Move{Card: c}
}
