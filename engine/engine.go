package engine

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
)

type Engine interface {
	// Run plays a match till a player collects enough tokens or the round limit is reached
	Run() (winner game.PlayerID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// RoundResult is reported whenever a round ends.
type RoundResult struct {
	Round   int
	Winners []game.PlayerID
	Tokens  map[game.PlayerID]int
}

// Observer receives what happens at the table.
type Observer interface {
	// Events reports the outcome of one played move
	Events(player game.PlayerID, move game.Move, events []string)
	RoundOver(result RoundResult)
	// GameOver reports the match winner, or NoPlayer when the round limit ended the match
	GameOver(winner game.PlayerID, tokens map[game.PlayerID]int)
}
