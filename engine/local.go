package engine

import (
	"loveletter/agent"
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/meta"
	"time"

	"github.com/rs/zerolog/log"
)

type Local struct {
	state     *game.State
	agents    []agent.Agent // By seat, player 1 first
	observers []Observer
	maxRounds int
}

type Option func(e *Local)

func WithObservers(observers ...Observer) Option {
	return func(e *Local) {
		e.observers = append(e.observers, observers...)
	}
}

func WithMaxRounds(rounds int) Option {
	return func(e *Local) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// WithState replaces the match the engine plays, for fixed decks or seeds.
func WithState(state *game.State) Option {
	return func(e *Local) {
		if state != nil {
			e.state = state
		}
	}
}

// LocalEngine seats agents[i] as player i+1.
func LocalEngine(agents []agent.Agent, options ...Option) *Local {
	if len(agents) < 2 || len(agents) > game.MaxPlayers {
		panic("need two to four agents")
	}

	e := &Local{
		agents:    agents,
		maxRounds: meta.MAX_ROUNDS,
	}
	for _, option := range options {
		option(e)
	}
	if e.state == nil {
		e.state = game.NewState(len(agents))
	}
	if e.state.NumPlayers() != len(agents) {
		panic("number of players does not match number of agents")
	}
	return e
}

func (e *Local) State() *game.State {
	return e.state
}

// Run executes rounds until the match has a winner. The winner of a round
// leads the next one.
func (e *Local) Run() (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	e.state.StartNewRound(game.NoPlayer)
	gameMetric.StartingPlayer = int(e.state.ToMove())
	log.Info().Msgf("%s is starting", e.state.ToMove())

	for {
		moveMetrics = append(moveMetrics, e.playRound(len(moveMetrics))...)
		if e.state.GameOver() || e.state.Round() >= e.maxRounds {
			break
		}
		e.state.StartNewRound(e.state.Winners()[0])
	}

	winner := e.state.GameWinner()
	tokens := e.tokens()
	for _, o := range e.observers {
		o.GameOver(winner, tokens)
	}
	if winner == game.NoPlayer {
		log.Warn().Msgf("stopped after %d rounds without a winner", e.state.Round())
	} else {
		log.Info().Msgf("%s wins the match after %d rounds", winner, e.state.Round())
	}

	gameMetric.Winner = int(winner)
	gameMetric.Rounds = e.state.Round()
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics
}

func (e *Local) playRound(step int) []metrics.MoveMetric {
	moveMetrics := []metrics.MoveMetric{}
	log.Debug().Msgf("round %d dealt: %s", e.state.Round(), e.state)

	for !e.state.RoundOver() {
		player := e.state.ToMove()
		move, searchMetric := e.findMove(player)
		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Round:        e.state.Round(),
			Step:         step,
			Player:       int(player),
			Card:         move.Card.String(),
			SearchMetric: searchMetric,
		})

		events := e.state.Play(move)
		for _, o := range e.observers {
			o.Events(player, move, events)
		}
	}

	result := RoundResult{Round: e.state.Round(), Winners: e.state.Winners(), Tokens: e.tokens()}
	log.Info().Msgf("round %d won by %v", result.Round, result.Winners)
	for _, o := range e.observers {
		o.RoundOver(result)
	}
	return moveMetrics
}

// findMove asks the agent seated as player, replacing an invalid answer with
// its first legal card.
func (e *Local) findMove(player game.PlayerID) (game.Move, metrics.SearchMetric) {
	a := e.agents[player-1]
	move, searchMetric := a.FindMove(e.state)
	if err := e.state.Validate(move); err != nil {
		log.Warn().Err(err).Msgf("%s (%s) returned an invalid move => forcing %s", player, a.Name(), e.state.Moves()[0])
		return game.Move{Card: e.state.Moves()[0]}, searchMetric
	}
	return move, searchMetric
}

func (e *Local) tokens() map[game.PlayerID]int {
	tokens := map[game.PlayerID]int{}
	for _, id := range e.state.Players().IDs() {
		tokens[id] = e.state.TricksTaken(id)
	}
	return tokens
}
