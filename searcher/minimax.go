package searcher

import (
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/policy"
	"loveletter/utils"
	"math"

	"github.com/rs/zerolog/log"
)

// WIN_SCORE is the terminal score of a win at depth 0. Faster wins and slower
// losses score higher.
const WIN_SCORE = 100

// Minimax runs alpha-beta on sampled determinizations and votes on the move
// each sample prefers. With more than two players the opponents are assumed
// to play together against the root player.
type Minimax struct {
	config
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{config: newConfig(policy.Rules, options)}
}

func (m *Minimax) Name() string {
	return "minimax"
}

func (m *Minimax) FindMove(state *game.State) (game.Move, metrics.SearchMetric) {
	m.metrics.Start(m.Name(), 1)
	player := state.ToMove()
	view := policy.NewView(state)
	moves := candidates(state)

	if len(moves) == 1 {
		m.metrics.SetShortcut(true)
		return policy.Complete(view, moves[0], m.rng), m.metrics.Complete()
	}
	if move, ok := policy.Shortcut(view); ok {
		m.metrics.SetShortcut(true)
		log.Debug().Msgf("%s plays %s without searching", player, move)
		return finish(view, move, m.rng), m.metrics.Complete()
	}

	votes := map[game.Card]int{}
	for i := 0; i < m.samples; i++ {
		determinization := state.CloneAndRandomize(player, true, m.rng)
		_, c := m.alphaBeta(determinization, player, moves, math.MinInt, math.MaxInt, 0)
		votes[c]++
		m.metrics.AddSample()
	}

	best, count := utils.Tally(votes, moves)
	move := policy.Complete(view, best, m.rng)
	log.Debug().Msgf("%s picks %s with %d of %d votes", player, move, count, m.samples)
	return move, m.metrics.Complete()
}

// alphaBeta returns the value of state for root and the card that reaches
// it. legal restricts the moves searched at this node; nil means every move.
func (m *Minimax) alphaBeta(state *game.State, root game.PlayerID, legal []game.Card, alpha, beta, depth int) (int, game.Card) {
	if state.RoundOver() {
		if state.Result(root) > 0 {
			return WIN_SCORE - depth, game.NoCard
		}
		return depth - WIN_SCORE, game.NoCard
	}
	if legal == nil {
		legal = distinct(state.Moves())
	}

	maximizing := state.ToMove() == root
	best := game.NoCard
	value := math.MaxInt
	if maximizing {
		value = math.MinInt
	}
	for _, c := range legal {
		child := state.Clone()
		child.Play(m.move(child, c))
		score, _ := m.alphaBeta(child, root, nil, alpha, beta, depth+1)

		if maximizing {
			if score > value {
				value, best = score, c
			}
			alpha = max(alpha, value)
		} else {
			if score < value {
				value, best = score, c
			}
			beta = min(beta, value)
		}
		if beta <= alpha {
			break
		}
	}
	return value, best
}

// move plays c, naming a confirmed card when c is a Guard. Anything left
// open is drawn when the move is played.
func (m *Minimax) move(state *game.State, c game.Card) game.Move {
	if c != game.Guard {
		return game.Move{Card: c}
	}
	victim, known := policy.KnownTarget(policy.NewView(state))
	return game.Move{Card: game.Guard, Victim: victim, Guess: known}
}
