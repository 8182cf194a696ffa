package experiments

import (
	"io"
	"loveletter/agent"
	"loveletter/engine"
	"loveletter/experiments/metrics"
	"loveletter/game"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const NumGames = 30 // Per matchup unless the experiment says otherwise

var ErrInvalidExperiment = errors.New("invalid experiment")

// Experiment is a bot-vs-bot comparison read from YAML:
//
//	name: smart-vs-plain
//	players: 2
//	games: 20
//	agents:
//	  - {id: 1, algorithm: ismcts, iterations: 500}
//	  - {id: 2, algorithm: smart-ismcts, iterations: 500}
//	matchups: [[1, 2], [2, 1]]
type Experiment struct {
	Name         string                `yaml:"name"`
	Players      int                   `yaml:"players"`
	Games        int                   `yaml:"games"`
	WinThreshold int                   `yaml:"win_threshold"` // Zero keeps the standard threshold
	MaxRounds    int                   `yaml:"max_rounds"`
	Seed         uint64                `yaml:"seed"` // Zero deals random games
	Decks        [][]game.Card         `yaml:"-"`
	Agents       []metrics.AgentConfig `yaml:"agents"`
	// Agent IDs by seat. Left empty with two players, every pair plays in both seat orders.
	Matchups [][]int `yaml:"matchups"`
}

// Load decodes an experiment and fills in its defaults.
func Load(r io.Reader) (*Experiment, error) {
	exp := &Experiment{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(exp); err != nil {
		return nil, errors.Wrap(err, "failed to decode experiment")
	}
	if err := exp.Normalize(); err != nil {
		return nil, err
	}
	return exp, nil
}

// Normalize fills in defaults and checks that every matchup can be seated.
func (exp *Experiment) Normalize() error {
	if exp.Name == "" {
		exp.Name = "compare"
	}
	if exp.Players == 0 {
		exp.Players = 2
	}
	if exp.Games <= 0 {
		exp.Games = NumGames
	}
	if exp.Players < 2 || exp.Players > game.MaxPlayers {
		return errors.Wrapf(ErrInvalidExperiment, "%d players", exp.Players)
	}

	known := map[int]bool{}
	for _, config := range exp.Agents {
		if known[config.ID] {
			return errors.Wrapf(ErrInvalidExperiment, "duplicate agent id %d", config.ID)
		}
		known[config.ID] = true
		if _, err := agent.New(config); err != nil {
			return errors.Wrapf(err, "agent %d", config.ID)
		}
	}

	if len(exp.Matchups) == 0 {
		if exp.Players != 2 {
			return errors.Wrap(ErrInvalidExperiment, "matchups are required for more than two players")
		}
		for i := range exp.Agents {
			for j := i + 1; j < len(exp.Agents); j++ {
				a, b := exp.Agents[i].ID, exp.Agents[j].ID
				exp.Matchups = append(exp.Matchups, []int{a, b}, []int{b, a})
			}
		}
	}
	if len(exp.Matchups) == 0 {
		return errors.Wrap(ErrInvalidExperiment, "nothing to play")
	}
	for i, matchup := range exp.Matchups {
		if len(matchup) != exp.Players {
			return errors.Wrapf(ErrInvalidExperiment, "matchup %d seats %d agents for %d players", i+1, len(matchup), exp.Players)
		}
		for _, id := range matchup {
			if !known[id] {
				return errors.Wrapf(ErrInvalidExperiment, "matchup %d names unknown agent %d", i+1, id)
			}
		}
	}
	return nil
}

func (exp *Experiment) config(id int) metrics.AgentConfig {
	for _, config := range exp.Agents {
		if config.ID == id {
			return config
		}
	}
	panic("unknown agent")
}

// Results holds every record of a finished experiment.
type Results struct {
	Experiment *Experiment
	Games      []metrics.GameRecord
	Moves      []metrics.MoveRecord
	Dir        string // Where the CSVs were written, empty if nothing was stored
}

// Run plays every matchup of exp and stores the records below root. An empty
// root skips storing.
func Run(exp *Experiment, root string) (*Results, error) {
	results := &Results{Experiment: exp}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.Matchups {
		log.Info().Msgf("starting matchup %d of %d with agents %v...", mi+1, len(exp.Matchups), matchup)

		for i := 0; i < exp.Games; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.Matchups), i+1, exp.Games)

			winner, gameMetric, moveMetrics, err := exp.runGame(matchup, mi*exp.Games+i)
			if err != nil {
				return nil, err
			}
			id := uuid.New()
			results.Games = append(results.Games, metrics.GameRecord{
				ID:         id,
				Matchup:    mi + 1,
				Agents:     matchup,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.Matchups), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.Matchups))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if root == "" {
		return results, nil
	}
	dir, err := store(exp, results, root)
	if err != nil {
		return nil, err
	}
	results.Dir = dir
	return results, nil
}

// runGame plays one match with a fresh agent per seat. The game index offsets
// every seed so games of a seeded experiment differ but replay identically.
func (exp *Experiment) runGame(matchup []int, index int) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(matchup))
	for seat, id := range matchup {
		config := exp.config(id)
		if config.Seed != 0 {
			config.Seed += uint64(index)
		}
		a, err := agent.New(config)
		if err != nil {
			return game.NoPlayer, metrics.GameMetric{}, nil, err
		}
		agents[seat] = a
	}

	options := []game.Option{}
	if exp.Seed != 0 {
		options = append(options, game.WithSeed(exp.Seed+uint64(index)))
	}
	if exp.WinThreshold > 0 {
		options = append(options, game.WithWinThreshold(exp.WinThreshold))
	}
	if len(exp.Decks) > 0 {
		options = append(options, game.WithFixedDecks(exp.Decks...))
	}

	e := engine.LocalEngine(agents,
		engine.WithState(game.NewState(exp.Players, options...)),
		engine.WithMaxRounds(exp.MaxRounds),
		engine.WithObservers(engine.NewLogger(log.Logger)),
	)
	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func store(exp *Experiment, results *Results, root string) (string, error) {
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	if err := writer.WriteAgentConfigs(exp.Agents); err != nil {
		return "", errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
