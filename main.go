package main

import (
	"flag"
	"fmt"
	"loveletter/agent"
	"loveletter/engine"
	"loveletter/experiments"
	"loveletter/experiments/metrics"
	"loveletter/game"
	"loveletter/player"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: loveletter <mode> [flags]

modes:
  play      play against bots on this console
  compare   run a bot-vs-bot experiment from a YAML file
  selfplay  let a table of bots play each other
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch mode, args := os.Args[1], os.Args[2:]; mode {
	case "play":
		err = runPlay(args)
	case "compare":
		err = runCompare(args)
	case "selfplay":
		err = runSelfPlay(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	return nil
}

func loadDecks(path string) ([][]game.Card, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open deck file")
	}
	defer f.Close()
	return game.ParseDecks(f)
}

// searchFlags registers the knobs every searching bot shares.
func searchFlags(fs *flag.FlagSet) *metrics.AgentConfig {
	config := &metrics.AgentConfig{}
	fs.IntVar(&config.Iterations, "iterations", 0, "Iterations per move (0 keeps the default)")
	fs.Float64Var(&config.Exploration, "exploration", 0, "UCB exploration constant (0 keeps the default)")
	fs.IntVar(&config.Trees, "trees", 0, "Determinized UCT trees per move")
	fs.IntVar(&config.Samples, "samples", 0, "Minimax determinizations per move")
	fs.IntVar(&config.Goroutines, "goroutines", 0, "Goroutines for Determinized UCT trees")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for bots and deals (0 is random)")
	return config
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	bot := fs.String("bot", "smart-ismcts", "Opponent algorithm: "+strings.Join(agent.Algorithms, ", "))
	players := fs.Int("players", 2, "Players at the table, you included")
	decks := fs.String("decks", "", "File of fixed decks, one round per line")
	level := fs.String("log", "warn", "Log level")
	config := searchFlags(fs)
	fs.Parse(args)

	if err := setupLogging(*level); err != nil {
		return err
	}
	if *players < 2 || *players > game.MaxPlayers {
		return errors.Errorf("cannot seat %d players", *players)
	}
	fixed, err := loadDecks(*decks)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	agents := []agent.Agent{player.NewHuman(line, os.Stdout)}
	for i := 1; i < *players; i++ {
		c := *config
		c.ID, c.Algorithm = i+1, *bot
		if c.Seed != 0 {
			c.Seed += uint64(i)
		}
		a, err := agent.New(c)
		if err != nil {
			return err
		}
		agents = append(agents, a)
	}

	e := engine.LocalEngine(agents,
		engine.WithState(game.NewState(*players, stateOptions(config.Seed, fixed)...)),
		engine.WithObservers(engine.NewConsole(os.Stdout)),
	)

	defer func() {
		if r := recover(); r != nil {
			if r != player.ErrQuit {
				panic(r)
			}
			fmt.Println("Bye.")
		}
	}()
	e.Run()
	return nil
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	path := fs.String("config", "experiment.yaml", "Experiment file")
	out := fs.String("out", "results", "Directory for the CSV records (empty skips storing)")
	decks := fs.String("decks", "", "File of fixed decks, one round per line")
	level := fs.String("log", "info", "Log level")
	fs.Parse(args)

	if err := setupLogging(*level); err != nil {
		return err
	}
	f, err := os.Open(*path)
	if err != nil {
		return errors.Wrap(err, "failed to open experiment")
	}
	defer f.Close()
	exp, err := experiments.Load(f)
	if err != nil {
		return err
	}
	if exp.Decks, err = loadDecks(*decks); err != nil {
		return err
	}

	results, err := experiments.Run(exp, *out)
	if err != nil {
		return err
	}
	results.Render(os.Stdout)
	if results.Dir != "" {
		fmt.Printf("records stored in %s\n", results.Dir)
	}
	return nil
}

func runSelfPlay(args []string) error {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	bots := fs.String("bots", "smart-ismcts,rules", "Comma separated algorithms, one per seat")
	games := fs.Int("games", 10, "Games to play")
	out := fs.String("out", "", "Directory for the CSV records (empty skips storing)")
	decks := fs.String("decks", "", "File of fixed decks, one round per line")
	level := fs.String("log", "info", "Log level")
	config := searchFlags(fs)
	fs.Parse(args)

	if err := setupLogging(*level); err != nil {
		return err
	}

	exp := &experiments.Experiment{Name: "selfplay", Games: *games, Seed: config.Seed}
	matchup := []int{}
	for i, algorithm := range strings.Split(*bots, ",") {
		c := *config
		c.ID, c.Algorithm = i+1, strings.TrimSpace(algorithm)
		if c.Seed != 0 {
			c.Seed += uint64(i)
		}
		exp.Agents = append(exp.Agents, c)
		matchup = append(matchup, c.ID)
	}
	exp.Players = len(matchup)
	exp.Matchups = [][]int{matchup}

	if err := exp.Normalize(); err != nil {
		return err
	}
	var err error
	if exp.Decks, err = loadDecks(*decks); err != nil {
		return err
	}

	results, err := experiments.Run(exp, *out)
	if err != nil {
		return err
	}
	results.Render(os.Stdout)
	return nil
}

func stateOptions(seed uint64, decks [][]game.Card) []game.Option {
	options := []game.Option{}
	if seed != 0 {
		options = append(options, game.WithSeed(seed))
	}
	if len(decks) > 0 {
		options = append(options, game.WithFixedDecks(decks...))
	}
	return options
}
