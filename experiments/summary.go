package experiments

import (
	"fmt"
	"io"
	"loveletter/experiments/metrics"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Standing aggregates how one agent fared over an experiment.
type Standing struct {
	Agent      metrics.AgentConfig
	Games      int
	Wins       int
	Moves      int
	Iterations int
	Thinking   time.Duration
}

func (s Standing) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// Standings orders agents by win rate, then by ID.
func (r *Results) Standings() []Standing {
	byID := map[int]*Standing{}
	for _, config := range r.Experiment.Agents {
		byID[config.ID] = &Standing{Agent: config}
	}

	games := map[string][]int{}
	for _, record := range r.Games {
		games[record.ID.String()] = record.Agents
		for seat, id := range record.Agents {
			s := byID[id]
			s.Games++
			if record.Winner == seat+1 {
				s.Wins++
			}
		}
	}
	for _, record := range r.Moves {
		seats := games[record.Game.String()]
		s := byID[seats[record.Player-1]]
		s.Moves++
		s.Iterations += record.Iterations
		s.Thinking += record.Duration
	}

	standings := make([]Standing, 0, len(byID))
	for _, s := range byID {
		standings = append(standings, *s)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].WinRate() != standings[j].WinRate() {
			return standings[i].WinRate() > standings[j].WinRate()
		}
		return standings[i].Agent.ID < standings[j].Agent.ID
	})
	return standings
}

// Render prints the standings as a table.
func (r *Results) Render(out io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("%s: %d games", r.Experiment.Name, len(r.Games)))
	t.AppendHeader(table.Row{"Agent", "Games", "Wins", "Win %", "Avg iterations", "Avg think"})
	for _, s := range r.Standings() {
		iterations, thinking := 0, time.Duration(0)
		if s.Moves > 0 {
			iterations = s.Iterations / s.Moves
			thinking = s.Thinking / time.Duration(s.Moves)
		}
		t.AppendRow(table.Row{
			s.Agent.String(),
			s.Games,
			s.Wins,
			fmt.Sprintf("%.1f", 100*s.WinRate()),
			iterations,
			thinking.Round(time.Microsecond),
		})
	}
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}
