package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AgentConfig describes one contestant of an experiment. Zero values fall
// back to the searcher defaults.
type AgentConfig struct {
	ID          int     `yaml:"id"`
	Algorithm   string  `yaml:"algorithm"`
	Iterations  int     `yaml:"iterations"`
	Exploration float64 `yaml:"exploration"`
	Trees       int     `yaml:"trees"`
	Samples     int     `yaml:"samples"`
	Goroutines  int     `yaml:"goroutines"`
	Seed        uint64  `yaml:"seed"` // Zero draws a random seed
}

func (c AgentConfig) String() string {
	return fmt.Sprintf("%s#%d", c.Algorithm, c.ID)
}

type GameRecord struct {
	ID      uuid.UUID
	Matchup int
	Agents  []int // AgentConfig.ID by seat
	GameMetric
}

type MoveRecord struct {
	Game uuid.UUID // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "algorithm", "iterations", "exploration", "trees", "samples", "goroutines"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Algorithm,
			strconv.Itoa(config.Iterations),
			strconv.FormatFloat(config.Exploration, 'f', -1, 64),
			strconv.Itoa(config.Trees),
			strconv.Itoa(config.Samples),
			strconv.Itoa(config.Goroutines),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "agents", "starting_player", "winner", "rounds", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		agents := make([]string, len(record.Agents))
		for i, id := range record.Agents {
			agents[i] = strconv.Itoa(id)
		}
		rows = append(rows, []string{
			record.ID.String(),
			strconv.Itoa(record.Matchup),
			strings.Join(agents, ";"),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "round", "step", "player", "card", "algorithm", "duration", "iterations", "trees", "samples", "playouts", "shortcut"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Card,
			record.Algorithm,
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Trees),
			strconv.Itoa(record.Samples),
			strconv.Itoa(record.Playouts),
			strconv.FormatBool(record.Shortcut),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
