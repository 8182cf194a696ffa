package engine

import (
	"fmt"
	"io"
	"loveletter/game"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Console narrates the match for people at the table.
type Console struct {
	out io.Writer
}

var (
	eventColor = color.New(color.FgWhite)
	roundColor = color.New(color.FgHiGreen, color.Bold)
	matchColor = color.New(color.FgHiMagenta, color.Bold)
)

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Events(player game.PlayerID, move game.Move, events []string) {
	for _, event := range events {
		eventColor.Fprintf(c.out, "  %s\n", event)
	}
}

func (c *Console) RoundOver(result RoundResult) {
	roundColor.Fprintf(c.out, "Round %d goes to %s | tokens %s\n", result.Round, joinPlayers(result.Winners), formatTokens(result.Tokens))
}

func (c *Console) GameOver(winner game.PlayerID, tokens map[game.PlayerID]int) {
	if winner == game.NoPlayer {
		matchColor.Fprintf(c.out, "No winner | tokens %s\n", formatTokens(tokens))
		return
	}
	matchColor.Fprintf(c.out, "%s wins the match | tokens %s\n", winner, formatTokens(tokens))
}

// Logger writes every event to a zerolog logger at debug level.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Events(player game.PlayerID, move game.Move, events []string) {
	l.log.Debug().Stringer("player", player).Stringer("move", move).Strs("events", events).Msg("move played")
}

func (l *Logger) RoundOver(result RoundResult) {
	l.log.Debug().Int("round", result.Round).Str("winners", joinPlayers(result.Winners)).Str("tokens", formatTokens(result.Tokens)).Msg("round over")
}

func (l *Logger) GameOver(winner game.PlayerID, tokens map[game.PlayerID]int) {
	l.log.Debug().Int("winner", int(winner)).Str("tokens", formatTokens(tokens)).Msg("game over")
}

func joinPlayers(ids []game.PlayerID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, " & ")
}

func formatTokens(tokens map[game.PlayerID]int) string {
	ids := make([]game.PlayerID, 0, len(tokens))
	for id := range tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s=%d", id, tokens[id])
	}
	return strings.Join(parts, " ")
}
