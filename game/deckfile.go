package game

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidDeck = errors.New("invalid deck")

// ParseDecks reads one deck per line, cards separated by spaces or commas.
// Blank lines and lines starting with '#' are skipped. Every deck must be a
// permutation of the standard deck.
func ParseDecks(r io.Reader) ([][]Card, error) {
	decks := [][]Card{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		deck := make([]Card, 0, DeckSize)
		for _, field := range fields {
			c, err := ParseCard(field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			deck = append(deck, c)
		}
		if err := checkDeck(deck); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		decks = append(decks, deck)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read decks")
	}
	if len(decks) == 0 {
		return nil, errors.Wrap(ErrInvalidDeck, "no decks found")
	}
	return decks, nil
}

func checkDeck(deck []Card) error {
	if len(deck) != DeckSize {
		return errors.Wrapf(ErrInvalidDeck, "%d cards, want %d", len(deck), DeckSize)
	}
	var counts CardCounts
	for _, c := range deck {
		counts[c]++
	}
	for _, c := range Cards {
		if counts[c] != c.MaxCount() {
			return errors.Wrapf(ErrInvalidDeck, "%d copies of %s, want %d", counts[c], c, c.MaxCount())
		}
	}
	return nil
}
