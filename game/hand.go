package game

import "strings"

// Hand holds up to two cards in the order they were drawn.
type Hand struct {
	cards [2]Card
	size  int
}

func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

func (h Hand) Len() int {
	return h.size
}

func (h Hand) Cards() []Card {
	cards := make([]Card, h.size)
	copy(cards, h.cards[:h.size])
	return cards
}

func (h Hand) At(i int) Card {
	if i < 0 || i >= h.size {
		return NoCard
	}
	return h.cards[i]
}

// Held returns the card kept between turns, which is always the oldest card.
func (h Hand) Held() Card {
	return h.At(0)
}

func (h Hand) Contains(c Card) bool {
	return h.Count(c) > 0
}

func (h Hand) Count(c Card) int {
	count := 0
	for _, held := range h.cards[:h.size] {
		if held == c {
			count++
		}
	}
	return count
}

// Other returns the card left after discarding c, or NoCard.
func (h Hand) Other(c Card) Card {
	switch {
	case h.size < 2:
		return NoCard
	case h.cards[0] == c:
		return h.cards[1]
	case h.cards[1] == c:
		return h.cards[0]
	default:
		return NoCard
	}
}

func (h Hand) Min() Card {
	low := NoCard
	for _, c := range h.cards[:h.size] {
		if low == NoCard || c < low {
			low = c
		}
	}
	return low
}

func (h Hand) Max() Card {
	high := NoCard
	for _, c := range h.cards[:h.size] {
		if c > high {
			high = c
		}
	}
	return high
}

// Add appends a card. It panics when the hand is full.
func (h *Hand) Add(c Card) {
	if h.size == len(h.cards) {
		panic("hand already holds two cards")
	}
	h.cards[h.size] = c
	h.size++
}

// Remove discards the first copy of c and returns its position, or -1.
func (h *Hand) Remove(c Card) int {
	for i := 0; i < h.size; i++ {
		if h.cards[i] != c {
			continue
		}
		copy(h.cards[i:], h.cards[i+1:h.size])
		h.size--
		h.cards[h.size] = NoCard
		return i
	}
	return -1
}

// Clear empties the hand and returns what it held.
func (h *Hand) Clear() []Card {
	cards := h.Cards()
	*h = Hand{}
	return cards
}

func (h Hand) String() string {
	names := make([]string, h.size)
	for i, c := range h.cards[:h.size] {
		names[i] = c.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
