package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// CloneAndRandomize returns a copy of the state in which everything hidden
// from observer is resampled. The observer keeps their hand; with
// useKnowledge, players the observer has confirmed keep that card while it is
// still available. The rest is dealt uniformly from the unseen cards, and the
// leftovers form the shuffled deck plus the out card.
func (s *State) CloneAndRandomize(observer PlayerID, useKnowledge bool, rng *rand.Rand) *State {
	st := s.Clone()
	st.rng = rng

	accounted := st.used
	for _, c := range st.hands[observer].Cards() {
		accounted[c]++
	}
	remaining := accounted.Remaining()

	others := []PlayerID{}
	for _, id := range st.players.LeftPlayers() {
		if id != observer {
			others = append(others, id)
		}
	}

	// Confirmed cards first so random deals cannot exhaust them
	sizes := map[PlayerID]int{}
	for _, id := range others {
		sizes[id] = st.hands[id].Len()
		st.hands[id] = Hand{}
		if !useKnowledge {
			continue
		}
		known := st.knowledge.Seen(observer, id)
		if known == NoCard {
			continue
		}
		if remaining[known] <= 0 {
			st.knowledge.Forget(observer, id) // Stale
			continue
		}
		st.hands[id].Add(known)
		remaining[known]--
	}

	pool := make([]Card, 0, remaining.Total())
	for _, c := range Cards {
		for i := 0; i < remaining[c]; i++ {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for _, id := range others {
		var avoid CardCounts
		if useKnowledge {
			avoid = st.knowledge.WrongGuesses(id)
		}
		for st.hands[id].Len() < sizes[id] {
			i := pickUnguessed(pool, avoid)
			st.hands[id].Add(pool[i])
			pool = append(pool[:i], pool[i+1:]...)
		}
	}

	if s.outCard != NoCard {
		st.outCard = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	if len(pool) != len(s.deck) {
		panic(errors.Errorf("determinization left %d cards for a deck of %d", len(pool), len(s.deck)))
	}
	st.deck = pool
	st.dropInconsistentFacts()
	return st
}

// pickUnguessed returns the index of the first card whose kind was never
// wrongly guessed, or 0 when every card was.
func pickUnguessed(pool []Card, avoid CardCounts) int {
	for i, c := range pool {
		if avoid[c] == 0 {
			return i
		}
	}
	return 0
}

// dropInconsistentFacts forgets facts that no longer match the sampled hands.
func (s *State) dropInconsistentFacts() {
	for _, observer := range s.players.IDs() {
		for _, subject := range s.players.IDs() {
			known := s.knowledge.Seen(observer, subject)
			if known != NoCard && !s.hands[subject].Contains(known) {
				s.knowledge.Forget(observer, subject)
			}
		}
	}
}
