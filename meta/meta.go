// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines building Determinized UCT trees.
const GO_ROUTINES = 8

// ITERATIONS defines the search budget per move.
const ITERATIONS = 1000

// EXPLORATION defines the UCB1 exploration constant (about sqrt(2)/2).
const EXPLORATION = 0.7

// TREES defines how many trees Determinized UCT builds per move.
const TREES = 50

// SAMPLES defines how many determinizations Minimax votes over.
const SAMPLES = 200

// BARON_WIN_PROBABILITY is the share of lower unseen cards above which a Baron is played.
const BARON_WIN_PROBABILITY = 0.6

// ENDGAME_CARDS is the number of unseen cards at which the policy plays its minimum card.
const ENDGAME_CARDS = 2

// MAID_GUARD_CARDS_LEFT is the deck size at or below which a Guard is preferred to a Maid.
const MAID_GUARD_CARDS_LEFT = 2

// MAX_ROUNDS bounds a match in case no player reaches the win threshold.
const MAX_ROUNDS = 100
