package searcher

import (
	"fmt"
	"loveletter/game"
	"loveletter/utils"
	"math"
	"strings"
)

// node is an information-set node: children are keyed by card kind and shared
// across every determinization that reaches them. wins are counted for the
// player who made move.
type node struct {
	move     game.Card // NoCard at the root
	parent   *node
	children []*node
	wins     float64
	visits   int
	avails   int
	player   game.PlayerID
}

func newNode(move game.Card, parent *node, player game.PlayerID) *node {
	return &node{
		move:   move,
		parent: parent,
		avails: 1,
		player: player,
	}
}

// untriedMoves returns the distinct kinds in legal without a child yet.
func (n *node) untriedMoves(legal []game.Card) []game.Card {
	untried := []game.Card{}
	for _, c := range legal {
		if n.child(c) == nil && utils.FindIndex(untried, c) < 0 {
			untried = append(untried, c)
		}
	}
	return untried
}

func (n *node) child(c game.Card) *node {
	for _, child := range n.children {
		if child.move == c {
			return child
		}
	}
	return nil
}

// selectChild picks the legal child with the highest UCB1 score and marks
// every legal child as available once more.
func (n *node) selectChild(legal []game.Card, exploration float64) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		if utils.FindIndex(legal, child.move) < 0 {
			continue
		}
		score := newUCB(exploration, child.avails).evaluate(child.wins, child.visits)
		if best == nil || score > bestScore {
			best, bestScore = child, score
		}
	}
	if best == nil {
		panic(fmt.Sprintf("no child of %s is legal among %v", n, legal))
	}

	for _, child := range n.children {
		if utils.FindIndex(legal, child.move) >= 0 {
			child.avails++
		}
	}
	return best
}

func (n *node) addChild(move game.Card, player game.PlayerID) *node {
	child := newNode(move, n, player)
	n.children = append(n.children, child)
	return child
}

// update records a finished simulation.
func (n *node) update(state *game.State) {
	n.visits++
	if n.player != game.NoPlayer {
		n.wins += state.Result(n.player)
	}
}

// mostVisited returns the legal child with the most visits, the earliest in
// legal on ties, or nil when no legal move was expanded.
func (n *node) mostVisited(legal []game.Card) *node {
	var best *node
	for _, c := range legal {
		child := n.child(c)
		if child != nil && (best == nil || child.visits > best.visits) {
			best = child
		}
	}
	return best
}

func (n *node) String() string {
	return fmt.Sprintf("[M:%s W/V/A: %4.0f/%4d/%4d]", n.move, n.wins, n.visits, n.avails)
}

// tree renders the subtree, one node per line, indented by depth.
func (n *node) tree() string {
	var b strings.Builder
	n.writeTree(&b, 0)
	return b.String()
}

func (n *node) writeTree(b *strings.Builder, indent int) {
	b.WriteString("\n")
	b.WriteString(strings.Repeat("| ", indent))
	b.WriteString(n.String())
	for _, child := range n.children {
		child.writeTree(b, indent+1)
	}
}
