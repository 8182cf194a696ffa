package searcher

import "math"

// ucb scores the children of a node that share an availability count.
type ucb struct {
	numerator float64
}

func newUCB(exploration float64, avails int) ucb {
	if avails == 0 {
		panic("avails cannot be 0")
	}
	return ucb{numerator: exploration * exploration * math.Log(float64(avails))}
}

func (u ucb) evaluate(wins float64, visits int) float64 {
	if visits == 0 {
		panic("visits cannot be 0")
	}
	// UCB1 = w/n + c*sqrt(ln(avails)/n)
	return wins/float64(visits) + math.Sqrt(u.numerator/float64(visits))
}
