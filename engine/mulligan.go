package engine

import (
	"sort"

	"manasim/card"
)

// MulliganRule is the house rule governing how a mulligan is taken.
type MulliganRule uint8

const (
	// RuleLondon redraws a fresh full hand, then bottoms one card per
	// mulligan taken.
	RuleLondon MulliganRule = iota
	// RuleVancouver draws one fewer card each time.
	RuleVancouver
)

// MulliganStrategy is the keep/redraw decision policy.
type MulliganStrategy uint8

const (
	StrategyConservative MulliganStrategy = iota
	StrategyBalanced
	StrategyAggressive
	StrategyCustom
)

// CustomMulliganRules holds caller-supplied keep thresholds for
// StrategyCustom.
type CustomMulliganRules struct {
	MinLands     int
	MaxLands     int
	NoPlayByTurn int // mull when no spell costs <= this
}

// MaxMulligans caps how many times a hand may be redrawn.
const MaxMulligans = 4

// ResolveMulligans redraws the opening hand until the strategy's keep
// condition passes or the cap is hit, and returns the mulligan count.
func (g *Game) ResolveMulligans(rule MulliganRule, strategy MulliganStrategy, custom CustomMulliganRules, handSize int) int {
	mulls := 0
	for mulls < MaxMulligans && !g.keepHand(strategy, custom) {
		mulls++
		g.mulligan(rule, handSize, mulls)
	}
	return mulls
}

// keepHand applies the strategy's keep condition to the current hand.
func (g *Game) keepHand(strategy MulliganStrategy, custom CustomMulliganRules) bool {
	lands := g.handLandCount()
	size := len(g.Hand)
	switch strategy {
	case StrategyConservative:
		return lands != 0 && lands != size
	case StrategyBalanced:
		if lands == 0 || lands == size {
			return false
		}
		if lands >= 2 && lands <= 5 && !g.hasPlayUnderCost(2) {
			return false
		}
		return true
	case StrategyAggressive:
		return lands >= 2 && lands <= 4
	case StrategyCustom:
		if lands < custom.MinLands || lands > custom.MaxLands {
			return false
		}
		if custom.NoPlayByTurn > 0 && !g.hasPlayUnderCost(custom.NoPlayByTurn) {
			return false
		}
		return true
	}
	return true
}

// hasPlayUnderCost reports whether the hand holds a nonland spell with
// converted cost at most n.
func (g *Game) hasPlayUnderCost(n int) bool {
	for _, c := range g.Hand {
		if c.Kind() != card.KindLand && c.CastingCost().Converted <= n {
			return true
		}
	}
	return false
}

// mulligan reshuffles the hand away and redraws under the house rule.
func (g *Game) mulligan(rule MulliganRule, handSize, mulls int) {
	g.Library = append(g.Library, g.Hand...)
	g.Hand = g.Hand[:0]
	g.Shuffle()

	switch rule {
	case RuleVancouver:
		g.DrawCards(handSize - mulls)
	default: // London
		g.DrawCards(handSize)
		g.bottomCards(mulls)
	}
}

// bottomCards returns n cards from hand to the bottom of the library.
// Over-landed hands give back lands first, under-landed hands spells
// first; within a group the highest cost goes back first.
func (g *Game) bottomCards(n int) {
	if n > len(g.Hand) {
		n = len(g.Hand)
	}
	overLanded := g.handLandCount() > len(g.Hand)/2

	order := make([]int, len(g.Hand))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := g.Hand[order[a]], g.Hand[order[b]]
		landA := ca.Kind() == card.KindLand
		landB := cb.Kind() == card.KindLand
		if landA != landB {
			if overLanded {
				return landA
			}
			return landB
		}
		return ca.CastingCost().Converted > cb.CastingCost().Converted
	})

	bottom := make(map[int]bool, n)
	for _, i := range order[:n] {
		bottom[i] = true
	}
	var kept []card.Card
	for i, c := range g.Hand {
		if bottom[i] {
			g.Library = append(g.Library, c)
		} else {
			kept = append(kept, c)
		}
	}
	g.Hand = kept
}
