package engine

import (
	"manasim/card"
)

// Source is one discrete unit of available mana, tagged with the colors
// that unit could produce and the permanent it comes from.
type Source struct {
	Colors card.ColorSet // empty means colorless only
	Perm   *Permanent
}

// Availability summarizes the mana reachable this turn from untapped,
// non-summoning-sick permanents.
type Availability struct {
	Total   int
	ByColor [card.NumColors]int
	Sources []Source
}

// Availability computes current mana availability, applying the
// variant-specific production rules.
func (g *Game) Availability() Availability {
	var av Availability
	for _, p := range g.Battlefield {
		if p.Tapped {
			continue
		}
		units, colors := g.production(p)
		for i := 0; i < units; i++ {
			av.Sources = append(av.Sources, Source{Colors: colors, Perm: p})
		}
		av.Total += units
		for _, c := range colors.Colors() {
			av.ByColor[c] += units
		}
	}
	return av
}

// production returns how many mana units a permanent would add if tapped
// now, and the colors each unit can take. Zero units means the permanent
// produces nothing under current battlefield state.
func (g *Game) production(p *Permanent) (int, card.ColorSet) {
	switch c := p.Card.(type) {
	case *card.Land:
		switch {
		case c.Archetype == card.ArchetypeFetch:
			// Fetch lands search instead of producing.
			return 0, 0
		case c.Archetype == card.ArchetypeScaling:
			n := g.SubtypeCount(c.ScalingSubtype) - 2
			if n < 0 {
				n = 0
			}
			return n, card.SetOf(c.ScalingSubtype)
		case c.MinLands > 0 && g.LandCount() < c.MinLands:
			return 0, 0
		case c.CreatureMode && g.CreaturePresent():
			return c.Units(), c.CreatureColors
		default:
			return c.Units(), c.Colors
		}
	case *card.Artifact:
		switch c.Condition {
		case card.CondMetalcraft:
			if g.ArtifactCount() < 3 {
				return 0, 0
			}
		case card.CondLegendary:
			if !g.LegendaryPresent() {
				return 0, 0
			}
		}
		return c.Amount, c.Colors
	case *card.Creature:
		if p.SummoningSick {
			return 0, 0
		}
		return c.Amount, c.Colors
	}
	return 0, 0
}

// CanPay reports whether the cost is payable from the availability. The
// colored pips are matched to sources with an augmenting-path bipartite
// matching so a single dual-color source never covers two pips at once.
func CanPay(cost card.Cost, av Availability) bool {
	if av.Total < cost.Converted {
		return false
	}
	return matchPips(cost.Pips, av.Sources)
}

// matchPips runs Kuhn's algorithm: each pip may use a source whose color
// set contains the pip's color; each source covers at most one pip.
func matchPips(pips []card.Color, sources []Source) bool {
	if len(pips) == 0 {
		return true
	}
	if len(pips) > len(sources) {
		return false
	}
	// matched[s] = index of pip using source s, or -1.
	matched := make([]int, len(sources))
	for i := range matched {
		matched[i] = -1
	}
	var augment func(pip int, visited []bool) bool
	augment = func(pip int, visited []bool) bool {
		for s := range sources {
			if visited[s] || !sources[s].Colors.Has(pips[pip]) {
				continue
			}
			visited[s] = true
			if matched[s] == -1 || augment(matched[s], visited) {
				matched[s] = pip
				return true
			}
		}
		return false
	}
	for pip := range pips {
		visited := make([]bool, len(sources))
		if !augment(pip, visited) {
			return false
		}
	}
	return true
}

// TapForCost taps permanents to cover the cost. Colored pips consume
// exact-color sources left-to-right first, then any remaining untapped
// producers cover the generic remainder. Greedy, not globally optimal;
// CanPay is the exact test.
func (g *Game) TapForCost(cost card.Cost) {
	paid := 0

	// Colored pips: exact-color sources first, then any matching source.
	for _, pip := range cost.Pips {
		if p := g.findUntappedProducer(pip, true); p != nil {
			units, _ := g.production(p)
			p.Tapped = true
			paid += units
			continue
		}
		if p := g.findUntappedProducer(pip, false); p != nil {
			units, _ := g.production(p)
			p.Tapped = true
			paid += units
		}
	}

	// Generic remainder, amount-aware.
	for _, p := range g.Battlefield {
		if paid >= cost.Converted {
			break
		}
		if p.Tapped {
			continue
		}
		units, _ := g.production(p)
		if units == 0 {
			continue
		}
		p.Tapped = true
		paid += units
	}
}

// findUntappedProducer returns the first untapped permanent that can
// produce the color. With exact set, only mono-color producers match.
func (g *Game) findUntappedProducer(c card.Color, exact bool) *Permanent {
	for _, p := range g.Battlefield {
		if p.Tapped {
			continue
		}
		units, colors := g.production(p)
		if units == 0 || !colors.Has(c) {
			continue
		}
		if exact && colors.Count() != 1 {
			continue
		}
		return p
	}
	return nil
}

// BurstAvailability extends an availability with one-shot mana from
// rituals in hand whose own costs are payable. Used for the "+burst"
// key-card playability variant. A source spent on a ritual's colored
// pip is removed before the burst units are added; the generic part of
// a ritual's cost is reflected in Total only, which leaves the view
// slightly optimistic about colored capacity, like greedy tapping.
func (g *Game) BurstAvailability(av Availability) Availability {
	out := av
	out.Sources = append([]Source(nil), av.Sources...)
	for _, c := range g.Hand {
		r, ok := c.(*card.Ritual)
		if !ok {
			continue
		}
		if !CanPay(r.Cost, out) {
			continue
		}
		for _, pip := range r.Cost.Pips {
			out.Sources = consumeSource(out.Sources, pip)
		}
		out.Total += r.Net
		for i := 0; i < r.Produces; i++ {
			out.Sources = append(out.Sources, Source{Colors: r.Colors})
		}
		for _, col := range r.Colors.Colors() {
			out.ByColor[col] += r.Produces
		}
	}
	return out
}

// consumeSource removes one source able to cover the pip, preferring a
// mono-color producer so duals stay free for later pips.
func consumeSource(sources []Source, pip card.Color) []Source {
	pick := -1
	for i, s := range sources {
		if !s.Colors.Has(pip) {
			continue
		}
		if s.Colors.Count() == 1 {
			pick = i
			break
		}
		if pick == -1 {
			pick = i
		}
	}
	if pick == -1 {
		return sources
	}
	return append(sources[:pick], sources[pick+1:]...)
}
