package engine

import (
	"manasim/card"
)

// shockUntapThroughTurn is the last turn on which the play routine pays
// 2 life to bring a shock-type land in untapped.
const shockUntapThroughTurn = 6

// lateShockTurn is the turn from which fetch scoring penalizes shock
// targets to avoid unnecessary late life loss.
const lateShockTurn = 6

// EntersTapped decides whether a land would enter tapped right now.
// Archetype rules are checked in a fixed precedence order; the static
// tapped policy only applies when no archetype rule matched. Shock-type
// lands always report tapped here; the life payment that flips them
// untapped is applied by the play routine.
func (g *Game) EntersTapped(l *card.Land) bool {
	switch l.Archetype {
	case card.ArchetypeShock:
		return true
	case card.ArchetypeFast:
		return g.LandCount() >= 3
	case card.ArchetypeBattle:
		return g.BasicLandCount() < 2
	case card.ArchetypeCheck:
		required := l.CheckSubtypes
		if required == 0 {
			required = l.Colors
		}
		for _, p := range g.Battlefield {
			if in, ok := p.Land(); ok && in.Subtypes&required != 0 {
				return false
			}
		}
		return true
	case card.ArchetypeCrowd:
		return !g.Commander
	}
	return l.Tapped == card.TappedAlways
}

// SelectFetchTarget picks the best library card a fetch effect may
// retrieve, or -1 when nothing matches. Candidates are filtered by the
// fetch's color/subtype restriction, then scored; ties go to input
// order.
func (g *Game) SelectFetchTarget(src *card.Land) int {
	missing := g.missingKeyColors()

	best := -1
	bestScore := 0
	for i, c := range g.Library {
		l, ok := c.(*card.Land)
		if !ok {
			continue
		}
		if src.FetchBasicOnly && !l.Basic {
			continue
		}
		if src.FetchColors != 0 && l.Subtypes&src.FetchColors == 0 {
			continue
		}
		score := g.scoreFetchCandidate(l, missing)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// scoreFetchCandidate ranks a fetchable land against the colors the
// tracked key cards still need.
func (g *Game) scoreFetchCandidate(l *card.Land, missing card.ColorSet) int {
	score := 0
	missingProduced := (l.Colors & missing).Count()
	if missingProduced > 0 {
		score += 300
		score += 250 * (missingProduced - 1)
	}
	if l.Colors.Count() >= 2 {
		score += 100
	}
	if g.Turn <= 2 && l.Colors.Count() >= 3 {
		score += 1000
	}
	if g.Turn >= lateShockTurn && l.Archetype == card.ArchetypeShock {
		score -= 100
	}
	return score
}

// missingKeyColors returns the pip colors tracked key cards need that no
// land in play produces.
func (g *Game) missingKeyColors() card.ColorSet {
	var needed card.ColorSet
	for _, c := range g.Hand {
		if g.KeyCards[c.CardName()] {
			needed |= c.CastingCost().PipColors()
		}
	}
	for _, c := range g.Library {
		if g.KeyCards[c.CardName()] {
			needed |= c.CastingCost().PipColors()
		}
	}
	var produced card.ColorSet
	for _, p := range g.Battlefield {
		if l, ok := p.Land(); ok {
			produced |= l.Colors
		}
	}
	return needed &^ produced
}

// PlayLandFromHand plays the land at hand index i, resolving the full
// play contract: sacrifice-on-next-land triggers, bounce returns, shock
// life payments, and zero-cost fetch chains. Returns false when the play
// is illegal (a bounce land with nothing to return).
func (g *Game) PlayLandFromHand(i int) bool {
	l, ok := g.Hand[i].(*card.Land)
	if !ok {
		return false
	}

	if l.Archetype == card.ArchetypeBounce && !g.hasBounceReturn() {
		return false
	}

	g.takeFromHand(i)
	g.sacrificeOnLandDrop(l)

	if l.Archetype == card.ArchetypeFetch && l.FetchCost == 0 {
		g.resolveSacFetch(l)
		return true
	}

	tapped := g.resolveEntersTapped(l)
	g.putOntoBattlefield(l, tapped)
	g.Log.Logf("play %s%s", l.Name, tappedSuffix(tapped))

	if l.Archetype == card.ArchetypeBounce {
		g.bounceReturn(l)
	}
	return true
}

// resolveEntersTapped applies the resolver verdict plus the shock life
// payment, which is made unconditionally through turn 6.
func (g *Game) resolveEntersTapped(l *card.Land) bool {
	tapped := g.EntersTapped(l)
	if tapped && l.Archetype == card.ArchetypeShock && g.Turn <= shockUntapThroughTurn {
		g.LifeLost += 2
		if g.Log != nil {
			g.Log.LifeLoss += 2
		}
		g.Log.Logf("pay 2 life for %s", l.Name)
		return false
	}
	return tapped
}

// sacrificeOnLandDrop sacrifices every copy of a sacrifice-on-next-land
// permanent when a different land is played.
func (g *Game) sacrificeOnLandDrop(played *card.Land) {
	for i := len(g.Battlefield) - 1; i >= 0; i-- {
		p := g.Battlefield[i]
		if l, ok := p.Land(); ok && l.SacrificeOnNextLand && l != played {
			g.sacrifice(p)
			g.Log.Logf("sacrifice %s", l.Name)
		}
	}
}

// hasBounceReturn reports whether an eligible non-bounce land exists to
// return to hand.
func (g *Game) hasBounceReturn() bool {
	for _, p := range g.Battlefield {
		if l, ok := p.Land(); ok && l.Archetype != card.ArchetypeBounce {
			return true
		}
	}
	return false
}

// bounceReturn returns a land to hand, preferring a tapped one.
func (g *Game) bounceReturn(src *card.Land) {
	var pick *Permanent
	for _, p := range g.Battlefield {
		l, ok := p.Land()
		if !ok || l.Archetype == card.ArchetypeBounce {
			continue
		}
		if p.Tapped {
			pick = p
			break
		}
		if pick == nil {
			pick = p
		}
	}
	if pick == nil {
		return
	}
	c := g.removeFromBattlefield(pick)
	g.Hand = append(g.Hand, c)
	g.Log.Logf("%s returns %s to hand", src.Name, c.CardName())
}

// resolveSacFetch resolves a sacrifice-to-search fetch land played from
// hand. When no target matches, the fetch itself is played tapped with
// no search.
func (g *Game) resolveSacFetch(l *card.Land) {
	idx := g.SelectFetchTarget(l)
	if idx < 0 {
		g.putOntoBattlefield(l, true)
		g.Log.Logf("play %s tapped (no fetch target)", l.Name)
		return
	}
	g.Graveyard = append(g.Graveyard, l)
	if l.SelfDamage > 0 {
		g.LifeLost += l.SelfDamage
		if g.Log != nil {
			g.Log.LifeLoss += l.SelfDamage
		}
		g.Log.Logf("pay %g life for %s", l.SelfDamage, l.Name)
	}
	first := g.fetchFromLibrary(l, idx)
	if l.FetchCount > 1 {
		// Double-fetch variants search again for the same-named basic.
		next := g.findLibraryLandByName(first.Name)
		if next < 0 {
			next = g.SelectFetchTarget(l)
		}
		if next >= 0 {
			g.fetchFromLibrary(l, next)
		}
	}
	g.Shuffle()
}

// ActivateBattlefieldFetches pays and resolves in-play fetch lands that
// activate for mana (the two-land searchers). The activation cost is
// paid from available mana before the search.
func (g *Game) ActivateBattlefieldFetches() {
	for i := len(g.Battlefield) - 1; i >= 0; i-- {
		p := g.Battlefield[i]
		l, ok := p.Land()
		if !ok || l.Archetype != card.ArchetypeFetch || l.FetchCost <= 0 || p.Tapped {
			continue
		}
		cost := card.Cost{Converted: l.FetchCost}
		av := g.Availability()
		// Don't count the fetch land itself toward its own cost.
		if av.Total < l.FetchCost {
			continue
		}
		if g.SelectFetchTarget(l) < 0 {
			continue
		}
		g.TapForCost(cost)
		g.sacrifice(p)
		g.Log.Logf("activate %s", l.Name)

		count := l.FetchCount
		if count <= 0 {
			count = 1
		}
		var firstName string
		for n := 0; n < count; n++ {
			idx := -1
			if n > 0 && firstName != "" {
				// Same-named basics for the double variants.
				idx = g.findLibraryLandByName(firstName)
			}
			if idx < 0 {
				idx = g.SelectFetchTarget(l)
			}
			if idx < 0 {
				break
			}
			fetched := g.fetchFromLibrary(l, idx)
			if n == 0 {
				firstName = fetched.Name
			}
		}
		g.Shuffle()
	}
}

// fetchFromLibrary moves the library card at idx onto the battlefield
// per the fetch source's tapped rule and returns its template.
func (g *Game) fetchFromLibrary(src *card.Land, idx int) *card.Land {
	c := g.takeFromLibrary(idx)
	l := c.(*card.Land)
	tapped := src.FetchTapped || g.resolveEntersTapped(l)
	g.putOntoBattlefield(l, tapped)
	g.Log.Logf("%s fetches %s%s", src.Name, l.Name, tappedSuffix(tapped))
	return l
}

// findLibraryLandByName returns the index of the first basic land with
// the given name, or -1.
func (g *Game) findLibraryLandByName(name string) int {
	for i, c := range g.Library {
		if l, ok := c.(*card.Land); ok && l.Basic && l.Name == name {
			return i
		}
	}
	return -1
}

func tappedSuffix(tapped bool) string {
	if tapped {
		return " (tapped)"
	}
	return ""
}
