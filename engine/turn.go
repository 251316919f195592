package engine

import (
	"sort"

	"manasim/card"
)

// selfDamageThroughTurn: pain-land and talisman damage is charged
// unconditionally for turns 1-5 whether or not colored mana was needed.
// A documented simplification carried over from the original model.
const selfDamageThroughTurn = 5

// TurnSnapshot records one simulated turn's observations.
type TurnSnapshot struct {
	Lands         int
	UntappedLands int
	TotalMana     int
	ByColor       [card.NumColors]int
	LifeLost      float64 // cumulative through this turn
	CardsDrawn    int
	Castable      map[string]bool
	CastableBurst map[string]bool
}

// SimulateTurn advances the game by one turn through the fixed phase
// order and returns the turn's snapshot. The turn's log is left on
// g.Log for callers that sample play sequences.
func (g *Game) SimulateTurn() TurnSnapshot {
	g.Turn++
	g.Log = &TurnLog{}
	snap := TurnSnapshot{
		Castable:      make(map[string]bool),
		CastableBurst: make(map[string]bool),
	}

	// Untap.
	for _, p := range g.Battlefield {
		p.SummoningSick = false
		if a, ok := p.Card.(*card.Artifact); ok && a.NoUntap {
			continue
		}
		p.Tapped = false
	}

	// Upkeep triggers.
	for _, p := range g.Battlefield {
		if !p.Tapped {
			continue
		}
		switch c := p.Card.(type) {
		case *card.Land:
			if c.UpkeepTappedDamage > 0 {
				g.damage(c.UpkeepTappedDamage, "%s still tapped at upkeep", c.Name)
			}
		case *card.Artifact:
			if c.UpkeepTappedDamage > 0 {
				g.damage(c.UpkeepTappedDamage, "%s still tapped at upkeep", c.Name)
			}
		}
	}

	// Draw. Skipped on the very first turn outside multiplayer.
	if g.Turn > 1 || g.Commander {
		snap.CardsDrawn = g.DrawCards(1)
	}

	// Land drops.
	drops := 0
	if g.playBestLand() {
		drops++
	}

	// Land-drop boosters before additional drops.
	g.castExplorations()

	for drops < g.landDropCap() {
		if !g.playBestLand() {
			break
		}
		drops++
	}

	// Activate in-play fetch lands.
	g.ActivateBattlefieldFetches()

	// Peak mana for the turn; key-card castability is judged here,
	// before casting consumes sources.
	av := g.Availability()
	snap.TotalMana = av.Total
	snap.ByColor = av.ByColor
	burst := g.BurstAvailability(av)
	for name, cost := range g.KeyCosts {
		snap.Castable[name] = CanPay(cost, av)
		snap.CastableBurst[name] = CanPay(cost, burst)
	}

	// Cast spells, cheapest first, until nothing is affordable.
	g.castSpells()

	// Land counts are read after the cast phase so a land put into play
	// by a ramp spell counts toward this turn, not the next.
	snap.Lands = g.LandCount()
	snap.UntappedLands = g.UntappedLandCount()

	// End-of-turn incidental damage.
	if g.Turn <= selfDamageThroughTurn {
		for _, p := range g.Battlefield {
			switch c := p.Card.(type) {
			case *card.Land:
				if c.Archetype != card.ArchetypeFetch && c.SelfDamage > 0 {
					g.damage(c.SelfDamage, "%s pings", c.Name)
				}
			case *card.Artifact:
				if c.SelfDamage > 0 {
					g.damage(c.SelfDamage, "%s pings", c.Name)
				}
			}
		}
	}

	snap.LifeLost = g.LifeLost
	return snap
}

func (g *Game) damage(amount float64, format string, args ...interface{}) {
	g.LifeLost += amount
	if g.Log != nil {
		g.Log.LifeLoss += amount
	}
	g.Log.Logf(format, args...)
}

// landDropCap is 1 plus any active land-drop bonuses.
func (g *Game) landDropCap() int {
	limit := 1
	for _, p := range g.Battlefield {
		if e, ok := p.Card.(*card.Exploration); ok {
			limit += e.BonusDrops
		}
	}
	return limit
}

// playBestLand picks and plays one land from hand per the selection
// heuristic: a free fetch, else a land that would enter untapped, else a
// legal bounce land, else anything playable.
func (g *Game) playBestLand() bool {
	if idx := g.chooseLand(); idx >= 0 {
		return g.PlayLandFromHand(idx)
	}
	return false
}

func (g *Game) chooseLand() int {
	// Free fetches first: they thin the deck and fix colors.
	for i, c := range g.Hand {
		if l, ok := c.(*card.Land); ok && l.Archetype == card.ArchetypeFetch && l.FetchCost == 0 {
			return i
		}
	}
	// A land that comes in untapped. Shocks count while the life
	// payment is still being made.
	for i, c := range g.Hand {
		l, ok := c.(*card.Land)
		if !ok || l.Archetype == card.ArchetypeBounce {
			continue
		}
		if !g.EntersTapped(l) || (l.Archetype == card.ArchetypeShock && g.Turn <= shockUntapThroughTurn) {
			return i
		}
	}
	// A bounce land when the return is legal.
	for i, c := range g.Hand {
		if l, ok := c.(*card.Land); ok && l.Archetype == card.ArchetypeBounce && g.hasBounceReturn() {
			return i
		}
	}
	// Anything playable.
	for i, c := range g.Hand {
		l, ok := c.(*card.Land)
		if !ok {
			continue
		}
		if l.Archetype == card.ArchetypeBounce && !g.hasBounceReturn() {
			continue
		}
		return i
	}
	return -1
}

// castExplorations casts affordable land-drop boosters.
func (g *Game) castExplorations() {
	for {
		cast := false
		for i, c := range g.Hand {
			e, ok := c.(*card.Exploration)
			if !ok {
				continue
			}
			if !CanPay(e.Cost, g.Availability()) {
				continue
			}
			g.TapForCost(e.Cost)
			g.takeFromHand(i)
			g.putOntoBattlefield(e, false)
			g.Log.Logf("cast %s", e.Name)
			cast = true
			break
		}
		if !cast {
			return
		}
	}
}

// castSpells casts remaining affordable spells in ascending converted
// cost, mana producers before other spells of equal cost, repeating
// until a full pass casts nothing. Rituals are never cast on their own;
// they only count toward burst castability.
func (g *Game) castSpells() {
	for {
		order := g.castOrder()
		cast := false
		for _, i := range order {
			c := g.Hand[i]
			if !CanPay(c.CastingCost(), g.Availability()) {
				continue
			}
			if g.castOne(i) {
				cast = true
				break
			}
		}
		if !cast {
			return
		}
	}
}

// castOrder returns hand indices of castable-kind cards sorted by
// converted cost, producers first on ties.
func (g *Game) castOrder() []int {
	var idx []int
	for i, c := range g.Hand {
		switch c.Kind() {
		case card.KindArtifact, card.KindCreature, card.KindRamp, card.KindSpell:
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := g.Hand[idx[a]], g.Hand[idx[b]]
		if ca.CastingCost().Converted != cb.CastingCost().Converted {
			return ca.CastingCost().Converted < cb.CastingCost().Converted
		}
		return producesPriority(ca) < producesPriority(cb)
	})
	return idx
}

func producesPriority(c card.Card) int {
	switch c.Kind() {
	case card.KindArtifact, card.KindCreature, card.KindRamp:
		return 0
	}
	return 1
}

// castOne casts the hand card at index i, paying any ETB precondition.
// Returns false when a precondition can't be met.
func (g *Game) castOne(i int) bool {
	switch c := g.Hand[i].(type) {
	case *card.Artifact:
		if !g.payETB(c.ETB, i) {
			return false
		}
		g.TapForCost(c.Cost)
		g.putOntoBattlefield(g.takeFromHand(g.indexOf(c)), false)
		g.Log.Logf("cast %s", c.Name)
		if c.ETB == card.ETBDiscardHand {
			g.discardHand()
		}
		return true
	case *card.Creature:
		g.TapForCost(c.Cost)
		g.putOntoBattlefield(g.takeFromHand(i), false)
		g.Log.Logf("cast %s", c.Name)
		return true
	case *card.RampSpell:
		g.TapForCost(c.Cost)
		g.takeFromHand(i)
		g.Graveyard = append(g.Graveyard, c)
		g.resolveRamp(c)
		return true
	case *card.Spell:
		g.TapForCost(c.Cost)
		g.takeFromHand(i)
		g.Graveyard = append(g.Graveyard, c)
		g.Log.Logf("cast %s", c.Name)
		return true
	}
	return false
}

// payETB satisfies an enters-the-battlefield cost before the cast, or
// reports that the cast must be skipped. The index is the caster's hand
// position; the paid card must be a different one.
func (g *Game) payETB(etb card.ETBCost, caster int) bool {
	switch etb {
	case card.ETBNone, card.ETBDiscardHand:
		return true
	case card.ETBDiscardLand:
		for i, c := range g.Hand {
			if i != caster && c.Kind() == card.KindLand {
				g.Graveyard = append(g.Graveyard, g.takeFromHand(i))
				g.Log.Logf("discard %s", c.CardName())
				return true
			}
		}
		return false
	case card.ETBExileNonland:
		// Exile the most expensive non-key nonland to lose the least.
		pick := -1
		for i, c := range g.Hand {
			if i == caster || c.Kind() == card.KindLand || g.KeyCards[c.CardName()] {
				continue
			}
			if pick == -1 || c.CastingCost().Converted > g.Hand[pick].CastingCost().Converted {
				pick = i
			}
		}
		if pick == -1 {
			return false
		}
		c := g.takeFromHand(pick)
		g.Exile = append(g.Exile, c)
		g.Log.Logf("exile %s", c.CardName())
		return true
	}
	return true
}

func (g *Game) discardHand() {
	for len(g.Hand) > 0 {
		g.Graveyard = append(g.Graveyard, g.takeFromHand(0))
	}
	g.Log.Logf("discard hand")
}

// indexOf finds a card's current hand position by identity.
func (g *Game) indexOf(c card.Card) int {
	for i, h := range g.Hand {
		if h == c {
			return i
		}
	}
	return -1
}

// resolveRamp performs a ramp spell's searches and sacrifices.
func (g *Game) resolveRamp(r *card.RampSpell) {
	g.Log.Logf("cast %s", r.Name)
	if r.SacrificeLand {
		var pick *Permanent
		for _, p := range g.Battlefield {
			if _, ok := p.Land(); !ok {
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
		if pick != nil {
			g.sacrifice(pick)
			g.Log.Logf("sacrifice %s", pick.Card.CardName())
		}
	}
	for n := 0; n < r.ToBattlefield; n++ {
		idx := g.selectRampTarget(r)
		if idx < 0 {
			break
		}
		c := g.takeFromLibrary(idx)
		l := c.(*card.Land)
		tapped := r.EntersTapped || g.resolveEntersTapped(l)
		g.putOntoBattlefield(l, tapped)
		g.Log.Logf("%s puts %s onto the battlefield%s", r.Name, l.Name, tappedSuffix(tapped))
	}
	for n := 0; n < r.ToHand; n++ {
		idx := g.selectRampTarget(r)
		if idx < 0 {
			break
		}
		c := g.takeFromLibrary(idx)
		g.Hand = append(g.Hand, c)
		g.Log.Logf("%s puts %s into hand", r.Name, c.CardName())
	}
	g.Shuffle()
}

// selectRampTarget scores library lands against the ramp filter. Snow
// decks aren't modeled separately; the snow filter behaves as basic.
func (g *Game) selectRampTarget(r *card.RampSpell) int {
	missing := g.missingKeyColors()
	best := -1
	bestScore := 0
	for i, c := range g.Library {
		l, ok := c.(*card.Land)
		if !ok {
			continue
		}
		switch r.Filter {
		case card.FilterBasic, card.FilterSnow:
			if !l.Basic {
				continue
			}
		case card.FilterSubtype:
			if l.Subtypes&r.FilterSubtype == 0 {
				continue
			}
		}
		score := g.scoreFetchCandidate(l, missing)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
