// Package engine implements one simulated game: zones, the land
// resolver, the mana solver, the per-turn phase machine, and the
// mulligan resolver. A Game is built fresh for every trial and never
// shared between goroutines.
package engine

import (
	"fmt"
	"math/rand"

	"manasim/card"
)

// Permanent is a battlefield instance of a card. The Card reference is
// shared and read-only; the battlefield state is mutable.
type Permanent struct {
	Card          card.Card
	Tapped        bool
	SummoningSick bool
	EnteredTapped bool
}

// Land returns the card as a land template when it is one.
func (p *Permanent) Land() (*card.Land, bool) {
	l, ok := p.Card.(*card.Land)
	return l, ok
}

// TurnLog is an append-only record of one turn's actions.
type TurnLog struct {
	Actions  []string
	LifeLoss float64
}

// Logf appends a formatted action. Nil-safe so logging can be disabled
// by simply not attaching a log.
func (l *TurnLog) Logf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Actions = append(l.Actions, fmt.Sprintf(format, args...))
}

// Game holds all per-trial state. Zones own their cards: moving a card
// between zones removes it from one slice and appends it to another,
// never copying.
type Game struct {
	Hand        []card.Card
	Library     []card.Card
	Graveyard   []card.Card
	Exile       []card.Card
	Battlefield []*Permanent

	Turn      int
	LifeLost  float64
	Commander bool
	KeyCards  map[string]bool
	KeyCosts  map[string]card.Cost

	Log *TurnLog

	deckSize int
	rng      *rand.Rand
}

// NewGame shuffles the deck and draws the opening hand.
func NewGame(deck []card.Card, handSize int, commander bool, rng *rand.Rand) *Game {
	g := &Game{
		Library:   make([]card.Card, len(deck)),
		Commander: commander,
		deckSize:  len(deck),
		rng:       rng,
	}
	copy(g.Library, deck)
	g.Shuffle()
	g.DrawCards(handSize)
	return g
}

// Shuffle runs a Fisher-Yates shuffle over the library.
func (g *Game) Shuffle() {
	g.rng.Shuffle(len(g.Library), func(i, j int) {
		g.Library[i], g.Library[j] = g.Library[j], g.Library[i]
	})
}

// DrawCards moves up to n cards from library to hand and returns how
// many were actually drawn.
func (g *Game) DrawCards(n int) int {
	drawn := 0
	for i := 0; i < n && len(g.Library) > 0; i++ {
		g.Hand = append(g.Hand, g.Library[0])
		g.Library = g.Library[1:]
		drawn++
	}
	return drawn
}

// takeFromHand removes and returns the card at index i.
func (g *Game) takeFromHand(i int) card.Card {
	c := g.Hand[i]
	g.Hand = append(g.Hand[:i], g.Hand[i+1:]...)
	return c
}

// takeFromLibrary removes and returns the card at index i.
func (g *Game) takeFromLibrary(i int) card.Card {
	c := g.Library[i]
	g.Library = append(g.Library[:i], g.Library[i+1:]...)
	return c
}

// putOntoBattlefield instantiates a permanent for c.
func (g *Game) putOntoBattlefield(c card.Card, tapped bool) *Permanent {
	p := &Permanent{
		Card:          c,
		Tapped:        tapped,
		EnteredTapped: tapped,
		SummoningSick: c.Kind() == card.KindCreature,
	}
	g.Battlefield = append(g.Battlefield, p)
	return p
}

// removeFromBattlefield detaches the permanent and returns its card.
func (g *Game) removeFromBattlefield(p *Permanent) card.Card {
	for i, q := range g.Battlefield {
		if q == p {
			g.Battlefield = append(g.Battlefield[:i], g.Battlefield[i+1:]...)
			break
		}
	}
	return p.Card
}

// sacrifice moves the permanent's card to the graveyard.
func (g *Game) sacrifice(p *Permanent) {
	g.Graveyard = append(g.Graveyard, g.removeFromBattlefield(p))
}

// CardsInPlay returns the total card count across all zones; it must
// equal the original deck size at every phase boundary.
func (g *Game) CardsInPlay() int {
	return len(g.Hand) + len(g.Library) + len(g.Graveyard) + len(g.Exile) + len(g.Battlefield)
}

// DeckSize returns the original shuffled deck size.
func (g *Game) DeckSize() int { return g.deckSize }

// LandCount returns the number of lands on the battlefield.
func (g *Game) LandCount() int {
	n := 0
	for _, p := range g.Battlefield {
		if _, ok := p.Land(); ok {
			n++
		}
	}
	return n
}

// UntappedLandCount returns the number of untapped lands in play.
func (g *Game) UntappedLandCount() int {
	n := 0
	for _, p := range g.Battlefield {
		if _, ok := p.Land(); ok && !p.Tapped {
			n++
		}
	}
	return n
}

// BasicLandCount returns the number of basic-subtype lands in play.
func (g *Game) BasicLandCount() int {
	n := 0
	for _, p := range g.Battlefield {
		if l, ok := p.Land(); ok && (l.Basic || l.Subtypes != 0) {
			n++
		}
	}
	return n
}

// SubtypeCount counts lands in play carrying the given basic subtype.
func (g *Game) SubtypeCount(c card.Color) int {
	n := 0
	for _, p := range g.Battlefield {
		if l, ok := p.Land(); ok && l.Subtypes.Has(c) {
			n++
		}
	}
	return n
}

// ArtifactCount counts artifacts in play (metalcraft).
func (g *Game) ArtifactCount() int {
	n := 0
	for _, p := range g.Battlefield {
		if p.Card.Kind() == card.KindArtifact {
			n++
		}
	}
	return n
}

// CreaturePresent reports whether any creature is in play.
func (g *Game) CreaturePresent() bool {
	for _, p := range g.Battlefield {
		if p.Card.Kind() == card.KindCreature {
			return true
		}
	}
	return false
}

// LegendaryPresent reports whether any legendary permanent is in play.
func (g *Game) LegendaryPresent() bool {
	for _, p := range g.Battlefield {
		switch c := p.Card.(type) {
		case *card.Land:
			if c.Legendary {
				return true
			}
		case *card.Artifact:
			if c.Legendary {
				return true
			}
		case *card.Creature:
			if c.Legendary {
				return true
			}
		}
	}
	return false
}

// handLandCount counts land cards in hand.
func (g *Game) handLandCount() int {
	n := 0
	for _, c := range g.Hand {
		if c.Kind() == card.KindLand {
			n++
		}
	}
	return n
}
