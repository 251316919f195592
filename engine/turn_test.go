package engine

import (
	"math/rand"
	"testing"

	"manasim/card"
)

func landOnlyDeck(n int) []card.Card {
	deck := make([]card.Card, n)
	for i := range deck {
		deck[i] = basicLand("Forest", card.Green)
	}
	return deck
}

func TestFirstTurnDrawSkipped(t *testing.T) {
	g := NewGame(landOnlyDeck(40), 7, false, rand.New(rand.NewSource(1)))
	snap := g.SimulateTurn()
	if snap.CardsDrawn != 0 {
		t.Errorf("turn 1 drew %d cards, want 0", snap.CardsDrawn)
	}
	snap = g.SimulateTurn()
	if snap.CardsDrawn != 1 {
		t.Errorf("turn 2 drew %d cards, want 1", snap.CardsDrawn)
	}
}

func TestFirstTurnDrawInCommander(t *testing.T) {
	g := NewGame(landOnlyDeck(99), 7, true, rand.New(rand.NewSource(1)))
	if snap := g.SimulateTurn(); snap.CardsDrawn != 1 {
		t.Errorf("commander turn 1 drew %d cards, want 1", snap.CardsDrawn)
	}
}

func TestLandCountMonotonicInLandOnlyDeck(t *testing.T) {
	g := NewGame(landOnlyDeck(40), 7, false, rand.New(rand.NewSource(3)))
	prev := 0
	for turn := 1; turn <= 10; turn++ {
		snap := g.SimulateTurn()
		if snap.Lands < prev {
			t.Fatalf("turn %d: land count fell from %d to %d", turn, prev, snap.Lands)
		}
		if snap.UntappedLands > snap.Lands {
			t.Fatalf("turn %d: untapped %d exceeds total %d", turn, snap.UntappedLands, snap.Lands)
		}
		if got := g.CardsInPlay(); got != g.DeckSize() {
			t.Fatalf("turn %d: cards across zones = %d, want %d", turn, got, g.DeckSize())
		}
		prev = snap.Lands
	}
	if prev != 10 {
		t.Errorf("after 10 turns of guaranteed drops, lands = %d, want 10", prev)
	}
}

func TestAllTappedDeckHasZeroUntappedTurnOne(t *testing.T) {
	deck := make([]card.Card, 40)
	for i := range deck {
		deck[i] = &card.Land{
			Template: card.Template{Name: "Gate"},
			Colors:   card.SetOf(card.Green),
			Tapped:   card.TappedAlways,
		}
	}
	g := NewGame(deck, 7, false, rand.New(rand.NewSource(5)))
	snap := g.SimulateTurn()
	if snap.Lands != 1 || snap.UntappedLands != 0 {
		t.Errorf("turn 1: lands=%d untapped=%d, want 1/0", snap.Lands, snap.UntappedLands)
	}
	if snap.TotalMana != 0 {
		t.Errorf("turn 1 mana = %d, want 0", snap.TotalMana)
	}
}

func TestKeyCastabilityJudgedAtPeak(t *testing.T) {
	g := NewGame(landOnlyDeck(40), 7, false, rand.New(rand.NewSource(9)))
	g.KeyCosts = map[string]card.Cost{
		"Ornithopter":  card.ParseCost("{0}"),
		"Emrakul":      card.ParseCost("{10}"),
		"Giant Growth": card.ParseCost("{G}"),
		"Invasion":     card.ParseCost("{U}"),
	}
	snap := g.SimulateTurn()
	if !snap.Castable["Ornithopter"] {
		t.Error("a zero-cost spell is castable from turn 1")
	}
	if snap.Castable["Emrakul"] {
		t.Error("a ten-drop is not castable on turn 1")
	}
	if !snap.Castable["Giant Growth"] {
		t.Error("one forest covers a single green pip")
	}
	if snap.Castable["Invasion"] {
		t.Error("forests never cover a blue pip")
	}
}

func TestExplorationGrantsExtraLandDrop(t *testing.T) {
	deck := landOnlyDeck(30)
	g := NewGame(deck, 0, false, rand.New(rand.NewSource(2)))
	g.Hand = []card.Card{
		basicLand("Forest", card.Green),
		basicLand("Forest", card.Green),
		&card.Exploration{Template: card.Template{Name: "Exploration", Cost: card.ParseCost("{0}")}, BonusDrops: 1},
	}
	snap := g.SimulateTurn()
	if snap.Lands != 2 {
		t.Errorf("lands after bonus drop = %d, want 2", snap.Lands)
	}
}

func TestNoUntapArtifactStaysTapped(t *testing.T) {
	g := newTestGame(nil)
	rock := &card.Artifact{Template: card.Template{Name: "Fountain"}, Amount: 1, NoUntap: true}
	p := g.putOntoBattlefield(rock, true)
	g.SimulateTurn()
	if !p.Tapped {
		t.Error("a no-untap artifact must stay tapped through the untap step")
	}
}

func TestSelfDamageStopsAfterTurnFive(t *testing.T) {
	pain := &card.Land{
		Template:   card.Template{Name: "Adarkar Wastes"},
		Colors:     card.SetOf(card.White, card.Blue),
		SelfDamage: 0.5,
	}
	g := newTestGame(nil)
	g.putOntoBattlefield(pain, false)
	g.Turn = 4
	g.SimulateTurn() // turn 5: still charged
	if g.LifeLost != 0.5 {
		t.Fatalf("life lost through turn 5 = %g, want 0.5", g.LifeLost)
	}
	g.SimulateTurn() // turn 6: no longer charged
	if g.LifeLost != 0.5 {
		t.Errorf("life lost through turn 6 = %g, want 0.5", g.LifeLost)
	}
}

func TestTappedRockDamagedAtUpkeep(t *testing.T) {
	vault := &card.Artifact{
		Template:           card.Template{Name: "Mana Vault", Cost: card.ParseCost("{1}")},
		Amount:             3,
		NoUntap:            true,
		UpkeepTappedDamage: 1,
	}

	g := newTestGame(nil)
	g.putOntoBattlefield(vault, true)
	g.SimulateTurn()
	if g.LifeLost != 1 {
		t.Fatalf("life lost with the rock tapped at upkeep = %g, want 1", g.LifeLost)
	}
	g.SimulateTurn() // stays tapped, pings again
	if g.LifeLost != 2 {
		t.Errorf("life lost after two tapped upkeeps = %g, want 2", g.LifeLost)
	}

	g = newTestGame(nil)
	g.putOntoBattlefield(vault, false)
	g.SimulateTurn()
	if g.LifeLost != 0 {
		t.Errorf("an untapped rock must not ping, lost %g", g.LifeLost)
	}
}

func TestCheapProducersCastBeforeSpells(t *testing.T) {
	g := newTestGame(nil)
	g.putOntoBattlefield(basicLand("Forest", card.Green), true) // taps during untap
	g.Hand = []card.Card{
		&card.Spell{Template: card.Template{Name: "Opt", Cost: card.ParseCost("{1}")}},
		&card.Artifact{Template: card.Template{Name: "Sol Ring", Cost: card.ParseCost("{1}")}, Amount: 2, ETB: card.ETBNone},
	}
	g.SimulateTurn()

	if g.ArtifactCount() != 1 {
		t.Fatal("the rock should have been cast")
	}
	// The rock is cast first, then its mana pays for the spell.
	if len(g.Graveyard) != 1 || g.Graveyard[0].CardName() != "Opt" {
		t.Error("the spell should resolve off the freshly cast rock")
	}
}

func TestETBDiscardLandBlocksWithoutLand(t *testing.T) {
	g := newTestGame(nil)
	g.putOntoBattlefield(basicLand("Island", card.Blue), false)
	mox := &card.Artifact{
		Template: card.Template{Name: "Mox Diamond", Cost: card.ParseCost("{0}")},
		Amount:   1,
		Colors:   card.AllColors,
		ETB:      card.ETBDiscardLand,
	}
	g.Hand = []card.Card{mox}
	g.SimulateTurn()
	if g.ArtifactCount() != 0 {
		t.Error("the rock must stay in hand with no land to pitch")
	}

	g = newTestGame(nil)
	g.Hand = []card.Card{mox, basicLand("Island", card.Blue), basicLand("Island", card.Blue)}
	g.SimulateTurn()
	if g.ArtifactCount() != 1 {
		t.Error("the rock should be cast once a spare land is in hand")
	}
	if len(g.Graveyard) != 1 {
		t.Errorf("graveyard = %d cards, want the pitched land", len(g.Graveyard))
	}
}

func TestETBExileSparesKeyCards(t *testing.T) {
	g := newTestGame(nil)
	g.KeyCards = map[string]bool{"Bolt": true}
	chrome := &card.Artifact{
		Template: card.Template{Name: "Chrome Mox", Cost: card.ParseCost("{0}")},
		Amount:   1,
		Colors:   card.AllColors,
		ETB:      card.ETBExileNonland,
	}
	g.Hand = []card.Card{
		chrome,
		&card.Spell{Template: card.Template{Name: "Bolt", Cost: card.ParseCost("{R}")}},
		&card.Spell{Template: card.Template{Name: "Filler", Cost: card.ParseCost("{2}{R}")}},
	}
	g.SimulateTurn()
	if len(g.Exile) != 1 || g.Exile[0].CardName() != "Filler" {
		t.Fatalf("exile = %v, want the non-key filler", zoneNames(g.Exile))
	}
}

func TestRampSpellPutsBasicOntoBattlefield(t *testing.T) {
	g := newTestGame(nil)
	g.putOntoBattlefield(basicLand("Forest", card.Green), false)
	g.putOntoBattlefield(basicLand("Forest", card.Green), false)
	ramp := &card.RampSpell{
		Template:      card.Template{Name: "Rampant Growth", Cost: card.ParseCost("{1}{G}")},
		ToBattlefield: 1,
		EntersTapped:  true,
		Filter:        card.FilterBasic,
	}
	g.Hand = []card.Card{ramp}
	g.Library = []card.Card{basicLand("Forest", card.Green)}
	g.SimulateTurn()

	if g.LandCount() != 3 {
		t.Fatalf("lands = %d, want 3", g.LandCount())
	}
	if len(g.Graveyard) != 1 || g.Graveyard[0].CardName() != "Rampant Growth" {
		t.Error("the ramp spell should end up in the graveyard")
	}
}

func TestSnapshotCountsRampedLandSameTurn(t *testing.T) {
	g := newTestGame(nil)
	g.putOntoBattlefield(basicLand("Forest", card.Green), false)
	g.putOntoBattlefield(basicLand("Forest", card.Green), false)
	g.Hand = []card.Card{&card.RampSpell{
		Template:      card.Template{Name: "Rampant Growth", Cost: card.ParseCost("{1}{G}")},
		ToBattlefield: 1,
		EntersTapped:  true,
		Filter:        card.FilterBasic,
	}}
	g.Library = []card.Card{basicLand("Forest", card.Green)}
	snap := g.SimulateTurn()

	if snap.Lands != 3 {
		t.Errorf("snapshot lands = %d, want the ramped forest counted this turn", snap.Lands)
	}
	if snap.UntappedLands != 0 {
		t.Errorf("snapshot untapped = %d, want 0 after tapping out for the ramp", snap.UntappedLands)
	}
	// Mana is still the pre-cast peak.
	if snap.TotalMana != 2 {
		t.Errorf("snapshot mana = %d, want the pre-cast 2", snap.TotalMana)
	}
}

func zoneNames(zone []card.Card) []string {
	out := make([]string, len(zone))
	for i, c := range zone {
		out[i] = c.CardName()
	}
	return out
}
