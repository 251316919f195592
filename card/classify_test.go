package card

import (
	"testing"
)

func classifyOne(t *testing.T, raw RawCard) Card {
	t.Helper()
	cards := Classify(raw, nil)
	if len(cards) != 1 {
		t.Fatalf("Classify(%s) returned %d cards, want 1", raw.Name, len(cards))
	}
	return cards[0]
}

func TestClassifyBasicLand(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Forest",
		TypeLine:   "Basic Land — Forest",
		OracleText: "({T}: Add {G}.)",
	})
	l, ok := c.(*Land)
	if !ok {
		t.Fatalf("Forest classified as %T", c)
	}
	if !l.Basic || !l.Colors.Has(Green) || !l.Subtypes.Has(Green) {
		t.Errorf("Forest = %+v, want basic green with Forest subtype", l)
	}
}

func TestClassifyBuiltinOverride(t *testing.T) {
	c := classifyOne(t, RawCard{Name: "Steam Vents", TypeLine: "Land — Island Mountain"})
	l, ok := c.(*Land)
	if !ok || l.Archetype != ArchetypeShock {
		t.Fatalf("Steam Vents should resolve to a shock land, got %#v", c)
	}
	if l.Colors != SetOf(Blue, Red) {
		t.Errorf("colors = %v, want UR", l.Colors)
	}
}

func TestClassifyBuiltinRockOverride(t *testing.T) {
	c := classifyOne(t, RawCard{Name: "Mana Vault", TypeLine: "Artifact", ManaCost: "{1}"})
	a, ok := c.(*Artifact)
	if !ok {
		t.Fatalf("Mana Vault classified as %T", c)
	}
	if a.Amount != 3 || !a.NoUntap || a.UpkeepTappedDamage != 1 {
		t.Errorf("Mana Vault = %+v, want a 3-mana no-untap rock that pings while tapped", a)
	}
}

func TestClassifyUserOverrideWins(t *testing.T) {
	overrides := map[string]Override{
		"steam vents": {Kind: KindLand, Colors: "UR", Tapped: TappedAlways},
	}
	cards := Classify(RawCard{Name: "Steam Vents", TypeLine: "Land"}, overrides)
	l := cards[0].(*Land)
	if l.Archetype != ArchetypeNone || l.Tapped != TappedAlways {
		t.Errorf("user override should shadow the builtin table, got %+v", l)
	}
}

func TestClassifyShockHeuristic(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Shockish",
		TypeLine:   "Land — Swamp Forest",
		OracleText: "As Shockish enters the battlefield, you may pay 2 life. If you don't, it enters the battlefield tapped.\n{T}: Add {B} or {G}.",
	})
	l := c.(*Land)
	if l.Archetype != ArchetypeShock {
		t.Errorf("archetype = %v, want shock", l.Archetype)
	}
	if l.Colors != SetOf(Black, Green) {
		t.Errorf("colors = %v, want BG", l.Colors)
	}
}

func TestClassifyCheckHeuristicRecordsSubtypes(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Checkish",
		TypeLine:   "Land",
		OracleText: "Checkish enters the battlefield tapped unless you control a Mountain or a Forest.\n{T}: Add {R} or {G}.",
	})
	l := c.(*Land)
	if l.Archetype != ArchetypeCheck {
		t.Fatalf("archetype = %v, want check", l.Archetype)
	}
	if l.CheckSubtypes != SetOf(Red, Green) {
		t.Errorf("check subtypes = %v, want RG", l.CheckSubtypes)
	}
}

func TestClassifyFetchHeuristic(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Fetchish",
		TypeLine:   "Land",
		OracleText: "{T}, Sacrifice Fetchish: Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.",
	})
	l := c.(*Land)
	if l.Archetype != ArchetypeFetch || !l.FetchBasicOnly || !l.FetchTapped {
		t.Errorf("fetch fields wrong: %+v", l)
	}
}

func TestClassifyUnknownLandDegradesToFetch(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Weird Utility Land",
		TypeLine:   "Land",
		OracleText: "{T}: Target creature gains flying until end of turn.",
	})
	l := c.(*Land)
	if l.Archetype != ArchetypeFetch || !l.FetchTapped {
		t.Errorf("unrecognized lands fall back to a tapped any-land fetch, got %+v", l)
	}
}

func TestClassifyColorlessProducerNotDegraded(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Wastes",
		TypeLine:   "Basic Land",
		OracleText: "{T}: Add {C}.",
	})
	l := c.(*Land)
	if l.Archetype != ArchetypeNone {
		t.Errorf("a colorless producer must not hit the permissive default, got %v", l.Archetype)
	}
}

func TestClassifyModalLandFace(t *testing.T) {
	cards := Classify(RawCard{
		Name:   "Turntimber Symbiosis // Turntimber, Serpentine Wood",
		Layout: "modal_dfc",
		Faces: []RawFace{
			{Name: "Turntimber Symbiosis", ManaCost: "{4}{G}{G}{G}", TypeLine: "Sorcery"},
			{Name: "Turntimber, Serpentine Wood", TypeLine: "Land", OracleText: "Turntimber, Serpentine Wood enters the battlefield tapped.\n{T}: Add {G}."},
		},
	}, nil)
	if len(cards) != 2 {
		t.Fatalf("modal land should yield land + spell, got %d cards", len(cards))
	}
	if _, ok := cards[0].(*Land); !ok {
		t.Errorf("first card = %T, want land face", cards[0])
	}
	spell, ok := cards[1].(*Spell)
	if !ok {
		t.Fatalf("second card = %T, want spell face", cards[1])
	}
	if spell.Cost.Converted != 7 {
		t.Errorf("spell face cost = %d, want 7", spell.Cost.Converted)
	}
}

func TestClassifyTransformUsesFrontFaceOnly(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:   "Growing Rites of Itlimoc // Itlimoc, Cradle of the Sun",
		Layout: "transform",
		Faces: []RawFace{
			{Name: "Growing Rites of Itlimoc", ManaCost: "{2}{G}", TypeLine: "Legendary Enchantment"},
			{Name: "Itlimoc, Cradle of the Sun", TypeLine: "Legendary Land", OracleText: "{T}: Add {G}."},
		},
	})
	if _, ok := c.(*Land); ok {
		t.Error("a back-face land must not classify as a land")
	}
}

func TestClassifyManaCreature(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Elf Friend",
		ManaCost:   "{G}",
		TypeLine:   "Creature — Elf Druid",
		OracleText: "{T}: Add {G}.",
	})
	cr, ok := c.(*Creature)
	if !ok {
		t.Fatalf("classified as %T, want creature", c)
	}
	if cr.Amount != 1 || !cr.Colors.Has(Green) {
		t.Errorf("creature = %+v, want one green unit", cr)
	}
}

func TestClassifyRitualNetsProduction(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Ritualish",
		ManaCost:   "{B}",
		TypeLine:   "Instant",
		OracleText: "Add {B}{B}{B}.",
	})
	r, ok := c.(*Ritual)
	if !ok {
		t.Fatalf("classified as %T, want ritual", c)
	}
	if r.Produces != 3 || r.Net != 2 {
		t.Errorf("produces/net = %d/%d, want 3/2", r.Produces, r.Net)
	}
}

func TestClassifyRampSpellHeuristic(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Growthish",
		ManaCost:   "{1}{G}",
		TypeLine:   "Sorcery",
		OracleText: "Search your library for a basic land card, put that card onto the battlefield tapped, then shuffle.",
	})
	r, ok := c.(*RampSpell)
	if !ok {
		t.Fatalf("classified as %T, want ramp", c)
	}
	if r.Filter != FilterBasic || !r.EntersTapped || r.ToBattlefield != 1 {
		t.Errorf("ramp fields wrong: %+v", r)
	}
}

func TestClassifyPlainSpellFallback(t *testing.T) {
	c := classifyOne(t, RawCard{
		Name:       "Lightning Bolt",
		ManaCost:   "{R}",
		TypeLine:   "Instant",
		OracleText: "Lightning Bolt deals 3 damage to any target.",
	})
	if _, ok := c.(*Spell); !ok {
		t.Errorf("classified as %T, want plain spell", c)
	}
}

func TestExtractProductionAnyColor(t *testing.T) {
	colors, amount := extractProduction("{T}: Add one mana of any color.", "{t}: add one mana of any color.")
	if colors != AllColors || amount != 1 {
		t.Errorf("any-color = %v/%d, want all colors, 1", colors, amount)
	}
}

func TestExtractProductionWordAmount(t *testing.T) {
	_, amount := extractProduction("Add three mana of any one color.", "add three mana of any one color.")
	if amount != 3 {
		t.Errorf("amount = %d, want 3", amount)
	}
}
