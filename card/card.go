// Package card provides typed card templates for the mana simulator.
// Raw catalog records are classified once into immutable variants; the
// engine and simulation packages only ever see these types.
package card

import (
	"strconv"
	"strings"
)

// Color is one of the five mana colors.
type Color uint8

const (
	White Color = iota
	Blue
	Black
	Red
	Green
	NumColors = 5
)

var colorLetters = [NumColors]byte{'W', 'U', 'B', 'R', 'G'}

// String returns the single-letter symbol for the color.
func (c Color) String() string {
	if int(c) < NumColors {
		return string(colorLetters[c])
	}
	return "?"
}

// Subtype returns the basic land subtype tied to the color.
func (c Color) Subtype() string {
	switch c {
	case White:
		return "Plains"
	case Blue:
		return "Island"
	case Black:
		return "Swamp"
	case Red:
		return "Mountain"
	case Green:
		return "Forest"
	}
	return ""
}

// ColorSet is a bitmask over the five colors.
type ColorSet uint8

// AllColors has every color set.
const AllColors ColorSet = 1<<NumColors - 1

// SetOf builds a ColorSet from individual colors.
func SetOf(colors ...Color) ColorSet {
	var s ColorSet
	for _, c := range colors {
		s = s.Add(c)
	}
	return s
}

// ParseColors builds a ColorSet from a string of WUBRG letters.
func ParseColors(letters string) ColorSet {
	var s ColorSet
	for _, r := range strings.ToUpper(letters) {
		for c := Color(0); c < NumColors; c++ {
			if byte(r) == colorLetters[c] {
				s = s.Add(c)
			}
		}
	}
	return s
}

// Add returns the set with c included.
func (s ColorSet) Add(c Color) ColorSet { return s | 1<<c }

// Has reports whether c is in the set.
func (s ColorSet) Has(c Color) bool { return s&(1<<c) != 0 }

// Count returns the number of colors in the set.
func (s ColorSet) Count() int {
	n := 0
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Colors returns the member colors in WUBRG order.
func (s ColorSet) Colors() []Color {
	out := make([]Color, 0, NumColors)
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String renders the set as WUBRG letters.
func (s ColorSet) String() string {
	var b strings.Builder
	for c := Color(0); c < NumColors; c++ {
		if s.Has(c) {
			b.WriteByte(colorLetters[c])
		}
	}
	return b.String()
}

// Cost is a parsed mana cost. Generic and X symbols contribute only to
// Converted; each colored symbol contributes a pip.
type Cost struct {
	Converted int
	Pips      []Color
}

// ParseCost parses a cost string like "{1}{U}{U}". Unknown symbols are
// ignored; X counts as zero.
func ParseCost(raw string) Cost {
	var cost Cost
	for _, sym := range splitSymbols(raw) {
		switch {
		case sym == "X" || sym == "":
			// X contributes nothing up front
		case isDigits(sym):
			n, _ := strconv.Atoi(sym)
			cost.Converted += n
		case sym == "C":
			cost.Converted++
		default:
			for c := Color(0); c < NumColors; c++ {
				if sym == c.String() {
					cost.Converted++
					cost.Pips = append(cost.Pips, c)
				}
			}
		}
	}
	return cost
}

// PipColors returns the set of distinct colors among the cost's pips.
func (c Cost) PipColors() ColorSet {
	var s ColorSet
	for _, p := range c.Pips {
		s = s.Add(p)
	}
	return s
}

func splitSymbols(raw string) []string {
	var out []string
	var cur strings.Builder
	open := false
	for _, r := range raw {
		switch r {
		case '{':
			open = true
			cur.Reset()
		case '}':
			if open {
				out = append(out, cur.String())
			}
			open = false
		default:
			if open {
				cur.WriteRune(r)
			}
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Kind discriminates card variants.
type Kind uint8

const (
	KindLand Kind = iota
	KindArtifact
	KindCreature
	KindSpell
	KindRitual
	KindRamp
	KindExploration
)

// Card is the interface all template variants implement.
// The marker method keeps the set of variants closed.
type Card interface {
	CardName() string
	CastingCost() Cost
	Kind() Kind
	cardMarker()
}

// Template carries the attributes every variant shares.
type Template struct {
	Name string
	Cost Cost
}

// CardName returns the card's name.
func (t Template) CardName() string { return t.Name }

// CastingCost returns the parsed mana cost.
func (t Template) CastingCost() Cost { return t.Cost }

// TappedPolicy is the static enters-tapped rule for lands whose archetype
// doesn't impose a conditional one.
type TappedPolicy uint8

const (
	TappedNever TappedPolicy = iota
	TappedAlways
)

// LandArchetype selects the conditional enters-tapped / special-play rule.
type LandArchetype uint8

const (
	ArchetypeNone LandArchetype = iota
	ArchetypeShock
	ArchetypeFast
	ArchetypeBattle
	ArchetypeCheck
	ArchetypeCrowd
	ArchetypeFetch
	ArchetypeBounce
	ArchetypeScaling
)

// Land is a land template.
type Land struct {
	Template
	Colors    ColorSet // colors the land can produce
	Subtypes  ColorSet // basic land subtypes carried (Plains==W, ...)
	Basic     bool
	Archetype LandArchetype
	Tapped    TappedPolicy // governs when no archetype rule applies

	// Check lands: required subtypes already in play. Empty means derive
	// from Colors.
	CheckSubtypes ColorSet

	// Fetch lands.
	FetchCost      int      // activation cost paid from available mana
	FetchColors    ColorSet // empty means any land
	FetchBasicOnly bool
	FetchCount     int  // number of searches per activation (2 for the double variants)
	FetchTapped    bool // fetched land arrives tapped

	// Scaling lands: net mana = max(0, count of Subtype lands - 2).
	ScalingSubtype Color

	// Lands that only produce with a minimum land count in play.
	MinLands int

	// Lands that switch output when a creature is on the battlefield.
	CreatureMode   bool
	CreatureColors ColorSet

	SacrificeOnNextLand bool

	Amount    int // mana units produced per tap; 0 means 1
	Legendary bool

	// SelfDamage is charged per turn for turns 1-5 while in play; for
	// fetch archetypes it is instead a one-time activation life cost.
	SelfDamage         float64
	UpkeepTappedDamage float64 // damage at upkeep while still tapped
}

// Units returns the mana units the land produces when tapped.
func (l *Land) Units() int {
	if l.Amount <= 0 {
		return 1
	}
	return l.Amount
}

func (*Land) Kind() Kind  { return KindLand }
func (*Land) cardMarker() {}

// ETBCost is an additional cost paid when a permanent enters.
type ETBCost uint8

const (
	ETBNone ETBCost = iota
	ETBDiscardLand
	ETBExileNonland
	ETBDiscardHand
)

// Condition gates conditional mana production.
type Condition uint8

const (
	CondNone Condition = iota
	CondMetalcraft // needs three or more artifacts in play
	CondLegendary  // needs a legendary permanent in play
)

// Artifact is a mana rock template.
type Artifact struct {
	Template
	Amount             int
	Colors             ColorSet // empty means colorless only; AllColors for "any"
	ETB                ETBCost
	NoUntap            bool // doesn't untap during the untap step
	Condition          Condition
	Legendary          bool
	SelfDamage         float64 // talismans and friends, turns 1-5
	UpkeepTappedDamage float64 // damage at upkeep while still tapped
}

func (*Artifact) Kind() Kind  { return KindArtifact }
func (*Artifact) cardMarker() {}

// Creature is a mana creature template. Summoning sickness is tracked by
// the engine, not here.
type Creature struct {
	Template
	Amount    int
	Colors    ColorSet
	Legendary bool
}

func (*Creature) Kind() Kind  { return KindCreature }
func (*Creature) cardMarker() {}

// Spell is any card tracked only for castability.
type Spell struct {
	Template
}

func (*Spell) Kind() Kind  { return KindSpell }
func (*Spell) cardMarker() {}

// Ritual is a one-shot mana burst.
type Ritual struct {
	Template
	Produces int
	Net      int
	Colors   ColorSet
}

func (*Ritual) Kind() Kind  { return KindRitual }
func (*Ritual) cardMarker() {}

// SearchFilter restricts what a ramp spell may fetch.
type SearchFilter uint8

const (
	FilterAny SearchFilter = iota
	FilterBasic
	FilterSubtype
	FilterSnow
)

// RampSpell puts lands from the library onto the battlefield or into hand.
type RampSpell struct {
	Template
	ToBattlefield int
	EntersTapped  bool
	ToHand        int
	SacrificeLand bool
	Filter        SearchFilter
	FilterSubtype ColorSet
}

func (*RampSpell) Kind() Kind  { return KindRamp }
func (*RampSpell) cardMarker() {}

// Exploration is a permanent that grants additional land drops.
type Exploration struct {
	Template
	BonusDrops int
}

func (*Exploration) Kind() Kind  { return KindExploration }
func (*Exploration) cardMarker() {}
