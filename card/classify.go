package card

import (
	"regexp"
	"strings"
)

// RawCard is an already-fetched catalog record. The simulator never talks
// to a catalog itself; callers hand these in.
type RawCard struct {
	Name       string
	ManaCost   string
	TypeLine   string
	OracleText string
	Layout     string // "", "modal_dfc", "transform"
	Faces      []RawFace
}

// RawFace is one face of a multi-faced card.
type RawFace struct {
	Name       string
	ManaCost   string
	TypeLine   string
	OracleText string
}

var (
	addSymbolRe  = regexp.MustCompile(`[Aa]dd (\{[WUBRGC]\})+`)
	manaSymbolRe = regexp.MustCompile(`\{([WUBRGC])\}`)
	addWordRe    = regexp.MustCompile(`[Aa]dd (one|two|three|four|five|six|seven)`)
)

// Classify resolves a raw record into one or two Card templates. The
// second template, when present, is the spell face of a modal card kept
// around for key-card tracking. Classification never fails; cards the
// heuristics can't place degrade to a permissive default.
func Classify(raw RawCard, overrides map[string]Override) []Card {
	// Multi-faced routing first.
	switch raw.Layout {
	case "modal_dfc":
		if cards := classifyModal(raw, overrides); cards != nil {
			return cards
		}
	case "transform":
		// A transform card can only be played as its front face. If only
		// the back is a land it is not a land for our purposes.
		if len(raw.Faces) > 0 {
			front := raw.Faces[0]
			return Classify(RawCard{
				Name:       raw.Name,
				ManaCost:   front.ManaCost,
				TypeLine:   front.TypeLine,
				OracleText: front.OracleText,
			}, overrides)
		}
	}

	key := strings.ToLower(raw.Name)
	if ov, ok := overrides[key]; ok {
		return []Card{fromOverride(raw, ov)}
	}
	if ov, ok := builtinOverrides[key]; ok {
		return []Card{fromOverride(raw, ov)}
	}
	return []Card{classifyText(raw)}
}

// classifyModal handles modal dual-faced cards: if either face is a land,
// the card is a Land built from that face, plus a Spell record for the
// non-land face when one exists.
func classifyModal(raw RawCard, overrides map[string]Override) []Card {
	var landFace, spellFace *RawFace
	for i := range raw.Faces {
		f := &raw.Faces[i]
		if isLandType(f.TypeLine) {
			if landFace == nil {
				landFace = f
			}
		} else if spellFace == nil {
			spellFace = f
		}
	}
	if landFace == nil {
		return nil
	}
	cards := Classify(RawCard{
		Name:       raw.Name,
		ManaCost:   landFace.ManaCost,
		TypeLine:   landFace.TypeLine,
		OracleText: landFace.OracleText,
	}, overrides)
	if spellFace != nil {
		cards = append(cards, &Spell{Template{
			Name: raw.Name,
			Cost: ParseCost(spellFace.ManaCost),
		}})
	}
	return cards
}

func fromOverride(raw RawCard, ov Override) Card {
	tmpl := Template{Name: raw.Name, Cost: ParseCost(raw.ManaCost)}
	colors := ParseColors(ov.Colors)
	if ov.AnyColor {
		colors = AllColors
	}
	switch ov.Kind {
	case KindLand:
		return &Land{
			Template:            tmpl,
			Colors:              colors,
			Subtypes:            ParseColors(ov.Subtypes),
			Basic:               ov.Basic,
			Archetype:           ov.Archetype,
			Tapped:              ov.Tapped,
			CheckSubtypes:       ParseColors(ov.CheckSubtypes),
			FetchCost:           ov.FetchCost,
			FetchColors:         ParseColors(ov.FetchColors),
			FetchBasicOnly:      ov.FetchBasicOnly,
			FetchCount:          ov.FetchCount,
			FetchTapped:         ov.FetchTapped,
			ScalingSubtype:      firstColor(ov.ScalingSubtype),
			MinLands:            ov.MinLands,
			CreatureMode:        ov.CreatureMode,
			CreatureColors:      ParseColors(ov.CreatureColors),
			SacrificeOnNextLand: ov.SacrificeOnNextLand,
			Amount:              ov.Amount,
			Legendary:           ov.Legendary,
			SelfDamage:          ov.SelfDamage,
			UpkeepTappedDamage:  ov.UpkeepTappedDamage,
		}
	case KindArtifact:
		return &Artifact{
			Template:           tmpl,
			Amount:             ov.Amount,
			Colors:             colors,
			ETB:                ov.ETB,
			NoUntap:            ov.NoUntap,
			Condition:          ov.Condition,
			Legendary:          ov.Legendary,
			SelfDamage:         ov.SelfDamage,
			UpkeepTappedDamage: ov.UpkeepTappedDamage,
		}
	case KindCreature:
		return &Creature{Template: tmpl, Amount: ov.Amount, Colors: colors, Legendary: ov.Legendary}
	case KindRitual:
		return &Ritual{Template: tmpl, Produces: ov.Produces, Net: ov.Net, Colors: colors}
	case KindRamp:
		return &RampSpell{
			Template:      tmpl,
			ToBattlefield: ov.ToBattlefield,
			EntersTapped:  ov.EntersTapped,
			ToHand:        ov.ToHand,
			SacrificeLand: ov.SacrificeLand,
			Filter:        ov.Filter,
			FilterSubtype: ParseColors(ov.FilterSubtype),
		}
	case KindExploration:
		return &Exploration{Template: tmpl, BonusDrops: ov.BonusDrops}
	default:
		return &Spell{tmpl}
	}
}

// classifyText derives a classification from oracle text alone.
func classifyText(raw RawCard) Card {
	tmpl := Template{Name: raw.Name, Cost: ParseCost(raw.ManaCost)}
	text := raw.OracleText
	lower := strings.ToLower(text)

	if isLandType(raw.TypeLine) {
		return classifyLandText(raw, tmpl, lower)
	}

	typeLower := strings.ToLower(raw.TypeLine)
	producesMana := strings.Contains(text, "{T}: Add") || addSymbolRe.MatchString(text) || addWordRe.MatchString(lower)

	switch {
	case strings.Contains(typeLower, "creature") && producesMana:
		colors, amount := extractProduction(text, lower)
		return &Creature{
			Template:  tmpl,
			Amount:    amount,
			Colors:    colors,
			Legendary: strings.Contains(typeLower, "legendary"),
		}
	case strings.Contains(typeLower, "artifact") && producesMana:
		colors, amount := extractProduction(text, lower)
		return &Artifact{
			Template:  tmpl,
			Amount:    amount,
			Colors:    colors,
			NoUntap:   strings.Contains(lower, "doesn't untap during your untap step"),
			Legendary: strings.Contains(typeLower, "legendary"),
		}
	case (strings.Contains(typeLower, "instant") || strings.Contains(typeLower, "sorcery")) && producesMana:
		colors, amount := extractProduction(text, lower)
		net := amount - tmpl.Cost.Converted
		if net < 0 {
			net = 0
		}
		return &Ritual{Template: tmpl, Produces: amount, Net: net, Colors: colors}
	case strings.Contains(lower, "search your library for") && strings.Contains(lower, "land card") && strings.Contains(lower, "onto the battlefield"):
		ramp := &RampSpell{Template: tmpl, ToBattlefield: 1, Filter: FilterAny}
		if strings.Contains(lower, "basic land card") {
			ramp.Filter = FilterBasic
		}
		if strings.Contains(lower, "snow land") || strings.Contains(lower, "snow-covered") {
			ramp.Filter = FilterSnow
		}
		ramp.EntersTapped = strings.Contains(lower, "tapped")
		return ramp
	case strings.Contains(lower, "play an additional land"):
		return &Exploration{Template: tmpl, BonusDrops: 1}
	}

	// Anything else is tracked only for castability.
	return &Spell{tmpl}
}

func classifyLandText(raw RawCard, tmpl Template, lower string) Card {
	land := &Land{Template: tmpl}
	typeLower := strings.ToLower(raw.TypeLine)

	land.Basic = strings.Contains(typeLower, "basic")
	land.Legendary = strings.Contains(typeLower, "legendary")
	for c := Color(0); c < NumColors; c++ {
		if strings.Contains(raw.TypeLine, c.Subtype()) {
			land.Subtypes = land.Subtypes.Add(c)
			land.Colors = land.Colors.Add(c)
		}
	}
	colors, amount := extractProduction(raw.OracleText, lower)
	land.Colors |= colors
	if amount > 1 {
		land.Amount = amount
	}

	entersTapped := strings.Contains(lower, "enters the battlefield tapped") || strings.Contains(lower, "enters tapped")

	switch {
	case strings.Contains(lower, "pay 2 life"):
		land.Archetype = ArchetypeShock
	case strings.Contains(lower, "two or fewer other lands"):
		land.Archetype = ArchetypeFast
	case strings.Contains(lower, "two or more basic lands"):
		land.Archetype = ArchetypeBattle
	case strings.Contains(lower, "tapped unless you control a"):
		land.Archetype = ArchetypeCheck
		land.CheckSubtypes = subtypesMentioned(raw.OracleText)
	case strings.Contains(lower, "two or more opponents"):
		land.Archetype = ArchetypeCrowd
	case strings.Contains(lower, "return a land you control to its owner's hand"):
		land.Archetype = ArchetypeBounce
		land.Tapped = TappedAlways
	case strings.Contains(lower, "search your library"):
		land.Archetype = ArchetypeFetch
		land.FetchCount = 1
		land.FetchBasicOnly = strings.Contains(lower, "basic land")
		land.FetchColors = subtypesMentioned(raw.OracleText)
		land.FetchTapped = strings.Contains(lower, "onto the battlefield tapped")
		if entersTapped {
			land.Tapped = TappedAlways
		}
		return land
	default:
		if entersTapped {
			land.Tapped = TappedAlways
		}
	}

	if land.Colors == 0 && amount == 0 && land.Subtypes == 0 && land.Archetype == ArchetypeNone {
		// Unrecognized land: permissive default, search any land and
		// arrive tapped, so the deck keeps functioning.
		land.Archetype = ArchetypeFetch
		land.FetchCount = 1
		land.FetchTapped = true
		land.Tapped = TappedAlways
	}
	return land
}

// extractProduction pulls produced colors and amount out of oracle text.
func extractProduction(text, lower string) (ColorSet, int) {
	var colors ColorSet
	amount := 0
	if strings.Contains(lower, "mana of any color") || strings.Contains(lower, "mana of any one color") {
		colors = AllColors
		amount = 1
	}
	if m := addSymbolRe.FindString(text); m != "" {
		for _, sym := range manaSymbolRe.FindAllStringSubmatch(m, -1) {
			amount++
			colors |= ParseColors(sym[1])
		}
	}
	if m := addWordRe.FindStringSubmatch(lower); m != nil {
		if n, ok := wordNumbers[m[1]]; ok && n > amount {
			amount = n
		}
	}
	if amount == 0 && colors != 0 {
		amount = 1
	}
	return colors, amount
}

// subtypesMentioned finds basic land subtype names in rules text.
func subtypesMentioned(text string) ColorSet {
	var s ColorSet
	for c := Color(0); c < NumColors; c++ {
		if strings.Contains(text, c.Subtype()) {
			s = s.Add(c)
		}
	}
	return s
}

func isLandType(typeLine string) bool {
	return strings.Contains(strings.ToLower(typeLine), "land")
}

func firstColor(letters string) Color {
	cs := ParseColors(letters)
	for c := Color(0); c < NumColors; c++ {
		if cs.Has(c) {
			return c
		}
	}
	return Green
}
