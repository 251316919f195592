package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"manasim/card"
	"manasim/engine"
	"manasim/simulation"
)

// DeckFile is the YAML input format: a card list with optional per-deck
// configuration and curated classification overrides.
type DeckFile struct {
	Name      string                  `yaml:"name"`
	Config    *DeckConfig             `yaml:"config"`
	Cards     []DeckCard              `yaml:"cards"`
	Overrides map[string]FileOverride `yaml:"overrides"`
}

// DeckConfig overrides the base configuration per deck. Nil fields keep
// the base value.
type DeckConfig struct {
	Iterations       *int     `yaml:"iterations"`
	Turns            *int     `yaml:"turns"`
	HandSize         *int     `yaml:"hand_size"`
	MaxSequences     *int     `yaml:"max_sequences"`
	Commander        *bool    `yaml:"commander"`
	Mulligans        *bool    `yaml:"mulligans"`
	MulliganRule     *string  `yaml:"mulligan_rule"`
	MulliganStrategy *string  `yaml:"mulligan_strategy"`
	MinLands         *int     `yaml:"mulligan_min_lands"`
	MaxLands         *int     `yaml:"mulligan_max_lands"`
	NoPlayByTurn     *int     `yaml:"mulligan_no_play_by_turn"`
	KeyCards         []string `yaml:"key_cards"`

	DisableArtifacts   *bool `yaml:"disable_artifacts"`
	DisableCreatures   *bool `yaml:"disable_creatures"`
	DisableExploration *bool `yaml:"disable_exploration"`
	DisableRampSpells  *bool `yaml:"disable_ramp_spells"`
	DisableRituals     *bool `yaml:"disable_rituals"`

	FloodLands *int `yaml:"flood_lands"`
	FloodTurn  *int `yaml:"flood_turn"`
	ScrewLands *int `yaml:"screw_lands"`
	ScrewTurn  *int `yaml:"screw_turn"`
}

// DeckCard is one raw catalog record plus its copy count.
type DeckCard struct {
	Name       string `yaml:"name"`
	Quantity   int    `yaml:"quantity"`
	ManaCost   string `yaml:"mana_cost"`
	TypeLine   string `yaml:"type_line"`
	OracleText string `yaml:"oracle_text"`
	Layout     string `yaml:"layout"`
	Faces      []struct {
		Name       string `yaml:"name"`
		ManaCost   string `yaml:"mana_cost"`
		TypeLine   string `yaml:"type_line"`
		OracleText string `yaml:"oracle_text"`
	} `yaml:"faces"`
}

// FileOverride is the YAML form of a classification override.
type FileOverride struct {
	Kind         string `yaml:"kind"`
	Colors       string `yaml:"colors"`
	Subtypes     string `yaml:"subtypes"`
	Basic        bool   `yaml:"basic"`
	Archetype    string `yaml:"archetype"`
	EntersTapped bool   `yaml:"enters_tapped"`

	CheckSubtypes  string `yaml:"check_subtypes"`
	FetchCost      int    `yaml:"fetch_cost"`
	FetchColors    string `yaml:"fetch_colors"`
	FetchBasicOnly bool   `yaml:"fetch_basic_only"`
	FetchCount     int    `yaml:"fetch_count"`
	FetchTapped    bool   `yaml:"fetch_tapped"`
	ScalingSubtype string `yaml:"scaling_subtype"`
	MinLands       int    `yaml:"min_lands"`
	CreatureMode   bool   `yaml:"creature_mode"`
	CreatureColors string `yaml:"creature_colors"`

	SacrificeOnNextLand bool    `yaml:"sacrifice_on_next_land"`
	SelfDamage          float64 `yaml:"self_damage"`
	UpkeepTappedDamage  float64 `yaml:"upkeep_tapped_damage"`

	Amount    int    `yaml:"amount"`
	AnyColor  bool   `yaml:"any_color"`
	ETB       string `yaml:"etb"`
	NoUntap   bool   `yaml:"no_untap"`
	Condition string `yaml:"condition"`
	Legendary bool   `yaml:"legendary"`

	Produces int `yaml:"produces"`
	Net      int `yaml:"net"`

	ToBattlefield int    `yaml:"to_battlefield"`
	ToHand        int    `yaml:"to_hand"`
	SacrificeLand bool   `yaml:"sacrifice_land"`
	Filter        string `yaml:"filter"`
	FilterSubtype string `yaml:"filter_subtype"`

	BonusDrops int `yaml:"bonus_drops"`
}

var kindNames = map[string]card.Kind{
	"land":        card.KindLand,
	"artifact":    card.KindArtifact,
	"creature":    card.KindCreature,
	"spell":       card.KindSpell,
	"ritual":      card.KindRitual,
	"ramp":        card.KindRamp,
	"exploration": card.KindExploration,
}

var archetypeNames = map[string]card.LandArchetype{
	"":        card.ArchetypeNone,
	"shock":   card.ArchetypeShock,
	"fast":    card.ArchetypeFast,
	"battle":  card.ArchetypeBattle,
	"check":   card.ArchetypeCheck,
	"crowd":   card.ArchetypeCrowd,
	"fetch":   card.ArchetypeFetch,
	"bounce":  card.ArchetypeBounce,
	"scaling": card.ArchetypeScaling,
}

var etbNames = map[string]card.ETBCost{
	"":              card.ETBNone,
	"discard_land":  card.ETBDiscardLand,
	"exile_nonland": card.ETBExileNonland,
	"discard_hand":  card.ETBDiscardHand,
}

var conditionNames = map[string]card.Condition{
	"":           card.CondNone,
	"metalcraft": card.CondMetalcraft,
	"legendary":  card.CondLegendary,
}

var filterNames = map[string]card.SearchFilter{
	"":        card.FilterAny,
	"any":     card.FilterAny,
	"basic":   card.FilterBasic,
	"subtype": card.FilterSubtype,
	"snow":    card.FilterSnow,
}

// LoadDeckFile reads and parses a deck file.
func LoadDeckFile(path string) (*DeckFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	var deck DeckFile
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("parse deck file %s: %w", path, err)
	}
	return &deck, nil
}

// Entries classifies the deck's raw records into simulation entries.
func (d *DeckFile) Entries() []simulation.DeckEntry {
	overrides := make(map[string]card.Override, len(d.Overrides))
	for name, fo := range d.Overrides {
		overrides[strings.ToLower(name)] = fo.toOverride()
	}

	var entries []simulation.DeckEntry
	for _, dc := range d.Cards {
		raw := card.RawCard{
			Name:       dc.Name,
			ManaCost:   dc.ManaCost,
			TypeLine:   dc.TypeLine,
			OracleText: dc.OracleText,
			Layout:     dc.Layout,
		}
		for _, f := range dc.Faces {
			raw.Faces = append(raw.Faces, card.RawFace(f))
		}
		qty := dc.Quantity
		if qty <= 0 {
			qty = 1
		}
		for _, c := range card.Classify(raw, overrides) {
			entries = append(entries, simulation.DeckEntry{Card: c, Quantity: qty})
		}
	}
	return entries
}

func (fo FileOverride) toOverride() card.Override {
	ov := card.Override{
		Kind:      kindNames[strings.ToLower(fo.Kind)],
		Colors:    fo.Colors,
		Subtypes:  fo.Subtypes,
		Basic:     fo.Basic,
		Archetype: archetypeNames[strings.ToLower(fo.Archetype)],

		CheckSubtypes:  fo.CheckSubtypes,
		FetchCost:      fo.FetchCost,
		FetchColors:    fo.FetchColors,
		FetchBasicOnly: fo.FetchBasicOnly,
		FetchCount:     fo.FetchCount,
		FetchTapped:    fo.FetchTapped,
		ScalingSubtype: fo.ScalingSubtype,
		MinLands:       fo.MinLands,
		CreatureMode:   fo.CreatureMode,
		CreatureColors: fo.CreatureColors,

		SacrificeOnNextLand: fo.SacrificeOnNextLand,
		SelfDamage:          fo.SelfDamage,
		UpkeepTappedDamage:  fo.UpkeepTappedDamage,

		Amount:    fo.Amount,
		AnyColor:  fo.AnyColor,
		ETB:       etbNames[strings.ToLower(fo.ETB)],
		NoUntap:   fo.NoUntap,
		Condition: conditionNames[strings.ToLower(fo.Condition)],
		Legendary: fo.Legendary,

		Produces: fo.Produces,
		Net:      fo.Net,

		ToBattlefield: fo.ToBattlefield,
		EntersTapped:  fo.EntersTapped,
		ToHand:        fo.ToHand,
		SacrificeLand: fo.SacrificeLand,
		Filter:        filterNames[strings.ToLower(fo.Filter)],
		FilterSubtype: fo.FilterSubtype,

		BonusDrops: fo.BonusDrops,
	}
	if fo.EntersTapped {
		ov.Tapped = card.TappedAlways
	}
	return ov
}

// Apply merges the deck file's config block over the base configuration.
func (d *DeckFile) Apply(base simulation.Config) simulation.Config {
	cfg := base
	dc := d.Config
	if dc == nil {
		return cfg
	}
	if dc.Iterations != nil {
		cfg.Iterations = *dc.Iterations
	}
	if dc.Turns != nil {
		cfg.Turns = *dc.Turns
	}
	if dc.HandSize != nil {
		cfg.HandSize = *dc.HandSize
	}
	if dc.MaxSequences != nil {
		cfg.MaxSequences = *dc.MaxSequences
	}
	if dc.Commander != nil {
		cfg.CommanderMode = *dc.Commander
	}
	if dc.Mulligans != nil {
		cfg.EnableMulligans = *dc.Mulligans
	}
	if dc.MulliganRule != nil {
		cfg.MulliganRule = mulliganRule(*dc.MulliganRule)
	}
	if dc.MulliganStrategy != nil {
		cfg.MulliganStrategy = mulliganStrategy(*dc.MulliganStrategy)
	}
	if dc.MinLands != nil {
		cfg.CustomMulligan.MinLands = *dc.MinLands
	}
	if dc.MaxLands != nil {
		cfg.CustomMulligan.MaxLands = *dc.MaxLands
	}
	if dc.NoPlayByTurn != nil {
		cfg.CustomMulligan.NoPlayByTurn = *dc.NoPlayByTurn
	}
	if len(dc.KeyCards) > 0 {
		cfg.KeyCards = dc.KeyCards
	}
	if dc.DisableArtifacts != nil {
		cfg.DisableArtifacts = *dc.DisableArtifacts
	}
	if dc.DisableCreatures != nil {
		cfg.DisableCreatures = *dc.DisableCreatures
	}
	if dc.DisableExploration != nil {
		cfg.DisableExploration = *dc.DisableExploration
	}
	if dc.DisableRampSpells != nil {
		cfg.DisableRampSpells = *dc.DisableRampSpells
	}
	if dc.DisableRituals != nil {
		cfg.DisableRituals = *dc.DisableRituals
	}
	if dc.FloodLands != nil {
		cfg.FloodLands = *dc.FloodLands
	}
	if dc.FloodTurn != nil {
		cfg.FloodTurn = *dc.FloodTurn
	}
	if dc.ScrewLands != nil {
		cfg.ScrewLands = *dc.ScrewLands
	}
	if dc.ScrewTurn != nil {
		cfg.ScrewTurn = *dc.ScrewTurn
	}
	return cfg
}

func mulliganRule(name string) engine.MulliganRule {
	if strings.EqualFold(name, "vancouver") {
		return engine.RuleVancouver
	}
	return engine.RuleLondon
}

func mulliganStrategy(name string) engine.MulliganStrategy {
	switch strings.ToLower(name) {
	case "conservative":
		return engine.StrategyConservative
	case "aggressive":
		return engine.StrategyAggressive
	case "custom":
		return engine.StrategyCustom
	default:
		return engine.StrategyBalanced
	}
}
