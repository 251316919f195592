package simulation

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"manasim/card"
	"manasim/engine"
)

// DeckEntry pairs a classified card template with its copy count.
type DeckEntry struct {
	Card     card.Card
	Quantity int
}

// Flatten expands deck entries into the simulated card list, applying
// the category toggles. Disabled categories become inert spells so the
// deck size is unchanged.
func Flatten(entries []DeckEntry, cfg Config) []card.Card {
	var deck []card.Card
	for _, e := range entries {
		c := e.Card
		if disabled(c, cfg) {
			c = &card.Spell{Template: card.Template{Name: c.CardName(), Cost: c.CastingCost()}}
		}
		for i := 0; i < e.Quantity; i++ {
			deck = append(deck, c)
		}
	}
	return deck
}

func disabled(c card.Card, cfg Config) bool {
	switch c.Kind() {
	case card.KindArtifact:
		return cfg.DisableArtifacts
	case card.KindCreature:
		return cfg.DisableCreatures
	case card.KindExploration:
		return cfg.DisableExploration
	case card.KindRamp:
		return cfg.DisableRampSpells
	case card.KindRitual:
		return cfg.DisableRituals
	}
	return false
}

// RunTrial plays one complete trial: mulligans, then cfg.Turns turns.
func RunTrial(deck []card.Card, cfg Config, seed uint64) TrialResult {
	rng := rand.New(rand.NewSource(int64(seed)))
	g := engine.NewGame(deck, cfg.HandSize, cfg.CommanderMode, rng)
	g.KeyCards = keySet(cfg.KeyCards)
	g.KeyCosts = keyCosts(deck, cfg.KeyCards)

	var result TrialResult
	if cfg.EnableMulligans {
		result.Mulligans = g.ResolveMulligans(cfg.MulliganRule, cfg.MulliganStrategy, cfg.CustomMulligan, cfg.HandSize)
	}

	result.Snapshots = make([]engine.TurnSnapshot, 0, cfg.Turns)
	result.Logs = make([]*engine.TurnLog, 0, cfg.Turns)
	for t := 0; t < cfg.Turns; t++ {
		snap := g.SimulateTurn()
		result.Snapshots = append(result.Snapshots, snap)
		result.Logs = append(result.Logs, g.Log)
	}
	return result
}

func keySet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func keyCosts(deck []card.Card, names []string) map[string]card.Cost {
	want := keySet(names)
	m := make(map[string]card.Cost, len(names))
	for _, c := range deck {
		if want[c.CardName()] {
			m[c.CardName()] = c.CastingCost()
		}
	}
	return m
}

// Run executes cfg.Iterations trials serially and finalizes the report.
// A nil logger disables logging. An empty deck yields a zero-filled
// report rather than an error.
func Run(entries []DeckEntry, cfg Config, logger *zap.Logger) (*Report, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	deck := Flatten(entries, cfg)
	results := NewResults(cfg)
	if len(deck) == 0 {
		return results.Finalize(runID), nil
	}

	start := time.Now()
	logger.Debug("simulation starting",
		zap.String("run_id", runID),
		zap.Int("deck_size", len(deck)),
		zap.Int("iterations", cfg.Iterations),
	)

	rng := rand.New(rand.NewSource(rootSeed(cfg)))
	for i := 0; i < cfg.Iterations; i++ {
		trial := RunTrial(deck, cfg, rng.Uint64())
		results.AddTrial(&trial)
		if (i+1)%1000 == 0 {
			logger.Debug("progress", zap.String("run_id", runID), zap.Int("done", i+1))
		}
	}

	logger.Debug("simulation finished",
		zap.String("run_id", runID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results.Finalize(runID), nil
}

func rootSeed(cfg Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}
