// Package simulation drives Monte Carlo trials over a classified deck
// and aggregates per-turn statistics.
package simulation

import (
	"fmt"

	"manasim/engine"
)

// ValidationError describes one bad configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Config is an immutable snapshot of one driver run's options.
type Config struct {
	Iterations int
	Turns      int
	HandSize   int

	// MaxSequences caps stored example play sequences per card/turn.
	MaxSequences int

	// CommanderMode enables the multiplayer first-turn draw and crowd
	// land behavior.
	CommanderMode bool

	EnableMulligans  bool
	MulliganRule     engine.MulliganRule
	MulliganStrategy engine.MulliganStrategy
	CustomMulligan   engine.CustomMulliganRules

	// KeyCards are card names tracked for per-turn playability.
	KeyCards []string

	// Category toggles. Disabled categories are simulated as inert
	// spells rather than removed, so deck size is unchanged.
	DisableArtifacts   bool
	DisableCreatures   bool
	DisableExploration bool
	DisableRampSpells  bool
	DisableRituals     bool

	// Flood/screw thresholds; both zero disables the scalar.
	FloodLands int
	FloodTurn  int
	ScrewLands int
	ScrewTurn  int

	// Seed for the root RNG; 0 means derive from time.
	Seed int64

	// Workers for the parallel driver; 0 means NumCPU.
	Workers int
}

// DefaultConfig returns the baseline option set.
func DefaultConfig() Config {
	return Config{
		Iterations:   1000,
		Turns:        10,
		HandSize:     7,
		MaxSequences: 3,
	}
}

// Validate returns a list of configuration errors (empty = valid).
func (c Config) Validate() []ValidationError {
	var errs []ValidationError
	if c.Iterations <= 0 {
		errs = append(errs, ValidationError{Field: "iterations", Message: "must be positive"})
	}
	if c.Turns <= 0 {
		errs = append(errs, ValidationError{Field: "turns", Message: "must be positive"})
	}
	if c.HandSize <= 0 {
		errs = append(errs, ValidationError{Field: "handSize", Message: "must be positive"})
	}
	if c.MaxSequences < 0 {
		errs = append(errs, ValidationError{Field: "maxSequences", Message: "must not be negative"})
	}
	return errs
}

// floodEnabled reports whether the flood scalar is configured.
func (c Config) floodEnabled() bool { return c.FloodLands > 0 && c.FloodTurn > 0 }

// screwEnabled reports whether the screw scalar is configured.
func (c Config) screwEnabled() bool { return c.ScrewTurn > 0 }
