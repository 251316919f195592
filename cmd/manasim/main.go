// Package main provides the manasim CLI: it simulates one or more YAML
// deck files and writes per-deck JSON reports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"manasim/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// envDefaults are environment overrides applied as flag defaults, so
// explicit flags still win.
type envDefaults struct {
	Iterations int    `env:"MANASIM_ITERATIONS" envDefault:"1000"`
	Turns      int    `env:"MANASIM_TURNS" envDefault:"10"`
	HandSize   int    `env:"MANASIM_HAND_SIZE" envDefault:"7"`
	Workers    int    `env:"MANASIM_WORKERS" envDefault:"0"`
	Seed       int64  `env:"MANASIM_SEED" envDefault:"0"`
	OutputDir  string `env:"MANASIM_OUTPUT_DIR" envDefault:""`
	Verbose    bool   `env:"MANASIM_VERBOSE" envDefault:"false"`
}

func main() {
	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "bad environment: %v\n", err)
		os.Exit(1)
	}

	iterations := flag.Int("iterations", defaults.Iterations, "Number of trials per deck")
	turns := flag.Int("turns", defaults.Turns, "Turns simulated per trial")
	handSize := flag.Int("hand-size", defaults.HandSize, "Opening hand size")
	workers := flag.Int("workers", defaults.Workers, "Worker goroutines (0 = CPU count)")
	seed := flag.Int64("seed", defaults.Seed, "Random seed (0 = use current time)")
	commander := flag.Bool("commander", false, "Multiplayer mode (turn-one draw, crowd lands untapped)")
	mulligans := flag.Bool("mulligans", false, "Enable mulligan resolution")
	mulliganRuleFlag := flag.String("mulligan-rule", "london", "Mulligan house rule (london, vancouver)")
	mulliganStrategyFlag := flag.String("mulligan-strategy", "balanced", "Keep strategy (conservative, balanced, aggressive, custom)")
	keyCards := flag.String("key-cards", "", "Comma-separated card names to track")
	outputDir := flag.String("output-dir", defaults.OutputDir, "Directory for JSON reports (default: stdout)")
	verbose := flag.Bool("verbose", defaults.Verbose, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("manasim %s (built %s)\n", Version, BuildTime)
		return
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: manasim [flags] deck.yaml [deck.yaml ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger := buildLogger(*verbose)
	defer logger.Sync()

	base := simulation.DefaultConfig()
	base.Iterations = *iterations
	base.Turns = *turns
	base.HandSize = *handSize
	base.Workers = *workers
	base.Seed = *seed
	base.CommanderMode = *commander
	base.EnableMulligans = *mulligans
	base.MulliganRule = mulliganRule(*mulliganRuleFlag)
	base.MulliganStrategy = mulliganStrategy(*mulliganStrategyFlag)
	if *keyCards != "" {
		for _, name := range strings.Split(*keyCards, ",") {
			base.KeyCards = append(base.KeyCards, strings.TrimSpace(name))
		}
	}

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0o755); err != nil {
			logger.Fatal("create output dir", zap.Error(err))
		}
	}

	var g errgroup.Group
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return runDeck(path, base, *outputDir, logger)
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

func buildLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func runDeck(path string, base simulation.Config, outputDir string, logger *zap.Logger) error {
	deck, err := LoadDeckFile(path)
	if err != nil {
		return err
	}
	name := deck.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	cfg := deck.Apply(base)
	report, err := simulation.RunParallel(deck.Entries(), cfg, logger)
	if err != nil {
		return fmt.Errorf("simulate %s: %w", name, err)
	}

	logger.Info("deck simulated",
		zap.String("deck", name),
		zap.String("run_id", report.RunID),
		zap.Int("iterations", report.Iterations),
		zap.Float64("final_turn_lands", finalMean(report.Lands)),
		zap.Float64("final_turn_mana", finalMean(report.TotalMana)),
		zap.Int("mulligans", report.Mulligans),
	)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if outputDir == "" {
		fmt.Println(string(data))
		return nil
	}
	out := filepath.Join(outputDir, sanitize(name)+".json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	logger.Info("report written", zap.String("deck", name), zap.String("path", out))
	return nil
}

func finalMean(stats []simulation.Stat) float64 {
	if len(stats) == 0 {
		return 0
	}
	return stats[len(stats)-1].Mean
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
}
