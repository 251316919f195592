package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMatchesSerialAggregate(t *testing.T) {
	entries := []DeckEntry{
		forestEntry(24),
		spellEntry("Opt", "{U}", 8),
		spellEntry("Divination", "{2}{U}", 8),
	}
	cfg := DefaultConfig()
	cfg.Iterations = 200
	cfg.Turns = 6
	cfg.Seed = 77
	cfg.Workers = 4
	cfg.KeyCards = []string{"Divination"}

	serial, err := Run(entries, cfg, nil)
	require.NoError(t, err)
	parallel, err := RunParallel(entries, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, serial.Iterations, parallel.Iterations)
	assert.Equal(t, serial.HandsKept, parallel.HandsKept)
	assert.Equal(t, serial.Mulligans, parallel.Mulligans)

	// Counters are integers, so playability percentages match exactly.
	assert.Equal(t,
		serial.KeyCards["Divination"].Playability,
		parallel.KeyCards["Divination"].Playability)

	// Floating-point sums reduce in a different order across workers.
	for turn := 0; turn < cfg.Turns; turn++ {
		assert.InDelta(t, serial.Lands[turn].Mean, parallel.Lands[turn].Mean, 1e-9)
		assert.InDelta(t, serial.Lands[turn].StdDev, parallel.Lands[turn].StdDev, 1e-9)
		assert.InDelta(t, serial.TotalMana[turn].Mean, parallel.TotalMana[turn].Mean, 1e-9)
		assert.InDelta(t, serial.LifeLoss[turn].Mean, parallel.LifeLoss[turn].Mean, 1e-9)
	}
}

func TestParallelRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 0
	_, err := RunParallel(nil, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turns")
}

func TestParallelEmptyDeck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 5
	rep, err := RunParallel(nil, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Iterations)
}

func TestParallelDefaultWorkerCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 20
	cfg.Turns = 3
	cfg.Seed = 5
	cfg.Workers = 0 // NumCPU

	rep, err := RunParallel([]DeckEntry{forestEntry(40)}, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, rep.Iterations)
}
