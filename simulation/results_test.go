package simulation

import (
	"math"
	"testing"

	"manasim/engine"
)

func TestSeriesStats(t *testing.T) {
	s := newSeries(1)
	s.observe(0, 2)
	s.observe(0, 4)
	stats := s.stats(2)
	if stats[0].Mean != 3 {
		t.Errorf("mean = %g, want 3", stats[0].Mean)
	}
	if math.Abs(stats[0].StdDev-1) > 1e-12 {
		t.Errorf("stddev = %g, want 1", stats[0].StdDev)
	}
}

func TestSeriesStatsZeroTrials(t *testing.T) {
	s := newSeries(3)
	stats := s.stats(0)
	for i, st := range stats {
		if st.Mean != 0 || st.StdDev != 0 {
			t.Errorf("turn %d: stats without trials should be zero, got %+v", i, st)
		}
	}
}

func trialWithLands(lands ...int) *TrialResult {
	tr := &TrialResult{}
	for _, n := range lands {
		tr.Snapshots = append(tr.Snapshots, engine.TurnSnapshot{Lands: n})
	}
	return tr
}

func TestAddTrialCountsHandsKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 3
	r := NewResults(cfg)
	for i := 0; i < 5; i++ {
		r.AddTrial(trialWithLands(1, 2, 3))
	}
	if r.Trials != 5 || r.HandsKept != 5 {
		t.Errorf("trials/kept = %d/%d, want 5/5", r.Trials, r.HandsKept)
	}
}

func TestFloodAndScrewCounting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 4
	cfg.FloodLands = 4
	cfg.FloodTurn = 4
	cfg.ScrewLands = 2
	cfg.ScrewTurn = 3

	r := NewResults(cfg)
	r.AddTrial(trialWithLands(1, 2, 3, 4)) // flooded at turn 4, not screwed
	r.AddTrial(trialWithLands(1, 1, 1, 1)) // screwed at turn 3, not flooded

	rep := r.Finalize("test")
	if rep.FloodRate == nil || *rep.FloodRate != 0.5 {
		t.Errorf("flood rate = %v, want 0.5", rep.FloodRate)
	}
	if rep.ScrewRate == nil || *rep.ScrewRate != 0.5 {
		t.Errorf("screw rate = %v, want 0.5", rep.ScrewRate)
	}
}

func TestRatesOmittedWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 2
	r := NewResults(cfg)
	r.AddTrial(trialWithLands(1, 2))
	rep := r.Finalize("test")
	if rep.FloodRate != nil || rep.ScrewRate != nil {
		t.Error("unconfigured scalars must not appear in the report")
	}
}

func TestMergeMatchesSequentialFold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 2
	cfg.KeyCards = []string{"Bolt"}

	castableTrial := func(lands int) *TrialResult {
		return &TrialResult{Snapshots: []engine.TurnSnapshot{
			{Lands: lands, Castable: map[string]bool{"Bolt": true}, CastableBurst: map[string]bool{"Bolt": true}},
			{Lands: lands + 1, Castable: map[string]bool{}, CastableBurst: map[string]bool{}},
		}}
	}

	whole := NewResults(cfg)
	whole.AddTrial(castableTrial(1))
	whole.AddTrial(castableTrial(2))
	whole.AddTrial(castableTrial(3))

	a := NewResults(cfg)
	a.AddTrial(castableTrial(1))
	b := NewResults(cfg)
	b.AddTrial(castableTrial(2))
	b.AddTrial(castableTrial(3))
	a.Merge(b)

	repWhole := whole.Finalize("x")
	repMerged := a.Finalize("x")
	if repWhole.Lands[0].Mean != repMerged.Lands[0].Mean {
		t.Errorf("merged mean %g != sequential mean %g", repMerged.Lands[0].Mean, repWhole.Lands[0].Mean)
	}
	if repWhole.Lands[1].StdDev != repMerged.Lands[1].StdDev {
		t.Errorf("merged stddev %g != sequential stddev %g", repMerged.Lands[1].StdDev, repWhole.Lands[1].StdDev)
	}
	kw := repWhole.KeyCards["Bolt"]
	km := repMerged.KeyCards["Bolt"]
	if kw.Playability[0] != km.Playability[0] || kw.WithBurst[0] != km.WithBurst[0] {
		t.Error("key-card counts must merge exactly")
	}
}

func TestSequenceSamplingBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Turns = 1
	cfg.KeyCards = []string{"Bolt"}
	cfg.MaxSequences = 2

	r := NewResults(cfg)
	for i := 0; i < 5; i++ {
		r.AddTrial(&TrialResult{
			Snapshots: []engine.TurnSnapshot{{Castable: map[string]bool{"Bolt": true}}},
			Logs:      []*engine.TurnLog{{Actions: []string{"play Mountain", "cast Bolt"}}},
		})
	}
	rep := r.Finalize("x")
	seqs := rep.KeyCards["Bolt"].Sequences[0]
	if len(seqs) != 2 {
		t.Fatalf("stored sequences = %d, want the cap of 2", len(seqs))
	}
	if seqs[0] != "T1: play Mountain, cast Bolt" {
		t.Errorf("sequence rendering = %q", seqs[0])
	}
}
