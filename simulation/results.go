package simulation

import (
	"math"
	"strconv"
	"strings"

	"manasim/card"
	"manasim/engine"
)

// series accumulates running sum and sum-of-squares per turn, so mean
// and standard deviation are recoverable without retaining samples.
type series struct {
	sum   []float64
	sumSq []float64
}

func newSeries(turns int) *series {
	return &series{sum: make([]float64, turns), sumSq: make([]float64, turns)}
}

func (s *series) observe(turn int, v float64) {
	s.sum[turn] += v
	s.sumSq[turn] += v * v
}

func (s *series) merge(o *series) {
	for i := range s.sum {
		s.sum[i] += o.sum[i]
		s.sumSq[i] += o.sumSq[i]
	}
}

// Stat is a finalized per-turn statistic.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

func (s *series) stats(n int) []Stat {
	out := make([]Stat, len(s.sum))
	if n == 0 {
		return out
	}
	for i := range s.sum {
		mean := s.sum[i] / float64(n)
		variance := s.sumSq[i]/float64(n) - mean*mean
		if variance < 0 {
			variance = 0
		}
		out[i] = Stat{Mean: mean, StdDev: math.Sqrt(variance)}
	}
	return out
}

type keyCounts struct {
	plain []int
	burst []int
}

// Results folds per-trial observations into running accumulators. It is
// not safe for concurrent use; the parallel driver keeps one per worker
// and merges.
type Results struct {
	cfg   Config
	turns int

	lands    *series
	untapped *series
	mana     *series
	life     *series
	drawn    *series
	colors   [card.NumColors]*series

	keys      map[string]*keyCounts
	sequences map[string]map[int][]string

	Trials     int
	Mulligans  int
	HandsKept  int
	floodCount int
	screwCount int
}

// NewResults builds an empty accumulator for the configuration.
func NewResults(cfg Config) *Results {
	r := &Results{
		cfg:       cfg,
		turns:     cfg.Turns,
		lands:     newSeries(cfg.Turns),
		untapped:  newSeries(cfg.Turns),
		mana:      newSeries(cfg.Turns),
		life:      newSeries(cfg.Turns),
		drawn:     newSeries(cfg.Turns),
		keys:      make(map[string]*keyCounts),
		sequences: make(map[string]map[int][]string),
	}
	for c := range r.colors {
		r.colors[c] = newSeries(cfg.Turns)
	}
	for _, name := range cfg.KeyCards {
		r.keys[name] = &keyCounts{plain: make([]int, cfg.Turns), burst: make([]int, cfg.Turns)}
		r.sequences[name] = make(map[int][]string)
	}
	return r
}

// TrialResult is the outcome of one complete simulated game.
type TrialResult struct {
	Snapshots []engine.TurnSnapshot
	Logs      []*engine.TurnLog
	Mulligans int
}

// AddTrial folds one trial's per-turn observations into the running
// accumulators.
func (r *Results) AddTrial(t *TrialResult) {
	r.Trials++
	r.HandsKept++
	r.Mulligans += t.Mulligans

	for turn, snap := range t.Snapshots {
		if turn >= r.turns {
			break
		}
		r.lands.observe(turn, float64(snap.Lands))
		r.untapped.observe(turn, float64(snap.UntappedLands))
		r.mana.observe(turn, float64(snap.TotalMana))
		r.life.observe(turn, snap.LifeLost)
		r.drawn.observe(turn, float64(snap.CardsDrawn))
		for c := 0; c < card.NumColors; c++ {
			r.colors[c].observe(turn, float64(snap.ByColor[c]))
		}
		for name, k := range r.keys {
			if snap.Castable[name] {
				k.plain[turn]++
				r.sampleSequence(name, turn, t)
			}
			if snap.CastableBurst[name] {
				k.burst[turn]++
			}
		}
	}

	if r.cfg.floodEnabled() && r.cfg.FloodTurn <= len(t.Snapshots) {
		if t.Snapshots[r.cfg.FloodTurn-1].Lands >= r.cfg.FloodLands {
			r.floodCount++
		}
	}
	if r.cfg.screwEnabled() && r.cfg.ScrewTurn <= len(t.Snapshots) {
		if t.Snapshots[r.cfg.ScrewTurn-1].Lands <= r.cfg.ScrewLands {
			r.screwCount++
		}
	}
}

// sampleSequence stores a bounded number of example play sequences for
// the (card, turn) pair.
func (r *Results) sampleSequence(name string, turn int, t *TrialResult) {
	if r.cfg.MaxSequences <= 0 {
		return
	}
	bucket := r.sequences[name]
	if len(bucket[turn]) >= r.cfg.MaxSequences {
		return
	}
	var lines []string
	for i := 0; i <= turn && i < len(t.Logs); i++ {
		if t.Logs[i] == nil {
			continue
		}
		lines = append(lines, "T"+strconv.Itoa(i+1)+": "+strings.Join(t.Logs[i].Actions, ", "))
	}
	bucket[turn] = append(bucket[turn], strings.Join(lines, " | "))
}

// Merge folds another partial accumulator into this one. Addition of
// sums, sums of squares, and counters is associative and commutative,
// so worker partials can reduce in any order.
func (r *Results) Merge(o *Results) {
	r.Trials += o.Trials
	r.Mulligans += o.Mulligans
	r.HandsKept += o.HandsKept
	r.floodCount += o.floodCount
	r.screwCount += o.screwCount
	r.lands.merge(o.lands)
	r.untapped.merge(o.untapped)
	r.mana.merge(o.mana)
	r.life.merge(o.life)
	r.drawn.merge(o.drawn)
	for c := range r.colors {
		r.colors[c].merge(o.colors[c])
	}
	for name, k := range r.keys {
		ok := o.keys[name]
		if ok == nil {
			continue
		}
		for i := range k.plain {
			k.plain[i] += ok.plain[i]
			k.burst[i] += ok.burst[i]
		}
		for turn, seqs := range o.sequences[name] {
			room := r.cfg.MaxSequences - len(r.sequences[name][turn])
			if room <= 0 {
				continue
			}
			if len(seqs) > room {
				seqs = seqs[:room]
			}
			r.sequences[name][turn] = append(r.sequences[name][turn], seqs...)
		}
	}
}

// KeyCardStats is the finalized playability series for one tracked card.
type KeyCardStats struct {
	Playability []float64        `json:"playability"`
	WithBurst   []float64        `json:"playability_with_burst"`
	Sequences   map[int][]string `json:"sequences,omitempty"`
}

// Report is the finalized output of a driver run.
type Report struct {
	RunID      string `json:"run_id"`
	Iterations int    `json:"iterations"`
	Turns      int    `json:"turns"`

	Lands         []Stat            `json:"lands"`
	UntappedLands []Stat            `json:"untapped_lands"`
	TotalMana     []Stat            `json:"total_mana"`
	ManaByColor   map[string][]Stat `json:"mana_by_color"`
	LifeLoss      []Stat            `json:"life_loss"`
	CardsDrawn    []Stat            `json:"cards_drawn"`

	KeyCards map[string]KeyCardStats `json:"key_cards,omitempty"`

	Mulligans int `json:"mulligans"`
	HandsKept int `json:"hands_kept"`

	FloodRate *float64 `json:"flood_rate,omitempty"`
	ScrewRate *float64 `json:"screw_rate,omitempty"`
}

// Finalize computes derived statistics. Call only after all trials have
// been folded in.
func (r *Results) Finalize(runID string) *Report {
	rep := &Report{
		RunID:         runID,
		Iterations:    r.Trials,
		Turns:         r.turns,
		Lands:         r.lands.stats(r.Trials),
		UntappedLands: r.untapped.stats(r.Trials),
		TotalMana:     r.mana.stats(r.Trials),
		ManaByColor:   make(map[string][]Stat, card.NumColors),
		LifeLoss:      r.life.stats(r.Trials),
		CardsDrawn:    r.drawn.stats(r.Trials),
		Mulligans:     r.Mulligans,
		HandsKept:     r.HandsKept,
	}
	for c := 0; c < card.NumColors; c++ {
		rep.ManaByColor[card.Color(c).String()] = r.colors[c].stats(r.Trials)
	}
	if len(r.keys) > 0 {
		rep.KeyCards = make(map[string]KeyCardStats, len(r.keys))
		for name, k := range r.keys {
			stats := KeyCardStats{
				Playability: make([]float64, r.turns),
				WithBurst:   make([]float64, r.turns),
				Sequences:   r.sequences[name],
			}
			if r.Trials > 0 {
				for i := range k.plain {
					stats.Playability[i] = 100 * float64(k.plain[i]) / float64(r.Trials)
					stats.WithBurst[i] = 100 * float64(k.burst[i]) / float64(r.Trials)
				}
			}
			rep.KeyCards[name] = stats
		}
	}
	if r.Trials > 0 {
		if r.cfg.floodEnabled() {
			v := float64(r.floodCount) / float64(r.Trials)
			rep.FloodRate = &v
		}
		if r.cfg.screwEnabled() {
			v := float64(r.screwCount) / float64(r.Trials)
			rep.ScrewRate = &v
		}
	}
	return rep
}
