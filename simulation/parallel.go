package simulation

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"manasim/card"
)

// trialJob is one queued simulation trial.
type trialJob struct {
	TrialID int
	Seed    uint64
}

// RunParallel executes cfg.Iterations trials across a worker pool and
// reduces the workers' partial accumulators. Seeds are fanned out from
// the root RNG up front, so for a fixed cfg.Seed the aggregate matches
// the serial Run regardless of worker count.
func RunParallel(entries []DeckEntry, cfg Config, logger *zap.Logger) (*Report, error) {
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

	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	start := time.Now()
	logger.Debug("parallel simulation starting",
		zap.String("run_id", runID),
		zap.Int("deck_size", len(deck)),
		zap.Int("iterations", cfg.Iterations),
		zap.Int("workers", numWorkers),
	)

	jobs := make(chan trialJob, cfg.Iterations)
	partials := make(chan *Results, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go trialWorker(&wg, jobs, partials, deck, cfg)
	}

	// Deterministic per-trial seeds from the root RNG.
	rng := rand.New(rand.NewSource(rootSeed(cfg)))
	for i := 0; i < cfg.Iterations; i++ {
		jobs <- trialJob{TrialID: i, Seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(partials)
	}()

	for partial := range partials {
		results.Merge(partial)
	}

	logger.Debug("parallel simulation finished",
		zap.String("run_id", runID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results.Finalize(runID), nil
}

// trialWorker folds its trials into a worker-local accumulator and
// ships the partial when the job queue drains.
func trialWorker(wg *sync.WaitGroup, jobs <-chan trialJob, partials chan<- *Results, deck []card.Card, cfg Config) {
	defer wg.Done()

	local := NewResults(cfg)
	for job := range jobs {
		trial := RunTrial(deck, cfg, job.Seed)
		local.AddTrial(&trial)
	}
	partials <- local
}
