package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"cheesechase/game"
	"cheesechase/program"
)

// BatchOptions tunes EvaluateBatch. The zero value is usable.
type BatchOptions struct {
	// Workers is the pool size; <= 0 uses runtime.NumCPU.
	Workers int

	// Seed makes the whole batch reproducible. Each program's run derives
	// its random source from Seed and the program's index, so scores do not
	// depend on which worker happens to pick which job.
	Seed int64

	// Library resolves subroutine identifiers.
	Library program.Library

	// Rewards overrides the score deltas when non-nil.
	Rewards *Rewards
}

// EvaluateBatch scores every program against the same starting record and
// returns the scores in program order. The record is imported once per
// worker; programs never observe each other's outcomes.
func EvaluateBatch(ctx context.Context, rec game.Record, programs [][]int, opts BatchOptions) ([]int, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(programs) && len(programs) > 0 {
		workers = len(programs)
	}

	// Validate the record once before spinning up workers.
	if err := game.New().Import(rec); err != nil {
		return nil, fmt.Errorf("import batch record: %w", err)
	}

	scores := make([]int, len(programs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			state := game.New()
			if err := state.Import(rec); err != nil {
				fail(fmt.Errorf("import worker record: %w", err))
				return
			}

			for idx := range jobs {
				s := New(state, nil, Config{
					Seed:    opts.Seed + int64(idx) + 1,
					Library: opts.Library,
					Rewards: opts.Rewards,
				})
				scores[idx] = s.SimulateProgram(programs[idx])
			}
		}()
	}

	for idx := range programs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return scores, nil
}
