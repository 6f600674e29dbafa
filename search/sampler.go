// Package search generates candidate programs by greedy lookahead: at each
// position it scores a pool of one-token and loop extensions with the batch
// evaluator and keeps the best, so the produced programs are already strong
// seeds for an external search process.
package search

import (
	"context"
	"fmt"
	"math/rand"

	"cheesechase/game"
	"cheesechase/program"
	"cheesechase/sim"
)

// SamplerOptions tunes GreedyProgram. The zero value takes the defaults
// noted per field.
type SamplerOptions struct {
	// MaxTokens caps the program length (default 10).
	MaxTokens int

	// StructureBan stops offering loop candidates once the program has
	// grown to this many tokens (default 8), so every program ends with
	// plain moves.
	StructureBan int

	// LoopCandidates is the number of random loop triples offered per
	// position (default 96).
	LoopCandidates int

	// DirBonus is added to single-direction candidate scores so plain
	// moves win ties against loops with equal payoff (default 15).
	DirBonus float64

	// LoopScale discounts loop candidate scores (default 0.5).
	LoopScale float64

	// Batch is passed to the evaluator.
	Batch sim.BatchOptions
}

// Loop counts offered by the sampler: 4-9 and 10.
var loopNums = []int{104, 105, 106, 107, 108, 109, 100}

type candidate struct {
	tokens []int
	scale  float64
	isDir  bool
}

// GreedyProgram grows one program from rec, committing the best-scoring
// extension at every position and finishing with an end marker.
func GreedyProgram(ctx context.Context, rec game.Record, rng *rand.Rand, opts SamplerOptions) ([]int, error) {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 10
	}
	if opts.StructureBan <= 0 {
		opts.StructureBan = 8
	}
	if opts.LoopCandidates <= 0 {
		opts.LoopCandidates = 96
	}
	if opts.DirBonus == 0 {
		opts.DirBonus = 15
	}
	if opts.LoopScale == 0 {
		opts.LoopScale = 0.5
	}

	var prog []int
	current := rec
	currentScore := rec.Score

	for len(prog) < opts.MaxTokens {
		candidates := make([]candidate, 0, 4+opts.LoopCandidates)
		for dir := 0; dir < game.DirCount; dir++ {
			candidates = append(candidates, candidate{tokens: []int{dir}, scale: 1, isDir: true})
		}
		if len(prog) < opts.StructureBan {
			for i := 0; i < opts.LoopCandidates; i++ {
				num := loopNums[rng.Intn(len(loopNums))]
				dir := rng.Intn(game.DirCount)
				candidates = append(candidates, candidate{
					tokens: []int{program.TokenLoop, num, dir},
					scale:  opts.LoopScale,
				})
			}
		}

		progs := make([][]int, len(candidates))
		for i, c := range candidates {
			progs[i] = append(append([]int{}, prog...), c.tokens...)
		}

		scores, err := sim.EvaluateBatch(ctx, current, progs, opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("score candidates: %w", err)
		}

		best := -1e18
		var bestTokens [][]int
		for i, c := range candidates {
			score := float64(scores[i]-currentScore) * c.scale
			if c.isDir {
				score += opts.DirBonus
			}
			switch {
			case score > best:
				best = score
				bestTokens = [][]int{c.tokens}
			case score == best:
				bestTokens = append(bestTokens, c.tokens)
			}
		}
		chosen := bestTokens[rng.Intn(len(bestTokens))]
		prog = append(prog, chosen...)

		// Commit the chosen extension so the next position is scored from
		// the advanced state.
		state := game.New()
		if err := state.Import(current); err != nil {
			return nil, fmt.Errorf("import sampler state: %w", err)
		}
		s := sim.New(state, nil, sim.Config{
			Seed:    rng.Int63() + 1,
			Library: opts.Batch.Library,
			Rewards: opts.Batch.Rewards,
		})
		result := s.Run(chosen)
		current = result.State.Export()
		currentScore = result.Score
	}

	if len(prog) == 0 || prog[len(prog)-1] != program.TokenEnd {
		prog = append(prog, program.TokenEnd)
	}
	return prog, nil
}
