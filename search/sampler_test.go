package search

import (
	"context"
	"math/rand"
	"testing"

	"cheesechase/game"
	"cheesechase/program"
	"cheesechase/sim"
)

func TestGreedyProgramTerminates(t *testing.T) {
	rec := game.NewLevel3().Export()
	rng := rand.New(rand.NewSource(5))

	opts := SamplerOptions{
		MaxTokens:      6,
		LoopCandidates: 8,
		Batch:          sim.BatchOptions{Workers: 1, Seed: 5},
	}
	tokens, err := GreedyProgram(context.Background(), rec, rng, opts)
	if err != nil {
		t.Fatalf("GreedyProgram: %v", err)
	}

	if len(tokens) == 0 {
		t.Fatal("empty program")
	}
	if tokens[len(tokens)-1] != program.TokenEnd {
		t.Fatalf("program %v does not end with the end marker", tokens)
	}
	// A loop triple chosen at the cap can overshoot by at most two tokens
	// before the end marker.
	if len(tokens) > opts.MaxTokens+3 {
		t.Fatalf("program %v exceeds the token cap", tokens)
	}
}

func TestGreedyProgramPrefersOpenCheese(t *testing.T) {
	// A lone cheese straight up from the mouse: the greedy choice at the
	// first position must move toward it.
	s := game.New()
	s.Mouse = game.Point{Row: 5, Col: 5}
	s.MouseLast = s.Mouse
	s.Cheese[4][5] = 1
	s.Cheese[0][0] = 1
	for i := range s.Cats {
		s.Cats[i] = game.Entity{Pos: game.Point{Row: 10, Col: 0}, LastPos: game.Point{Row: 10, Col: 0}, Dir: game.Down, Active: true}
		s.DeadEnd[10][0] = 1
	}
	for i := range s.BigCheese {
		s.BigCheese[i].Active = false
	}
	for i := range s.CrazyCheese {
		s.CrazyCheese[i].Active = false
	}

	rng := rand.New(rand.NewSource(1))
	opts := SamplerOptions{
		MaxTokens:      1,
		LoopCandidates: 1,
		Batch:          sim.BatchOptions{Workers: 1, Seed: 1},
	}
	tokens, err := GreedyProgram(context.Background(), rec(t, s), rng, opts)
	if err != nil {
		t.Fatalf("GreedyProgram: %v", err)
	}
	if tokens[0] != game.Up {
		t.Fatalf("first token = %d, want Up", tokens[0])
	}
}

func rec(t *testing.T, s *game.State) game.Record {
	t.Helper()
	return s.Export()
}
