package sim

import (
	"testing"

	"cheesechase/game"
	"cheesechase/program"
)

// quietState builds a wall-free board with all pickups collected and both
// cats parked in dead-end cells facing the board edge, so nothing moves or
// scores unless a scenario places it.
func quietState() *game.State {
	s := game.New()
	s.Mouse = game.Point{Row: 5, Col: 5}
	s.MouseLast = s.Mouse

	s.Cats[0] = game.Entity{Pos: game.Point{Row: 0, Col: 0}, LastPos: game.Point{Row: 0, Col: 0}, Dir: game.Up, Active: true}
	s.Cats[1] = game.Entity{Pos: game.Point{Row: 0, Col: 10}, LastPos: game.Point{Row: 0, Col: 10}, Dir: game.Up, Active: true}
	s.DeadEnd[0][0] = 1
	s.DeadEnd[0][10] = 1

	for i := range s.BigCheese {
		s.BigCheese[i].Active = false
	}
	for i := range s.CrazyCheese {
		s.CrazyCheese[i].Active = false
	}
	return s
}

// parkCat pins a cat at p, facing a wall so the planned moves never land.
func parkCat(s *game.State, idx int, p game.Point, dir int) {
	s.Cats[idx] = game.Entity{Pos: p, LastPos: p, Dir: dir, Active: true}
	s.DeadEnd[p.Row][p.Col] = 1
	ahead := p.Move(dir)
	if ahead.Valid() {
		s.Wall[ahead.Row][ahead.Col] = 1
	}
}

func TestRunCollectsCheese(t *testing.T) {
	s := quietState()
	s.Cheese[5][6] = 1
	s.Cheese[5][7] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	// +10 for the cheese; the board is not cleared, so no bonus.
	if result.Score != 10 {
		t.Fatalf("score = %d, want 10", result.Score)
	}
	if result.Steps != 1 {
		t.Fatalf("steps = %d, want 1", result.Steps)
	}
	if result.Win {
		t.Fatal("board not cleared, must not win")
	}
	t.Logf("final board:\n%s", game.Render(result.State))
}

func TestRunWallBumpPenalty(t *testing.T) {
	s := quietState()
	s.Mouse = game.Point{Row: 5, Col: 10}
	s.MouseLast = s.Mouse
	s.Cheese[0][1] = 1 // keep the board uncleared

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	if result.Score != -10 {
		t.Fatalf("score = %d, want -10", result.Score)
	}
	// A blocked attempt is not a realized step.
	if result.Steps != 0 {
		t.Fatalf("steps = %d, want 0", result.Steps)
	}
	if result.State.Mouse != s.Mouse {
		t.Fatalf("mouse moved to %v", result.State.Mouse)
	}
}

func TestRunWinBonusAppliedOnce(t *testing.T) {
	s := quietState()
	s.Cheese[5][6] = 1
	s.Run = 2

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	// +10 cheese, +run*10+step = 21 bonus, applied exactly once.
	if result.Score != 31 {
		t.Fatalf("score = %d, want 31", result.Score)
	}
	if !result.Win {
		t.Fatal("cleared board must win")
	}
}

func TestRunCatHitEndsRun(t *testing.T) {
	s := quietState()
	parkCat(s, 0, game.Point{Row: 5, Col: 6}, game.Right)
	s.Cheese[0][1] = 1
	s.Cheese[0][2] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, game.Right, game.Right, program.TokenEnd})

	if result.Score != -500 {
		t.Fatalf("score = %d, want -500", result.Score)
	}
	if !result.Caught {
		t.Fatal("walking into a cat must set caught")
	}
	if result.State.Life != game.DefaultLife-1 {
		t.Fatalf("life = %d, want %d", result.State.Life, game.DefaultLife-1)
	}
	// The run ends on the hit; the remaining moves never execute.
	if result.Steps != 1 {
		t.Fatalf("steps = %d, want 1", result.Steps)
	}
}

func TestRunBothCatsHitSameStep(t *testing.T) {
	// A restored position can hold both cats on one cell; each active cat is
	// checked independently, so walking into the pile costs two lives and two
	// penalties in a single step.
	s := quietState()
	parkCat(s, 0, game.Point{Row: 5, Col: 6}, game.Right)
	parkCat(s, 1, game.Point{Row: 5, Col: 6}, game.Right)
	s.Cheese[0][1] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	if result.Score != -1000 {
		t.Fatalf("score = %d, want -1000", result.Score)
	}
	if result.State.Life != game.DefaultLife-2 {
		t.Fatalf("life = %d, want %d", result.State.Life, game.DefaultLife-2)
	}
	if !result.Caught {
		t.Fatal("hitting both cats must set caught")
	}
	if result.Steps != 1 {
		t.Fatalf("steps = %d, want 1", result.Steps)
	}
}

func TestRunCrossingCatCollision(t *testing.T) {
	// Mouse and cat swap cells in one step: neither ends on the other's
	// cell, but passing through each other still counts as a hit.
	s := quietState()
	s.Cats[1] = game.Entity{Pos: game.Point{Row: 5, Col: 6}, LastPos: game.Point{Row: 5, Col: 6}, Dir: game.Left, Active: true}
	s.Cheese[0][1] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	if result.Score != -500 {
		t.Fatalf("score = %d, want -500", result.Score)
	}
	if !result.Caught {
		t.Fatal("swapping cells with a cat must count as a hit")
	}
	if result.State.Mouse != (game.Point{Row: 5, Col: 6}) {
		t.Fatalf("mouse = %v, want (5,6)", result.State.Mouse)
	}
	if result.State.Cats[1].Pos != (game.Point{Row: 5, Col: 5}) {
		t.Fatalf("cat = %v, want (5,5)", result.State.Cats[1].Pos)
	}
}

func TestRunFinalStepClearAndHitStillWins(t *testing.T) {
	// Life runs out and the board clears on the same step: the life break
	// fires before the in-loop win check, so the post-loop re-check must
	// still award the win and its bonus.
	s := quietState()
	s.Life = 1
	parkCat(s, 0, game.Point{Row: 5, Col: 6}, game.Right)
	s.Cheese[5][6] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	// -500 hit, +10 cheese, +1 bonus (run 0, step 1).
	if result.Score != -489 {
		t.Fatalf("score = %d, want -489", result.Score)
	}
	if !result.Win {
		t.Fatal("cleared board must win even when the last life is lost")
	}
	if result.State.Life != 0 {
		t.Fatalf("life = %d, want 0", result.State.Life)
	}
}

func TestRunStepLimitStopsRun(t *testing.T) {
	s := quietState()
	s.StepLimit = 2
	s.Cheese[0][1] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, game.Right, game.Right, game.Right, program.TokenEnd})

	if result.Steps != 2 {
		t.Fatalf("steps = %d, want 2", result.Steps)
	}
	if result.Win {
		t.Fatal("hitting the step limit is not a win")
	}
}

func TestRunDoesNotMutatePersistedState(t *testing.T) {
	s := quietState()
	s.Cheese[5][6] = 1
	before := *s

	sim := New(s, nil, Config{Seed: 1})
	_ = sim.SimulateProgram([]int{game.Right, program.TokenEnd})
	_ = sim.SimulateAndApply([]int{game.Right, program.TokenEnd})

	if *sim.State() != before {
		t.Fatal("scoring mutated the persisted state")
	}
}

func TestRunDeterministicForSeed(t *testing.T) {
	s := game.NewLevel3()
	tokens := []int{game.Up, game.Up, program.TokenLoop, 105, game.Left, program.TokenEnd}

	a := New(s.Clone(), nil, Config{Seed: 42}).Run(tokens)
	b := New(s.Clone(), nil, Config{Seed: 42}).Run(tokens)

	if a.Score != b.Score || a.Steps != b.Steps || a.Win != b.Win || a.Caught != b.Caught {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
}

func TestRunLiveCatFleesRedZone(t *testing.T) {
	// The live policy, unlike the precomputed plans, applies the flee rule:
	// a cat inside the red zone steps to the neighbour that increases its
	// distance to the mouse instead of keeping its heading.
	s := quietState()
	s.Cats[0] = game.Entity{Pos: game.Point{Row: 5, Col: 7}, LastPos: game.Point{Row: 5, Col: 7}, Dir: game.Right, Active: true}
	s.Cheese[0][1] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.RunLive([]int{game.Right, program.TokenEnd})

	if got := result.State.Cats[0].Pos; got != (game.Point{Row: 4, Col: 7}) {
		t.Fatalf("cat = %v, want (4,7)", got)
	}
	if result.Caught {
		t.Fatal("fleeing cat must not hit")
	}
	if result.Steps != 1 {
		t.Fatalf("steps = %d, want 1", result.Steps)
	}
}

func TestRunCrazyCheesePickup(t *testing.T) {
	s := quietState()
	s.Cheese[0][1] = 1
	// Park the roaming cheese next to the mouse, facing a corner wall so it
	// holds still.
	s.CrazyCheese[0] = game.Entity{Pos: game.Point{Row: 5, Col: 6}, LastPos: game.Point{Row: 5, Col: 6}, Dir: game.Right, Active: true}
	s.DeadEnd[5][6] = 1
	s.Wall[5][7] = 1

	sim := New(s, nil, Config{Seed: 1})
	result := sim.Run([]int{game.Right, program.TokenEnd})

	if result.Score != 500 {
		t.Fatalf("score = %d, want 500", result.Score)
	}
	if result.State.CrazyCheese[0].Active {
		t.Fatal("collected pickup must deactivate")
	}
}
