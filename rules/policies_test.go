package rules

import (
	"math/rand"
	"testing"

	"cheesechase/game"
	"cheesechase/pathing"
)

func openState() *game.State {
	s := game.New()
	for i := range s.BigCheese {
		s.BigCheese[i].Active = false
	}
	for i := range s.CrazyCheese {
		s.CrazyCheese[i].Active = false
	}
	return s
}

func TestMoveCatsFleesInsideRedZone(t *testing.T) {
	s := openState()
	s.Mouse = game.Point{Row: 5, Col: 5}
	s.Cats[0] = game.Entity{Pos: game.Point{Row: 5, Col: 7}, Dir: game.Left, Active: true}
	s.Cats[1].Active = false

	cache := pathing.Compute(&s.Wall)
	dist := cache.Get(s.Mouse)

	rng := rand.New(rand.NewSource(1))
	MoveCats(s, dist, rng)

	// Distance 3 is inside the red zone; Up is the first scan-order
	// direction that strictly increases it.
	want := game.Point{Row: 4, Col: 7}
	if s.Cats[0].Pos != want {
		t.Fatalf("cat fled to %v, want %v", s.Cats[0].Pos, want)
	}
	if s.Cats[0].Dir != game.Up {
		t.Fatalf("cat heading = %d, want Up", s.Cats[0].Dir)
	}
	if s.Cats[0].LastPos != (game.Point{Row: 5, Col: 7}) {
		t.Fatalf("last pos = %v", s.Cats[0].LastPos)
	}
}

func TestMoveCatsOutsideRedZoneKeepsHeading(t *testing.T) {
	s := openState()
	s.Mouse = game.Point{Row: 0, Col: 0}
	s.RedZone = 2
	s.Cats[0] = game.Entity{Pos: game.Point{Row: 10, Col: 5}, Dir: game.Right, Active: true}
	s.Cats[1].Active = false

	cache := pathing.Compute(&s.Wall)
	rng := rand.New(rand.NewSource(1))
	MoveCats(s, cache.Get(s.Mouse), rng)

	want := game.Point{Row: 10, Col: 6}
	if s.Cats[0].Pos != want {
		t.Fatalf("cat moved to %v, want %v (keep heading)", s.Cats[0].Pos, want)
	}
}

func TestMoveCatsDeadEndHalts(t *testing.T) {
	s := openState()
	s.Mouse = game.Point{Row: 0, Col: 0}
	s.Cats[0] = game.Entity{Pos: game.Point{Row: 9, Col: 9}, Dir: game.Down, Active: true}
	s.Cats[1].Active = false
	s.DeadEnd[9][9] = 1

	cache := pathing.Compute(&s.Wall)
	rng := rand.New(rand.NewSource(1))
	MoveCats(s, cache.Get(s.Mouse), rng)

	if s.Cats[0].Pos != (game.Point{Row: 9, Col: 9}) {
		t.Fatalf("dead-end cat moved to %v", s.Cats[0].Pos)
	}
}

func TestJunctionChoiceExcludesReversal(t *testing.T) {
	s := openState()
	p := game.Point{Row: 5, Col: 5}
	// Open only behind the heading.
	s.Wall[4][5] = 1
	s.Wall[6][5] = 1
	s.Wall[5][6] = 1

	rng := rand.New(rand.NewSource(1))
	if _, ok := junctionChoice(s, p, game.Right, rng); ok {
		t.Fatal("only the reverse direction is open, choice must fail")
	}

	// Opening a side cell makes it the only candidate.
	s.Wall[4][5] = 0
	dir, ok := junctionChoice(s, p, game.Right, rng)
	if !ok || dir != game.Up {
		t.Fatalf("choice = %d, %v, want Up", dir, ok)
	}
}

func TestMoveCrazyCheeseHasNoFleeRule(t *testing.T) {
	s := openState()
	s.Mouse = game.Point{Row: 5, Col: 5}
	// Adjacent to the mouse, heading away along a corridor: the roaming
	// cheese just keeps its heading, mouse proximity is irrelevant.
	s.CrazyCheese[0] = game.Entity{Pos: game.Point{Row: 5, Col: 6}, Dir: game.Right, Active: true}

	rng := rand.New(rand.NewSource(1))
	MoveCrazyCheese(s, rng)

	if s.CrazyCheese[0].Pos != (game.Point{Row: 5, Col: 7}) {
		t.Fatalf("crazy cheese moved to %v, want (5,7)", s.CrazyCheese[0].Pos)
	}
}
