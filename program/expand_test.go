package program

import (
	"reflect"
	"testing"

	"cheesechase/game"
)

// openBoard returns a wall-free state with the mouse at the given cell.
func openBoard(row, col int) *game.State {
	s := game.New()
	s.Mouse = game.Point{Row: row, Col: col}
	return s
}

func TestExpandDirections(t *testing.T) {
	s := openBoard(5, 5)
	p := Parse([]int{game.Right, game.Right, game.Down, TokenEnd}, nil)

	moves := Expand(p, s)

	want := []int{game.Right, game.Right, game.Down}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
	if len(moves.WallHits) != 0 {
		t.Fatalf("wall hits = %v, want none", moves.WallHits)
	}
}

func TestExpandLoopKeepsAttemptingThroughWalls(t *testing.T) {
	// Two cells of space to the right, then the board edge. The loop emits
	// all three attempts; the blocked ones are flagged.
	s := openBoard(5, 9)
	p := Parse([]int{TokenLoop, 103, game.Right, TokenEnd}, nil)

	moves := Expand(p, s)

	want := []int{game.Right, game.Right, game.Right}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
	if moves.WallHits[0] {
		t.Fatal("first attempt should be open")
	}
	if !moves.WallHits[1] || !moves.WallHits[2] {
		t.Fatalf("attempts past the edge should be flagged, got %v", moves.WallHits)
	}
}

func TestExpandLoopSkipsNonNumericCount(t *testing.T) {
	// The loop keeps waiting for a count across a direction token, then
	// repeats the direction that follows the count.
	s := openBoard(5, 2)
	p := Parse([]int{TokenLoop, game.Up, 102, game.Right, TokenEnd}, nil)

	moves := Expand(p, s)

	want := []int{game.Right, game.Right}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
}

func TestExpandInvalidIfCountSwallowsDirection(t *testing.T) {
	// 100 (meaning 10) is outside the valid IF range 1-7: the following
	// direction token emits nothing, and processing resumes after it.
	s := openBoard(5, 5)
	p := Parse([]int{TokenIf, TokenNumBase, game.Right, game.Down, TokenEnd}, nil)

	moves := Expand(p, s)

	want := []int{game.Down}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
}

func TestExpandIfWalksToNthJunction(t *testing.T) {
	s := openBoard(5, 2)
	s.Junction[5][3] = 1
	s.Junction[5][5] = 1

	p := Parse([]int{TokenIf, 102, game.Right, TokenEnd}, nil)
	moves := Expand(p, s)

	// (5,3) is the first junction, (5,5) the second; movement stops there.
	want := []int{game.Right, game.Right, game.Right}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
}

func TestExpandIfStopsAtWallWithoutRecording(t *testing.T) {
	// No junction before the edge: the walk ends at the first blocked
	// attempt, and that attempt is not recorded.
	s := openBoard(5, 8)
	s.Junction[5][0] = 1

	p := Parse([]int{TokenIf, TokenNum1, game.Right, TokenEnd}, nil)
	moves := Expand(p, s)

	want := []int{game.Right, game.Right}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
	if len(moves.WallHits) != 0 {
		t.Fatalf("wall hits = %v, want none", moves.WallHits)
	}
}

func TestExpandCallMarkersSplice(t *testing.T) {
	lib := MapLibrary{113: {game.Up, game.Up}}
	s := openBoard(5, 5)

	p := Parse([]int{game.Left, 113, game.Left, TokenEnd}, lib)
	moves := Expand(p, s)

	want := []int{game.Left, game.Up, game.Up, game.Left}
	if !reflect.DeepEqual(moves.Actions, want) {
		t.Fatalf("actions = %v, want %v", moves.Actions, want)
	}
}

func TestExpandRecursionIsBounded(t *testing.T) {
	// A subroutine body that re-triggers its own call marker recurses
	// forever; expansion must hit the caps instead of hanging.
	lib := MapLibrary{113: {game.Up, TokenCallA}}
	s := openBoard(5, 5)

	p := Parse([]int{113, TokenEnd}, lib)
	moves := Expand(p, s)

	if !moves.Truncated {
		t.Fatal("self-recursive program should report truncation")
	}
	if len(moves.Actions) > maxExpandedActions {
		t.Fatalf("actions = %d, cap is %d", len(moves.Actions), maxExpandedActions)
	}
}
