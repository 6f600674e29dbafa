// Package rules implements the entity movement policies.
//
// Two deliberately different variants exist for the pursuit entities and the
// crazy big cheese, and they must stay separate:
//
//   - The per-step movers (MoveCats, MoveCrazyCheese) implement the full
//     priority policy, including the cats' flee rule, against the true,
//     evolving mouse position.
//   - The plan builders (PlanCatMoves, PlanCrazyMoves) generate a fixed
//     action sequence in advance, with no flee rule and no knowledge of the
//     mouse's realized path. The scoring loop consumes only these plans;
//     the flee-capable policy is kept as a documented alternate mode.
//
// Shared priority order: dead-end cells halt the entity; (cats, full mode
// only) inside the red zone move to the neighbour that strictly increases
// the distance to the mouse, first of UP/DOWN/LEFT/RIGHT winning ties; at a
// junction pick uniformly among open neighbours excluding the reverse of the
// current heading; otherwise keep heading; otherwise retry a random
// direction up to 100 times and stay put if all fail.
package rules

import (
	"math/rand"

	"cheesechase/game"
	"cheesechase/pathing"
)

// maxRandomTries caps the random-direction fallback loops.
const maxRandomTries = 100

// MoveCats advances every active cat one step using the full policy,
// including the flee rule, evaluated against distToMouse (the distance map
// toward the mouse's current cell).
func MoveCats(s *game.State, distToMouse *pathing.DistanceMap, rng *rand.Rand) {
	for i := range s.Cats {
		if !s.Cats[i].Active {
			continue
		}
		moveCat(&s.Cats[i], s, distToMouse, rng)
	}
}

func moveCat(cat *game.Entity, s *game.State, dist *pathing.DistanceMap, rng *rand.Rand) {
	cat.LastPos = cat.Pos

	if s.DeadEnd.At(cat.Pos) {
		return
	}

	// Flee while inside the red zone: take the first scan-order direction
	// that strictly increases the distance to the mouse.
	myDist := dist[cat.Pos.Row][cat.Pos.Col]
	if myDist > 0 && int(myDist) <= s.RedZone {
		bestDir := -1
		maxDist := myDist
		for dir := 0; dir < game.DirCount; dir++ {
			next := cat.Pos.Move(dir)
			if !next.Valid() || s.Wall.At(next) {
				continue
			}
			if d := dist[next.Row][next.Col]; d > maxDist {
				maxDist = d
				bestDir = dir
			}
		}
		if bestDir >= 0 {
			cat.Pos = cat.Pos.Move(bestDir)
			cat.Dir = bestDir
			return
		}
	}

	if s.Junction.At(cat.Pos) {
		if dir, ok := junctionChoice(s, cat.Pos, cat.Dir, rng); ok {
			cat.Pos = cat.Pos.Move(dir)
			cat.Dir = dir
			return
		}
	}

	if s.Movable(cat.Pos, cat.Dir) {
		cat.Pos = cat.Pos.Move(cat.Dir)
		return
	}

	if dir, ok := randomOpenDir(s, cat.Pos, rng); ok {
		cat.Pos = cat.Pos.Move(dir)
		cat.Dir = dir
	}
}

// MoveCrazyCheese advances every active crazy big cheese one step using the
// full policy minus the flee rule.
func MoveCrazyCheese(s *game.State, rng *rand.Rand) {
	for i := range s.CrazyCheese {
		bc := &s.CrazyCheese[i]
		if !bc.Active {
			continue
		}
		bc.LastPos = bc.Pos

		if s.DeadEnd.At(bc.Pos) {
			continue
		}
		if s.Junction.At(bc.Pos) {
			if dir, ok := junctionChoice(s, bc.Pos, bc.Dir, rng); ok {
				bc.Pos = bc.Pos.Move(dir)
				bc.Dir = dir
				continue
			}
		}
		if s.Movable(bc.Pos, bc.Dir) {
			bc.Pos = bc.Pos.Move(bc.Dir)
			continue
		}
		if dir, ok := randomOpenDir(s, bc.Pos, rng); ok {
			bc.Pos = bc.Pos.Move(dir)
			bc.Dir = dir
		}
	}
}

// junctionChoice picks uniformly among open neighbours of p, excluding the
// reverse of heading. ok is false when no such neighbour exists.
func junctionChoice(s *game.State, p game.Point, heading int, rng *rand.Rand) (int, bool) {
	var valid []int
	back := game.Opposite(heading)
	for dir := 0; dir < game.DirCount; dir++ {
		if dir == back {
			continue
		}
		next := p.Move(dir)
		if next.Valid() && !s.Wall.At(next) {
			valid = append(valid, dir)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}
	return valid[rng.Intn(len(valid))], true
}

// randomOpenDir retries a uniform random direction up to maxRandomTries,
// accepting the first open one.
func randomOpenDir(s *game.State, p game.Point, rng *rand.Rand) (int, bool) {
	for tries := 0; tries < maxRandomTries; tries++ {
		dir := rng.Intn(game.DirCount)
		next := p.Move(dir)
		if next.Valid() && !s.Wall.At(next) {
			return dir, true
		}
	}
	return 0, false
}
