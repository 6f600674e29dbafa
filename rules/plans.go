package rules

import (
	"math/rand"

	"cheesechase/game"
)

// The plan builders walk a virtual copy of each entity for a fixed number of
// steps and record one action per step. They are flee-blind by design: the
// scoring loop trades the cats' evasion behavior for the ability to
// precompute every adversary move before replaying the mouse program.
//
// When the random fallback finds no open cell within the retry budget, the
// current heading is recorded without advancing the virtual entity; the
// scoring loop re-checks every recorded action against the wall layer
// anyway, so a stuck entity simply stays put.

// PlanCatMoves precomputes steps actions for both cats.
func PlanCatMoves(s *game.State, steps int, rng *rand.Rand) [game.NumCats][]int {
	var plans [game.NumCats][]int

	type virtualEntity struct {
		pos game.Point
		dir int
	}
	var cats [game.NumCats]virtualEntity
	for i := range s.Cats {
		cats[i] = virtualEntity{pos: s.Cats[i].Pos, dir: s.Cats[i].Dir}
	}

	for step := 0; step < steps; step++ {
		for i := range cats {
			cat := &cats[i]
			plans[i] = append(plans[i], planStep(s, &cat.pos, &cat.dir, rng))
		}
	}
	return plans
}

// PlanCrazyMoves precomputes steps actions for each active crazy big cheese.
// Inactive entries get no plan.
func PlanCrazyMoves(s *game.State, steps int, rng *rand.Rand) [game.NumCrazyCheese][]int {
	var plans [game.NumCrazyCheese][]int

	type virtualEntity struct {
		pos game.Point
		dir int
	}
	var cheese [game.NumCrazyCheese]virtualEntity
	for i := range s.CrazyCheese {
		cheese[i] = virtualEntity{pos: s.CrazyCheese[i].Pos, dir: s.CrazyCheese[i].Dir}
	}

	for step := 0; step < steps; step++ {
		for i := range cheese {
			if !s.CrazyCheese[i].Active {
				continue
			}
			bc := &cheese[i]
			if !bc.pos.Valid() {
				continue
			}
			plans[i] = append(plans[i], planStep(s, &bc.pos, &bc.dir, rng))
		}
	}
	return plans
}

// planStep advances one virtual entity by the flee-blind priority policy and
// returns the recorded action.
func planStep(s *game.State, pos *game.Point, dir *int, rng *rand.Rand) int {
	// A dead-end cell halts the entity. The recorded heading points into the
	// dead end (that is how the entity got there), so the scoring loop's
	// wall check keeps the real entity in place as well.
	if s.DeadEnd.At(*pos) {
		return *dir
	}

	if s.Junction.At(*pos) {
		// Rejection-sample a non-reversing open direction.
		for tries := 0; tries < maxRandomTries; tries++ {
			newDir := rng.Intn(game.DirCount)
			if newDir == game.Opposite(*dir) {
				continue
			}
			next := pos.Move(newDir)
			if next.Valid() && !s.Wall.At(next) {
				*pos = next
				*dir = newDir
				return newDir
			}
		}
		return *dir
	}

	if s.Movable(*pos, *dir) {
		*pos = s.MoveClamped(*pos, *dir)
		return *dir
	}

	for tries := 0; tries < maxRandomTries; tries++ {
		newDir := rng.Intn(game.DirCount)
		next := pos.Move(newDir)
		if next.Valid() && !s.Wall.At(next) {
			*pos = next
			*dir = newDir
			return newDir
		}
	}
	return *dir
}
