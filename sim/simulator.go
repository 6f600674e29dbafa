// Package sim scores mouse token programs against a game state.
//
// A Simulator owns a persisted state and a private random source. Scoring
// never mutates the persisted state: every run replays the program on a
// fresh clone, composed with precomputed adversary plans, and returns the
// accumulated score. Committing a run's outcome back into the persisted
// state is the caller's job, via the game.Record export/import contract.
package sim

import (
	"math/rand"
	"time"

	"cheesechase/game"
	"cheesechase/pathing"
	"cheesechase/program"
	"cheesechase/rules"
)

// Rewards holds the per-event score deltas.
type Rewards struct {
	Cheese        int
	BigCheese     int
	CatCollision  int
	WallCollision int
}

// DefaultRewards matches the classic scoring: +10 per cheese, +500 per big
// cheese, -500 per cat collision, -10 per wall bump.
var DefaultRewards = Rewards{
	Cheese:        10,
	BigCheese:     500,
	CatCollision:  -500,
	WallCollision: -10,
}

// Config tunes a Simulator. The zero value is usable: entropy-derived seed,
// empty subroutine library, default rewards.
type Config struct {
	// Seed for the simulator's private random source; 0 draws one from the
	// clock. Fixed seeds make runs reproducible.
	Seed int64

	// Library resolves subroutine identifiers during parsing.
	Library program.Library

	// Rewards overrides the score deltas when non-nil.
	Rewards *Rewards
}

// Simulator evaluates programs against one persisted state. It is not safe
// for concurrent use; batch evaluation gives each worker its own Simulator.
type Simulator struct {
	state   *game.State
	cache   *pathing.Cache
	rng     *rand.Rand
	lib     program.Library
	rewards Rewards
}

// New builds a Simulator over state. The distance cache feeds the live
// adversary policy only; nil is fine for plain Run, and RunLive computes one
// for state's wall layer on first use.
func New(state *game.State, cache *pathing.Cache, cfg Config) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	lib := cfg.Library
	if lib == nil {
		lib = program.EmptyLibrary
	}
	rewards := DefaultRewards
	if cfg.Rewards != nil {
		rewards = *cfg.Rewards
	}
	return &Simulator{
		state:   state,
		cache:   cache,
		rng:     rand.New(rand.NewSource(seed)),
		lib:     lib,
		rewards: rewards,
	}
}

// State returns the persisted state. Callers may export/import records on
// it between runs; scoring itself never touches it.
func (s *Simulator) State() *game.State {
	return s.state
}

// Restore overwrites the persisted state from a record.
func (s *Simulator) Restore(r game.Record) error {
	return s.state.Import(r)
}

// Result is the outcome of one scored run. State is the private clone the
// run finished on, with Score and Life synced to the returned totals; it is
// never the persisted state.
type Result struct {
	Score  int
	Steps  int
	Win    bool
	Caught bool
	State  *game.State
}

// SimulateProgram scores one token program and returns the accumulated
// score. The persisted state is unaffected.
func (s *Simulator) SimulateProgram(tokens []int) int {
	return s.Run(tokens).Score
}

// SimulateAndApply scores one token program. Despite the name it commits
// nothing: selecting a winning program and copying its resulting state back
// into the persisted state is an explicit caller responsibility.
func (s *Simulator) SimulateAndApply(tokens []int) int {
	return s.Run(tokens).Score
}

// Run replays one program on a private clone, step by step, and resolves
// movement, collisions, collection, scoring and termination.
func (s *Simulator) Run(tokens []int) Result {
	st := s.state.Clone()
	score := st.Score
	life := st.Life

	parsed := program.Parse(tokens, s.lib)
	moves := program.Expand(parsed, st)

	declared := program.DeclaredLength(tokens)

	// Adversary plans are precomputed (flee-blind): the cats for every
	// realized mouse move, the crazy cheese for the declared token length.
	catPlans := rules.PlanCatMoves(st, len(moves.Actions), s.rng)
	crazyPlans := rules.PlanCrazyMoves(st, declared, s.rng)

	caught := false

	for itr, action := range moves.Actions {
		// 1. Wall bump recorded by the interpreter for this attempt.
		if moves.WallHits[itr] {
			score += s.rewards.WallCollision
		}

		// 2. Mouse moves if the target cell is open.
		st.MouseLast = st.Mouse
		if st.Movable(st.Mouse, action) {
			st.Mouse = st.MoveClamped(st.Mouse, action)
			st.Step++
		}

		// 3. Cat 1 moves every realized step; 4. cat 0 only within the
		// declared token length. Either move is rejected if it would land
		// on the other cat.
		s.stepCat(st, 1, 0, catPlans[1], itr)
		if itr < declared {
			s.stepCat(st, 0, 1, catPlans[0], itr)
		}

		// 5. Crazy cheese moves within the declared token length, rejecting
		// cells held by a cat or another active crazy cheese.
		for j := range st.CrazyCheese {
			if !st.CrazyCheese[j].Active {
				continue
			}
			if itr < len(crazyPlans[j]) {
				s.stepCrazy(st, j, crazyPlans[j][itr])
			}
		}

		// 6-8. Collisions, collection and small cheese resolve against the
		// final cell occupancy of the step.
		delta, lost, hit := s.resolveStep(st)
		score += delta
		life -= lost
		caught = hit

		// 9. Termination, in order: out of lives, board cleared, step
		// budget, then hostile collision even with life remaining.
		if life <= 0 {
			break
		}
		if st.RemainingCheese() == 0 {
			st.Win = true
			score += st.Run*10 + st.Step
			break
		}
		if st.Step >= st.StepLimit {
			break
		}
		if caught {
			break
		}
	}

	// The in-loop win check runs before the step-limit and caught breaks,
	// so a final iteration can clear the board and still exit through one
	// of them. Re-check once so the bonus is never missed (and, because of
	// the Win flag, never doubled).
	if !st.Win && st.RemainingCheese() == 0 {
		st.Win = true
		score += st.Run*10 + st.Step
	}

	st.Score = score
	st.Life = life
	st.Caught = caught

	return Result{
		Score:  score,
		Steps:  st.Step,
		Win:    st.Win,
		Caught: caught,
		State:  st,
	}
}

// RunLive replays one program with the live adversary policy instead of
// precomputed plans: on every realized mouse step both cats and the roaming
// cheese move against the mouse's current cell, flee rule included. Scoring,
// collection and termination match Run.
func (s *Simulator) RunLive(tokens []int) Result {
	if s.cache == nil {
		s.cache = pathing.Compute(&s.state.Wall)
	}

	st := s.state.Clone()
	score := st.Score
	life := st.Life

	parsed := program.Parse(tokens, s.lib)
	moves := program.Expand(parsed, st)

	caught := false

	for itr, action := range moves.Actions {
		if moves.WallHits[itr] {
			score += s.rewards.WallCollision
		}

		st.MouseLast = st.Mouse
		if st.Movable(st.Mouse, action) {
			st.Mouse = st.MoveClamped(st.Mouse, action)
			st.Step++

			// The world only advances with the mouse: a blocked attempt
			// freezes the adversaries too.
			rules.MoveCats(st, s.cache.Get(st.Mouse), s.rng)
			rules.MoveCrazyCheese(st, s.rng)
		}

		delta, lost, hit := s.resolveStep(st)
		score += delta
		life -= lost
		caught = hit

		if life <= 0 {
			break
		}
		if st.RemainingCheese() == 0 {
			st.Win = true
			score += st.Run*10 + st.Step
			break
		}
		if st.Step >= st.StepLimit {
			break
		}
		if caught {
			break
		}
	}

	if !st.Win && st.RemainingCheese() == 0 {
		st.Win = true
		score += st.Run*10 + st.Step
	}

	st.Score = score
	st.Life = life
	st.Caught = caught

	return Result{
		Score:  score,
		Steps:  st.Step,
		Win:    st.Win,
		Caught: caught,
		State:  st,
	}
}

// resolveStep applies collisions, collection and small-cheese pickup after
// the adversaries have moved, returning the score delta, lives lost and
// whether a cat hit.
func (s *Simulator) resolveStep(st *game.State) (delta, lost int, caught bool) {
	// Every active cat is checked independently; both can hit in the same
	// step. A hit is sharing the mouse's cell or swapping cells with it
	// ("crossing").
	for ci := range st.Cats {
		cat := &st.Cats[ci]
		if !cat.Active {
			continue
		}
		if st.Mouse == cat.Pos || crossing(st.Mouse, st.MouseLast, cat.Pos, cat.LastPos) {
			delta += s.rewards.CatCollision
			lost++
			caught = true
		}
	}

	// Collection: both big-cheese kinds, unconditionally.
	for j := range st.BigCheese {
		bc := &st.BigCheese[j]
		if bc.Active && st.Mouse == bc.Pos {
			bc.Active = false
			delta += s.rewards.BigCheese
		}
	}
	for j := range st.CrazyCheese {
		bc := &st.CrazyCheese[j]
		if bc.Active && st.Mouse == bc.Pos {
			bc.Active = false
			delta += s.rewards.BigCheese
		}
	}

	// Small cheese at the mouse's cell.
	if st.Cheese.At(st.Mouse) {
		st.Cheese[st.Mouse.Row][st.Mouse.Col] = 0
		delta += s.rewards.Cheese
	}
	return delta, lost, caught
}

// stepCat applies one planned cat action, rejecting a move onto the other
// cat's cell. LastPos advances only on accepted moves, matching the
// crossing rule's view of where the cat came from.
func (s *Simulator) stepCat(st *game.State, idx, other int, plan []int, itr int) {
	if itr >= len(plan) {
		return
	}
	cat := &st.Cats[idx]
	action := plan[itr]
	if !st.Movable(cat.Pos, action) {
		return
	}
	next := st.MoveClamped(cat.Pos, action)
	if next == st.Cats[other].Pos {
		return
	}
	cat.LastPos = cat.Pos
	cat.Pos = next
}

// stepCrazy applies one planned crazy-cheese action, rejecting cells held
// by a cat or another active crazy cheese.
func (s *Simulator) stepCrazy(st *game.State, idx, action int) {
	bc := &st.CrazyCheese[idx]
	if !st.Movable(bc.Pos, action) {
		return
	}
	next := st.MoveClamped(bc.Pos, action)
	for c := range st.Cats {
		if next == st.Cats[c].Pos {
			return
		}
	}
	for k := range st.CrazyCheese {
		if k != idx && st.CrazyCheese[k].Active && next == st.CrazyCheese[k].Pos {
			return
		}
	}
	bc.Pos = next
}

// crossing reports whether two entities moved through each other this step.
func crossing(p1, p1Last, p2, p2Last game.Point) bool {
	return p1 == p2Last && p2 == p1Last
}
