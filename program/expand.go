package program

import "cheesechase/game"

// Moves is the flattened output of expansion: the ordered atomic move
// attempts, plus the set of attempt indices whose target cell is a wall.
// Blocked attempts still occupy a slot in Actions; the scoring loop charges
// the wall penalty for them and leaves the mouse in place.
type Moves struct {
	Actions  []int
	WallHits map[int]bool

	// Truncated is set when expansion hit the defensive caps below.
	Truncated bool
}

// Defensive bounds on pathological programs. Two bound subroutine bodies can
// call each other (or themselves) without limit, so both the total action
// count and the call depth are capped. Legitimate programs stay far below
// either bound.
const (
	maxExpandedActions = 100_000
	maxCallDepth       = 64
)

// Expansion state machine. LOOP and IF both wait for a count and then a
// direction; an IF count outside 1-7 still advances to the direction state
// but flagged invalid, which swallows the next direction token without
// emitting moves.
type expandState int

const (
	stateNormal expandState = iota
	stateLoopCount
	stateLoopDir
	stateIfCount
	stateIfDir
)

type expander struct {
	board *game.State
	mouse game.Point
	out   Moves
	funcA []int
	funcB []int
}

// Expand flattens a parsed program into move attempts, walking a virtual
// mouse across the board to resolve wall blocks and junction counts. The
// passed state is read-only; only the virtual position advances.
func Expand(p Parsed, board *game.State) Moves {
	e := &expander{
		board: board,
		mouse: board.Mouse,
		out:   Moves{WallHits: make(map[int]bool)},
		funcA: p.FuncA,
		funcB: p.FuncB,
	}
	e.walk(p.Main, 0)
	return e.out
}

// attempt records one move attempt in dir, advancing the virtual mouse when
// the target cell is open.
func (e *expander) attempt(dir int) {
	idx := len(e.out.Actions)
	e.out.Actions = append(e.out.Actions, dir)
	if e.board.Movable(e.mouse, dir) {
		e.mouse = e.board.MoveClamped(e.mouse, dir)
	} else {
		e.out.WallHits[idx] = true
	}
}

func (e *expander) full() bool {
	if len(e.out.Actions) >= maxExpandedActions {
		e.out.Truncated = true
		return true
	}
	return false
}

func (e *expander) walk(cmds []int, depth int) {
	if depth > maxCallDepth {
		e.out.Truncated = true
		return
	}

	state := stateNormal
	count := 0
	ifValid := false

	for _, cmd := range cmds {
		if cmd == TokenEnd {
			return
		}
		if cmd == TokenFiller {
			continue
		}
		if e.out.Truncated || e.full() {
			return
		}

		// Call markers splice their body wherever they appear, even while a
		// LOOP or IF is still waiting for its count or direction.
		if cmd == TokenCallA && len(e.funcA) > 0 {
			e.walk(e.funcA, depth+1)
			continue
		}
		if cmd == TokenCallB && len(e.funcB) > 0 {
			e.walk(e.funcB, depth+1)
			continue
		}

		switch state {
		case stateNormal:
			switch {
			case IsDirection(cmd):
				e.attempt(cmd)
			case cmd == TokenLoop:
				state = stateLoopCount
			case cmd == TokenIf:
				state = stateIfCount
			}

		case stateLoopCount:
			// Only a numeric literal resolves the count; anything else is
			// skipped and the LOOP keeps waiting.
			if IsNum(cmd) {
				count = NumValue(cmd)
				state = stateLoopDir
			}

		case stateLoopDir:
			if !IsDirection(cmd) {
				continue
			}
			// Walls do not stop the remaining repeats; each attempt is
			// checked and recorded independently.
			for i := 0; i < count; i++ {
				if e.full() {
					return
				}
				e.attempt(cmd)
			}
			state = stateNormal

		case stateIfCount:
			ifValid = IsIfNum(cmd)
			if ifValid {
				count = NumValue(cmd)
			}
			state = stateIfDir

		case stateIfDir:
			if !IsDirection(cmd) {
				continue
			}
			if ifValid {
				e.runIf(count, cmd)
			}
			// An invalid count swallows the direction token silently.
			state = stateNormal
		}
	}
}

// runIf moves in dir until the mouse has passed n junction cells or the
// first blocked attempt. The blocking attempt emits no record.
func (e *expander) runIf(n, dir int) {
	for n > 0 {
		if !e.board.Movable(e.mouse, dir) {
			return
		}
		if e.full() {
			return
		}
		e.attempt(dir)
		if e.board.Junction.At(e.mouse) {
			n--
		}
	}
}
