// Package game defines the core board and entity state for the maze chase.
//
// The board is a fixed 11x11 maze with four boolean cell layers (walls,
// cheese, junctions, dead ends) and a small set of entities: one mouse, two
// cats and four big-cheese pickups. The state is designed to be cheaply
// clonable so that every scored run operates on a private copy.
package game

// Size is the board edge length. All layers and positions are Size x Size.
const Size = 11

// Absolute directions. Up decreases the row, Down increases it.
const (
	Up = iota
	Down
	Left
	Right
	DirCount
)

var dirDelta = [DirCount]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

var opposite = [DirCount]int{Down, Up, Right, Left}

// Opposite returns the reverse of dir. Entities at junctions never reverse.
func Opposite(dir int) int {
	return opposite[dir]
}

// Point is a board coordinate. Row 0 is the top of the maze.
type Point struct {
	Row int
	Col int
}

// Move returns the neighbouring point in dir. The result may be off-board;
// callers must check Valid before indexing a layer with it.
func (p Point) Move(dir int) Point {
	d := dirDelta[dir]
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Valid reports whether p lies on the board.
func (p Point) Valid() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Clamped returns p with both components clamped onto the board.
func (p Point) Clamped() Point {
	if p.Row < 0 {
		p.Row = 0
	}
	if p.Row >= Size {
		p.Row = Size - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col >= Size {
		p.Col = Size - 1
	}
	return p
}

// Grid is one boolean cell layer stored as 0/1 bytes.
type Grid [Size][Size]int8

// At reports whether the cell at p is set. Off-board points read as unset.
func (g *Grid) At(p Point) bool {
	if !p.Valid() {
		return false
	}
	return g[p.Row][p.Col] != 0
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	n := 0
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if g[i][j] != 0 {
				n++
			}
		}
	}
	return n
}

// Entity is a movable board occupant: a cat or a big-cheese pickup.
// Collected pickups flip Active to false and stop participating in the run.
type Entity struct {
	Pos     Point
	LastPos Point
	Dir     int
	Active  bool
}

// Default game parameters, matching the classic level rules.
const (
	DefaultLife       = 3
	DefaultStepLimit  = 200
	DefaultRedZone    = 5
	DefaultFuncChance = 4
)

// NumCats is the number of hostile cats; NumBigCheese and NumCrazyCheese
// are the counts of the two big-cheese kinds.
const (
	NumCats        = 2
	NumBigCheese   = 2
	NumCrazyCheese = 2
)

// State is the complete game state for one run.
//
// BigCheese pickups hold still while a program is being scored; CrazyCheese
// pickups roam the maze like cats do. Both award the big reward on pickup.
type State struct {
	Wall     Grid
	Cheese   Grid
	Junction Grid
	DeadEnd  Grid

	Mouse     Point
	MouseLast Point

	Cats        [NumCats]Entity
	BigCheese   [NumBigCheese]Entity
	CrazyCheese [NumCrazyCheese]Entity

	Score     int
	Life      int
	Step      int
	StepLimit int
	Run       int

	FuncChance int
	RedZone    int

	Win    bool
	Lose   bool
	Caught bool
}

// New returns an empty board with default counters and all entities parked
// at the origin.
func New() *State {
	s := &State{
		Mouse:      Point{Size - 1, Size - 1},
		MouseLast:  Point{Size - 1, Size - 1},
		Life:       DefaultLife,
		StepLimit:  DefaultStepLimit,
		RedZone:    DefaultRedZone,
		FuncChance: DefaultFuncChance,
	}
	for i := range s.Cats {
		s.Cats[i].Active = true
	}
	for i := range s.BigCheese {
		s.BigCheese[i].Active = true
	}
	for i := range s.CrazyCheese {
		s.CrazyCheese[i].Active = true
	}
	return s
}

// Clone performs a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// Movable reports whether the cell one step from p in dir is on the board
// and not a wall.
func (s *State) Movable(p Point, dir int) bool {
	next := p.Move(dir)
	if !next.Valid() {
		return false
	}
	return s.Wall[next.Row][next.Col] == 0
}

// MoveClamped returns the cell one step from p in dir, clamped to the board.
// It is the movement helper used by the entity policies; the interpreter
// treats off-board targets as invalid instead.
func (s *State) MoveClamped(p Point, dir int) Point {
	return p.Move(dir).Clamped()
}

// RemainingCheese counts the small-cheese cells still set. The run is won
// when this reaches zero.
func (s *State) RemainingCheese() int {
	return s.Cheese.Count()
}
