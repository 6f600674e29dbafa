package game

// Level 3 layout. The layers are written top row first; 1 means the layer is
// set at that cell.

var level3Wall = Grid{
	{0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0},
	{0, 1, 1, 0, 1, 0, 1, 0, 1, 1, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0},
	{0, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0},
	{0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0},
	{0, 1, 1, 1, 0, 1, 0, 1, 1, 1, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1},
	{0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0, 1, 1, 0},
}

var level3Cheese = Grid{
	{1, 1, 1, 1, 0, 1, 0, 1, 1, 1, 1},
	{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1},
	{1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1},
	{1, 0, 1, 1, 1, 1, 1, 1, 1, 0, 1},
	{1, 0, 0, 0, 1, 0, 1, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	{1, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1},
	{1, 0, 0, 1, 1, 1, 1, 1, 0, 0, 1},
}

var level3Junction = Grid{
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 0, 1, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

var level3DeadEnd = Grid{
	{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
}

// NewLevel3 returns the level-3 maze with all entities at their starting
// positions. The mouse starts at the bottom-right corner with that cell's
// cheese already cleared.
func NewLevel3() *State {
	s := New()
	s.Wall = level3Wall
	s.Cheese = level3Cheese
	s.Junction = level3Junction
	s.DeadEnd = level3DeadEnd

	s.Mouse = Point{10, 10}
	s.MouseLast = Point{10, 10}
	s.Cheese[10][10] = 0

	s.Cats[0] = Entity{Pos: Point{2, 2}, LastPos: Point{2, 2}, Dir: Down, Active: true}
	s.Cats[1] = Entity{Pos: Point{5, 5}, LastPos: Point{5, 5}, Dir: Right, Active: true}

	s.BigCheese[0] = Entity{Pos: Point{1, 5}, LastPos: Point{1, 5}, Active: true}
	s.BigCheese[1] = Entity{Pos: Point{7, 5}, LastPos: Point{7, 5}, Active: true}

	s.CrazyCheese[0] = Entity{Pos: Point{0, 3}, LastPos: Point{0, 3}, Dir: Right, Active: true}
	s.CrazyCheese[1] = Entity{Pos: Point{10, 7}, LastPos: Point{10, 7}, Dir: Left, Active: true}

	return s
}
