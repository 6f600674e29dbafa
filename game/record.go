package game

import "fmt"

// Record is the state exchange contract between runs and between games.
// Callers export it to persist a position, and import it to overwrite the
// live state atomically. The JSON field names follow the record layout the
// external search tooling already speaks: positions are [row, col] pairs and
// layers are 11x11 0/1 grids.
type Record struct {
	Mouse     [2]int `json:"mouse"`
	MouseLast [2]int `json:"mouse_last_pos"`

	Cat          [][2]int `json:"cat"`
	CatLast      [][2]int `json:"cat_last_pos"`
	CatDirection []int    `json:"cat_direction"`

	Wall    [][]int8 `json:"wall"`
	Cheese  [][]int8 `json:"sc"`
	Junc    [][]int8 `json:"junc"`
	DeadEnd [][]int8 `json:"deadend"`

	BigCheese      [][2]int `json:"movbc"`
	CrazyCheese    [][2]int `json:"crzbc"`
	CrazyDirection []int    `json:"crzbc_direction,omitempty"`

	Score     int `json:"score"`
	Life      int `json:"life"`
	Step      int `json:"step"`
	StepLimit int `json:"step_limit"`
	Run       int `json:"run"`

	FuncChance int `json:"func_chance"`
	RedZone    int `json:"red_zone"`

	Win    bool `json:"win_sign"`
	Lose   bool `json:"lose_sign"`
	Caught bool `json:"catched"`
}

func gridToRows(g *Grid) [][]int8 {
	rows := make([][]int8, Size)
	for i := 0; i < Size; i++ {
		row := make([]int8, Size)
		copy(row, g[i][:])
		rows[i] = row
	}
	return rows
}

func rowsToGrid(rows [][]int8) (Grid, error) {
	var g Grid
	if len(rows) == 0 {
		return g, nil
	}
	if len(rows) != Size {
		return g, fmt.Errorf("layer has %d rows, want %d", len(rows), Size)
	}
	for i, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("layer row %d has %d cells, want %d", i, len(row), Size)
		}
		copy(g[i][:], row)
	}
	return g, nil
}

func pt(p [2]int) Point { return Point{Row: p[0], Col: p[1]} }

func pair(p Point) [2]int { return [2]int{p.Row, p.Col} }

// Export snapshots the current state into a Record. The record only carries
// active big-cheese pickups, matching the external layout where collected
// pickups simply disappear from the lists.
func (s *State) Export() Record {
	r := Record{
		Mouse:      pair(s.Mouse),
		MouseLast:  pair(s.MouseLast),
		Wall:       gridToRows(&s.Wall),
		Cheese:     gridToRows(&s.Cheese),
		Junc:       gridToRows(&s.Junction),
		DeadEnd:    gridToRows(&s.DeadEnd),
		Score:      s.Score,
		Life:       s.Life,
		Step:       s.Step,
		StepLimit:  s.StepLimit,
		Run:        s.Run,
		FuncChance: s.FuncChance,
		RedZone:    s.RedZone,
		Win:        s.Win,
		Lose:       s.Lose,
		Caught:     s.Caught,
	}
	for _, c := range s.Cats {
		r.Cat = append(r.Cat, pair(c.Pos))
		r.CatLast = append(r.CatLast, pair(c.LastPos))
		r.CatDirection = append(r.CatDirection, c.Dir)
	}
	for _, bc := range s.BigCheese {
		if bc.Active {
			r.BigCheese = append(r.BigCheese, pair(bc.Pos))
		}
	}
	for _, bc := range s.CrazyCheese {
		if bc.Active {
			r.CrazyCheese = append(r.CrazyCheese, pair(bc.Pos))
			r.CrazyDirection = append(r.CrazyDirection, bc.Dir)
		}
	}
	return r
}

func checkPos(name string, p [2]int) error {
	if !pt(p).Valid() {
		return fmt.Errorf("%s position %v off board", name, p)
	}
	return nil
}

func checkPosList(name string, ps [][2]int) error {
	for i, p := range ps {
		if !pt(p).Valid() {
			return fmt.Errorf("%s %d position %v off board", name, i, p)
		}
	}
	return nil
}

func checkDirList(name string, ds []int) error {
	for i, d := range ds {
		if d < 0 || d >= DirCount {
			return fmt.Errorf("%s %d direction %d invalid", name, i, d)
		}
	}
	return nil
}

// Import overwrites the state from a Record. Missing entity lists deactivate
// the corresponding entities; malformed layers, off-board positions and
// invalid directions are rejected before anything is touched. Records arrive
// over the wire, so positions cannot be trusted to index a layer.
func (s *State) Import(r Record) error {
	wall, err := rowsToGrid(r.Wall)
	if err != nil {
		return fmt.Errorf("wall: %w", err)
	}
	cheese, err := rowsToGrid(r.Cheese)
	if err != nil {
		return fmt.Errorf("sc: %w", err)
	}
	junc, err := rowsToGrid(r.Junc)
	if err != nil {
		return fmt.Errorf("junc: %w", err)
	}
	deadend, err := rowsToGrid(r.DeadEnd)
	if err != nil {
		return fmt.Errorf("deadend: %w", err)
	}

	if err := checkPos("mouse", r.Mouse); err != nil {
		return err
	}
	if err := checkPos("mouse_last_pos", r.MouseLast); err != nil {
		return err
	}
	if err := checkPosList("cat", r.Cat); err != nil {
		return err
	}
	if err := checkPosList("cat_last_pos", r.CatLast); err != nil {
		return err
	}
	if err := checkDirList("cat", r.CatDirection); err != nil {
		return err
	}
	if err := checkPosList("movbc", r.BigCheese); err != nil {
		return err
	}
	if err := checkPosList("crzbc", r.CrazyCheese); err != nil {
		return err
	}
	if err := checkDirList("crzbc", r.CrazyDirection); err != nil {
		return err
	}

	s.Wall, s.Cheese, s.Junction, s.DeadEnd = wall, cheese, junc, deadend

	s.Mouse = pt(r.Mouse)
	s.MouseLast = pt(r.MouseLast)

	for i := range s.Cats {
		cat := &s.Cats[i]
		cat.Active = true
		if i < len(r.Cat) {
			cat.Pos = pt(r.Cat[i])
		}
		if i < len(r.CatLast) {
			cat.LastPos = pt(r.CatLast[i])
		} else {
			cat.LastPos = cat.Pos
		}
		if i < len(r.CatDirection) {
			cat.Dir = r.CatDirection[i]
		}
	}

	for i := range s.BigCheese {
		bc := &s.BigCheese[i]
		if i < len(r.BigCheese) {
			bc.Pos = pt(r.BigCheese[i])
			bc.LastPos = bc.Pos
			bc.Active = true
		} else {
			bc.Active = false
		}
	}
	for i := range s.CrazyCheese {
		bc := &s.CrazyCheese[i]
		if i < len(r.CrazyCheese) {
			bc.Pos = pt(r.CrazyCheese[i])
			bc.LastPos = bc.Pos
			bc.Active = true
			if i < len(r.CrazyDirection) {
				bc.Dir = r.CrazyDirection[i]
			} else {
				bc.Dir = Up
			}
		} else {
			bc.Active = false
		}
	}

	s.Score = r.Score
	s.Life = r.Life
	s.Step = r.Step
	s.StepLimit = r.StepLimit
	if s.StepLimit == 0 {
		s.StepLimit = DefaultStepLimit
	}
	s.Run = r.Run
	s.FuncChance = r.FuncChance
	s.RedZone = r.RedZone
	if s.RedZone == 0 {
		s.RedZone = DefaultRedZone
	}
	s.Win = r.Win
	s.Lose = r.Lose
	s.Caught = r.Caught
	return nil
}
