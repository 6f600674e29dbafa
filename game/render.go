package game

import "strings"

// Render draws the board as ASCII, one row per line. Walls are '#', small
// cheese '.', big cheese 'B', crazy big cheese 'C', cats 'x' and 'y', the
// mouse 'M'. Open cells are spaces.
func Render(s *State) string {
	var grid [Size][Size]byte
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch {
			case s.Wall[r][c] != 0:
				grid[r][c] = '#'
			case s.Cheese[r][c] != 0:
				grid[r][c] = '.'
			default:
				grid[r][c] = ' '
			}
		}
	}
	for i := range s.BigCheese {
		if s.BigCheese[i].Active {
			p := s.BigCheese[i].Pos
			grid[p.Row][p.Col] = 'B'
		}
	}
	for i := range s.CrazyCheese {
		if s.CrazyCheese[i].Active {
			p := s.CrazyCheese[i].Pos
			grid[p.Row][p.Col] = 'C'
		}
	}
	for i := range s.Cats {
		if s.Cats[i].Active {
			p := s.Cats[i].Pos
			grid[p.Row][p.Col] = byte('x' + i)
		}
	}
	grid[s.Mouse.Row][s.Mouse.Col] = 'M'

	var sb strings.Builder
	for r := 0; r < Size; r++ {
		sb.Write(grid[r][:])
		sb.WriteByte('\n')
	}
	return sb.String()
}
