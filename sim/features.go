package sim

import "cheesechase/game"

// FeatureSize is the fixed length of the flat state vector consumed by
// downstream learned models.
const FeatureSize = 828

// dynamicScale lifts the small dynamic values into the same magnitude as the
// grid layers.
const dynamicScale = 10.0

// Features flattens a state into a FeatureSize float32 vector:
//
//	484  wall, cheese (scaled), junction, dead-end grids, row-major
//	  2  mouse position
//	 12  six cat slots, unused slots filled with -1
//	 10  five crazy-cheese slots, unused slots filled with -1
//	 41  reserved (zero)
//	  6  score, life, run, win, lose, step progress
//	273  reserved (zero)
//
// The reserved regions keep the layout stable for models trained with
// richer history features.
func Features(s *game.State) []float32 {
	out := make([]float32, 0, FeatureSize)

	appendGrid := func(g *game.Grid, scale float32) {
		for r := 0; r < game.Size; r++ {
			for c := 0; c < game.Size; c++ {
				out = append(out, float32(g[r][c])*scale)
			}
		}
	}
	appendGrid(&s.Wall, 1)
	appendGrid(&s.Cheese, dynamicScale)
	appendGrid(&s.Junction, 1)
	appendGrid(&s.DeadEnd, 1)

	out = append(out, float32(s.Mouse.Row), float32(s.Mouse.Col))

	for i := 0; i < 6; i++ {
		if i < len(s.Cats) && s.Cats[i].Active {
			out = append(out, float32(s.Cats[i].Pos.Row), float32(s.Cats[i].Pos.Col))
		} else {
			out = append(out, -1, -1)
		}
	}

	for i := 0; i < 5; i++ {
		if i < len(s.CrazyCheese) && s.CrazyCheese[i].Active {
			out = append(out, float32(s.CrazyCheese[i].Pos.Row), float32(s.CrazyCheese[i].Pos.Col))
		} else {
			out = append(out, -1, -1)
		}
	}

	for len(out) < 484+65 {
		out = append(out, 0)
	}

	out = append(out, float32(s.Score)/1000.0*dynamicScale)
	out = append(out, float32(s.Life)*dynamicScale/float32(game.DefaultLife))
	out = append(out, float32(s.Run)*dynamicScale/20.0)
	if s.Win {
		out = append(out, dynamicScale)
	} else {
		out = append(out, 0)
	}
	if s.Lose {
		out = append(out, dynamicScale)
	} else {
		out = append(out, 0)
	}
	if s.StepLimit > 0 {
		out = append(out, float32(s.Step)/float32(s.StepLimit)*dynamicScale)
	} else {
		out = append(out, 0)
	}

	for len(out) < FeatureSize {
		out = append(out, 0)
	}
	return out[:FeatureSize]
}
