package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cheesechase/game"
	"cheesechase/pathing"
	"cheesechase/program"
	"cheesechase/sim"
)

// debugrun scores one program verbosely: the expanded move list, the boards
// before and after, and the outcome. Useful for checking what a token
// sequence actually does before feeding it to the search process.
func main() {
	tokensFlag := flag.String("tokens", "", "Comma-separated token program, e.g. 0,0,110,105,3,112")
	seed := flag.Int64("seed", 0, "Random seed (0 derives one from the clock)")
	libraryPath := flag.String("library", "", "Optional yaml subroutine library")
	snapshotOut := flag.String("snapshot", "", "Optional path to write the final state snapshot")
	live := flag.Bool("live", false, "Use the live adversary policy (flee rule) instead of precomputed plans")
	flag.Parse()

	if *tokensFlag == "" {
		log.Fatal("missing -tokens")
	}
	tokens, err := parseTokens(*tokensFlag)
	if err != nil {
		log.Fatalf("Failed to parse tokens: %v", err)
	}

	var lib program.Library = program.EmptyLibrary
	if *libraryPath != "" {
		loaded, err := program.LoadLibrary(*libraryPath)
		if err != nil {
			log.Fatalf("Failed to load program library: %v", err)
		}
		lib = loaded
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	state := game.NewLevel3()
	pathing.Install(pathing.Compute(&state.Wall))

	fmt.Printf("Seed: %d\n", *seed)
	fmt.Printf("Tokens: %v (declared length %d)\n\n", tokens, program.DeclaredLength(tokens))
	fmt.Println("Start:")
	fmt.Println(game.Render(state))

	parsed := program.Parse(tokens, lib)
	moves := program.Expand(parsed, state)
	moveNames := []string{"Up", "Down", "Left", "Right"}
	fmt.Printf("Expanded to %d move attempts:\n", len(moves.Actions))
	for i, a := range moves.Actions {
		blocked := ""
		if moves.WallHits[i] {
			blocked = " (blocked)"
		}
		fmt.Printf("  %3d %s%s\n", i, moveNames[a], blocked)
	}
	if moves.Truncated {
		fmt.Println("  ... expansion truncated")
	}
	fmt.Println()

	s := sim.New(state, pathing.Shared(), sim.Config{Seed: *seed, Library: lib})
	var result sim.Result
	if *live {
		result = s.RunLive(tokens)
	} else {
		result = s.Run(tokens)
	}

	fmt.Println("End:")
	fmt.Println(game.Render(result.State))
	fmt.Printf("Score: %d, Steps: %d, Win: %v, Caught: %v, Life: %d\n",
		result.Score, result.Steps, result.Win, result.Caught, result.State.Life)

	if *snapshotOut != "" {
		if err := game.SaveSnapshot(*snapshotOut, result.State); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		fmt.Printf("Snapshot written to %s\n", *snapshotOut)
	}
}

func parseTokens(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	tokens := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad token %q: %w", p, err)
		}
		tokens = append(tokens, v)
	}
	return tokens, nil
}
