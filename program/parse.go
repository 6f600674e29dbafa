package program

// Library resolves a subroutine identifier to its token-list body. Bodies
// are external content; the interpreter only ever looks them up. Lookup
// returns nil for unknown identifiers.
type Library interface {
	Lookup(id int) []int
}

// MapLibrary is a Library backed by a plain map.
type MapLibrary map[int][]int

func (m MapLibrary) Lookup(id int) []int {
	return m[id]
}

// EmptyLibrary resolves nothing. Programs parsed against it still bind call
// markers, but calls to empty bodies expand to nothing.
var EmptyLibrary Library = MapLibrary(nil)

// Parsed is the output of the parse stage: the main command list with
// library identifiers replaced by call markers, plus the two bound bodies.
type Parsed struct {
	Main  []int
	FuncA []int
	FuncB []int

	// LibA and LibB record which identifiers were bound, for diagnostics.
	// Zero means the slot is unbound.
	LibA int
	LibB int
}

// Parse scans tokens until END. The first distinct library id seen is bound
// as subroutine A and replaced by its call marker, the second as subroutine
// B; repeats of a bound id emit its marker again, and any further distinct
// id is dropped without a marker or an error. Filler tokens are discarded;
// everything else passes through.
func Parse(tokens []int, lib Library) Parsed {
	if lib == nil {
		lib = EmptyLibrary
	}

	p := Parsed{Main: make([]int, 0, len(tokens))}
	for _, t := range tokens {
		if t == TokenEnd {
			break
		}
		if t == TokenFiller {
			continue
		}
		if !IsLibrary(t) {
			p.Main = append(p.Main, t)
			continue
		}

		switch {
		case p.LibA == 0:
			p.LibA = t
			p.FuncA = lib.Lookup(t)
			p.Main = append(p.Main, TokenCallA)
		case t == p.LibA:
			p.Main = append(p.Main, TokenCallA)
		case p.LibB == 0:
			p.LibB = t
			p.FuncB = lib.Lookup(t)
			p.Main = append(p.Main, TokenCallB)
		case t == p.LibB:
			p.Main = append(p.Main, TokenCallB)
		}
	}
	return p
}
