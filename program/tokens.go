// Package program parses and expands mouse token programs.
//
// A program is an ordered sequence of integer tokens: the four direction
// codes, control tokens (IF, LOOP, END), numeric literals, subroutine
// library identifiers and a filler token. Parsing resolves at most two
// distinct library subroutines; expansion flattens the result into the
// atomic move attempts the simulation loop consumes.
package program

// Token values. Directions share the game package's encoding (0-3).
const (
	TokenIf = 5

	// Call markers are assigned during parsing when a library id is bound;
	// they do not appear in raw input.
	TokenCallA = 10
	TokenCallB = 11

	// Numeric literals: 100 means 10, 101-109 mean 1-9.
	TokenNumBase = 100
	TokenNum1    = 101
	TokenNum7    = 107
	TokenNum9    = 109

	TokenLoop = 110
	TokenEnd  = 112

	// Subroutine library identifiers, resolved via an external Library.
	TokenLibStart = 113
	TokenLibEnd   = 998

	// TokenFiller is skipped wherever it appears.
	TokenFiller = 999
)

// IsDirection reports whether t is one of the four direction codes.
func IsDirection(t int) bool {
	return t >= 0 && t <= 3
}

// IsNum reports whether t is a numeric literal (value 1-10).
func IsNum(t int) bool {
	return t >= TokenNumBase && t <= TokenNum9
}

// IsIfNum reports whether t is a numeric literal valid as an IF count.
// Only the values 1-7 are accepted there.
func IsIfNum(t int) bool {
	return t >= TokenNum1 && t <= TokenNum7
}

// NumValue returns the value of a numeric literal: 100 is 10, 101-109 are 1-9.
func NumValue(t int) int {
	if t == TokenNumBase {
		return 10
	}
	return t - TokenNumBase
}

// IsLibrary reports whether t identifies a library subroutine.
func IsLibrary(t int) bool {
	return t >= TokenLibStart && t <= TokenLibEnd
}

// DeclaredLength counts the program's tokens through END, inclusive. The
// scoring loop uses it to bound how long the token-length-gated entities
// keep moving, which generally differs from the number of realized moves.
func DeclaredLength(tokens []int) int {
	n := 0
	for _, t := range tokens {
		n++
		if t == TokenEnd {
			break
		}
	}
	return n
}
