package program

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadLibrary reads a subroutine library from a yaml file mapping identifier
// to token body, e.g.
//
//	113: [0, 0, 3]
//	114: [110, 105, 1]
//
// Identifiers outside the library range are rejected so that a mistyped file
// cannot shadow control tokens.
func LoadLibrary(path string) (MapLibrary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	lib := MapLibrary{}
	if err := yaml.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	for id := range lib {
		if !IsLibrary(id) {
			return nil, fmt.Errorf("library id %d outside range %d-%d", id, TokenLibStart, TokenLibEnd)
		}
	}
	return lib, nil
}
