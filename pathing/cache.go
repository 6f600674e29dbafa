// Package pathing precomputes shortest-path distance maps over the maze.
//
// A Cache holds, for every one of the 121 cells, the full-grid BFS distance
// map toward that cell. The maps use the encoding the movement policies
// expect: walls are -1, the target cell itself is 1 (not 0) and every other
// reachable cell is its BFS parent's value plus one. Cells the search never
// reaches stay 0; since only the target can legitimately hold 1, the zero
// sentinel is unambiguous for any cell a policy actually reads.
//
// A Cache is immutable once built and safe for unlimited concurrent readers.
// The process-wide shared slot is write-once per wall layout: Install must
// complete before any reader calls Shared.
package pathing

import (
	"sync/atomic"

	"cheesechase/game"
)

// DistanceMap holds BFS distances toward a single target cell.
type DistanceMap [game.Size][game.Size]int16

// Cache holds one distance map per target cell.
type Cache struct {
	maps [game.Size * game.Size]DistanceMap
}

// Compute builds the cache for a wall layer. It is the only write; the
// returned cache is never mutated afterwards.
func Compute(wall *game.Grid) *Cache {
	c := &Cache{}
	for idx := range c.maps {
		target := game.Point{Row: idx / game.Size, Col: idx % game.Size}
		c.maps[idx] = bfs(wall, target)
	}
	return c
}

// Get returns the distance map toward the target cell. The map is shared and
// must not be modified.
func (c *Cache) Get(target game.Point) *DistanceMap {
	return &c.maps[target.Row*game.Size+target.Col]
}

func bfs(wall *game.Grid, target game.Point) DistanceMap {
	var dist DistanceMap
	for i := 0; i < game.Size; i++ {
		for j := 0; j < game.Size; j++ {
			if wall[i][j] != 0 {
				dist[i][j] = -1
			}
		}
	}

	dist[target.Row][target.Col] = 1

	queue := make([]game.Point, 0, game.Size*game.Size)
	queue = append(queue, target)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		d := dist[curr.Row][curr.Col]
		for dir := 0; dir < game.DirCount; dir++ {
			next := curr.Move(dir)
			if next.Valid() && dist[next.Row][next.Col] == 0 {
				dist[next.Row][next.Col] = d + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}

// shared is the process-wide cache slot. Batch workers all read the same
// cache, so it is installed once up front rather than computed per worker.
var shared atomic.Pointer[Cache]

// Install publishes c as the process-wide cache. The store happens-before
// any Shared load that observes it, so workers started afterwards may read
// without synchronization.
func Install(c *Cache) {
	shared.Store(c)
}

// Shared returns the installed cache, or nil if Install has not run.
// Reading distance maps before Install completes is a usage contract
// violation, not a detected error.
func Shared() *Cache {
	return shared.Load()
}

// Clear drops the installed cache. It exists for wall-layout changes and
// tests; it must not race with readers.
func Clear() {
	shared.Store(nil)
}
