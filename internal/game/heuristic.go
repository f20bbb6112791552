package game

import (
	"cmp"
	"math"
	"slices"
)

// topPercent of the most distant candidate pairs are eligible for a pick.
const topPercent = 40

type candidate struct {
	a, b Tile
	dist float64
}

// PairDistance is the Manhattan distance in the plane with the layer
// difference weighted three times.
func PairDistance(a, b Tile) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y) + 3*math.Abs(float64(a.Z-b.Z))
}

// pickPair chooses two free tiles to pair during reverse construction,
// favouring pairs that sit far apart so forward matches spread over the board.
func pickPair(free []Tile, rng Rand) (Tile, Tile) {
	if len(free) == 2 {
		return free[0], free[1]
	}

	cands := make([]candidate, 0, len(free)*(len(free)-1)/2)
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			cands = append(cands, candidate{a: free[i], b: free[j], dist: PairDistance(free[i], free[j])})
		}
	}
	slices.SortStableFunc(cands, func(x, y candidate) int {
		return cmp.Compare(y.dist, x.dist)
	})

	top := max(1, (len(cands)*topPercent+99)/100)
	pick := cands[rng.Intn(top)]
	return pick.a, pick.b
}
