package game

import "math"

const (
	// overlapThreshold is just under one tile width, so half-offset tiles on
	// other layers count as overlapping but diagonal neighbours do not.
	overlapThreshold = 0.99
	// sideEpsilon matches the exact unit step between same-row neighbours.
	sideEpsilon = 0.01
)

// IsTileFree reports whether tile can be played on the given board: nothing
// overlaps it from a higher layer and at least one of its sides is open.
func IsTileFree(tile Tile, all []Tile) bool {
	hasLeft, hasRight := false, false
	for _, o := range all {
		if o.Removed || o.ID == tile.ID {
			continue
		}
		dy := math.Abs(o.Y - tile.Y)
		if o.Z > tile.Z && math.Abs(o.X-tile.X) < overlapThreshold && dy < overlapThreshold {
			return false
		}
		if o.Z != tile.Z || dy >= overlapThreshold {
			continue
		}
		if math.Abs((tile.X-1)-o.X) < sideEpsilon {
			hasLeft = true
		}
		if math.Abs((tile.X+1)-o.X) < sideEpsilon {
			hasRight = true
		}
	}
	return !hasLeft || !hasRight
}

// FreeTiles returns the playable tiles in board order.
func FreeTiles(all []Tile) []Tile {
	var out []Tile
	for _, t := range all {
		if !t.Removed && IsTileFree(t, all) {
			out = append(out, t)
		}
	}
	return out
}

func FreeTileIDs(all []Tile) []int {
	free := FreeTiles(all)
	ids := make([]int, len(free))
	for i, t := range free {
		ids[i] = t.ID
	}
	return ids
}

// Remaining counts tiles still on the board.
func Remaining(all []Tile) int {
	n := 0
	for _, t := range all {
		if !t.Removed {
			n++
		}
	}
	return n
}
