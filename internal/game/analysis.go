package game

// MatchablePairs lists every pair of free tiles sharing a face.
func MatchablePairs(all []Tile) []Pair {
	free := FreeTiles(all)
	var pairs []Pair
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if free[i].Matches(free[j].Face) {
				pairs = append(pairs, Pair{free[i].ID, free[j].ID})
			}
		}
	}
	return pairs
}

// Hint returns the first free matching pair in board order.
func Hint(all []Tile) (Pair, bool) {
	free := FreeTiles(all)
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if free[i].Matches(free[j].Face) {
				return Pair{free[i].ID, free[j].ID}, true
			}
		}
	}
	return Pair{}, false
}

// CanMatch reports whether a and b may be removed together right now.
func CanMatch(all []Tile, a, b int) bool {
	if a == b || a < 0 || b < 0 {
		return false
	}
	ta, okA := find(all, a)
	tb, okB := find(all, b)
	if !okA || !okB || ta.Removed || tb.Removed {
		return false
	}
	return ta.Matches(tb.Face) && IsTileFree(ta, all) && IsTileFree(tb, all)
}

func find(all []Tile, id int) (Tile, bool) {
	if id >= 0 && id < len(all) && all[id].ID == id {
		return all[id], true
	}
	for _, t := range all {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Replay plays the pairs forward on a copy of the board and reports the index
// of the first pair that was not a legal match, or -1.
func Replay(all []Tile, pairs []Pair) ([]Tile, int) {
	board := CloneTiles(all)
	for i, p := range pairs {
		if !CanMatch(board, p[0], p[1]) {
			return board, i
		}
		for j := range board {
			if board[j].ID == p[0] || board[j].ID == p[1] {
				board[j].Removed = true
			}
		}
	}
	return board, -1
}
