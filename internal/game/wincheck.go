package game

type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusStuck   Status = "stuck"
)

func IsWon(all []Tile) bool {
	return Remaining(all) == 0
}

// IsStuck reports a board with tiles left but no free matching pair. A stuck
// board can always be recovered with a solvable shuffle.
func IsStuck(all []Tile) bool {
	if IsWon(all) {
		return false
	}
	_, ok := Hint(all)
	return !ok
}

func BoardStatus(all []Tile) Status {
	switch {
	case IsWon(all):
		return StatusWon
	case IsStuck(all):
		return StatusStuck
	default:
		return StatusPlaying
	}
}
