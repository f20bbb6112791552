package game

import "fmt"

var suitNames = []string{"dots", "bams", "craks", "winds", "dragons", "flowers", "seasons", "blossoms"}

func SuitName(suit int) string {
	if suit >= 0 && suit < len(suitNames) {
		return suitNames[suit]
	}
	return fmt.Sprintf("suit%d", suit)
}

func (f Face) Label() string {
	return fmt.Sprintf("%s-%d", SuitName(f.Suit), f.Value)
}
