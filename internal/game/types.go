package game

import "mahjong-solitaire/internal/layout"

// Face is the painted identity of a tile. Copy only tells apart physical tiles
// sharing a suit and value; it plays no part in matching.
type Face struct {
	Suit  int `json:"suit"`
	Value int `json:"value"` // 1..ValuesPerSuit
	Copy  int `json:"copy"`
}

const ValuesPerSuit = 4

func (f Face) Matches(o Face) bool {
	return f.Suit == o.Suit && f.Value == o.Value
}

type faceKey struct{ suit, value int }

func (f Face) key() faceKey { return faceKey{f.Suit, f.Value} }

type Tile struct {
	ID int `json:"id"`
	layout.Position
	Face
	Removed bool `json:"removed"`
}

// Pair holds the ids of two tiles matched together.
type Pair [2]int

// SavedTile is the persisted shape of a tile. Positions are re-derived from
// the id and the layout on load.
type SavedTile struct {
	ID      int  `json:"id"`
	Suit    int  `json:"suit"`
	Value   int  `json:"value"`
	Copy    int  `json:"copy"`
	Removed bool `json:"removed"`
}

// PositionTiles creates one face-less tile per layout position.
func PositionTiles(l layout.Layout) []Tile {
	tiles := make([]Tile, len(l.Positions))
	for i, p := range l.Positions {
		tiles[i] = Tile{ID: i, Position: p}
	}
	return tiles
}

func CloneTiles(tiles []Tile) []Tile {
	return append([]Tile(nil), tiles...)
}

func Strip(tiles []Tile) []SavedTile {
	out := make([]SavedTile, len(tiles))
	for i, t := range tiles {
		out[i] = SavedTile{ID: t.ID, Suit: t.Suit, Value: t.Value, Copy: t.Copy, Removed: t.Removed}
	}
	return out
}

// RestoreTiles rebuilds a board from saved tiles against the layout they were
// dealt on.
func RestoreTiles(l layout.Layout, saved []SavedTile) ([]Tile, error) {
	if len(saved) != l.Len() {
		return nil, ErrSnapshotMismatch
	}
	tiles := make([]Tile, l.Len())
	seen := make([]bool, l.Len())
	for _, s := range saved {
		if s.ID < 0 || s.ID >= l.Len() || seen[s.ID] {
			return nil, ErrSnapshotMismatch
		}
		seen[s.ID] = true
		tiles[s.ID] = Tile{
			ID:       s.ID,
			Position: l.Positions[s.ID],
			Face:     Face{Suit: s.Suit, Value: s.Value, Copy: s.Copy},
			Removed:  s.Removed,
		}
	}
	return tiles, nil
}
