package session

import (
	"errors"
	"sync"
	"time"

	"mahjong-solitaire/internal/game"
)

var (
	ErrNotFound      = errors.New("game not found")
	ErrUnknownTile   = errors.New("unknown tile")
	ErrTileRemoved   = errors.New("tile already removed")
	ErrTileNotFree   = errors.New("tile is not free")
	ErrNoMatch       = errors.New("tiles do not match")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNoSave        = errors.New("no saved game")
)

// Session is one player's board. All mutations go through the Manager, which
// holds mu for their whole duration.
type Session struct {
	mu sync.Mutex

	ID         string
	Code       string
	Layout     string
	Copies     int
	Seed       int64
	Tiles      []game.Tile
	SelectedID *int
	History    []game.Pair
	Moves      int
	Shuffles   int
	Status     game.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	solver *game.Solver
}

// View is a consistent copy of a session for serialization.
type View struct {
	ID         string      `json:"id"`
	Code       string      `json:"code"`
	Layout     string      `json:"layout"`
	Copies     int         `json:"copies"`
	Seed       int64       `json:"seed"`
	Tiles      []game.Tile `json:"tiles"`
	FreeIDs    []int       `json:"freeTileIds"`
	SelectedID *int        `json:"selectedId,omitempty"`
	Remaining  int         `json:"remaining"`
	Pairs      int         `json:"matchablePairs"`
	Moves      int         `json:"moves"`
	Shuffles   int         `json:"shuffles"`
	CanUndo    bool        `json:"canUndo"`
	Status     game.Status `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Snapshot is what gets persisted for a player between visits.
type Snapshot struct {
	Layout   string           `json:"layout"`
	Copies   int              `json:"copies"`
	Tiles    []game.SavedTile `json:"tiles"`
	Moves    int              `json:"moves"`
	Shuffles int              `json:"shuffles"`
	SavedAt  time.Time        `json:"savedAt"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	v := View{
		ID:        s.ID,
		Code:      s.Code,
		Layout:    s.Layout,
		Copies:    s.Copies,
		Seed:      s.Seed,
		Tiles:     game.CloneTiles(s.Tiles),
		FreeIDs:   game.FreeTileIDs(s.Tiles),
		Remaining: game.Remaining(s.Tiles),
		Pairs:     len(game.MatchablePairs(s.Tiles)),
		Moves:     s.Moves,
		Shuffles:  s.Shuffles,
		CanUndo:   len(s.History) > 0,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.SelectedID != nil {
		id := *s.SelectedID
		v.SelectedID = &id
	}
	return v
}

func (s *Session) tile(id int) (*game.Tile, error) {
	if id < 0 || id >= len(s.Tiles) || s.Tiles[id].ID != id {
		return nil, ErrUnknownTile
	}
	return &s.Tiles[id], nil
}

// playable returns the tile if it is on the board and free.
func (s *Session) playable(id int) (*game.Tile, error) {
	t, err := s.tile(id)
	if err != nil {
		return nil, err
	}
	if t.Removed {
		return nil, ErrTileRemoved
	}
	if !game.IsTileFree(*t, s.Tiles) {
		return nil, ErrTileNotFree
	}
	return t, nil
}

func (s *Session) touch() {
	s.Status = game.BoardStatus(s.Tiles)
	s.UpdatedAt = time.Now()
}
