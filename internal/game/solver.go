package game

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"mahjong-solitaire/internal/layout"
)

const DefaultMaxAttempts = 100

// Rand is the random source the solver draws from. *rand.Rand satisfies it,
// so a seeded source replays the same deal.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Solver builds deals by reverse construction: it removes free pairs from a
// face-less full board until it is empty, then paints matching faces on each
// removed pair. The removal sequence is a play-through of the finished deal.
type Solver struct {
	rng         Rand
	maxAttempts int
}

func NewSolver(rng Rand, maxAttempts int) *Solver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Solver{rng: rng, maxAttempts: maxAttempts}
}

// NewSeededSolver is a convenience for deterministic replays.
func NewSeededSolver(seed int64) *Solver {
	return NewSolver(rand.New(rand.NewSource(seed)), DefaultMaxAttempts)
}

// Deal is a generated board together with one forward solution.
type Deal struct {
	Tiles    []Tile `json:"tiles"`
	Solution []Pair `json:"solution"`
}

// FindRemovalOrder makes a single construction attempt over a fresh copy of
// the given tiles. It reports false when it reaches a board with fewer than
// two free tiles.
func (s *Solver) FindRemovalOrder(tiles []Tile) ([]Pair, bool) {
	work := CloneTiles(tiles)
	index := make(map[int]int, len(work))
	for i := range work {
		work[i].Removed = false
		index[work[i].ID] = i
	}

	pairs := make([]Pair, 0, len(work)/2)
	for left := len(work); left > 0; left -= 2 {
		free := FreeTiles(work)
		if len(free) < 2 {
			return nil, false
		}
		a, b := pickPair(free, s.rng)
		work[index[a.ID]].Removed = true
		work[index[b.ID]].Removed = true
		pairs = append(pairs, Pair{a.ID, b.ID})
	}
	return pairs, true
}

// FindRemovalOrderWithRetry re-runs construction with fresh random choices
// until one attempt clears the board.
func (s *Solver) FindRemovalOrderWithRetry(tiles []Tile) ([]Pair, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if order, ok := s.FindRemovalOrder(tiles); ok {
			return order, nil
		}
	}
	return nil, &UnsolvableLayoutError{Attempts: s.maxAttempts, Tiles: len(tiles)}
}

// CheckCopies reports whether a board of pairs pairs can carry every face on
// exactly copiesPerVariant tiles.
func CheckCopies(pairs, copiesPerVariant int) error {
	if copiesPerVariant < 2 || copiesPerVariant%2 != 0 {
		return ErrInvalidCopies
	}
	if pairs%(copiesPerVariant/2) != 0 {
		return fmt.Errorf("%w: %d pairs cannot be split into faces of %d tiles", ErrInvalidCopies, pairs, copiesPerVariant)
	}
	return nil
}

// AssignFaces paints one face per removed pair. The pool holds copies/2
// pair-slots per (suit, value); suits are added until every pair has a slot.
// The last suit may have fewer values, never a value with fewer copies.
func (s *Solver) AssignFaces(order []Pair, copiesPerVariant int) (map[int]Face, error) {
	if err := CheckCopies(len(order), copiesPerVariant); err != nil {
		return nil, err
	}
	perFace := copiesPerVariant / 2

	pool := make([]Face, 0, len(order))
fill:
	for suit := 0; ; suit++ {
		for value := 1; value <= ValuesPerSuit; value++ {
			for p := 0; p < perFace; p++ {
				if len(pool) == len(order) {
					break fill
				}
				pool = append(pool, Face{Suit: suit, Value: value})
			}
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	faces := make(map[int]Face, 2*len(order))
	copies := make(map[faceKey]int)
	for i, pair := range order {
		f := pool[i]
		for _, id := range pair {
			f.Copy = copies[f.key()]
			copies[f.key()]++
			faces[id] = f
		}
	}
	return faces, nil
}

// Deal generates a solvable board for the layout.
func (s *Solver) Deal(l layout.Layout, copiesPerVariant int) (Deal, error) {
	if err := layout.Validate(l.Positions); err != nil {
		return Deal{}, err
	}
	if err := CheckCopies(l.Len()/2, copiesPerVariant); err != nil {
		return Deal{}, err
	}
	tiles := PositionTiles(l)
	order, err := s.FindRemovalOrderWithRetry(tiles)
	if err != nil {
		return Deal{}, err
	}
	faces, err := s.AssignFaces(order, copiesPerVariant)
	if err != nil {
		return Deal{}, err
	}
	for i := range tiles {
		tiles[i].Face = faces[tiles[i].ID]
	}
	return Deal{Tiles: tiles, Solution: order}, nil
}

// GenerateSolvableGame returns a fresh board with no tile removed.
func (s *Solver) GenerateSolvableGame(l layout.Layout, copiesPerVariant int) ([]Tile, error) {
	d, err := s.Deal(l, copiesPerVariant)
	if err != nil {
		return nil, err
	}
	return d.Tiles, nil
}

// SolvableShuffle redistributes the faces of the tiles still on the board so
// that the remaining board can be cleared. Removed tiles are returned as they
// were. A board with zero or an odd number of remaining tiles is returned
// unchanged.
func (s *Solver) SolvableShuffle(current []Tile) ([]Tile, error) {
	d, err := s.Reshuffle(current)
	if err != nil {
		return nil, err
	}
	return d.Tiles, nil
}

// Reshuffle is SolvableShuffle that also returns a play-through of the
// remaining tiles. The solution is empty when the board is left unchanged.
func (s *Solver) Reshuffle(current []Tile) (Deal, error) {
	var remaining []Tile
	for _, t := range current {
		if !t.Removed {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == 0 || len(remaining)%2 != 0 {
		return Deal{Tiles: current}, nil
	}

	order, err := s.FindRemovalOrderWithRetry(remaining)
	if err != nil {
		return Deal{}, err
	}

	facePairs, err := pairFaces(remaining)
	if err != nil {
		return Deal{}, err
	}
	s.rng.Shuffle(len(facePairs), func(i, j int) { facePairs[i], facePairs[j] = facePairs[j], facePairs[i] })

	faces := make(map[int]Face, len(remaining))
	for i, pair := range order {
		faces[pair[0]] = facePairs[i][0]
		faces[pair[1]] = facePairs[i][1]
	}

	out := CloneTiles(current)
	for i := range out {
		if f, ok := faces[out[i].ID]; ok {
			out[i].Face = f
		}
	}
	slices.SortFunc(out, func(a, b Tile) int { return a.ID - b.ID })
	return Deal{Tiles: out, Solution: order}, nil
}

// pairFaces groups faces by suit and value, in board order, and splits every
// group into consecutive pairs.
func pairFaces(tiles []Tile) ([][2]Face, error) {
	var keys []faceKey
	groups := make(map[faceKey][]Face)
	for _, t := range tiles {
		k := t.key()
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], t.Face)
	}

	out := make([][2]Face, 0, len(tiles)/2)
	for _, k := range keys {
		g := groups[k]
		if len(g)%2 != 0 {
			return nil, ErrUnpairedFaces
		}
		for i := 0; i < len(g); i += 2 {
			out = append(out, [2]Face{g[i], g[i+1]})
		}
	}
	return out, nil
}
