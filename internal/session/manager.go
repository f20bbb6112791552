package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mahjong-solitaire/internal/config"
	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
)

type Store interface {
	GetSession(code string) (*Session, bool)
	SaveSession(s *Session)
	SaveSnapshot(owner string, snap Snapshot)
	LoadSnapshot(owner string) (Snapshot, bool)
}

// SelectResult describes what a click on a tile did.
type SelectResult struct {
	Action string      `json:"action"` // selected, deselected, matched
	Pair   *game.Pair  `json:"pair,omitempty"`
	Status game.Status `json:"status"`
}

type Manager struct {
	store   Store
	cfg     config.Config
	catalog *layout.Catalog
	hub     Broadcaster
	log     *logrus.Logger

	seedMu sync.Mutex
	seeds  *rand.Rand
	code   func() string
}

func NewManager(s Store, cfg config.Config, catalog *layout.Catalog, log *logrus.Logger) *Manager {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		store:   s,
		cfg:     cfg,
		catalog: catalog,
		log:     log,
		seeds:   rand.New(rand.NewSource(seed)),
		code:    func() string { return randCode(6) },
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) Config() config.Config { return m.cfg }

func (m *Manager) Catalog() *layout.Catalog { return m.catalog }

func (m *Manager) nextSeed() int64 {
	m.seedMu.Lock()
	defer m.seedMu.Unlock()
	return m.seeds.Int63()
}

func (m *Manager) broadcast(code, action string, data interface{}) {
	if m.hub != nil {
		m.hub.Broadcast(code, action, data)
	}
}

// Create deals a new game. Empty layoutName and zero copies fall back to the
// configured defaults; a nil seed draws one from the manager's source.
func (m *Manager) Create(layoutName string, copies int, seed *int64) (*Session, error) {
	if layoutName == "" {
		layoutName = m.cfg.DefaultLayout
	}
	if copies == 0 {
		copies = m.cfg.CopiesPerVariant
	}
	l, err := m.catalog.Build(layoutName)
	if err != nil {
		return nil, err
	}

	sd := m.nextSeed()
	if seed != nil {
		sd = *seed
	}
	solver := game.NewSolver(rand.New(rand.NewSource(sd)), m.cfg.MaxAttempts)
	tiles, err := solver.GenerateSolvableGame(l, copies)
	if err != nil {
		m.log.WithError(err).WithFields(logrus.Fields{"layout": layoutName, "copies": copies}).Error("deal failed")
		return nil, fmt.Errorf("deal %s: %w", layoutName, err)
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Code:      m.freeCode(),
		Layout:    layoutName,
		Copies:    copies,
		Seed:      sd,
		Tiles:     tiles,
		Status:    game.BoardStatus(tiles),
		CreatedAt: now,
		UpdatedAt: now,
		solver:    solver,
	}
	m.store.SaveSession(s)
	m.log.WithFields(logrus.Fields{"code": s.Code, "layout": layoutName, "copies": copies, "seed": sd}).Info("game created")
	return s, nil
}

func (m *Manager) Get(code string) (*Session, bool) {
	return m.store.GetSession(code)
}

// Select applies a click on a tile: the first click selects, a second click
// on the same tile deselects, a click on a matching free tile removes both.
func (m *Manager) Select(s *Session, tileID int) (SelectResult, error) {
	s.mu.Lock()
	t, err := s.playable(tileID)
	if err != nil {
		s.mu.Unlock()
		return SelectResult{}, err
	}

	var res SelectResult
	switch {
	case s.SelectedID == nil:
		s.SelectedID = &tileID
		res.Action = "selected"
	case *s.SelectedID == tileID:
		s.SelectedID = nil
		res.Action = "deselected"
	case s.Tiles[*s.SelectedID].Matches(t.Face):
		pair := game.Pair{*s.SelectedID, tileID}
		s.match(pair)
		res.Action = "matched"
		res.Pair = &pair
	default:
		s.SelectedID = &tileID
		res.Action = "selected"
	}
	s.touch()
	res.Status = s.Status
	v := s.view()
	s.mu.Unlock()

	m.store.SaveSession(s)
	m.announce(v, res.Action, res.Pair)
	return res, nil
}

// Match removes two free tiles sharing a face.
func (m *Manager) Match(s *Session, a, b int) error {
	s.mu.Lock()
	ta, err := s.playable(a)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	tb, err := s.playable(b)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if a == b || !ta.Matches(tb.Face) {
		s.mu.Unlock()
		return ErrNoMatch
	}
	pair := game.Pair{a, b}
	s.match(pair)
	s.touch()
	v := s.view()
	s.mu.Unlock()

	m.store.SaveSession(s)
	m.announce(v, "matched", &pair)
	return nil
}

func (s *Session) match(p game.Pair) {
	s.Tiles[p[0]].Removed = true
	s.Tiles[p[1]].Removed = true
	s.History = append(s.History, p)
	s.SelectedID = nil
	s.Moves++
}

func (m *Manager) announce(v View, action string, pair *game.Pair) {
	switch action {
	case "matched":
		m.broadcast(v.Code, "tiles-matched", map[string]interface{}{"pair": pair, "game": v})
		if v.Status == game.StatusWon {
			m.log.WithFields(logrus.Fields{"code": v.Code, "moves": v.Moves, "shuffles": v.Shuffles}).Info("game won")
			m.broadcast(v.Code, "game-over", map[string]interface{}{"game": v})
		}
	default:
		m.broadcast(v.Code, "tile-selected", map[string]interface{}{"selectedId": v.SelectedID, "game": v})
	}
}

// Undo puts the most recent match back on the board.
func (m *Manager) Undo(s *Session) error {
	s.mu.Lock()
	if len(s.History) == 0 {
		s.mu.Unlock()
		return ErrNothingToUndo
	}
	last := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.Tiles[last[0]].Removed = false
	s.Tiles[last[1]].Removed = false
	s.SelectedID = nil
	s.touch()
	v := s.view()
	s.mu.Unlock()

	m.store.SaveSession(s)
	m.broadcast(v.Code, "undo", map[string]interface{}{"pair": last, "game": v})
	return nil
}

// Shuffle repaints the remaining tiles so the board can be cleared again.
func (m *Manager) Shuffle(s *Session) error {
	s.mu.Lock()
	tiles, err := s.solver.SolvableShuffle(s.Tiles)
	if err != nil {
		s.mu.Unlock()
		m.log.WithError(err).WithField("code", s.Code).Error("shuffle failed")
		return err
	}
	s.Tiles = tiles
	s.SelectedID = nil
	s.Shuffles++
	s.touch()
	v := s.view()
	s.mu.Unlock()

	m.store.SaveSession(s)
	m.log.WithFields(logrus.Fields{"code": v.Code, "remaining": v.Remaining}).Debug("board shuffled")
	m.broadcast(v.Code, "shuffled", map[string]interface{}{"game": v})
	return nil
}

// NewGame replaces the whole board with a fresh deal on the same layout.
func (m *Manager) NewGame(s *Session) error {
	s.mu.Lock()
	l, err := m.catalog.Build(s.Layout)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	tiles, err := s.solver.GenerateSolvableGame(l, s.Copies)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.Tiles = tiles
	s.SelectedID = nil
	s.History = nil
	s.Moves = 0
	s.Shuffles = 0
	s.touch()
	v := s.view()
	s.mu.Unlock()

	m.store.SaveSession(s)
	m.broadcast(v.Code, "new-game", map[string]interface{}{"game": v})
	return nil
}

func (m *Manager) Hint(s *Session) (game.Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.Hint(s.Tiles)
}

func (m *Manager) FreeTileIDs(s *Session) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.FreeTileIDs(s.Tiles)
}

// Save persists the board for owner, replacing any earlier save.
func (m *Manager) Save(s *Session, owner string) Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Layout:   s.Layout,
		Copies:   s.Copies,
		Tiles:    game.Strip(s.Tiles),
		Moves:    s.Moves,
		Shuffles: s.Shuffles,
		SavedAt:  time.Now(),
	}
	s.mu.Unlock()

	m.store.SaveSnapshot(owner, snap)
	return snap
}

// Load restores owner's saved board into a new session.
func (m *Manager) Load(owner string) (*Session, error) {
	snap, ok := m.store.LoadSnapshot(owner)
	if !ok {
		return nil, ErrNoSave
	}
	l, err := m.catalog.Build(snap.Layout)
	if err != nil {
		return nil, err
	}
	tiles, err := game.RestoreTiles(l, snap.Tiles)
	if err != nil {
		return nil, err
	}

	sd := m.nextSeed()
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Code:      m.freeCode(),
		Layout:    snap.Layout,
		Copies:    snap.Copies,
		Seed:      sd,
		Tiles:     tiles,
		Moves:     snap.Moves,
		Shuffles:  snap.Shuffles,
		Status:    game.BoardStatus(tiles),
		CreatedAt: now,
		UpdatedAt: now,
		solver:    game.NewSolver(rand.New(rand.NewSource(sd)), m.cfg.MaxAttempts),
	}
	m.store.SaveSession(s)
	m.log.WithFields(logrus.Fields{"code": s.Code, "owner": owner}).Info("game restored")
	return s, nil
}

// freeCode draws codes until one is not held by a live session.
func (m *Manager) freeCode() string {
	for {
		c := m.code()
		if _, taken := m.store.GetSession(c); !taken {
			return c
		}
	}
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
