package session_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong-solitaire/internal/config"
	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
	"mahjong-solitaire/internal/logging"
	"mahjong-solitaire/internal/session"
	"mahjong-solitaire/internal/store"
)

type recorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *recorder) Broadcast(code, action string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func newManager(t *testing.T) (*session.Manager, *recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 1
	m := session.NewManager(store.NewMemoryStore(), cfg, layout.NewCatalog(), logging.Discard())
	rec := &recorder{}
	m.SetHub(rec)
	return m, rec
}

func newGame(t *testing.T, m *session.Manager, name string) *session.Session {
	t.Helper()
	seed := int64(21)
	s, err := m.Create(name, 4, &seed)
	require.NoError(t, err)
	return s
}

func TestCreate(t *testing.T) {
	m, _ := newManager(t)
	s, err := m.Create("", 0, nil)
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, layout.Turtle, v.Layout)
	assert.Equal(t, 4, v.Copies)
	assert.Len(t, v.Tiles, 144)
	assert.Equal(t, 144, v.Remaining)
	assert.Equal(t, game.StatusPlaying, v.Status)
	assert.Len(t, v.Code, 6)
	assert.NotEmpty(t, v.FreeIDs)
	assert.Positive(t, v.Pairs)
	assert.Equal(t, len(game.MatchablePairs(v.Tiles)), v.Pairs)

	got, ok := m.Get(s.Code)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestCreateSameSeedSameDeal(t *testing.T) {
	m, _ := newManager(t)
	a := newGame(t, m, layout.Pyramid)
	b := newGame(t, m, layout.Pyramid)
	assert.Equal(t, a.View().Tiles, b.View().Tiles)
}

func TestCreateErrors(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Create("nope", 4, nil)
	assert.ErrorIs(t, err, layout.ErrUnknownLayout)

	_, err = m.Create(layout.Pyramid, 3, nil)
	assert.ErrorIs(t, err, game.ErrInvalidCopies)

	_, err = m.Create(layout.Pyramid, 6, nil)
	assert.ErrorIs(t, err, game.ErrInvalidCopies)
}

func TestSelectFlow(t *testing.T) {
	m, rec := newManager(t)
	s := newGame(t, m, layout.Pyramid)

	pair, ok := m.Hint(s)
	require.True(t, ok)
	a, b := pair[0], pair[1]

	res, err := m.Select(s, a)
	require.NoError(t, err)
	assert.Equal(t, "selected", res.Action)

	res, err = m.Select(s, a)
	require.NoError(t, err)
	assert.Equal(t, "deselected", res.Action)
	assert.Nil(t, s.View().SelectedID)

	_, err = m.Select(s, a)
	require.NoError(t, err)
	res, err = m.Select(s, b)
	require.NoError(t, err)
	assert.Equal(t, "matched", res.Action)
	require.NotNil(t, res.Pair)
	assert.Equal(t, pair, *res.Pair)

	v := s.View()
	assert.True(t, v.Tiles[a].Removed)
	assert.True(t, v.Tiles[b].Removed)
	assert.Equal(t, 62, v.Remaining)
	assert.Equal(t, 1, v.Moves)
	assert.True(t, v.CanUndo)

	_, err = m.Select(s, a)
	assert.ErrorIs(t, err, session.ErrTileRemoved)
	assert.Contains(t, rec.actions, "tiles-matched")
}

func TestSelectSwitchesOnMismatch(t *testing.T) {
	m, _ := newManager(t)
	s := newGame(t, m, layout.Pyramid)
	a, b := mismatchedFree(t, s)

	_, err := m.Select(s, a)
	require.NoError(t, err)
	res, err := m.Select(s, b)
	require.NoError(t, err)
	assert.Equal(t, "selected", res.Action)
	assert.Equal(t, b, *s.View().SelectedID)

	assert.ErrorIs(t, m.Match(s, a, b), session.ErrNoMatch)
	assert.ErrorIs(t, m.Match(s, a, a), session.ErrNoMatch)
}

func TestSelectBlockedTile(t *testing.T) {
	m, _ := newManager(t)
	s := newGame(t, m, layout.Pyramid)
	v := s.View()

	blocked := -1
	for _, tile := range v.Tiles {
		if !slices.Contains(v.FreeIDs, tile.ID) {
			blocked = tile.ID
			break
		}
	}
	require.NotEqual(t, -1, blocked)

	_, err := m.Select(s, blocked)
	assert.ErrorIs(t, err, session.ErrTileNotFree)
	_, err = m.Select(s, 1000)
	assert.ErrorIs(t, err, session.ErrUnknownTile)
}

func TestUndo(t *testing.T) {
	m, rec := newManager(t)
	s := newGame(t, m, layout.Pyramid)
	assert.ErrorIs(t, m.Undo(s), session.ErrNothingToUndo)

	pair, _ := m.Hint(s)
	require.NoError(t, m.Match(s, pair[0], pair[1]))
	require.NoError(t, m.Undo(s))

	v := s.View()
	assert.False(t, v.Tiles[pair[0]].Removed)
	assert.False(t, v.Tiles[pair[1]].Removed)
	assert.False(t, v.CanUndo)
	assert.Equal(t, 64, v.Remaining)
	assert.Contains(t, rec.actions, "undo")
}

func TestShufflePreservesRemoved(t *testing.T) {
	m, _ := newManager(t)
	s := newGame(t, m, layout.Turtle)
	for i := 0; i < 10; i++ {
		pair, ok := m.Hint(s)
		require.True(t, ok)
		require.NoError(t, m.Match(s, pair[0], pair[1]))
	}
	before := s.View()
	require.NoError(t, m.Shuffle(s))
	after := s.View()

	assert.Equal(t, 1, after.Shuffles)
	assert.Equal(t, before.Remaining, after.Remaining)
	for i := range before.Tiles {
		assert.Equal(t, before.Tiles[i].Removed, after.Tiles[i].Removed)
		if before.Tiles[i].Removed {
			assert.Equal(t, before.Tiles[i].Face, after.Tiles[i].Face)
		}
	}
	_, ok := m.Hint(s)
	assert.True(t, ok)
}

func TestPlayToWin(t *testing.T) {
	m, rec := newManager(t)
	s := newGame(t, m, layout.Pyramid)

	for i := 0; i < 500 && s.View().Status != game.StatusWon; i++ {
		if pair, ok := m.Hint(s); ok {
			require.NoError(t, m.Match(s, pair[0], pair[1]))
			continue
		}
		require.NoError(t, m.Shuffle(s))
	}
	v := s.View()
	assert.Equal(t, game.StatusWon, v.Status)
	assert.Equal(t, 0, v.Remaining)
	assert.Contains(t, rec.actions, "game-over")

	// An empty board is left alone by shuffle.
	require.NoError(t, m.Shuffle(s))
	assert.Equal(t, game.StatusWon, s.View().Status)
}

func TestNewGame(t *testing.T) {
	m, _ := newManager(t)
	s := newGame(t, m, layout.Pyramid)
	pair, _ := m.Hint(s)
	require.NoError(t, m.Match(s, pair[0], pair[1]))

	require.NoError(t, m.NewGame(s))
	v := s.View()
	assert.Equal(t, 64, v.Remaining)
	assert.Zero(t, v.Moves)
	assert.False(t, v.CanUndo)
}

func TestSaveLoad(t *testing.T) {
	m, _ := newManager(t)
	s := newGame(t, m, layout.Pyramid)
	pair, _ := m.Hint(s)
	require.NoError(t, m.Match(s, pair[0], pair[1]))

	snap := m.Save(s, "alice")
	assert.Len(t, snap.Tiles, 64)

	restored, err := m.Load("alice")
	require.NoError(t, err)
	assert.NotEqual(t, s.Code, restored.Code)
	assert.Equal(t, s.View().Tiles, restored.View().Tiles)
	assert.Equal(t, 1, restored.View().Moves)

	_, err = m.Load("bob")
	assert.True(t, errors.Is(err, session.ErrNoSave))
}

func mismatchedFree(t *testing.T, s *session.Session) (int, int) {
	t.Helper()
	v := s.View()
	for _, a := range v.FreeIDs {
		for _, b := range v.FreeIDs {
			if a != b && !v.Tiles[a].Matches(v.Tiles[b].Face) {
				return a, b
			}
		}
	}
	t.Fatal("no mismatched free tiles")
	return 0, 0
}
