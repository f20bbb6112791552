package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "mahjong-solitaire/internal/api/http"
	"mahjong-solitaire/internal/api/ws"
	"mahjong-solitaire/internal/config"
	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
	"mahjong-solitaire/internal/logging"
	"mahjong-solitaire/internal/session"
	"mahjong-solitaire/internal/store"
)

func setup(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Seed = 7
	log := logging.Discard()
	m := session.NewManager(store.NewMemoryStore(), cfg, layout.NewCatalog(), log)
	hub := ws.NewHub(m, log)
	m.SetHub(hub)
	return httpapi.SetupRouter(m, hub), m
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type gameResp struct {
	Code string       `json:"code"`
	Game session.View `json:"game"`
}

func createGame(t *testing.T, r *gin.Engine, name string) gameResp {
	t.Helper()
	w := do(r, http.MethodPost, "/games", gin.H{"layout": name, "seed": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out gameResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListLayouts(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodGet, "/layouts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Layouts []httpapi.LayoutSummary `json:"layouts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	tiles := map[string]int{}
	for _, l := range out.Layouts {
		tiles[l.Name] = l.Tiles
	}
	assert.Equal(t, 144, tiles[layout.Turtle])
	assert.Equal(t, 64, tiles[layout.Pyramid])
}

func TestGetLayout(t *testing.T) {
	r, _ := setup(t)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/layouts/pyramid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/layouts/dragon", nil).Code)
}

func TestCreateAndGetGame(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)
	assert.Len(t, g.Code, 6)
	assert.Len(t, g.Game.Tiles, 64)

	w := do(r, http.MethodGet, "/games/"+g.Code, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/games/NOPE00", nil).Code)
}

func TestCreateGameDefaults(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodPost, "/games", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var out gameResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, layout.Turtle, out.Game.Layout)
}

func TestCreateGameErrors(t *testing.T) {
	r, _ := setup(t)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/games", gin.H{"layout": "dragon"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games", gin.H{"copies": 3}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games", gin.H{"layout": "pyramid", "copies": 6}).Code)
}

func TestHintAndMatch(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)

	w := do(r, http.MethodGet, "/games/"+g.Code+"/hint", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hint struct {
		Found bool      `json:"found"`
		Pair  game.Pair `json:"pair"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hint))
	require.True(t, hint.Found)

	w = do(r, http.MethodPost, "/games/"+g.Code+"/match", gin.H{"a": hint.Pair[0], "b": hint.Pair[1]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out gameResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 62, out.Game.Remaining)
	assert.True(t, out.Game.CanUndo)

	// already removed
	w = do(r, http.MethodPost, "/games/"+g.Code+"/match", gin.H{"a": hint.Pair[0], "b": hint.Pair[1]})
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/games/"+g.Code+"/undo", nil).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/games/"+g.Code+"/undo", nil).Code)
}

func TestMatchValidation(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games/"+g.Code+"/match", gin.H{"a": 1}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games/"+g.Code+"/match", gin.H{"a": 999, "b": 998}).Code)
}

func TestSelect(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)
	free := g.Game.FreeIDs
	require.NotEmpty(t, free)

	w := do(r, http.MethodPost, "/games/"+g.Code+"/select", gin.H{"tileId": free[0]})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Result session.SelectResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "selected", out.Result.Action)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games/"+g.Code+"/select", gin.H{}).Code)
}

func TestSelectBlockedTile(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)
	var blocked = -1
	for _, tile := range g.Game.Tiles {
		if !game.IsTileFree(tile, g.Game.Tiles) {
			blocked = tile.ID
			break
		}
	}
	require.NotEqual(t, -1, blocked)
	w := do(r, http.MethodPost, "/games/"+g.Code+"/select", gin.H{"tileId": blocked})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFreeShuffleNew(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)

	w := do(r, http.MethodGet, "/games/"+g.Code+"/free", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var free struct {
		IDs []int `json:"freeTileIds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &free))
	assert.Equal(t, g.Game.FreeIDs, free.IDs)

	w = do(r, http.MethodPost, "/games/"+g.Code+"/shuffle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out gameResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Game.Shuffles)

	w = do(r, http.MethodPost, "/games/"+g.Code+"/new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 0, out.Game.Shuffles)
	assert.Equal(t, 64, out.Game.Remaining)
}

func TestSaveAndLoad(t *testing.T) {
	r, _ := setup(t)
	g := createGame(t, r, layout.Pyramid)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/saves/alice/load", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/games/"+g.Code+"/save", gin.H{}).Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/games/"+g.Code+"/save", gin.H{"owner": "alice"}).Code)

	w := do(r, http.MethodPost, "/saves/alice/load", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var out gameResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.NotEqual(t, g.Code, out.Code)
	for i, tile := range out.Game.Tiles {
		assert.Equal(t, g.Game.Tiles[i].Face, tile.Face)
	}
}

func TestGetConfig(t *testing.T) {
	r, _ := setup(t)
	w := do(r, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Config  config.Config `json:"config"`
		Layouts []string      `json:"layouts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 4, out.Config.CopiesPerVariant)
	assert.Contains(t, out.Layouts, layout.Pyramid)
}
