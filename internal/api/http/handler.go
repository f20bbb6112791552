package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mahjong-solitaire/internal/layout"
	"mahjong-solitaire/internal/session"
)

// withSession resolves :code or aborts with 404.
func withSession(sm *session.Manager, c *gin.Context) (*session.Session, bool) {
	s, ok := sm.Get(c.Param("code"))
	if !ok {
		abortWithError(c, session.ErrNotFound)
		return nil, false
	}
	return s, true
}

// @Summary List layouts
// @Description Names, tile counts and bounds of every available layout
// @Tags Layout
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /layouts [get]
func ListLayoutsHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat := sm.Catalog()
		out := []LayoutSummary{}
		for _, name := range cat.Names() {
			l, err := cat.Build(name)
			if err != nil {
				abortWithError(c, err)
				return
			}
			b, err := layout.GetBounds(l.Positions)
			if err != nil {
				abortWithError(c, err)
				return
			}
			out = append(out, LayoutSummary{Name: name, Tiles: l.Len(), Bounds: b})
		}
		c.JSON(http.StatusOK, gin.H{"layouts": out})
	}
}

// @Summary Get layout
// @Description Positions and bounds of a layout
// @Tags Layout
// @Produce json
// @Param name path string true "Layout name"
// @Success 200 {object} map[string]interface{}
// @Router /layouts/{name} [get]
func GetLayoutHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := sm.Catalog().Build(c.Param("name"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		b, err := layout.GetBounds(l.Positions)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"layout": l, "bounds": b})
	}
}

// @Summary Create game
// @Description Deal a new solvable board
// @Tags Game
// @Accept json
// @Produce json
// @Param request body CreateGameRequest false "Layout, copies per face and optional seed"
// @Success 201 {object} map[string]interface{}
// @Router /games [post]
func CreateGameHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
				return
			}
		}
		s, err := sm.Create(req.Layout, req.Copies, req.Seed)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"code": s.Code, "game": s.View()})
	}
}

// @Summary Get game
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code} [get]
func GetGameHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": s.View()})
	}
}

// @Summary Free tiles
// @Description Ids of the tiles that can be played right now
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/free [get]
func FreeTilesHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"freeTileIds": sm.FreeTileIDs(s)})
	}
}

// @Summary Hint
// @Description A free matching pair, if the board has one
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/hint [get]
func HintHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		pair, found := sm.Hint(s)
		if !found {
			c.JSON(http.StatusOK, gin.H{"found": false, "stuck": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"found": true, "pair": pair})
	}
}

// @Summary Select tile
// @Description Select, deselect, or match a tile with the current selection
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Game code"
// @Param request body SelectRequest true "Tile id"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/select [post]
func SelectHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		var req SelectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tileId required"})
			return
		}
		res, err := sm.Select(s, *req.TileID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": res, "game": s.View()})
	}
}

// @Summary Match pair
// @Description Remove two free tiles with the same face
// @Tags Game
// @Accept json
// @Produce json
// @Param code path string true "Game code"
// @Param request body MatchRequest true "Tile ids"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/match [post]
func MatchHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		var req MatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a and b required"})
			return
		}
		if err := sm.Match(s, *req.A, *req.B); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "game": s.View()})
	}
}

// @Summary Undo
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/undo [post]
func UndoHandler(sm *session.Manager) gin.HandlerFunc {
	return mutation(sm, sm.Undo)
}

// @Summary Shuffle
// @Description Repaint the remaining tiles so the board can be cleared
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/shuffle [post]
func ShuffleHandler(sm *session.Manager) gin.HandlerFunc {
	return mutation(sm, sm.Shuffle)
}

// @Summary New deal
// @Description Replace the board with a fresh deal on the same layout
// @Tags Game
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/new [post]
func NewDealHandler(sm *session.Manager) gin.HandlerFunc {
	return mutation(sm, sm.NewGame)
}

func mutation(sm *session.Manager, apply func(*session.Session) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		if err := apply(s); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": s.View()})
	}
}

// @Summary Save game
// @Tags Save
// @Accept json
// @Produce json
// @Param code path string true "Game code"
// @Param request body SaveRequest true "Owner"
// @Success 200 {object} map[string]interface{}
// @Router /games/{code}/save [post]
func SaveHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withSession(sm, c)
		if !ok {
			return
		}
		var req SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "owner required"})
			return
		}
		snap := sm.Save(s, req.Owner)
		c.JSON(http.StatusOK, gin.H{"ok": true, "savedAt": snap.SavedAt})
	}
}

// @Summary Load game
// @Description Restore an owner's saved board into a new game
// @Tags Save
// @Produce json
// @Param owner path string true "Owner"
// @Success 201 {object} map[string]interface{}
// @Router /saves/{owner}/load [post]
func LoadHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := sm.Load(c.Param("owner"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"code": s.Code, "game": s.View()})
	}
}

// @Summary Generation defaults
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func GetConfigHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"config": sm.Config(), "layouts": sm.Catalog().Names()})
	}
}
