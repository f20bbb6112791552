package http

import (
	"mahjong-solitaire/internal/api/ws"
	"mahjong-solitaire/internal/session"

	"github.com/gin-gonic/gin"
)

func SetupRouter(sm *session.Manager, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	// WebSocket for FE live updates
	r.GET("/ws", hub.HandleWS)

	// --- LAYOUT ENDPOINTS ---
	r.GET("/layouts", ListLayoutsHandler(sm))
	r.GET("/layouts/:name", GetLayoutHandler(sm))

	// --- GAME ENDPOINTS ---
	r.POST("/games", CreateGameHandler(sm))
	g := r.Group("/games/:code")
	g.GET("", GetGameHandler(sm))
	g.GET("/free", FreeTilesHandler(sm))
	g.GET("/hint", HintHandler(sm))
	g.POST("/select", SelectHandler(sm))
	g.POST("/match", MatchHandler(sm))
	g.POST("/undo", UndoHandler(sm))
	g.POST("/shuffle", ShuffleHandler(sm))
	g.POST("/new", NewDealHandler(sm))
	g.POST("/save", SaveHandler(sm))

	// --- SAVE ENDPOINTS ---
	r.POST("/saves/:owner/load", LoadHandler(sm))

	// --- CONFIG ENDPOINTS ---
	r.GET("/config", GetConfigHandler(sm))

	return r
}
