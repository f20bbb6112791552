package http

import "mahjong-solitaire/internal/layout"

// CreateGameRequest represents the payload for POST /games.
type CreateGameRequest struct {
	Layout string `json:"layout"`
	Copies int    `json:"copies"`
	Seed   *int64 `json:"seed"`
}

// SelectRequest represents a click on a tile.
type SelectRequest struct {
	TileID *int `json:"tileId" binding:"required"`
}

// MatchRequest removes two tiles at once.
type MatchRequest struct {
	A *int `json:"a" binding:"required"`
	B *int `json:"b" binding:"required"`
}

// SaveRequest identifies who the saved board belongs to.
type SaveRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// LayoutSummary is one entry of GET /layouts.
type LayoutSummary struct {
	Name   string        `json:"name"`
	Tiles  int           `json:"tiles"`
	Bounds layout.Bounds `json:"bounds"`
}
