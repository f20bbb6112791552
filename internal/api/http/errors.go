package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
	"mahjong-solitaire/internal/session"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrNoSave),
		errors.Is(err, layout.ErrUnknownLayout):
		return http.StatusNotFound
	case errors.Is(err, session.ErrTileNotFree),
		errors.Is(err, session.ErrTileRemoved),
		errors.Is(err, session.ErrNoMatch),
		errors.Is(err, session.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, session.ErrUnknownTile),
		errors.Is(err, layout.ErrInvalidLayout),
		errors.Is(err, game.ErrInvalidCopies),
		errors.Is(err, game.ErrSnapshotMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
