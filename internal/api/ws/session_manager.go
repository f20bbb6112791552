package ws

import (
	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/session"
)

// SessionManager is the part of session.Manager the hub drives.
type SessionManager interface {
	Get(code string) (*session.Session, bool)
	Select(s *session.Session, tileID int) (session.SelectResult, error)
	Undo(s *session.Session) error
	Shuffle(s *session.Session) error
	Hint(s *session.Session) (game.Pair, bool)
}
