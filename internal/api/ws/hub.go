package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// client serializes writes to one connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

type Hub struct {
	mu       sync.Mutex
	subs     map[string]map[*client]struct{}
	sessions SessionManager
	log      *logrus.Logger
}

func NewHub(sessions SessionManager, log *logrus.Logger) *Hub {
	return &Hub{
		subs:     make(map[string]map[*client]struct{}),
		sessions: sessions,
		log:      log,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	if _, ok := h.sessions.Get(code); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	h.log.WithField("code", code).Debug("websocket connected")

	cl := &client{conn: conn}
	h.mu.Lock()
	if _, ok := h.subs[code]; !ok {
		h.subs[code] = make(map[*client]struct{})
	}
	h.subs[code][cl] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.drop(code, cl)
		_ = conn.Close()
	}()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("code", code).Warn("websocket read failed")
			}
			return
		}
		h.dispatch(cl, code, msg)
	}
}

// dispatch runs one inbound action. State changes reach every subscriber
// through the manager's broadcast; errors and hints go back to conn only.
func (h *Hub) dispatch(conn *client, code string, msg message) {
	s, ok := h.sessions.Get(code)
	if !ok {
		h.reply(conn, "error", gin.H{"error": "game not found"})
		return
	}

	var err error
	switch msg.Action {
	case "select":
		var in struct {
			TileID *int `json:"tileId"`
		}
		if jerr := json.Unmarshal(msg.Data, &in); jerr != nil || in.TileID == nil {
			h.reply(conn, "error", gin.H{"error": "tileId required"})
			return
		}
		_, err = h.sessions.Select(s, *in.TileID)
	case "undo":
		err = h.sessions.Undo(s)
	case "shuffle":
		err = h.sessions.Shuffle(s)
	case "hint":
		pair, found := h.sessions.Hint(s)
		if !found {
			h.reply(conn, "hint", gin.H{"found": false, "stuck": true})
			return
		}
		h.reply(conn, "hint", gin.H{"found": true, "pair": pair})
		return
	default:
		h.log.WithFields(logrus.Fields{"code": code, "action": msg.Action}).Warn("unknown action")
		h.reply(conn, "error", gin.H{"error": "unknown action " + msg.Action})
		return
	}
	if err != nil {
		h.reply(conn, "error", gin.H{"action": msg.Action, "error": err.Error()})
	}
}

func (h *Hub) reply(conn *client, action string, data interface{}) {
	if err := conn.send(gin.H{"action": action, "data": data}); err != nil {
		h.log.WithError(err).Debug("websocket reply failed")
	}
}

func (h *Hub) drop(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[code], cl)
	if len(h.subs[code]) == 0 {
		delete(h.subs, code)
	}
}

// Broadcast sends {action, data} to every connection watching code. Writes
// happen outside the hub lock so a slow client only delays its own session.
func (h *Hub) Broadcast(code string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.subs[code]))
	for cl := range h.subs[code] {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	msg := gin.H{"action": action, "data": data}
	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			h.log.WithError(err).WithField("code", code).Warn("websocket send failed")
			h.drop(code, cl)
			_ = cl.conn.Close()
		}
	}
}
