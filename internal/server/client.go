package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sells-group/siteboard/internal/model"
	"github.com/sells-group/siteboard/internal/sched"
	"github.com/sells-group/siteboard/internal/selection"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 8 * 1024
)

// Send pings to peer with this period. Must be less than pongWait.
var pingPeriod = (pongWait * 9) / 10

// Client is one connected view (the table and the map each count as a view,
// though a single browser tab usually carries both over one connection).
type Client struct {
	id   string
	hub  *Hub
	srv  *Server
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan Message

	// Last applied query params; used for the page-reset invariant.
	params model.QueryParams

	// Single-slot scheduler: a new query message replaces the pending one.
	debounce *sched.Debouncer
}

// selectPayload is the body of select/clear messages.
type selectPayload struct {
	ID     string           `json:"id,omitempty"`
	Source selection.Source `json:"source"`
}

// handleWS upgrades the connection and starts the read/write pumps.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("server: websocket upgrade failed", zap.Error(err))
		return
	}

	c := &Client{
		id:       uuid.NewString(),
		hub:      s.hub,
		srv:      s,
		conn:     conn,
		send:     make(chan Message, 64),
		params:   model.QueryParams{}.Normalize(),
		debounce: sched.NewDebouncer(s.cfg.DebounceWindow),
	}
	s.hub.Register(c)
	s.collector.ViewConnected()

	// If a record is already selected, bring the new view in sync.
	if id, ok := s.tracker.Current(); ok {
		c.send <- newMessage(msgSelection, selection.Event{ID: id, Selected: true})
	}

	go c.writePump()
	go c.readPump()
}

// checkOrigin allows empty origins (non-browser clients), same-host
// connections, and anything on the configured allowlist.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	originHost := strings.Split(u.Host, ":")[0]
	requestHost := strings.Split(r.Host, ":")[0]
	if strings.EqualFold(originHost, requestHost) {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimRight(allowed, "/"), strings.TrimRight(origin, "/")) {
			return true
		}
	}
	return false
}

// readPump pumps messages from the websocket connection into the server.
// At most one reader runs per connection.
func (c *Client) readPump() {
	defer func() {
		c.debounce.Stop()
		c.hub.Unregister(c)
		c.srv.collector.ViewDisconnected()
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("server: websocket closed unexpectedly", zap.String("client", c.id), zap.Error(err))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			zap.L().Warn("server: bad sync message", zap.String("client", c.id), zap.Error(err))
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case msgSelect:
		var p selectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.ID == "" {
			c.sendError("select requires a record id")
			return
		}
		if _, ok := c.srv.store.Get(p.ID); !ok {
			c.sendError("unknown record id")
			return
		}
		c.srv.tracker.Select(p.ID, p.Source)

	case msgClear:
		var p selectPayload
		_ = json.Unmarshal(msg.Payload, &p)
		c.srv.tracker.Clear(p.Source)

	case msgQuery:
		var params model.QueryParams
		if err := json.Unmarshal(msg.Payload, &params); err != nil {
			c.sendError("invalid query payload")
			return
		}
		params = params.Normalize()
		// Filter or sort changes send the viewer back to page 1.
		if params.ResetsPage(c.params) {
			params.Page = 1
		}
		c.params = params
		c.debounce.Schedule(func() {
			c.push(newMessage(msgResult, c.srv.runQuery(params)))
		})

	default:
		c.sendError("unknown message type " + msg.Type)
	}
}

// push queues a message for this client, dropping it if the buffer is full;
// the write pump owns actual delivery.
func (c *Client) push(msg Message) {
	defer func() {
		// Send channel may close while a debounced query is in flight.
		_ = recover()
	}()
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(reason string) {
	c.push(newMessage(msgError, map[string]string{"message": reason}))
}

// writePump pumps messages to the websocket connection. At most one writer
// runs per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
