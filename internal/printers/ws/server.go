package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/olusolaa/hilog/internal/core/domain"
	"github.com/olusolaa/hilog/internal/core/ports"
)

const (
	writeWait = 5 * time.Second
	readLimit = 1 << 12
)

type Server struct {
	upgrader  websocket.Upgrader
	hub       *Hub
	logger    ports.Logger
	pingEvery time.Duration
}

func NewServer(hub *Hub, logger ports.Logger) *Server {
	return &Server{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// HandleWS upgrades GET /ws?level=warn and streams records at or above level
// until the client disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	minLevel := domain.LevelVerbose
	if raw := strings.TrimSpace(r.URL.Query().Get("level")); raw != "" {
		lvl, err := domain.ParseLevel(raw)
		if err != nil {
			http.Error(w, "invalid level", http.StatusBadRequest)
			return
		}
		minLevel = lvl
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf(r.Context(), "ws upgrade failed: %v", err)
		return
	}

	c := newWsConn(conn, minLevel)
	s.hub.Add(c)

	if err := c.Send(Message{
		Type:    TypeHello,
		Payload: HelloPayload{MinLevel: minLevel.String(), Clients: s.hub.Len()},
	}); err != nil {
		s.logger.Debugf(r.Context(), "ws send hello failed: %v", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		s.logger.Debugf(r.Context(), "ws close failed: %v", err)
	}
}

// readLoop only drains control frames; clients never send records.
func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn      *websocket.Conn
	minLevel  domain.Level
	sendMu    sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func newWsConn(c *websocket.Conn, minLevel domain.Level) *wsConn {
	return &wsConn{
		conn:     c,
		minLevel: minLevel,
		closed:   make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) MinLevel() domain.Level { return c.minLevel }
