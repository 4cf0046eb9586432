package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/metrics"
	"github.com/yourusername/pitch-predictor/internal/predictor"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are handled by the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts prediction events to connected websocket clients.
// Dashboards subscribe to see predictions as they are computed.
type Hub struct {
	clients    map[*streamClient]bool
	register   chan *streamClient
	unregister chan *streamClient
	broadcast  chan []byte
	logger     *logrus.Entry
}

// NewHub creates a prediction stream hub.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*streamClient]bool),
		register:   make(chan *streamClient),
		unregister: make(chan *streamClient),
		broadcast:  make(chan []byte, 64),
		logger:     log.WithField("component", "stream"),
	}
}

// Run processes client registration and broadcast fan-out until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			metrics.WebsocketClients.Set(0)
			return
		case c := <-h.register:
			h.clients[c] = true
			metrics.WebsocketClients.Inc()
			h.logger.WithField("clients", len(h.clients)).Debug("Stream client connected")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				metrics.WebsocketClients.Dec()
				h.logger.WithField("clients", len(h.clients)).Debug("Stream client disconnected")
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer, drop it rather than block the hub.
					delete(h.clients, c)
					close(c.send)
					metrics.WebsocketClients.Dec()
				}
			}
		}
	}
}

// BroadcastPrediction publishes a prediction result to all stream clients.
func (h *Hub) BroadcastPrediction(result *predictor.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal prediction event")
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("Prediction stream backlog full, dropping event")
	}
}

// ServeWS upgrades the request and attaches the client to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &streamClient{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

type streamClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump drains inbound frames. Clients do not send application data;
// reading is required to process control frames and detect disconnects.
func (c *streamClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards broadcast messages and keeps the connection alive.
func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
