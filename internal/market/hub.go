package market

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/esabling477/sura-trading/pkg/logger"
	"github.com/esabling477/sura-trading/pkg/metrics"
)

// Message types for the quote stream protocol.
const (
	MsgTypeSubscribe   = "subscribe"
	MsgTypeUnsubscribe = "unsubscribe"
	MsgTypeQuote       = "quote"
	MsgTypeError       = "error"
	MsgTypePing        = "ping"
	MsgTypePong        = "pong"
)

// ClientMessage represents a message from the client
type ClientMessage struct {
	Type    string   `json:"type"`
	Symbols []string `json:"symbols,omitempty"`
}

// ServerMessage represents a message to the client
type ServerMessage struct {
	Type      string `json:"type"`
	Symbol    string `json:"symbol,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Client represents a connected quote stream subscriber.
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Hub     *Hub
	Symbols map[string]bool
	Send    chan []byte

	lastPing time.Time
}

// Hub fans simulated quote ticks out to websocket subscribers. On every tick
// it runs a refresh pass on the store, then broadcasts the new quote for each
// symbol with at least one subscriber.
type Hub struct {
	clients      map[*Client]bool
	symbols      map[string]map[*Client]bool
	broadcast    chan *ServerMessage
	register     chan *Client
	unregister   chan *Client
	store        *Store
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	tickInterval time.Duration
}

// NewHub creates a hub ticking at the given interval.
func NewHub(store *Store, tickInterval time.Duration) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:      make(map[*Client]bool),
		symbols:      make(map[string]map[*Client]bool),
		broadcast:    make(chan *ServerMessage, 256),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		store:        store,
		ctx:          ctx,
		cancel:       cancel,
		tickInterval: tickInterval,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	go h.tick()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetStreamClients("terminal", n)
			logger.Info().Str("client_id", client.ID).Msg("stream client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				for symbol := range client.Symbols {
					if clients, ok := h.symbols[symbol]; ok {
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.symbols, symbol)
						}
					}
				}
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.SetStreamClients("terminal", n)
			logger.Info().Str("client_id", client.ID).Msg("stream client disconnected")

		case message := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.symbols[message.Symbol]; ok {
				data, err := json.Marshal(message)
				if err != nil {
					logger.Error().Err(err).Msg("failed to marshal broadcast message")
					h.mu.RUnlock()
					continue
				}
				for client := range clients {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop gracefully shuts down the hub.
func (h *Hub) Stop() {
	h.cancel()
}

func (h *Hub) tick() {
	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.refreshAndBroadcast()
		}
	}
}

func (h *Hub) refreshAndBroadcast() {
	h.mu.RLock()
	symbols := make([]string, 0, len(h.symbols))
	for symbol := range h.symbols {
		symbols = append(symbols, symbol)
	}
	h.mu.RUnlock()

	if len(symbols) == 0 {
		return
	}

	h.store.RefreshNow("ticker")

	for _, symbol := range symbols {
		quote, ok := h.store.QuoteBySymbol(symbol)
		if !ok {
			continue
		}

		msg := &ServerMessage{
			Type:      MsgTypeQuote,
			Symbol:    symbol,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Data:      quote,
		}

		select {
		case h.broadcast <- msg:
		default:
			// Broadcast channel full, skip
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Subscribe adds symbols to a client's subscription.
func (h *Hub) Subscribe(client *Client, symbols []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, symbol := range symbols {
		if _, ok := h.symbols[symbol]; !ok {
			h.symbols[symbol] = make(map[*Client]bool)
		}
		h.symbols[symbol][client] = true
		client.Symbols[symbol] = true
	}

	logger.Info().Str("client_id", client.ID).Strs("symbols", symbols).Msg("client subscribed")
}

// Unsubscribe removes symbols from a client's subscription.
func (h *Hub) Unsubscribe(client *Client, symbols []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, symbol := range symbols {
		if clients, ok := h.symbols[symbol]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.symbols, symbol)
			}
		}
		delete(client.Symbols, symbol)
	}

	logger.Info().Str("client_id", client.ID).Strs("symbols", symbols).Msg("client unsubscribed")
}

// NewClient creates a new stream client.
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:       id,
		Conn:     conn,
		Hub:      hub,
		Symbols:  make(map[string]bool),
		Send:     make(chan []byte, 256),
		lastPing: time.Now(),
	}
}

// ReadPump reads messages from the websocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error().Err(err).Str("client_id", c.ID).Msg("stream read error")
			}
			break
		}

		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message format")
			continue
		}

		switch msg.Type {
		case MsgTypeSubscribe:
			if len(msg.Symbols) > 0 {
				c.Hub.Subscribe(c, msg.Symbols)
			}
		case MsgTypeUnsubscribe:
			if len(msg.Symbols) > 0 {
				c.Hub.Unsubscribe(c, msg.Symbols)
			}
		case MsgTypePing:
			c.lastPing = time.Now()
			c.sendPong()
		default:
			c.sendError("Unknown message type: " + msg.Type)
		}
	}
}

// WritePump writes messages to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(errMsg string) {
	msg := ServerMessage{
		Type:      MsgTypeError,
		Error:     errMsg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	data, _ := json.Marshal(msg)
	select {
	case c.Send <- data:
	default:
	}
}

func (c *Client) sendPong() {
	msg := ServerMessage{
		Type:      MsgTypePong,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	data, _ := json.Marshal(msg)
	select {
	case c.Send <- data:
	default:
	}
}
