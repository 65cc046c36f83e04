package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one live connection. ID doubles as the player id inside
// whatever room the connection joins. RoomID is written only by the core
// goroutine, which also performs every read of it.
type Client struct {
	conn    *connWrapper
	Message chan *Message
	ID      string
	RoomID  string

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *Message, 64), // buffered to avoid dead-locks on slow clients
		ID:      id,
	}
}

// Send enqueues without blocking; a client that cannot drain its buffer
// loses the message rather than stalling the room. Sends after
// closeMessages are dropped, never a panic: the read pump may have queued
// frames into the core before the unregister was handled.
func (c *Client) Send(msg *Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Message <- msg:
		return true
	default:
		return false
	}
}

// closeMessages ends the write pump exactly once.
func (c *Client) closeMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Message)
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ReadMessage pumps inbound frames into the core until the connection
// drops, then unregisters, which is what triggers removePlayer.
func (c *Client) ReadMessage(core *Core, logger *zap.SugaredLogger) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warnw("ws read error", "client", c.ID, "err", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logger.Debugw("malformed frame dropped", "client", c.ID, "err", err)
			continue
		}

		core.Inbound() <- &InboundEvent{Client: c, Type: env.Type, Data: env.Data}
	}
}

func (c *Client) WriteMessage(logger *zap.SugaredLogger) {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			logger.Warnw("ws write error", "client", c.ID, "err", err)
			return
		}
	}
}
