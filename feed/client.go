package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/housekeeping-app/utils"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024
)

// Client wraps one websocket connection. Frames are queued on a buffered
// channel and drained by WritePump so a slow peer never blocks the
// broadcaster. The mutex serializes queueing against the close of the
// send channel: once a client is unregistered, late frames are dropped
// instead of being written to a closed channel.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	username string

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, username string) *Client {
	return &Client{
		conn:     conn,
		send:     make(chan []byte, 256),
		username: username,
	}
}

func (c *Client) Username() string { return c.username }

// enqueue queues one frame without blocking. Reports false when the
// client is already closed or its queue is full.
func (c *Client) enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend marks the client closed and releases its queue so WritePump
// exits. Idempotent.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// SendEvent queues one frame for this client only (snapshot replies, error
// notices). Non-blocking like the broadcast path.
func (c *Client) SendEvent(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s frame: %v", event, err)
		return
	}
	if !c.enqueue(payload) {
		utils.ErrorLogger.Printf("Dropping %s frame for feed client (user=%s)", event, c.username)
	}
}

// ReadLoop consumes frames from the peer until the connection drops. The
// only client-to-server message is the initial data request, answered by
// the supplied callback.
func (c *Client) ReadLoop(onInitialData func(*Client)) {
	defer func() {
		UnregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.ErrorLogger.Printf("Feed read error (user=%s): %v", c.username, err)
			}
			return
		}

		var req struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}
		if req.Type == "requestInitialData" && onInitialData != nil {
			onInitialData(c)
		}
	}
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with pings. Runs in its own goroutine per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
