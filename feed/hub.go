package feed

import (
	"encoding/json"
	"sync"

	"github.com/yeremiapane/housekeeping-app/utils"
)

// Message is the wire shape of every live feed frame.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected live-feed client. There is a single implicit
// channel: every client receives every event.
type Hub struct {
	clients map[*Client]bool
	mutex   sync.RWMutex
}

var hub = Hub{
	clients: make(map[*Client]bool),
}

// RegisterClient adds a connection to the fan-out set.
func RegisterClient(c *Client) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[c] = true
	utils.InfoLogger.Printf("Live feed client connected (user=%s, total=%d)", c.username, len(hub.clients))
}

// UnregisterClient removes a connection and releases its send queue.
func UnregisterClient(c *Client) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if _, ok := hub.clients[c]; !ok {
		return
	}
	delete(hub.clients, c)
	c.closeSend()
	utils.InfoLogger.Printf("Live feed client disconnected (user=%s, total=%d)", c.username, len(hub.clients))
}

// ClientCount reports how many clients are connected.
func ClientCount() int {
	hub.mutex.RLock()
	defer hub.mutex.RUnlock()
	return len(hub.clients)
}

// broadcast fans a message out to every connected client. Sends are
// non-blocking: a client whose queue is full simply misses the frame and
// resynchronizes from the snapshot on reconnect.
func broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling feed message: %v", err)
		return
	}

	hub.mutex.RLock()
	targets := make([]*Client, 0, len(hub.clients))
	for c := range hub.clients {
		targets = append(targets, c)
	}
	hub.mutex.RUnlock()

	for _, c := range targets {
		if !c.enqueue(data) {
			utils.ErrorLogger.Printf("Dropping %s frame for feed client (user=%s)", msg.Event, c.username)
		}
	}
}
