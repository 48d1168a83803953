package websocket

import (
	"log"
	"net/http"
	"sync"

	"stresshub/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Client represents a user connected for notification pushes
type Client struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's WebSocket connection
func (c *Client) SafeWriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

var (
	clients   = make(map[string]map[*Client]bool)
	clientsMu sync.RWMutex
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RegisterClient registers a client for notification pushes
func RegisterClient(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	if clients[client.UserID] == nil {
		clients[client.UserID] = make(map[*Client]bool)
	}
	clients[client.UserID][client] = true
	log.Printf("Notification client registered for %s. Connections: %d", client.UserID, len(clients[client.UserID]))
}

// UnregisterClient removes a client and closes its connection
func UnregisterClient(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()
	if conns, ok := clients[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(clients, client.UserID)
		}
	}
	client.Conn.Close()
}

// PushToUser sends a payload to every open connection of the given user
func PushToUser(userID string, payload interface{}) {
	clientsMu.RLock()
	targets := make([]*Client, 0, len(clients[userID]))
	for client := range clients[userID] {
		targets = append(targets, client)
	}
	clientsMu.RUnlock()

	for _, client := range targets {
		if err := client.SafeWriteJSON(payload); err != nil {
			log.Printf("Error pushing notification to %s: %v", userID, err)
			go UnregisterClient(client)
		}
	}
}

// ConnectionCount returns the number of open connections for a user
func ConnectionCount(userID string) int {
	clientsMu.RLock()
	defer clientsMu.RUnlock()
	return len(clients[userID])
}

// NotificationSocketHandler upgrades the request and keeps the
// connection registered until the client disconnects
func NotificationSocketHandler(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade websocket for %s: %v", userID, err)
		return
	}

	client := &Client{Conn: conn, UserID: userID}
	RegisterClient(client)
	defer UnregisterClient(client)

	// Drain client messages; the connection is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
