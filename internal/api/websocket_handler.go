package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Corvia/tenant-users/internal/domain"
	"github.com/Corvia/tenant-users/internal/service/pubsub"
	"github.com/Corvia/tenant-users/internal/utils"
	"github.com/Corvia/tenant-users/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn   *websocket.Conn
	schema string
	send   chan []byte
}

// WebSocketHandler streams membership and identity events to connected
// clients, fanned out per tenant schema via Redis pub/sub.
type WebSocketHandler struct {
	clients       map[*Client]bool
	register      chan *Client
	unregister    chan *Client
	mutex         sync.RWMutex
	logger        *logger.Logger
	pubsub        *pubsub.RedisPubSub
	ctx           context.Context
	cancel        context.CancelFunc
	schemaClients map[string]int // Count of clients per tenant schema
}

func NewWebSocketHandler(logger *logger.Logger, pubsub *pubsub.RedisPubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		logger:        logger,
		pubsub:        pubsub,
		ctx:           ctx,
		cancel:        cancel,
		schemaClients: make(map[string]int),
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	// The token's tenant schema decides which event channel the client gets.
	schema, exists := c.Get(string(utils.TenantSchemaKey))
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No tenant schema found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &Client{
		conn:   conn,
		schema: schema.(string),
		send:   make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.schemaClients[client.schema]++

			// Subscribe to the schema's channel if this is the first client
			if h.schemaClients[client.schema] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, client.schema, h.handlePubSubMessage); err != nil {
					h.logger.Errorf("Failed to subscribe to schema %s: %v", client.schema, err)
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.dropSchemaClient(client.schema)
			}
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.pubsub.Close()
}

// dropSchemaClient decrements the per-schema count and unsubscribes when the
// last client for that schema is gone. Callers hold h.mutex.
func (h *WebSocketHandler) dropSchemaClient(schema string) {
	h.schemaClients[schema]--
	if h.schemaClients[schema] == 0 {
		h.pubsub.Unsubscribe(schema)
		delete(h.schemaClients, schema)
	}
}

// handlePubSubMessage fans an event out to every client on its schema.
func (h *WebSocketHandler) handlePubSubMessage(event *domain.TenantUserEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Errorf("Error marshaling event: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.schema != event.TenantSchema {
			continue
		}
		select {
		case client.send <- message:
		default: // Slow consumer, drop the client
			close(client.send)
			delete(h.clients, client)
			h.dropSchemaClient(client.schema)
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		messageType, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error for client on %s: %v", client.schema, err)
			} else {
				h.logger.Warnf("Read error for client on %s: %v", client.schema, err)
			}
			break
		}

		// Clients are not expected to send anything
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			h.logger.Infof("Received message from client on %s: %s", client.schema, string(message))
		}
	}
}
