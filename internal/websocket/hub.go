package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"notes-repository-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	ClusterChannel  = "cluster_events"
	broadcastTarget = "*"
)

// Message is what a browser receives: {"type": ..., "data": ...}.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterPayload struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message,omitempty"`
	Disconnect   bool            `json:"disconnect,omitempty"`
}

type Hub struct {
	// UserID -> live sockets (one per tab/device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	mu sync.RWMutex

	// nil when running single-instance
	rdb *redis.Client

	// identifies this process on the cluster channel so it can skip its own echoes
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.remove(client)

		case <-h.done:
			h.mu.Lock()
			for userID, clients := range h.clients {
				for _, c := range clients {
					close(c.Send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop closes every local socket and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// remove closes the client's Send channel only if the client is still
// registered, so a socket can be dropped from several places safely.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// drop queues an unregister without blocking the caller, which may hold h.mu.
func (h *Hub) drop(client *Client) {
	go func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast sends msg to every connected user, on this instance and, through
// Redis, on every other one.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast", map[string]interface{}{"type": msg.Type, "error": err.Error()})
		return
	}

	h.deliverAll(data)
	h.publish(clusterPayload{TargetUserID: broadcastTarget, Message: data})
}

// Send delivers msg to all sockets of one user.
func (h *Hub) Send(userID uuid.UUID, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal message", map[string]interface{}{"type": msg.Type, "error": err.Error()})
		return
	}

	h.deliverTo(userID, data)
	h.publish(clusterPayload{TargetUserID: userID.String(), Message: data})
}

// DisconnectUser closes every socket the user holds, cluster-wide.
func (h *Hub) DisconnectUser(userID uuid.UUID) {
	h.disconnectLocal(userID)
	h.publish(clusterPayload{TargetUserID: userID.String(), Disconnect: true})
}

func (h *Hub) disconnectLocal(userID uuid.UUID) {
	h.mu.RLock()
	clients := append([]*Client(nil), h.clients[userID]...)
	h.mu.RUnlock()

	for _, c := range clients {
		h.drop(c)
	}
	if len(clients) > 0 {
		h.logger.Info("Hub", "Disconnecting user sockets", map[string]interface{}{"user_id": userID, "count": len(clients)})
	}
}

func (h *Hub) deliverAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.offer(client, data)
		}
	}
}

func (h *Hub) deliverTo(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[userID] {
		h.offer(client, data)
	}
}

// offer must be called with h.mu held for reading.
func (h *Hub) offer(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping socket", map[string]interface{}{"user_id": client.UserID})
		h.drop(client)
	}
}

func (h *Hub) publish(p clusterPayload) {
	if h.rdb == nil {
		return
	}
	p.Origin = h.instanceID
	jsonPayload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), ClusterChannel, jsonPayload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish to cluster channel", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-h.done
		cancel()
	}()

	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleCluster([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleCluster(raw []byte) {
	var payload clusterPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.instanceID {
		return
	}

	if payload.TargetUserID == broadcastTarget {
		h.deliverAll(payload.Message)
		return
	}

	uid, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}
	if payload.Disconnect {
		h.disconnectLocal(uid)
		return
	}
	h.deliverTo(uid, payload.Message)
}
