package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"wtms/internal/models"
	"wtms/pkg/logger"
	"wtms/pkg/telemetry"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn adalah bagian dari *websocket.Conn yang dipakai Hub.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client merepresentasikan satu koneksi WebSocket milik seorang worker.
type Client struct {
	WorkerID int64
	Conn     Conn
	Mu       sync.Mutex
}

type message struct {
	workerID int64
	payload  []byte
}

// Hub mengelola koneksi WebSocket per worker. Set client hanya disentuh
// oleh goroutine Run.
type Hub struct {
	clients    map[int64]map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub membuat Hub yang belum berjalan. Run harus dijalankan di goroutine
// sendiri sebelum Register/Unregister dipakai; tanpa Run keduanya menunggu.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		broadcast:  make(chan message, buffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Register menunggu sampai Run menerima client. Jika Run sudah berhenti,
// koneksi langsung ditutup.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Conn.Close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify mengirim event ke semua koneksi milik workerID. Tidak pernah
// memblokir request: jika buffer penuh event dibuang.
func (h *Hub) Notify(workerID int64, event models.SubmissionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding websocket event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- message{workerID: workerID, payload: payload}:
	default:
		logger.SystemLogger.Warn("Websocket buffer full, dropping event",
			zap.Int64("worker_id", workerID), zap.String("type", event.Type))
	}
}

// Run menjalankan loop Hub sampai ctx selesai.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for client := range set {
					h.remove(client)
				}
			}
			return
		case client := <-h.register:
			set, ok := h.clients[client.WorkerID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.WorkerID] = set
			}
			set[client] = true
			telemetry.WebsocketClients.Inc()
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.broadcast:
			for client := range h.clients[msg.workerID] {
				client.Mu.Lock()
				err := client.Conn.WriteMessage(websocket.TextMessage, msg.payload)
				client.Mu.Unlock()
				if err != nil {
					logger.SystemLogger.Warn("Websocket write failed, dropping client",
						zap.Int64("worker_id", client.WorkerID), zap.Error(err))
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.WorkerID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.WorkerID)
	}
	_ = client.Conn.Close()
	telemetry.WebsocketClients.Dec()
}
