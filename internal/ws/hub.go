package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Conn is the part of *websocket.Conn the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Subscription struct {
	SessionID uuid.UUID
	Conn      Conn
}

type Message struct {
	SessionID uuid.UUID
	Payload   []byte
}

// Hub fans view updates out to every screen attached to a console session
type Hub struct {
	Clients      map[uuid.UUID]map[Conn]bool
	Register     chan Subscription
	Unregister   chan Subscription
	Broadcast    chan Message
	CloseSession chan uuid.UUID
	quit         chan struct{}
	stopOnce     sync.Once
	mutex        sync.Mutex
	log          *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Clients:      make(map[uuid.UUID]map[Conn]bool),
		Register:     make(chan Subscription),
		Unregister:   make(chan Subscription),
		Broadcast:    make(chan Message, 256),
		CloseSession: make(chan uuid.UUID),
		quit:         make(chan struct{}),
		log:          log.Named("ws"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.Register:
			h.mutex.Lock()
			conns, ok := h.Clients[sub.SessionID]
			if !ok {
				conns = make(map[Conn]bool)
				h.Clients[sub.SessionID] = conns
			}
			conns[sub.Conn] = true
			h.mutex.Unlock()
			h.log.Debug("screen attached", zap.String("session_id", sub.SessionID.String()))

		case sub := <-h.Unregister:
			h.mutex.Lock()
			if conns, ok := h.Clients[sub.SessionID]; ok {
				if _, ok := conns[sub.Conn]; ok {
					delete(conns, sub.Conn)
					sub.Conn.Close()
				}
				if len(conns) == 0 {
					delete(h.Clients, sub.SessionID)
				}
			}
			h.mutex.Unlock()

		case id := <-h.CloseSession:
			h.mutex.Lock()
			for conn := range h.Clients[id] {
				conn.Close()
			}
			delete(h.Clients, id)
			h.mutex.Unlock()

		case msg := <-h.Broadcast:
			h.mutex.Lock()
			conns := h.Clients[msg.SessionID]
			for conn := range conns {
				if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
					h.log.Debug("dropping screen", zap.String("session_id", msg.SessionID.String()), zap.Error(err))
					conn.Close()
					delete(conns, conn)
				}
			}
			if len(conns) == 0 {
				delete(h.Clients, msg.SessionID)
			}
			h.mutex.Unlock()

		case <-h.quit:
			h.mutex.Lock()
			for id, conns := range h.Clients {
				for conn := range conns {
					conn.Close()
				}
				delete(h.Clients, id)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Stop ends Run and closes every connection. Sends after Stop are dropped.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

func (h *Hub) Send(sessionID uuid.UUID, payload []byte) {
	select {
	case h.Broadcast <- Message{SessionID: sessionID, Payload: payload}:
	case <-h.quit:
	}
}

func (h *Hub) Attach(sessionID uuid.UUID, conn Conn) {
	select {
	case h.Register <- Subscription{SessionID: sessionID, Conn: conn}:
	case <-h.quit:
	}
}

func (h *Hub) Detach(sessionID uuid.UUID, conn Conn) {
	select {
	case h.Unregister <- Subscription{SessionID: sessionID, Conn: conn}:
	case <-h.quit:
	}
}

// Disconnect closes every screen of a session, used on logout
func (h *Hub) Disconnect(sessionID uuid.UUID) {
	select {
	case h.CloseSession <- sessionID:
	case <-h.quit:
	}
}

func (h *Hub) Connections(sessionID uuid.UUID) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients[sessionID])
}
