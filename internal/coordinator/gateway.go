package coordinator

import (
	"log/slog"
	"sync"
)

// Gateway is the publish primitive everything else sends through. Delivery
// is fire-and-forget: a dead or unknown recipient is silently dropped.
type Gateway struct {
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[Conn]struct{}
	rooms map[string]map[Conn]struct{}
}

func NewGateway(logger *slog.Logger) *Gateway {
	return &Gateway{
		logger: logger,

		conns: make(map[Conn]struct{}),
		rooms: make(map[string]map[Conn]struct{}),
	}
}

// Register adds a live connection to the global scope.
func (that *Gateway) Register(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conns[conn] = struct{}{}
}

// Unregister removes the connection from the global scope and from every
// room scope it was subscribed to.
func (that *Gateway) Unregister(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.conns, conn)

	for code, subscribers := range that.rooms {
		delete(subscribers, conn)

		if len(subscribers) == 0 {
			delete(that.rooms, code)
		}
	}
}

// Subscribe adds the connection to a room's broadcast scope.
func (that *Gateway) Subscribe(code string, conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	subscribers, ok := that.rooms[code]
	if !ok {
		subscribers = make(map[Conn]struct{})
		that.rooms[code] = subscribers
	}

	subscribers[conn] = struct{}{}
}

// Direct delivers to one connection.
func (that *Gateway) Direct(conn Conn, msg Message) {
	that.send(conn, msg)
}

// Room delivers to every connection subscribed to the room, sender included.
func (that *Gateway) Room(code string, msg Message) {
	for _, conn := range that.roomSubscribers(code) {
		that.send(conn, msg)
	}
}

// RoomExcept delivers to every room subscriber except the sender.
func (that *Gateway) RoomExcept(code string, sender Conn, msg Message) {
	for _, conn := range that.roomSubscribers(code) {
		if conn == sender {
			continue
		}

		that.send(conn, msg)
	}
}

// All delivers to every currently connected connection.
func (that *Gateway) All(msg Message) {
	that.mu.RLock()
	conns := make([]Conn, 0, len(that.conns))
	for conn := range that.conns {
		conns = append(conns, conn)
	}
	that.mu.RUnlock()

	for _, conn := range conns {
		that.send(conn, msg)
	}
}

func (that *Gateway) roomSubscribers(code string) []Conn {
	that.mu.RLock()
	defer that.mu.RUnlock()

	subscribers := make([]Conn, 0, len(that.rooms[code]))
	for conn := range that.rooms[code] {
		subscribers = append(subscribers, conn)
	}

	return subscribers
}

func (that *Gateway) send(conn Conn, msg Message) {
	if err := conn.Send(msg); err != nil {
		that.logger.Debug("failed to deliver message", "action", msg.Action, "error", err)
	}
}
