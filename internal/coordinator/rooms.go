package coordinator

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
)

const (
	MarkX = "X"
	MarkO = "O"

	roomCapacity = 2
)

// Occupant is one seated player: their connection, display identity and mark.
type Occupant struct {
	Conn     Conn
	Username string
	Mark     string
}

// Room pairs at most two occupants under a short code. The creator always
// holds seat 0 and mark X; the joiner seat 1 and mark O. Once two seats have
// been taken the room stays locked even if a peer later disconnects.
type Room struct {
	Code      string
	Occupants []*Occupant
	Locked    bool
}

func (that *Room) IsActive() bool {
	return len(that.Occupants) == roomCapacity
}

// Other returns the occupants that are not the given connection.
func (that *Room) Other(conn Conn) []*Occupant {
	others := make([]*Occupant, 0, len(that.Occupants))

	for _, occupant := range that.Occupants {
		if occupant.Conn != conn {
			others = append(others, occupant)
		}
	}

	return others
}

// snapshot copies the room so callers can read it after the table lock is
// released. Occupants are never mutated once seated, so sharing the pointers
// is safe; only the slice itself must not alias the table's copy.
func (that *Room) snapshot() *Room {
	occupants := make([]*Occupant, len(that.Occupants))
	copy(occupants, that.Occupants)

	return &Room{
		Code:      that.Code,
		Occupants: occupants,
		Locked:    that.Locked,
	}
}

// Rooms is the room table keyed by code.
type Rooms struct {
	mu    sync.Mutex
	table map[string]*Room
}

func NewRooms() *Rooms {
	return &Rooms{
		table: make(map[string]*Room),
	}
}

// Create seats the creating connection in a fresh room. Codes are drawn
// until one is free of collision.
func (that *Rooms) Create(conn Conn, username string) *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := GenerateRoomCode()
	for {
		if _, exists := that.table[code]; !exists {
			break
		}
		code = GenerateRoomCode()
	}

	room := &Room{
		Code: code,
		Occupants: []*Occupant{
			{Conn: conn, Username: username, Mark: MarkX},
		},
	}

	that.table[code] = room

	return room.snapshot()
}

// Join seats the connection as the second occupant. Unknown codes and rooms
// already at capacity fail without mutating the table.
func (that *Rooms) Join(code string, conn Conn, username string) (*Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.table[code]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	if room.Locked || room.IsActive() {
		return nil, apperror.ErrRoomFull
	}

	room.Occupants = append(room.Occupants, &Occupant{
		Conn:     conn,
		Username: username,
		Mark:     MarkO,
	})
	room.Locked = true

	return room.snapshot(), nil
}

func (that *Rooms) Get(code string) (*Room, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.table[code]
	if !ok {
		return nil, false
	}

	return room.snapshot(), true
}

// Drop removes the connection from any room it occupies and deletes rooms
// left without occupants. A surviving peer keeps the room open.
func (that *Rooms) Drop(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for code, room := range that.table {
		seated := false
		for _, occupant := range room.Occupants {
			if occupant.Conn == conn {
				seated = true
				break
			}
		}

		if !seated {
			continue
		}

		// A fresh slice keeps earlier snapshots of this room intact.
		remaining := make([]*Occupant, 0, len(room.Occupants)-1)
		for _, occupant := range room.Occupants {
			if occupant.Conn != conn {
				remaining = append(remaining, occupant)
			}
		}

		room.Occupants = remaining

		if len(room.Occupants) == 0 {
			delete(that.table, code)
		}
	}
}
