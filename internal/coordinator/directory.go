package coordinator

import "sync"

// Conn is one live transport session. The coordinator never touches the
// underlying socket; it only addresses messages through this interface.
type Conn interface {
	Send(msg Message) error
}

// Directory is the bidirectional mapping between live connections and
// authenticated usernames. It is the single source of truth for
// "who is this socket".
type Directory struct {
	mu        sync.RWMutex
	usernames map[Conn]string
	conns     map[string]Conn
}

func NewDirectory() *Directory {
	return &Directory{
		usernames: make(map[Conn]string),
		conns:     make(map[string]Conn),
	}
}

// Bind installs the binding, overwriting any prior binding for the
// connection. When two connections authenticate as the same username,
// the last bind wins for ConnByUsername.
func (that *Directory) Bind(conn Conn, username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if prev, ok := that.usernames[conn]; ok && that.conns[prev] == conn {
		delete(that.conns, prev)
	}

	that.usernames[conn] = username
	that.conns[username] = conn
}

func (that *Directory) ConnByUsername(username string) (Conn, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	conn, ok := that.conns[username]

	return conn, ok
}

func (that *Directory) UsernameByConn(conn Conn) (string, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	username, ok := that.usernames[conn]

	return username, ok
}

// Unbind removes the mapping; no-op if the connection was never bound.
// The username side is kept if a later bind already points it elsewhere.
func (that *Directory) Unbind(conn Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	username, ok := that.usernames[conn]
	if !ok {
		return
	}

	delete(that.usernames, conn)

	if that.conns[username] == conn {
		delete(that.conns, username)
	}
}
