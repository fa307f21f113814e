package coordinator

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway() *Gateway {
	return NewGateway(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func TestGateway_Direct(t *testing.T) {
	gateway := newTestGateway()

	// Given: one live connection
	conn := &fakeConn{}
	gateway.Register(conn)

	// When: addressing it directly
	gateway.Direct(conn, NewMessage(ActionChat, ChatPayload{Sender: "alice", Message: "hi"}))

	// Then: the message arrives once
	require.Len(t, conn.messages(ActionChat), 1)
}

func TestGateway_DirectDropsDeadConnection(t *testing.T) {
	gateway := newTestGateway()

	// Given: a connection whose transport fails
	conn := &fakeConn{sendErr: errStubFailure}
	gateway.Register(conn)

	// When: addressing it, delivery is fire and forget
	gateway.Direct(conn, NewMessage(ActionChat, ChatPayload{}))

	// Then: nothing was recorded and nothing panicked
	assert.Empty(t, conn.messages(ActionChat))
}

func TestGateway_RoomScopes(t *testing.T) {
	gateway := newTestGateway()

	// Given: two subscribers of one room and an unrelated connection
	first := &fakeConn{}
	second := &fakeConn{}
	outsider := &fakeConn{}
	for _, conn := range []Conn{first, second, outsider} {
		gateway.Register(conn)
	}
	gateway.Subscribe("ROOM01", first)
	gateway.Subscribe("ROOM01", second)

	// When: broadcasting room-wide and room-except
	gateway.Room("ROOM01", NewMessage(ActionRestart, RestartPayload{Turn: MarkX}))
	gateway.RoomExcept("ROOM01", first, NewMessage(ActionUpdate, UpdatePayload{}))

	// Then: room-wide reached both, room-except skipped the sender,
	// and the outsider saw neither
	assert.Len(t, first.messages(ActionRestart), 1)
	assert.Len(t, second.messages(ActionRestart), 1)
	assert.Empty(t, first.messages(ActionUpdate))
	assert.Len(t, second.messages(ActionUpdate), 1)
	assert.Empty(t, outsider.sent)
}

func TestGateway_All(t *testing.T) {
	gateway := newTestGateway()

	// Given: several live connections
	conns := []*fakeConn{{}, {}, {}}
	for _, conn := range conns {
		gateway.Register(conn)
	}

	// When: broadcasting globally
	gateway.All(NewMessage(ActionChat, ChatPayload{Sender: "alice", Message: "hi"}))

	// Then: every connection got exactly one copy
	for _, conn := range conns {
		assert.Len(t, conn.messages(ActionChat), 1)
	}
}

func TestGateway_UnregisterLeavesAllScopes(t *testing.T) {
	gateway := newTestGateway()

	// Given: a registered room subscriber
	conn := &fakeConn{}
	gateway.Register(conn)
	gateway.Subscribe("ROOM01", conn)

	// When: the connection goes away
	gateway.Unregister(conn)

	gateway.Room("ROOM01", NewMessage(ActionRestart, RestartPayload{}))
	gateway.All(NewMessage(ActionChat, ChatPayload{}))

	// Then: it receives nothing on any scope
	assert.Empty(t, conn.sent)
}
