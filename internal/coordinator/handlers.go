package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
)

const (
	msgUsernameTaken      = "Username already exists."
	msgInvalidCredentials = "Invalid credentials."
)

// SignUp creates the account and, on success, binds the connection and marks
// the user online. Unlike LogIn it neither sends the friend list nor fans
// out presence: a fresh account has no friends to tell.
func (that *Coordinator) SignUp(ctx context.Context, conn Conn, username, password string) error {
	log := that.logger.With("method", "SignUp")

	err := that.users.Create(ctx, username, password)

	if errors.Is(err, apperror.ErrUsernameTaken) {
		that.gateway.Direct(conn, NewMessage(ActionAuthError, AuthErrorPayload{Message: msgUsernameTaken}))
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	that.directory.Bind(conn, username)
	that.presence.MarkOnline(username)

	that.gateway.Direct(conn, NewMessage(ActionAuthSuccess, AuthSuccessPayload{Username: username}))

	log.Info("user signed up", "username", username)

	return nil
}

// LogIn validates credentials, binds the connection, marks the user online,
// sends them their friend list and pushes the status change to friends.
func (that *Coordinator) LogIn(ctx context.Context, conn Conn, username, password string) error {
	log := that.logger.With("method", "LogIn")

	_, err := that.users.GetByCredentials(ctx, username, password)

	if errors.Is(err, apperror.ErrInvalidCredentials) {
		that.gateway.Direct(conn, NewMessage(ActionAuthError, AuthErrorPayload{Message: msgInvalidCredentials}))
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to validate login: %w", err)
	}

	that.directory.Bind(conn, username)
	that.presence.MarkOnline(username)

	that.gateway.Direct(conn, NewMessage(ActionAuthSuccess, AuthSuccessPayload{Username: username}))

	that.sendFriendList(ctx, username)
	that.notifyFriends(ctx, username)

	log.Info("user logged in", "username", username)

	return nil
}

// Logout marks the sender offline and fans the change out. The identity
// binding is dropped as well; the connection itself stays open.
func (that *Coordinator) Logout(ctx context.Context, conn Conn) error {
	username, ok := that.directory.UsernameByConn(conn)
	if !ok {
		return nil
	}

	that.presence.MarkOffline(username)
	that.notifyFriends(ctx, username)
	that.directory.Unbind(conn)

	that.logger.Info("user logged out", "username", username)

	return nil
}

// Disconnect unwinds everything a closed connection held: presence, identity
// binding, room seat and broadcast subscriptions.
func (that *Coordinator) Disconnect(ctx context.Context, conn Conn) {
	if username, ok := that.directory.UsernameByConn(conn); ok {
		that.presence.MarkOffline(username)
		that.notifyFriends(ctx, username)
		that.directory.Unbind(conn)

		that.logger.Info("user disconnected", "username", username)
	}

	that.rooms.Drop(conn)
	that.gateway.Unregister(conn)
}

// CreateRoom opens a fresh room with the sender seated as occupant 1 and
// replies with the room code.
func (that *Coordinator) CreateRoom(conn Conn) error {
	username, ok := that.directory.UsernameByConn(conn)
	if !ok {
		return fmt.Errorf("create room: %w", apperror.ErrNotAuthenticated)
	}

	room := that.rooms.Create(conn, username)
	that.gateway.Subscribe(room.Code, conn)

	that.gateway.Direct(conn, NewMessage(ActionRoomCreated, RoomCreatedPayload{Room: room.Code}))

	that.logger.Info("room created", "room", room.Code, "username", username)

	return nil
}

// JoinRoom seats the sender as occupant 2 and starts the game. The creator
// is always X and moves first; the joiner is always O.
func (that *Coordinator) JoinRoom(conn Conn, code string) error {
	log := that.logger.With("method", "JoinRoom")

	username, ok := that.directory.UsernameByConn(conn)
	if !ok {
		return fmt.Errorf("join room: %w", apperror.ErrNotAuthenticated)
	}

	room, err := that.rooms.Join(code, conn, username)
	if err != nil {
		that.gateway.Direct(conn, NewMessage(ActionJoinError, JoinErrorPayload{
			Message: fmt.Sprintf("could not join room %s: %v", code, err),
		}))

		return nil
	}

	that.gateway.Subscribe(room.Code, conn)

	for _, occupant := range room.Occupants {
		opponent := ""
		for _, other := range room.Other(occupant.Conn) {
			opponent = other.Username
		}

		that.gateway.Direct(occupant.Conn, NewMessage(ActionStart, StartPayload{
			Mark:        occupant.Mark,
			Opponent:    opponent,
			Turn:        MarkX,
			TurnSeconds: that.turnSeconds,
		}))
	}

	log.Info("game started", "room", room.Code)

	return nil
}

// Move relays the client-reported board to the other occupant of the room.
// The board is never inspected; legality is the clients' problem.
func (that *Coordinator) Move(conn Conn, code string, board []byte) {
	that.gateway.RoomExcept(code, conn, NewMessage(ActionUpdate, UpdatePayload{Board: board}))
}

// Restart tells every occupant, sender included, to reset to an empty board
// with X moving first again.
func (that *Coordinator) Restart(conn Conn, code string) {
	that.gateway.Room(code, NewMessage(ActionRestart, RestartPayload{Turn: MarkX}))
}

// Timeout resolves a client-reported turn expiry: the reporter loses, every
// other occupant wins. The countdown itself runs client-side; the server
// does not verify the claim.
func (that *Coordinator) Timeout(ctx context.Context, conn Conn, code string) {
	log := that.logger.With("method", "Timeout")

	var winner, loser string

	if room, ok := that.rooms.Get(code); ok {
		for _, occupant := range room.Occupants {
			if occupant.Conn == conn {
				loser = occupant.Username
				continue
			}
			winner = occupant.Username
		}
	}

	result := TimeoutResultPayload{Winner: winner, Loser: loser}

	that.gateway.RoomExcept(code, conn, NewMessage(ActionTimeoutWin, result))
	that.gateway.Direct(conn, NewMessage(ActionTimeoutLose, result))

	if winner == "" || loser == "" {
		return
	}

	if err := that.ratings.ApplyResult(ctx, winner, loser); err != nil {
		log.Error("failed to apply game result", "room", code, "error", err)
	}

	log.Info("game timed out", "room", code, "winner", winner, "loser", loser)
}

// Chat broadcasts a non-empty message to every connected client.
// Whitespace-only messages are dropped without an error.
func (that *Coordinator) Chat(sender, message string) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return
	}

	that.gateway.All(NewMessage(ActionChat, ChatPayload{Sender: sender, Message: trimmed}))
}

// FriendRequest forwards the request to the target if they are online;
// the sender is not told whether delivery happened.
func (that *Coordinator) FriendRequest(from, to string) {
	conn, ok := that.directory.ConnByUsername(to)
	if !ok {
		return
	}

	that.gateway.Direct(conn, NewMessage(ActionFriendRequestReceived, FriendRequestReceivedPayload{From: from}))
}

// FriendResponse records an accepted friendship and re-sends both parties'
// friend lists and presence, accepted or not.
func (that *Coordinator) FriendResponse(ctx context.Context, from, to string, accept bool) error {
	if accept {
		if err := that.friends.AddFriend(ctx, from, to); err != nil {
			return fmt.Errorf("failed to add friend: %w", err)
		}
	}

	that.sendFriendList(ctx, from)
	that.sendFriendList(ctx, to)

	that.notifyFriends(ctx, from)
	that.notifyFriends(ctx, to)

	return nil
}

// RefreshFriendStatuses is the pull variant of presence fan-out: the
// requester gets one status message per friend.
func (that *Coordinator) RefreshFriendStatuses(ctx context.Context, conn Conn) error {
	username, ok := that.directory.UsernameByConn(conn)
	if !ok {
		return fmt.Errorf("refresh friend statuses: %w", apperror.ErrNotAuthenticated)
	}

	friends, err := that.friends.GetFriends(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get friends: %w", err)
	}

	for _, friend := range friends {
		that.gateway.Direct(conn, NewMessage(ActionFriendStatusUpdate, FriendStatusPayload{
			Friend:   friend,
			IsOnline: that.presence.IsOnline(friend),
		}))
	}

	return nil
}
