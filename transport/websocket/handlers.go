package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-social/internal/coordinator"
)

func (that *Server) handleSignUp(ctx context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.CredentialsPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.coordinator.SignUp(ctx, conn, payload.Username, payload.Password)
}

func (that *Server) handleLogIn(ctx context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.CredentialsPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.coordinator.LogIn(ctx, conn, payload.Username, payload.Password)
}

func (that *Server) handleLogout(ctx context.Context, conn *client, _ *coordinator.Message) error {
	return that.coordinator.Logout(ctx, conn)
}

func (that *Server) handleCreateRoom(_ context.Context, conn *client, _ *coordinator.Message) error {
	return that.coordinator.CreateRoom(conn)
}

func (that *Server) handleJoinRoom(_ context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.JoinRoomPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.coordinator.JoinRoom(conn, payload.RoomCode)
}

func (that *Server) handleMove(_ context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.MovePayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.coordinator.Move(conn, payload.Room, payload.Board)

	return nil
}

func (that *Server) handleRestart(_ context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.RoomPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.coordinator.Restart(conn, payload.Room)

	return nil
}

func (that *Server) handleTimeout(ctx context.Context, conn *client, msg *coordinator.Message) error {
	var payload coordinator.RoomPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.coordinator.Timeout(ctx, conn, payload.Room)

	return nil
}

func (that *Server) handleChat(_ context.Context, _ *client, msg *coordinator.Message) error {
	var payload coordinator.ChatPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.coordinator.Chat(payload.Sender, payload.Message)

	return nil
}

func (that *Server) handleFriendRequest(_ context.Context, _ *client, msg *coordinator.Message) error {
	var payload coordinator.FriendRequestPayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.coordinator.FriendRequest(payload.From, payload.To)

	return nil
}

func (that *Server) handleFriendResponse(ctx context.Context, _ *client, msg *coordinator.Message) error {
	var payload coordinator.FriendResponsePayload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return that.coordinator.FriendResponse(ctx, payload.From, payload.To, payload.Accept)
}

func (that *Server) handleRequestFriendStatus(ctx context.Context, conn *client, _ *coordinator.Message) error {
	return that.coordinator.RefreshFriendStatuses(ctx, conn)
}
