package coordinator

import "encoding/json"

// Inbound actions (client -> coordinator).
const (
	ActionSignUp              = "signup"
	ActionLogIn               = "login"
	ActionManualLogout        = "manual_logout"
	ActionCreateRoom          = "create_room"
	ActionJoinRoom            = "join_room"
	ActionMove                = "move"
	ActionRestart             = "restart"
	ActionTimeout             = "timeout"
	ActionChat                = "chat"
	ActionFriendRequest       = "friend_request"
	ActionFriendResponse      = "friend_response"
	ActionRequestFriendStatus = "request_friend_status"
)

// Outbound actions (coordinator -> client).
const (
	ActionAuthSuccess           = "auth_success"
	ActionAuthError             = "auth_error"
	ActionFriendListUpdate      = "friend_list_update"
	ActionFriendStatusUpdate    = "friend_status_update"
	ActionFriendRequestReceived = "friend_request_received"
	ActionRoomCreated           = "room_created"
	ActionJoinError             = "join_error"
	ActionStart                 = "start"
	ActionUpdate                = "update"
	ActionTimeoutWin            = "timeout_win"
	ActionTimeoutLose           = "timeout_lose"
)

// Message is the wire envelope for every event in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds an envelope around a marshalable payload.
func NewMessage(action string, payload any) Message {
	return Message{
		Action:  action,
		Payload: json.RawMessage(mustMarshal(payload)),
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
}

type RoomPayload struct {
	Room string `json:"room"`
}

type MovePayload struct {
	Room string `json:"room"`
	// Board is relayed verbatim; the coordinator never inspects it.
	Board json.RawMessage `json:"board"`
}

type ChatPayload struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type FriendRequestPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type FriendResponsePayload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Accept bool   `json:"accept"`
}

type AuthSuccessPayload struct {
	Username string `json:"username"`
}

type AuthErrorPayload struct {
	Message string `json:"message"`
}

type FriendListPayload struct {
	Friends []string `json:"friends"`
}

type FriendStatusPayload struct {
	Friend   string `json:"friend"`
	IsOnline bool   `json:"isOnline"`
}

type FriendRequestReceivedPayload struct {
	From string `json:"from"`
}

type RoomCreatedPayload struct {
	Room string `json:"room"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type StartPayload struct {
	Mark        string `json:"mark"`
	Opponent    string `json:"opponent"`
	Turn        string `json:"turn"`
	TurnSeconds int    `json:"turnSeconds"`
}

type UpdatePayload struct {
	Board json.RawMessage `json:"board"`
}

type RestartPayload struct {
	Turn string `json:"turn"`
}

type TimeoutResultPayload struct {
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
}
