package types

import (
	"encoding/json"

	"github.com/gorilla/websocket"
)

const (
	Instructor = "instructor"
	Learner    = "learner"
)

// Client is one websocket connection. ConnId is assigned by the server on
// upgrade and stays stable for the socket's lifetime. Name and IsAdmin are
// only touched by the connection's own read loop; room membership lives in
// the connection table, where cross-connection access is synchronized.
type Client struct {
	ConnId  string
	Name    string
	IsAdmin bool
	Conn    *websocket.Conn
	Send    chan OutboundEvent
}

// InboundEvent is the envelope every client message arrives in. The payload
// stays raw until the dispatcher knows which handler owns it.
type InboundEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type OutboundEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
